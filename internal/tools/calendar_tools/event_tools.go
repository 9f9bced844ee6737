package calendar_tools

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calflowhq/calflow/internal/calendar"
	"github.com/calflowhq/calflow/internal/instrumentation"
	"github.com/calflowhq/calflow/internal/server"
	"github.com/calflowhq/calflow/internal/tools/batch"
	"github.com/calflowhq/calflow/internal/tools/common"
)

// RegisterEventTools registers event-related tools with the MCP server.
// Write tools are skipped when readOnly is true.
func RegisterEventTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// List events tool
	listEventsTool := mcp.NewTool("calendar_list_events",
		mcp.WithDescription("List calendar events within a time range"),
		mcp.WithString("user",
			mcp.Description("Email address of the user to act as (defaults to the configured user)"),
		),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (defaults to 'primary')"),
		),
		mcp.WithString("time_min",
			mcp.Required(),
			mcp.Description("Start of the time range (RFC3339 format, e.g. 2026-01-15T00:00:00Z)"),
		),
		mcp.WithString("time_max",
			mcp.Required(),
			mcp.Description("End of the time range (RFC3339 format)"),
		),
		mcp.WithString("query",
			mcp.Description("Free-text search over event fields (summary, description, location, attendees)"),
		),
	)
	s.AddTool(listEventsTool, common.InstrumentedToolHandlerWithService(
		"calendar_list_events", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListEvents(ctx, request, sc)
		}))

	// Get event tool
	getEventTool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific calendar event"),
		mcp.WithString("user",
			mcp.Description("Email address of the user to act as (defaults to the configured user)"),
		),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (defaults to 'primary')"),
		),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the event to retrieve"),
		),
	)
	s.AddTool(getEventTool, common.InstrumentedToolHandlerWithService(
		"calendar_get_event", instrumentation.ServiceCalendar, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetEvent(ctx, request, sc)
		}))

	// Write tools are only available outside read-only mode
	if !readOnly {
		// Create event tool
		createEventTool := mcp.NewTool("calendar_create_event",
			mcp.WithDescription("Create a new calendar event and notify attendees"),
			mcp.WithString("user",
				mcp.Description("Email address of the user to act as (defaults to the configured user)"),
			),
			mcp.WithString("calendar_id",
				mcp.Description("Calendar ID (defaults to 'primary')"),
			),
			mcp.WithString("summary",
				mcp.Required(),
				mcp.Description("Event title"),
			),
			mcp.WithString("start_time",
				mcp.Required(),
				mcp.Description("Event start time (RFC3339 format)"),
			),
			mcp.WithString("end_time",
				mcp.Required(),
				mcp.Description("Event end time (RFC3339 format)"),
			),
			mcp.WithString("description",
				mcp.Description("Event description"),
			),
			mcp.WithString("location",
				mcp.Description("Event location"),
			),
			mcp.WithString("time_zone",
				mcp.Description("Time zone for the event (defaults to UTC)"),
			),
			mcp.WithString("attendees",
				mcp.Description("Comma-separated list of attendee email addresses"),
			),
		)
		s.AddTool(createEventTool, common.InstrumentedToolHandlerWithService(
			"calendar_create_event", instrumentation.ServiceCalendar, instrumentation.OperationCreate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleCreateEvent(ctx, request, sc)
			}))

		// Update event tool
		updateEventTool := mcp.NewTool("calendar_update_event",
			mcp.WithDescription("Update an existing calendar event; omitted fields are left unchanged"),
			mcp.WithString("user",
				mcp.Description("Email address of the user to act as (defaults to the configured user)"),
			),
			mcp.WithString("calendar_id",
				mcp.Description("Calendar ID (defaults to 'primary')"),
			),
			mcp.WithString("event_id",
				mcp.Required(),
				mcp.Description("ID of the event to update"),
			),
			mcp.WithString("summary",
				mcp.Description("New event title"),
			),
			mcp.WithString("start_time",
				mcp.Description("New start time (RFC3339 format)"),
			),
			mcp.WithString("end_time",
				mcp.Description("New end time (RFC3339 format)"),
			),
			mcp.WithString("description",
				mcp.Description("New event description"),
			),
			mcp.WithString("location",
				mcp.Description("New event location"),
			),
			mcp.WithString("time_zone",
				mcp.Description("Time zone for updated start/end times (defaults to UTC)"),
			),
			mcp.WithString("attendees",
				mcp.Description("Comma-separated list of attendee email addresses; replaces the current list"),
			),
		)
		s.AddTool(updateEventTool, common.InstrumentedToolHandlerWithService(
			"calendar_update_event", instrumentation.ServiceCalendar, instrumentation.OperationUpdate, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleUpdateEvent(ctx, request, sc)
			}))

		// Delete event tool
		deleteEventTool := mcp.NewTool("calendar_delete_event",
			mcp.WithDescription("Delete one or more calendar events. Accepts a single event ID or an array of IDs."),
			mcp.WithString("user",
				mcp.Description("Email address of the user to act as (defaults to the configured user)"),
			),
			mcp.WithString("calendar_id",
				mcp.Description("Calendar ID (defaults to 'primary')"),
			),
			mcp.WithString("event_id",
				mcp.Required(),
				mcp.Description("Event ID or array of event IDs to delete"),
			),
		)
		s.AddTool(deleteEventTool, common.InstrumentedToolHandlerWithService(
			"calendar_delete_event", instrumentation.ServiceCalendar, instrumentation.OperationDelete, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleDeleteEvent(ctx, request, sc)
			}))

		// Quick add tool
		quickAddTool := mcp.NewTool("calendar_quick_add",
			mcp.WithDescription("Create a calendar event from a natural language description, e.g. 'Lunch with John tomorrow at noon'"),
			mcp.WithString("user",
				mcp.Description("Email address of the user to act as (defaults to the configured user)"),
			),
			mcp.WithString("calendar_id",
				mcp.Description("Calendar ID (defaults to 'primary')"),
			),
			mcp.WithString("text",
				mcp.Required(),
				mcp.Description("Natural language description of the event"),
			),
		)
		s.AddTool(quickAddTool, common.InstrumentedToolHandlerWithService(
			"calendar_quick_add", instrumentation.ServiceCalendar, instrumentation.OperationQuickAdd, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleQuickAdd(ctx, request, sc)
			}))

		// Move event tool
		moveEventTool := mcp.NewTool("calendar_move_event",
			mcp.WithDescription("Move an event from one calendar to another"),
			mcp.WithString("user",
				mcp.Description("Email address of the user to act as (defaults to the configured user)"),
			),
			mcp.WithString("calendar_id",
				mcp.Description("Source calendar ID (defaults to 'primary')"),
			),
			mcp.WithString("event_id",
				mcp.Required(),
				mcp.Description("ID of the event to move"),
			),
			mcp.WithString("destination_calendar_id",
				mcp.Required(),
				mcp.Description("Calendar ID to move the event to"),
			),
		)
		s.AddTool(moveEventTool, common.InstrumentedToolHandlerWithService(
			"calendar_move_event", instrumentation.ServiceCalendar, instrumentation.OperationMove, sc,
			func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
				return handleMoveEvent(ctx, request, sc)
			}))
	}

	return nil
}

func handleListEvents(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	timeMinStr, ok := args["time_min"].(string)
	if !ok || timeMinStr == "" {
		return mcp.NewToolResultError("time_min is required"), nil
	}
	timeMaxStr, ok := args["time_max"].(string)
	if !ok || timeMaxStr == "" {
		return mcp.NewToolResultError("time_max is required"), nil
	}

	timeMin, err := time.Parse(time.RFC3339, timeMinStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid time_min: %v", err)), nil
	}
	timeMax, err := time.Parse(time.RFC3339, timeMaxStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid time_max: %v", err)), nil
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := common.GetCalendarFromArgs(args)
	query, _ := args["query"].(string)

	var events []calendar.EventSummary
	if query != "" {
		events, err = client.SearchEvents(calendarID, query, timeMin, timeMax)
	} else {
		events, err = client.ListEvents(calendarID, timeMin, timeMax)
	}
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list events: %v", err)), nil
	}

	if len(events) == 0 {
		return mcp.NewToolResultText("No events found in the given time range"), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Found %d events:\n\n", len(events)))
	for i, event := range events {
		result.WriteString(fmt.Sprintf("%d. %s\n", i+1, formatEventLine(event)))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func handleGetEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("event_id is required"), nil
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	event, err := client.GetEvent(common.GetCalendarFromArgs(args), eventID)
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s not found", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get event: %v", err)), nil
	}

	return mcp.NewToolResultText(formatEventDetails(*event)), nil
}

func handleCreateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	summary, ok := args["summary"].(string)
	if !ok || summary == "" {
		return mcp.NewToolResultError("summary is required"), nil
	}
	startStr, ok := args["start_time"].(string)
	if !ok || startStr == "" {
		return mcp.NewToolResultError("start_time is required"), nil
	}
	endStr, ok := args["end_time"].(string)
	if !ok || endStr == "" {
		return mcp.NewToolResultError("end_time is required"), nil
	}

	start, err := time.Parse(time.RFC3339, startStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid start_time: %v", err)), nil
	}
	end, err := time.Parse(time.RFC3339, endStr)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid end_time: %v", err)), nil
	}

	input := calendar.EventInput{
		Summary: summary,
		Start:   start,
		End:     end,
	}
	if description, ok := args["description"].(string); ok {
		input.Description = description
	}
	if location, ok := args["location"].(string); ok {
		input.Location = location
	}
	if tz, ok := args["time_zone"].(string); ok {
		input.TimeZone = tz
	}
	if attendeesStr, ok := args["attendees"].(string); ok && attendeesStr != "" {
		input.Attendees = splitAttendees(attendeesStr)
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := client.CreateEvent(common.GetCalendarFromArgs(args), input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to create event: %v", err)), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Successfully created event %q (ID: %s)\n", created.Summary, created.ID))
	result.WriteString(fmt.Sprintf("Start: %s\n", created.Start.Format(time.RFC3339)))
	result.WriteString(fmt.Sprintf("End: %s\n", created.End.Format(time.RFC3339)))
	if created.MeetLink != "" {
		result.WriteString(fmt.Sprintf("Meet link: %s\n", created.MeetLink))
	}
	if created.MeetingID != "" {
		result.WriteString(fmt.Sprintf("Meeting ID: %s\n", created.MeetingID))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func handleUpdateEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("event_id is required"), nil
	}

	var input calendar.EventInput
	if summary, ok := args["summary"].(string); ok {
		input.Summary = summary
	}
	if description, ok := args["description"].(string); ok {
		input.Description = description
	}
	if location, ok := args["location"].(string); ok {
		input.Location = location
	}
	if tz, ok := args["time_zone"].(string); ok {
		input.TimeZone = tz
	}
	if startStr, ok := args["start_time"].(string); ok && startStr != "" {
		start, err := time.Parse(time.RFC3339, startStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid start_time: %v", err)), nil
		}
		input.Start = start
	}
	if endStr, ok := args["end_time"].(string); ok && endStr != "" {
		end, err := time.Parse(time.RFC3339, endStr)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("invalid end_time: %v", err)), nil
		}
		input.End = end
	}
	if attendeesStr, ok := args["attendees"].(string); ok && attendeesStr != "" {
		input.Attendees = splitAttendees(attendeesStr)
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := client.UpdateEvent(common.GetCalendarFromArgs(args), eventID, input)
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s not found", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to update event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully updated event %q (ID: %s)", updated.Summary, updated.ID)), nil
}

func handleDeleteEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventIDs, err := batch.ParseStringOrArray(args["event_id"], "event_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := common.GetCalendarFromArgs(args)

	if len(eventIDs) == 1 {
		if err := client.DeleteEvent(calendarID, eventIDs[0]); err != nil {
			if calendar.IsNotFound(err) {
				return mcp.NewToolResultError(fmt.Sprintf("event %s not found", eventIDs[0])), nil
			}
			return mcp.NewToolResultError(fmt.Sprintf("failed to delete event: %v", err)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Successfully deleted event %s", eventIDs[0])), nil
	}

	results := batch.ProcessBatch(eventIDs, func(id string) (string, error) {
		if err := client.DeleteEvent(calendarID, id); err != nil {
			return "", err
		}
		return "deleted", nil
	})

	return mcp.NewToolResultText(batch.FormatResults(results)), nil
}

func handleQuickAdd(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	text, ok := args["text"].(string)
	if !ok || text == "" {
		return mcp.NewToolResultError("text is required"), nil
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	created, err := client.QuickAdd(common.GetCalendarFromArgs(args), text)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to quick-add event: %v", err)), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Successfully created event %q (ID: %s)\n", created.Summary, created.ID))
	if !created.Start.IsZero() {
		result.WriteString(fmt.Sprintf("Start: %s\n", created.Start.Format(time.RFC3339)))
	}
	if !created.End.IsZero() {
		result.WriteString(fmt.Sprintf("End: %s\n", created.End.Format(time.RFC3339)))
	}

	return mcp.NewToolResultText(result.String()), nil
}

func handleMoveEvent(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("event_id is required"), nil
	}
	destinationID, ok := args["destination_calendar_id"].(string)
	if !ok || destinationID == "" {
		return mcp.NewToolResultError("destination_calendar_id is required"), nil
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	moved, err := client.MoveEvent(common.GetCalendarFromArgs(args), eventID, destinationID)
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s not found", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to move event: %v", err)), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf("Successfully moved event %q (ID: %s) to calendar %s", moved.Summary, moved.ID, destinationID)), nil
}

// splitAttendees splits a comma-separated attendee list, trimming whitespace
// and dropping empty entries.
func splitAttendees(s string) []string {
	var attendees []string
	for _, part := range strings.Split(s, ",") {
		if email := strings.TrimSpace(part); email != "" {
			attendees = append(attendees, email)
		}
	}
	return attendees
}

// formatEventLine renders a one-line summary of an event for list output.
func formatEventLine(event calendar.EventSummary) string {
	var line strings.Builder
	if event.Summary != "" {
		line.WriteString(event.Summary)
	} else {
		line.WriteString("(no title)")
	}
	line.WriteString(fmt.Sprintf(" (ID: %s)", event.ID))
	if !event.Start.IsZero() {
		line.WriteString(fmt.Sprintf("\n   Start: %s", event.Start.Format(time.RFC3339)))
	}
	if !event.End.IsZero() {
		line.WriteString(fmt.Sprintf("\n   End: %s", event.End.Format(time.RFC3339)))
	}
	if event.Location != "" {
		line.WriteString(fmt.Sprintf("\n   Location: %s", event.Location))
	}
	if event.MeetLink != "" {
		line.WriteString(fmt.Sprintf("\n   Meet: %s", event.MeetLink))
	}
	return line.String()
}

// formatEventDetails renders the full details of a single event.
func formatEventDetails(event calendar.EventSummary) string {
	var result strings.Builder
	result.WriteString(fmt.Sprintf("Event: %s\n", event.Summary))
	result.WriteString(fmt.Sprintf("ID: %s\n", event.ID))
	if event.Status != "" {
		result.WriteString(fmt.Sprintf("Status: %s\n", event.Status))
	}
	if !event.Start.IsZero() {
		result.WriteString(fmt.Sprintf("Start: %s\n", event.Start.Format(time.RFC3339)))
	}
	if !event.End.IsZero() {
		result.WriteString(fmt.Sprintf("End: %s\n", event.End.Format(time.RFC3339)))
	}
	if event.Location != "" {
		result.WriteString(fmt.Sprintf("Location: %s\n", event.Location))
	}
	if event.Description != "" {
		result.WriteString(fmt.Sprintf("Description: %s\n", event.Description))
	}
	if event.Organizer != "" {
		result.WriteString(fmt.Sprintf("Organizer: %s\n", event.Organizer))
	}
	if len(event.Attendees) > 0 {
		result.WriteString("Attendees:\n")
		for _, att := range event.Attendees {
			line := fmt.Sprintf("  - %s", att.Email)
			if att.DisplayName != "" {
				line += fmt.Sprintf(" (%s)", att.DisplayName)
			}
			if att.ResponseStatus != "" {
				line += fmt.Sprintf(" [%s]", att.ResponseStatus)
			}
			result.WriteString(line + "\n")
		}
	}
	if event.MeetLink != "" {
		result.WriteString(fmt.Sprintf("Meet link: %s\n", event.MeetLink))
	}
	if event.MeetingID != "" {
		result.WriteString(fmt.Sprintf("Meeting ID: %s\n", event.MeetingID))
	}
	return result.String()
}
