package calendar_tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calflowhq/calflow/internal/calendar"
	"github.com/calflowhq/calflow/internal/instrumentation"
	"github.com/calflowhq/calflow/internal/server"
	"github.com/calflowhq/calflow/internal/tools/batch"
	"github.com/calflowhq/calflow/internal/tools/common"
)

// RegisterAttendeeTools registers attendee management tools. These modify
// events, so they are skipped when readOnly is true.
func RegisterAttendeeTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	if readOnly {
		return nil
	}

	updateAttendeesTool := mcp.NewTool("calendar_update_attendees",
		mcp.WithDescription("Replace the attendee list of an existing event. Accepts a single email or an array of emails."),
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
		mcp.WithString("attendees",
			mcp.Required(),
			mcp.Description("Attendee email address or array of addresses; replaces the current list"),
		),
	)
	s.AddTool(updateAttendeesTool, common.InstrumentedToolHandlerWithService(
		"calendar_update_attendees", instrumentation.ServiceCalendar, instrumentation.OperationUpdate, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleUpdateAttendees(ctx, request, sc)
		}))

	return nil
}

func handleUpdateAttendees(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	eventID, ok := args["event_id"].(string)
	if !ok || eventID == "" {
		return mcp.NewToolResultError("event_id is required"), nil
	}

	attendees, err := batch.ParseStringOrArray(args["attendees"], "attendees")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// A single string may itself be a comma-separated list.
	if len(attendees) == 1 && strings.Contains(attendees[0], ",") {
		attendees = splitAttendees(attendees[0])
	}

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := client.SetAttendees(common.GetCalendarFromArgs(args), eventID, attendees)
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("event %s not found", eventID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to update attendees: %v", err)), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Successfully updated attendees for event %q (ID: %s)\n", updated.Summary, updated.ID))
	result.WriteString(fmt.Sprintf("Attendees (%d):\n", len(updated.Attendees)))
	for _, att := range updated.Attendees {
		result.WriteString(fmt.Sprintf("  - %s\n", att.Email))
	}

	return mcp.NewToolResultText(result.String()), nil
}
