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
	"github.com/calflowhq/calflow/internal/tools/common"
)

// RegisterCalendarListTools registers tools for listing and inspecting
// calendars. These are read-only and available in every mode.
func RegisterCalendarListTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	listCalendarsTool := mcp.NewTool("calendar_list_calendars",
		mcp.WithDescription("List all calendars accessible to the user"),
		mcp.WithString("user",
			mcp.Description("Email address of the user to act as (defaults to the configured user)"),
		),
	)
	s.AddTool(listCalendarsTool, common.InstrumentedToolHandlerWithService(
		"calendar_list_calendars", instrumentation.ServiceCalendar, instrumentation.OperationList, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleListCalendars(ctx, request, sc)
		}))

	getCalendarTool := mcp.NewTool("calendar_get_calendar",
		mcp.WithDescription("Get details of a specific calendar"),
		mcp.WithString("user",
			mcp.Description("Email address of the user to act as (defaults to the configured user)"),
		),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (defaults to 'primary')"),
		),
	)
	s.AddTool(getCalendarTool, common.InstrumentedToolHandlerWithService(
		"calendar_get_calendar", instrumentation.ServiceCalendar, instrumentation.OperationGet, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleGetCalendar(ctx, request, sc)
		}))

	return nil
}

func handleListCalendars(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendars, err := client.ListCalendars()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to list calendars: %v", err)), nil
	}

	if len(calendars) == 0 {
		return mcp.NewToolResultText("No calendars found"), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Found %d calendars:\n\n", len(calendars)))
	for i, cal := range calendars {
		result.WriteString(fmt.Sprintf("%d. %s (ID: %s)\n", i+1, cal.Summary, cal.ID))
		if cal.Primary {
			result.WriteString("   Primary: yes\n")
		}
		if cal.AccessRole != "" {
			result.WriteString(fmt.Sprintf("   Access role: %s\n", cal.AccessRole))
		}
		if cal.TimeZone != "" {
			result.WriteString(fmt.Sprintf("   Time zone: %s\n", cal.TimeZone))
		}
	}

	return mcp.NewToolResultText(result.String()), nil
}

func handleGetCalendar(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	client, err := getCalendarClient(args, sc)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	calendarID := common.GetCalendarFromArgs(args)
	cal, err := client.GetCalendar(calendarID)
	if err != nil {
		if calendar.IsNotFound(err) {
			return mcp.NewToolResultError(fmt.Sprintf("calendar %s not found", calendarID)), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get calendar: %v", err)), nil
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("Calendar: %s\n", cal.Summary))
	result.WriteString(fmt.Sprintf("ID: %s\n", cal.ID))
	if cal.Description != "" {
		result.WriteString(fmt.Sprintf("Description: %s\n", cal.Description))
	}
	if cal.TimeZone != "" {
		result.WriteString(fmt.Sprintf("Time zone: %s\n", cal.TimeZone))
	}

	return mcp.NewToolResultText(result.String()), nil
}
