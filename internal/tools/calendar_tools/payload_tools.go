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

// RegisterPayloadTools registers tools that work on event payloads without
// touching the Calendar API.
func RegisterPayloadTools(s *mcpserver.MCPServer, sc *server.ServerContext) error {
	parsePayloadTool := mcp.NewTool("calendar_parse_event_json",
		mcp.WithDescription("Parse and validate a JSON event payload with summary, start_time, end_time and optional location and participants"),
		mcp.WithString("payload",
			mcp.Required(),
			mcp.Description("JSON document describing the event"),
		),
	)
	s.AddTool(parsePayloadTool, common.InstrumentedToolHandlerWithService(
		"calendar_parse_event_json", instrumentation.ServiceCalendar, instrumentation.OperationParse, sc,
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return handleParseEventPayload(ctx, request, sc)
		}))

	return nil
}

func handleParseEventPayload(ctx context.Context, request mcp.CallToolRequest, sc *server.ServerContext) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	payload, ok := args["payload"].(string)
	if !ok || payload == "" {
		return mcp.NewToolResultError("payload is required"), nil
	}

	parsed, err := calendar.ParseEventPayload(payload)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to parse event payload: %v", err)), nil
	}

	var result strings.Builder
	result.WriteString("Parsed event payload:\n")
	result.WriteString(fmt.Sprintf("Summary: %s\n", parsed.Summary))
	result.WriteString(fmt.Sprintf("Start: %s\n", parsed.StartTime))
	result.WriteString(fmt.Sprintf("End: %s\n", parsed.EndTime))
	if parsed.Location != "" {
		result.WriteString(fmt.Sprintf("Location: %s\n", parsed.Location))
	}
	if len(parsed.Participants) > 0 {
		result.WriteString(fmt.Sprintf("Participants: %s\n", strings.Join(parsed.Participants, ", ")))
	}

	return mcp.NewToolResultText(result.String()), nil
}
