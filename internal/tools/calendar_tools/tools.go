package calendar_tools

import (
	"fmt"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calflowhq/calflow/internal/calendar"
	"github.com/calflowhq/calflow/internal/server"
	"github.com/calflowhq/calflow/internal/tools/common"
)

// getCalendarClient retrieves or creates a calendar client impersonating the
// user named in the request arguments (or the server's default subject).
func getCalendarClient(args map[string]interface{}, sc *server.ServerContext) (*calendar.Client, error) {
	user := common.GetUserFromArgs(args)
	client, err := sc.CalendarClientForUser(user)
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar client: %w", err)
	}
	return client, nil
}

// RegisterCalendarTools registers all Calendar-related tools with the MCP server.
// When readOnly is true, tools that modify calendar data are not registered.
func RegisterCalendarTools(s *mcpserver.MCPServer, sc *server.ServerContext, readOnly bool) error {
	// Register event tools
	if err := RegisterEventTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register event tools: %w", err)
	}

	// Register calendar list tools
	if err := RegisterCalendarListTools(s, sc); err != nil {
		return fmt.Errorf("failed to register calendar list tools: %w", err)
	}

	// Register attendee tools
	if err := RegisterAttendeeTools(s, sc, readOnly); err != nil {
		return fmt.Errorf("failed to register attendee tools: %w", err)
	}

	// Register payload tools
	if err := RegisterPayloadTools(s, sc); err != nil {
		return fmt.Errorf("failed to register payload tools: %w", err)
	}

	return nil
}
