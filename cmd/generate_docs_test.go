package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
)

func TestGenerateToolMarkdown(t *testing.T) {
	tool := mcp.NewTool("calendar_get_event",
		mcp.WithDescription("Get details of a specific calendar event"),
		mcp.WithString("event_id",
			mcp.Required(),
			mcp.Description("ID of the event to retrieve"),
		),
		mcp.WithString("calendar_id",
			mcp.Description("Calendar ID (defaults to 'primary')"),
		),
	)

	md := generateToolMarkdown(tool)

	for _, want := range []string{
		"### calendar_get_event",
		"Get details of a specific calendar event",
		"`event_id` (required)",
		"`calendar_id` (optional)",
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestRunGenerateDocs(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "tools.md")

	if err := runGenerateDocs(outputFile); err != nil {
		t.Fatalf("runGenerateDocs() error: %v", err)
	}

	data, err := os.ReadFile(outputFile)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	content := string(data)

	// All tools, including write operations, should be documented
	for _, tool := range []string{
		"calendar_list_events",
		"calendar_get_event",
		"calendar_create_event",
		"calendar_update_event",
		"calendar_delete_event",
		"calendar_quick_add",
		"calendar_move_event",
		"calendar_list_calendars",
		"calendar_get_calendar",
		"calendar_update_attendees",
		"calendar_parse_event_json",
	} {
		if !strings.Contains(content, "### "+tool) {
			t.Errorf("documentation missing tool %s", tool)
		}
	}
}

func TestContains(t *testing.T) {
	if !contains([]string{"a", "b"}, "b") {
		t.Error("expected contains to find existing item")
	}
	if contains([]string{"a", "b"}, "c") {
		t.Error("expected contains to miss absent item")
	}
	if contains(nil, "a") {
		t.Error("expected contains to handle nil slice")
	}
}
