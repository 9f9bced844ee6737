// Package calendar_tools exposes Google Calendar operations as MCP tools:
// listing, searching, creating, updating, deleting and moving events,
// quick-add from natural language, calendar inspection, attendee management
// and event payload parsing.
package calendar_tools
