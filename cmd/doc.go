// Package cmd implements the command-line interface for calflow.
//
// This package provides the following commands:
//   - serve: Start the MCP server to provide Google Calendar tools for AI assistants
//   - check: Verify credentials and Calendar API access
//   - version: Display version information
//   - generate-docs: Generate markdown documentation for all MCP tools
//
// The serve command is the default command when no subcommand is specified.
package cmd
