package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calflowhq/calflow/internal/calendar"
	"github.com/calflowhq/calflow/internal/google"
)

func newCheckCmd() *cobra.Command {
	var (
		serviceAccountFile string
		impersonate        string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Verify credentials and Calendar API access",
		Long: `Load the service account credentials, create a Calendar client and list
the accessible calendars once. Useful for verifying that the key and the
domain-wide delegation setup work before starting the server.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCheck(cmd.Context(), serviceAccountFile, impersonate)
		},
	}

	cmd.Flags().StringVar(&serviceAccountFile, "service-account-file", "", "Path to the Google service account key file. Can also use GOOGLE_SERVICE_ACCOUNT_FILE env var.")
	cmd.Flags().StringVar(&impersonate, "impersonate", "", "User to impersonate via domain-wide delegation. Can also use GOOGLE_IMPERSONATE_USER env var.")

	return cmd
}

func runCheck(ctx context.Context, serviceAccountFile, impersonate string) error {
	if ctx == nil {
		ctx = context.Background()
	}

	if serviceAccountFile == "" {
		serviceAccountFile = os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	}
	if impersonate == "" {
		impersonate = os.Getenv("GOOGLE_IMPERSONATE_USER")
	}

	creds, err := google.LoadCredentials(serviceAccountFile)
	if err != nil {
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	fmt.Printf("Credentials loaded from %s\n", creds.Source())
	if email := creds.ClientEmail(); email != "" {
		fmt.Printf("Service account: %s\n", email)
	}

	client, err := calendar.NewClient(ctx, creds, impersonate)
	if err != nil {
		return fmt.Errorf("failed to create Calendar client: %w", err)
	}
	if impersonate != "" {
		fmt.Printf("Impersonating: %s\n", impersonate)
	}

	calendars, err := client.ListCalendars()
	if err != nil {
		return fmt.Errorf("failed to list calendars: %w", err)
	}

	fmt.Printf("Calendar API access OK: %d calendars accessible\n", len(calendars))
	for _, cal := range calendars {
		marker := ""
		if cal.Primary {
			marker = " (primary)"
		}
		fmt.Printf("  - %s%s\n", cal.Summary, marker)
	}

	return nil
}
