package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/calflowhq/calflow/internal/google"
	"github.com/calflowhq/calflow/internal/instrumentation"
	"github.com/calflowhq/calflow/internal/logging"
	"github.com/calflowhq/calflow/internal/server"
	"github.com/calflowhq/calflow/internal/tools/calendar_tools"
)

// MetricsConfig holds configuration for the metrics server
type MetricsConfig struct {
	// Enabled determines whether to start the metrics server (default: true)
	Enabled bool

	// Addr is the address for the metrics server (e.g., ":9090")
	Addr string
}

func newServeCmd() *cobra.Command {
	var (
		transport          string
		httpAddr           string
		yolo               bool
		serviceAccountFile string
		impersonate        string
		metricsEnabled     bool
		metricsAddr        string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server",
		Long: `Start the Model Context Protocol (MCP) server to provide Google Calendar
tools for AI assistants.

Supports multiple transport types:
  - stdio: Standard input/output (default)
  - streamable-http: Streamable HTTP transport

Safety Mode:
  By default, the server operates in read-only mode, providing only safe operations.
  Use --yolo to enable write operations (event creation, deletion, etc.)

Authentication:
  A Google service account key is required:
    --service-account-file /path/to/key.json
    OR GOOGLE_SERVICE_ACCOUNT_FILE env var
    OR GOOGLE_SERVICE_ACCOUNT_CREDENTIALS env var (base64-encoded key JSON)

  With domain-wide delegation, --impersonate sets the default user whose
  calendars are accessed. Individual tool calls can override it with the
  'user' argument.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			metricsConfig := MetricsConfig{
				Enabled: metricsEnabled,
				Addr:    metricsAddr,
			}
			return runServe(transport, httpAddr, yolo, serviceAccountFile, impersonate, metricsConfig)
		},
	}

	cmd.Flags().StringVar(&transport, "transport", "stdio", "Transport type: stdio or streamable-http")
	cmd.Flags().StringVar(&httpAddr, "http-addr", ":8080", "HTTP server address (for streamable-http transport)")
	cmd.Flags().BoolVar(&yolo, "yolo", false, "Enable write operations (event creation, deletion, etc.). Default is read-only mode.")
	cmd.Flags().StringVar(&serviceAccountFile, "service-account-file", "", "Path to the Google service account key file. Can also use GOOGLE_SERVICE_ACCOUNT_FILE env var.")
	cmd.Flags().StringVar(&impersonate, "impersonate", "", "Default user to impersonate via domain-wide delegation. Can also use GOOGLE_IMPERSONATE_USER env var.")
	cmd.Flags().BoolVar(&metricsEnabled, "metrics-enabled", true, "Enable the metrics server on a dedicated port. Can also use METRICS_ENABLED env var.")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", ":9090", "Metrics server address. Can also use METRICS_ADDR env var.")

	return cmd
}

func runServe(transport, httpAddr string, yolo bool, serviceAccountFile, impersonate string, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Operational logging goes through slog; the stdio transport stays silent
	logger := logging.NewLogger(nil)
	if transport == "stdio" {
		logger = logging.Discard()
	}

	// Load settings from environment if not set via flags
	if serviceAccountFile == "" {
		serviceAccountFile = os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE")
	}
	if impersonate == "" {
		impersonate = os.Getenv("GOOGLE_IMPERSONATE_USER")
	}
	if metricsConfig.Addr == "" || metricsConfig.Addr == server.DefaultMetricsAddr {
		if addr := os.Getenv("METRICS_ADDR"); addr != "" {
			metricsConfig.Addr = addr
		}
	}
	if metricsConfig.Enabled && os.Getenv("METRICS_ENABLED") == "false" {
		metricsConfig.Enabled = false
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(shutdownCtx); err != nil {
			logger.Error("instrumentation shutdown failed", "error", err)
		}
	}()

	// Start metrics server if enabled and not in stdio mode
	var metricsServer *server.MetricsServer
	if transport != "stdio" && metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		go func() {
			if err := metricsServer.Start(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server failed", "error", err)
			}
		}()
		logger.Info("metrics server starting", "addr", metricsServer.Addr())
	}

	// Load service account credentials
	creds, err := google.LoadCredentials(serviceAccountFile)
	if err != nil {
		if provider.Enabled() {
			source := "unknown"
			var authErr *google.AuthError
			if errors.As(err, &authErr) {
				source = authErr.Source
			}
			provider.Metrics().RecordCredentialLoad(shutdownCtx, instrumentation.CredentialResultFailure, source)
		}
		return fmt.Errorf("failed to load credentials: %w", err)
	}
	if provider.Enabled() {
		provider.Metrics().RecordCredentialLoad(shutdownCtx, instrumentation.CredentialResultSuccess, creds.Source())
	}

	// Create server context
	serverContext, err := server.NewServerContext(shutdownCtx, creds, impersonate)
	if err != nil {
		return fmt.Errorf("failed to create server context: %w", err)
	}

	// Set metrics and audit logger on server context for tool instrumentation
	if provider.Enabled() {
		serverContext.SetMetrics(provider.Metrics())
		serverContext.SetAuditLogger(instrumentation.NewAuditLoggerWithConfig(nil, instrConfig.AuditLogging))
	}
	defer func() {
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown failed", "error", err)
			}
		}
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("server context shutdown failed", "error", err)
		}
	}()

	// Create MCP server
	mcpSrv := mcpserver.NewMCPServer("calflow", version,
		mcpserver.WithToolCapabilities(true),
	)

	// readOnly is the inverse of yolo
	readOnly := !yolo

	// Log the mode for visibility
	if readOnly {
		logger.Info("starting in read-only mode (use --yolo to enable write operations)")
	} else {
		logger.Info("starting with write operations enabled (--yolo flag is set)")
	}

	// Register all tools
	if err := calendar_tools.RegisterCalendarTools(mcpSrv, serverContext, readOnly); err != nil {
		return fmt.Errorf("failed to register Calendar tools: %w", err)
	}

	// Start the appropriate server based on transport type
	switch transport {
	case "stdio":
		return runStdioServer(mcpSrv)
	case "streamable-http":
		return runStreamableHTTPServer(shutdownCtx, mcpSrv, serverContext, httpAddr, metricsConfig)
	default:
		return fmt.Errorf("unsupported transport type: %s (supported: stdio, streamable-http)", transport)
	}
}

func runStdioServer(mcpSrv *mcpserver.MCPServer) error {
	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := mcpserver.ServeStdio(mcpSrv); err != nil {
			serverDone <- err
		}
	}()

	err := <-serverDone
	if err != nil {
		return fmt.Errorf("server stopped with error: %w", err)
	}
	return nil
}

func runStreamableHTTPServer(ctx context.Context, mcpSrv *mcpserver.MCPServer, serverContext *server.ServerContext, addr string, metricsConfig MetricsConfig) error {
	streamableServer := mcpserver.NewStreamableHTTPServer(mcpSrv)

	// Mount the MCP endpoint alongside health check endpoints
	mux := http.NewServeMux()
	mux.Handle("/mcp", streamableServer)

	healthChecker := server.NewHealthChecker(serverContext)
	healthChecker.RegisterHealthEndpoints(mux)

	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server.WithHTTPMetrics(serverContext.Metrics(), mux),
		ReadHeaderTimeout: 10 * time.Second,
	}

	fmt.Printf("Streamable HTTP server starting on %s\n", addr)
	fmt.Printf("  HTTP endpoint: /mcp\n")
	fmt.Printf("  Health endpoints: /healthz, /readyz\n")
	if metricsConfig.Enabled {
		fmt.Printf("  Metrics endpoint: %s/metrics\n", metricsConfig.Addr)
	}

	serverDone := make(chan error, 1)
	go func() {
		defer close(serverDone)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverDone <- err
		}
	}()

	select {
	case <-ctx.Done():
		fmt.Println("Shutdown signal received, stopping HTTP server...")
		healthChecker.SetReady(false)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("error shutting down HTTP server: %w", err)
		}
	case err := <-serverDone:
		if err != nil {
			return fmt.Errorf("HTTP server stopped with error: %w", err)
		}
		fmt.Println("HTTP server stopped normally")
	}

	fmt.Println("HTTP server gracefully stopped")
	return nil
}
