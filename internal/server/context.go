package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/calflowhq/calflow/internal/calendar"
	"github.com/calflowhq/calflow/internal/google"
	"github.com/calflowhq/calflow/internal/instrumentation"
)

// ServerContext holds the context for the MCP server
type ServerContext struct {
	ctx             context.Context
	cancel          context.CancelFunc
	creds           *google.Credentials
	defaultSubject  string
	calendarClients map[string]*calendar.Client // Maps impersonated user to Calendar client
	metrics         *instrumentation.Metrics
	auditLogger     *instrumentation.AuditLogger
	mu              sync.RWMutex
	shutdown        bool
}

// NewServerContext creates a new server context. The default subject is the
// user impersonated when a tool call does not name one; it may be empty, in
// which case the service account acts as itself.
func NewServerContext(ctx context.Context, creds *google.Credentials, defaultSubject string) (*ServerContext, error) {
	if creds == nil {
		return nil, fmt.Errorf("credentials are required")
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	return &ServerContext{
		ctx:             shutdownCtx,
		cancel:          cancel,
		creds:           creds,
		defaultSubject:  defaultSubject,
		calendarClients: make(map[string]*calendar.Client),
		shutdown:        false,
	}, nil
}

// Context returns the server context
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Credentials returns the service account credentials.
func (sc *ServerContext) Credentials() *google.Credentials {
	return sc.creds
}

// DefaultSubject returns the default impersonated user.
func (sc *ServerContext) DefaultSubject() string {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.defaultSubject
}

// CalendarClientForUser returns the Calendar client impersonating a specific
// user. An empty user falls back to the default subject. Clients are created
// lazily and cached per user.
func (sc *ServerContext) CalendarClientForUser(user string) (*calendar.Client, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if user == "" {
		user = sc.defaultSubject
	}

	// Check if client already exists
	if client, ok := sc.calendarClients[user]; ok {
		return client, nil
	}

	client, err := calendar.NewClient(sc.ctx, sc.creds, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create calendar client for user %q: %w", user, err)
	}

	sc.calendarClients[user] = client
	if sc.metrics != nil {
		sc.metrics.IncrementActiveSessions(sc.ctx)
	}

	return client, nil
}

// CalendarClient returns the Calendar client for the default subject.
func (sc *ServerContext) CalendarClient() (*calendar.Client, error) {
	return sc.CalendarClientForUser("")
}

// SetCalendarClientForUser sets the Calendar client for a specific user.
// Primarily useful for tests.
func (sc *ServerContext) SetCalendarClientForUser(user string, client *calendar.Client) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.calendarClients[user] = client
}

// SetMetrics sets the metrics recorder for the server context.
func (sc *ServerContext) SetMetrics(metrics *instrumentation.Metrics) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
}

// Metrics returns the metrics recorder, or nil if not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// SetAuditLogger sets the audit logger for the server context.
func (sc *ServerContext) SetAuditLogger(logger *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.auditLogger = logger
}

// AuditLogger returns the audit logger, or nil if not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.auditLogger
}

// IsShutdown returns whether the server has been shutdown
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown shuts down the server context
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	if sc.metrics != nil {
		for range sc.calendarClients {
			sc.metrics.DecrementActiveSessions(sc.ctx)
		}
	}

	sc.shutdown = true
	sc.cancel()
	return nil
}
