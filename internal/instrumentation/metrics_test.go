package instrumentation

import (
	"context"
	"testing"
	"time"
)

// newTestProvider creates an enabled provider with the Prometheus exporter
// so the global meter and tracer are wired up for the test.
func newTestProvider(t *testing.T) (context.Context, *Provider) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)

	provider, err := NewProvider(ctx, Config{
		ServiceName:     "test-service",
		ServiceVersion:  "1.0.0",
		Enabled:         true,
		MetricsExporter: ExporterPrometheus,
		TracingExporter: ExporterNone,
	})
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}
	return ctx, provider
}

func TestMetrics_RecordHTTPRequest(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()
	if metrics == nil {
		t.Fatal("expected metrics to be non-nil")
	}

	// Should not panic
	metrics.RecordHTTPRequest(ctx, "GET", "/mcp", 200, 100*time.Millisecond)
	metrics.RecordHTTPRequest(ctx, "POST", "/mcp", 500, 50*time.Millisecond)
}

func TestMetrics_RecordGoogleAPIOperation(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordGoogleAPIOperation(ctx, ServiceCalendar, OperationList, StatusSuccess, 200*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceCalendar, OperationCreate, StatusError, 500*time.Millisecond)
	metrics.RecordGoogleAPIOperation(ctx, ServiceCalendar, OperationMove, StatusSuccess, 100*time.Millisecond)
}

func TestMetrics_RecordCredentialLoad(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordCredentialLoad(ctx, CredentialResultSuccess, "file")
	metrics.RecordCredentialLoad(ctx, CredentialResultFailure, "env")
}

func TestMetrics_RecordToolInvocation(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.RecordToolInvocation(ctx, testToolList, StatusSuccess, 150*time.Millisecond)
	metrics.RecordToolInvocation(ctx, testToolCreate, StatusError, 75*time.Millisecond)
}

func TestMetrics_RecordToolInvocationWithUser(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic with or without the user label
	metrics.RecordToolInvocationWithUser(ctx, testToolList, StatusSuccess, testEmail, 150*time.Millisecond)
	metrics.RecordToolInvocationWithUser(ctx, testToolList, StatusSuccess, "", 150*time.Millisecond)
}

func TestMetrics_ActiveSessions(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	metrics := provider.Metrics()

	// Should not panic
	metrics.IncrementActiveSessions(ctx)
	metrics.IncrementActiveSessions(ctx)
	metrics.DecrementActiveSessions(ctx)
}

func TestMetrics_NilInstruments(t *testing.T) {
	ctx := context.Background()
	m := &Metrics{}

	// Uninitialized instruments should make all recorders no-ops
	m.RecordHTTPRequest(ctx, "GET", "/mcp", 200, time.Millisecond)
	m.RecordGoogleAPIOperation(ctx, ServiceCalendar, OperationList, StatusSuccess, time.Millisecond)
	m.RecordCredentialLoad(ctx, CredentialResultSuccess, "file")
	m.RecordToolInvocation(ctx, testToolList, StatusSuccess, time.Millisecond)
	m.RecordToolInvocationWithUser(ctx, testToolList, StatusSuccess, testEmail, time.Millisecond)
	m.IncrementActiveSessions(ctx)
	m.DecrementActiveSessions(ctx)
}
