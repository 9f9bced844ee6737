package instrumentation

import (
	"context"
	"errors"
	"testing"
)

func TestSpanAttributeBuilder(t *testing.T) {
	attrs := NewSpanAttributeBuilder().
		WithTool(testToolCreate).
		WithService(ServiceCalendar).
		WithOperation(OperationCreate).
		WithUser(testEmail).
		WithResource("event", "evt-123").
		WithReadOnly(true).
		Build()

	if len(attrs) != 7 {
		t.Fatalf("expected 7 attributes, got %d", len(attrs))
	}

	attrMap := make(map[string]interface{})
	for _, attr := range attrs {
		attrMap[string(attr.Key)] = attr.Value.AsInterface()
	}

	if attrMap[SpanAttrTool] != testToolCreate {
		t.Errorf("tool = %v, want %q", attrMap[SpanAttrTool], testToolCreate)
	}
	if attrMap[SpanAttrService] != ServiceCalendar {
		t.Errorf("service = %v, want %q", attrMap[SpanAttrService], ServiceCalendar)
	}
	if attrMap[SpanAttrOperation] != OperationCreate {
		t.Errorf("operation = %v, want %q", attrMap[SpanAttrOperation], OperationCreate)
	}
	if attrMap[SpanAttrUser] != testEmail {
		t.Errorf("user = %v, want %q", attrMap[SpanAttrUser], testEmail)
	}
	if attrMap[SpanAttrResourceType] != "event" {
		t.Errorf("resource type = %v, want %q", attrMap[SpanAttrResourceType], "event")
	}
	if attrMap[SpanAttrResourceID] != "evt-123" {
		t.Errorf("resource id = %v, want %q", attrMap[SpanAttrResourceID], "evt-123")
	}
	if attrMap[SpanAttrReadOnly] != true {
		t.Errorf("read_only = %v, want true", attrMap[SpanAttrReadOnly])
	}
}

func TestSpanAttributeBuilder_EmptyValues(t *testing.T) {
	// Empty user and resource values should not produce attributes
	attrs := NewSpanAttributeBuilder().
		WithTool(testToolList).
		WithUser("").
		WithResource("", "").
		Build()

	if len(attrs) != 1 {
		t.Errorf("expected 1 attribute (only tool), got %d", len(attrs))
	}
}

func TestStartSpan(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	spanCtx, span := StartSpan(ctx, "test-span")
	defer span.End()

	if spanCtx == nil {
		t.Error("expected context to be non-nil")
	}
	if span == nil {
		t.Error("expected span to be non-nil")
	}
}

func TestStartToolSpan(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	builder := NewSpanAttributeBuilder().WithUser(testEmail)
	spanCtx, span := StartToolSpan(ctx, testToolList, builder.Build()...)
	defer span.End()

	if spanCtx == nil {
		t.Error("expected context to be non-nil")
	}
	if span == nil {
		t.Error("expected span to be non-nil")
	}
}

func TestStartGoogleAPISpan(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	spanCtx, span := StartGoogleAPISpan(ctx, ServiceCalendar, OperationList)
	defer span.End()

	if spanCtx == nil {
		t.Error("expected context to be non-nil")
	}
	if span == nil {
		t.Error("expected span to be non-nil")
	}
}

func TestSetSpanError(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	_, span := StartSpan(ctx, "test-span")

	// Should not panic; nil error is a no-op
	SetSpanError(span, errors.New("test error"))
	SetSpanError(span, nil)
	span.End()
}

func TestSetSpanSuccess(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	_, span := StartSpan(ctx, "test-span")

	SetSpanSuccess(span)
	span.End()
}

func TestAddSpanEvent(t *testing.T) {
	ctx, provider := newTestProvider(t)
	defer func() { _ = provider.Shutdown(ctx) }()

	_, span := StartSpan(ctx, "test-span")

	AddSpanEvent(span, "test-event")
	span.End()
}

func TestGetTraceID_NoSpan(t *testing.T) {
	if traceID := GetTraceID(context.Background()); traceID != "" {
		t.Errorf("expected empty trace ID for context without span, got %q", traceID)
	}
}

func TestGetSpanID_NoSpan(t *testing.T) {
	if spanID := GetSpanID(context.Background()); spanID != "" {
		t.Errorf("expected empty span ID for context without span, got %q", spanID)
	}
}

func TestSpanContextString_NoSpan(t *testing.T) {
	if ctxStr := SpanContextString(context.Background()); ctxStr != "" {
		t.Errorf("expected empty context string for context without span, got %q", ctxStr)
	}
}
