package contexts

import (
	"context"
	"errors"
	"testing"
)

func TestWithAPIKeyName(t *testing.T) {
	ctx := t.Context()

	newCtx := WithAPIKeyName(ctx, "ci-pipeline")
	if newCtx == ctx {
		t.Error("WithAPIKeyName should return a new context")
	}

	name, ok := GetAPIKeyName(newCtx)
	if !ok {
		t.Error("GetAPIKeyName should return true for existing key name")
	}

	if name != "ci-pipeline" {
		t.Errorf("expected key name ci-pipeline, got %s", name)
	}

	name, ok = GetAPIKeyName(ctx)
	if ok || name != "" {
		t.Error("GetAPIKeyName should return false for empty context")
	}
}

func TestWithTraceID(t *testing.T) {
	ctx := t.Context()
	traceID := "jf-trace-12345"

	newCtx := WithTraceID(ctx, traceID)
	if newCtx == ctx {
		t.Error("WithTraceID should return a new context")
	}

	retrieved, ok := GetTraceID(newCtx)
	if !ok {
		t.Error("GetTraceID should return true for existing trace ID")
	}

	if retrieved != traceID {
		t.Errorf("expected trace ID %s, got %s", traceID, retrieved)
	}
}

func TestGetTraceID(t *testing.T) {
	ctx := t.Context()

	traceID, ok := GetTraceID(ctx)
	if ok {
		t.Error("GetTraceID should return false for empty context")
	}

	if traceID != "" {
		t.Error("GetTraceID should return empty string for empty context")
	}

	//nolint:staticcheck // plain string key on purpose.
	ctxWithOtherValue := context.WithValue(ctx, "other_key", "other_value")

	traceID, ok = GetTraceID(ctxWithOtherValue)
	if ok {
		t.Error("GetTraceID should return false for context without trace ID")
	}

	if traceID != "" {
		t.Error("GetTraceID should return empty string for context without trace ID")
	}
}

func TestWithRequestID(t *testing.T) {
	ctx := t.Context()
	requestID := "req-12345-abcdef"

	newCtx := WithRequestID(ctx, requestID)
	if newCtx == ctx {
		t.Error("WithRequestID should return a new context")
	}

	retrievedRequestID, ok := GetRequestID(newCtx)
	if !ok {
		t.Error("GetRequestID should return true for existing request ID")
	}

	if retrievedRequestID != requestID {
		t.Errorf("expected request ID %s, got %s", requestID, retrievedRequestID)
	}
}

func TestWithOperationName(t *testing.T) {
	ctx := WithOperationName(t.Context(), "POST /fix-json")

	name, ok := GetOperationName(ctx)
	if !ok {
		t.Error("GetOperationName should return true for existing operation name")
	}

	if name != "POST /fix-json" {
		t.Errorf("expected operation name POST /fix-json, got %s", name)
	}
}

func TestSharedContainer(t *testing.T) {
	ctx := WithTraceID(t.Context(), "jf-trace")
	ctx2 := WithRequestID(ctx, "jf-request")

	if ctx2 != ctx {
		t.Error("values should share the container stored in the context")
	}

	traceID, _ := GetTraceID(ctx2)
	requestID, _ := GetRequestID(ctx2)

	if traceID != "jf-trace" || requestID != "jf-request" {
		t.Errorf("unexpected values: %s %s", traceID, requestID)
	}
}

func TestErrors(t *testing.T) {
	ctx := t.Context()

	if errs := GetErrors(ctx); errs != nil {
		t.Errorf("expected no errors, got %v", errs)
	}

	ctx = AddError(ctx, nil)
	ctx = AddError(ctx, errors.New("first"))
	ctx = AddError(ctx, errors.New("second"))

	errs := GetErrors(ctx)
	if len(errs) != 2 {
		t.Fatalf("expected 2 errors, got %d", len(errs))
	}

	if errs[0].Error() != "first" || errs[1].Error() != "second" {
		t.Errorf("unexpected errors: %v", errs)
	}
}
