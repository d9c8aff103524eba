package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/looplj/jsonfixer/internal/log"
)

func TestTraceFieldsHooks(t *testing.T) {
	hook := log.HookFunc(TraceFieldsHooks)

	t.Run("with trace ID", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "jf-test-trace-id")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "trace_id", fields[0].Key)
		assert.Equal(t, "jf-test-trace-id", fields[0].String)
	})

	t.Run("with operation name", func(t *testing.T) {
		ctx := WithOperationName(context.Background(), "POST /fix-json")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 1)
		assert.Equal(t, "operation_name", fields[0].Key)
		assert.Equal(t, "POST /fix-json", fields[0].String)
	})

	t.Run("with trace and request ID", func(t *testing.T) {
		ctx := WithTraceID(context.Background(), "jf-1")
		ctx = WithRequestID(ctx, "req-1")
		fields := hook.Apply(ctx, "test message")
		assert.Len(t, fields, 2)
		assert.Equal(t, "request_id", fields[1].Key)
		assert.Equal(t, "req-1", fields[1].String)
	})

	t.Run("with context that doesn't have trace ID", func(t *testing.T) {
		fields := hook.Apply(context.Background(), "test message")
		assert.Len(t, fields, 0)
	})

	t.Run("with nil context", func(t *testing.T) {
		//nolint:staticcheck // hooks must tolerate a nil context.
		fields := hook.Apply(nil, "test message")
		assert.Len(t, fields, 0)
	})
}

func TestGenerateIDs(t *testing.T) {
	assert.Regexp(t, `^jf-[0-9a-f-]{36}$`, GenerateTraceID())
	assert.Regexp(t, `^req-[0-9a-f-]{36}$`, GenerateRequestID())
	assert.NotEqual(t, GenerateTraceID(), GenerateTraceID())
}
