package xcontext

import (
	"context"
	"time"
)

// DetachWithTimeout keeps the values of ctx but not its cancellation, bounded by timeout.
// Use it for work that must finish after the request that started it is gone.
func DetachWithTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), timeout)
}
