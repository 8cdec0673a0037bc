package async

import (
	"context"
	"runtime/debug"

	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs a handler on a new goroutine with a detached context:
// cancellation of the original context does not stop the handler, but its
// logger is preserved. Panics are recovered and logged, handler errors are
// logged.
func Dispatch(ctx context.Context, handler func(ctx context.Context) error) {
	newCtx := ctxlog.With(context.Background(), ctxlog.From(ctx))

	go func() {
		defer func() {
			if r := recover(); r != nil {
				ctxlog.From(newCtx).Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
			}
		}()

		if err := handler(newCtx); err != nil {
			ctxlog.From(newCtx).Error("error in async handler", "error", err)
		}
	}()
}
