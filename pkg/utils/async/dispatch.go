package async

import (
	"context"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/ctxlog"
)

// Dispatch runs handler in a new goroutine, detached from the cancellation of ctx.
// The logger of ctx is carried over with a task name and a fresh run_id attached.
// Panics and returned errors are logged, never propagated.
func Dispatch(ctx context.Context, task string, handler func(ctx context.Context) error) {
	newCtx := newBackgroundContext(ctx, task)

	go func() {
		logger := ctxlog.From(newCtx)
		start := time.Now()

		defer func() {
			if r := recover(); r != nil {
				logger.Error("panic in async handler",
					"recover", r,
					"stack", string(debug.Stack()))
			}
		}()

		if err := handler(newCtx); err != nil {
			logger.Error("error in async handler",
				"error", err,
				"duration_ms", time.Since(start).Milliseconds(),
			)
			return
		}

		logger.Debug("async handler finished", "duration_ms", time.Since(start).Milliseconds())
	}()
}

// newBackgroundContext returns context.Background() carrying the ctxlog logger of ctx
func newBackgroundContext(ctx context.Context, task string) context.Context {
	logger := ctxlog.From(ctx).With(
		slog.String("task", task),
		slog.String("run_id", uuid.NewString()),
	)
	return ctxlog.With(context.Background(), logger)
}
