package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/algoviz/pkg/domain"
)

// LogHooks returns lifecycle hooks that write one structured line per event.
// Drops are logged at debug level; they are expected while animations run.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnEngineLoad: func(ctx context.Context, e *domain.LoadEvent) {
			logger.InfoContext(ctx, "engine_load",
				"container", e.Container,
				"algorithm", e.Algorithm,
				"requested", e.Requested,
				"fallback", e.Fallback,
			)
		},
		OnSubmit: func(ctx context.Context, e *domain.OperationEvent) {
			level := slog.LevelInfo
			if e.Err != nil {
				level = slog.LevelError
			}
			logger.Log(ctx, level, "operation",
				"container", e.Container,
				"algorithm", e.Algorithm,
				"kind", e.Kind,
				"duration", e.Duration,
				"error", e.Err,
			)
		},
		OnDrop: func(ctx context.Context, e *domain.OperationEvent) {
			logger.DebugContext(ctx, "operation_dropped",
				"container", e.Container,
				"algorithm", e.Algorithm,
				"kind", e.Kind,
				"reason", e.Reason,
			)
		},
		OnReset: func(ctx context.Context, e *domain.OperationEvent) {
			logger.InfoContext(ctx, "reset",
				"container", e.Container,
				"algorithm", e.Algorithm,
				"error", e.Err,
			)
		},
	}
}
