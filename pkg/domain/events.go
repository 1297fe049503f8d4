package domain

import (
	"context"
	"time"
)

// LifecycleEventType defines the category of an observability event.
type LifecycleEventType string

const (
	EventEngineLoad LifecycleEventType = "engine_load"
	EventSubmit     LifecycleEventType = "submit"
	EventDrop       LifecycleEventType = "drop"
	EventReset      LifecycleEventType = "reset"
	EventReload     LifecycleEventType = "algorithm_reload"
)

// EventBase contains common fields for all lifecycle events.
type EventBase struct {
	Timestamp time.Time          `json:"timestamp"`
	Type      LifecycleEventType `json:"type"`
	Container string             `json:"container"`
}

// LoadEvent is emitted once an engine has been initialized for a container.
type LoadEvent struct {
	EventBase
	Algorithm string `json:"algorithm"`
	Requested string `json:"requested"`
	Fallback  bool   `json:"fallback"`
}

// OperationEvent describes a submission that reached (or failed to reach) the engine.
type OperationEvent struct {
	EventBase
	Algorithm string        `json:"algorithm"`
	Kind      OpKind        `json:"kind"`
	Reason    string        `json:"reason,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
	Err       error         `json:"-"`
}

// LifecycleHooks defines callbacks for coordination layer observability.
type LifecycleHooks struct {
	OnEngineLoad func(context.Context, *LoadEvent)
	OnSubmit     func(context.Context, *OperationEvent)
	OnDrop       func(context.Context, *OperationEvent)
	OnReset      func(context.Context, *OperationEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnEngineLoad: chainLoad(h.OnEngineLoad, other.OnEngineLoad),
		OnSubmit:     chainOp(h.OnSubmit, other.OnSubmit),
		OnDrop:       chainOp(h.OnDrop, other.OnDrop),
		OnReset:      chainOp(h.OnReset, other.OnReset),
	}
}

func chainLoad(a, b func(context.Context, *LoadEvent)) func(context.Context, *LoadEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *LoadEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

func chainOp(a, b func(context.Context, *OperationEvent)) func(context.Context, *OperationEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *OperationEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
