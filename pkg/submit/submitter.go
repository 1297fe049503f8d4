// Package submit forwards toolbar operations to the active visualizer through
// the run state guard.
//
// Submissions that arrive while an animation or a reset is in flight are
// dropped, not queued. Drops are reported through the OnDrop hook.
package submit

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/runstate"
)

// Drop reasons reported to the OnDrop hook.
const (
	ReasonBusy         = "busy"
	ReasonInvalidInput = "invalid_input"
	ReasonUnsupported  = "unsupported"
)

// Submitter validates toolbar input and forwards it to the active visualizer.
type Submitter struct {
	state     *runstate.State
	engine    ports.Visualizer
	container string

	hooks  domain.LifecycleHooks
	logger *slog.Logger
}

// Option configures the Submitter.
type Option func(*Submitter)

// WithContainer sets the container ID reported in lifecycle events.
func WithContainer(id string) Option {
	return func(s *Submitter) {
		s.container = id
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Submitter) {
		s.hooks = hooks
	}
}

// WithLogger configures a logger for the Submitter.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Submitter) {
		s.logger = logger
	}
}

// New creates a Submitter for engine guarded by state.
func New(state *runstate.State, engine ports.Visualizer, opts ...Option) *Submitter {
	s := &Submitter{
		state:  state,
		engine: engine,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the run state guarding the engine.
func (s *Submitter) State() *runstate.State { return s.state }

// Submit reads the field (which may be nil for operations without a value) and
// forwards the operation to the engine.
//
// Empty or malformed values, submissions while busy and operations the engine
// does not support are ignored silently and return nil. Any other engine error
// is returned.
func (s *Submitter) Submit(ctx context.Context, kind domain.OpKind, field ports.Element) error {
	var value string
	if field != nil {
		value = strings.TrimSpace(field.Value())
	}

	if kind.RequiresValue() {
		if value == "" || !domain.InputClassFor(kind).Valid(value) {
			s.drop(ctx, kind, ReasonInvalidInput)
			return nil
		}
	} else {
		value = ""
	}

	if s.state.IsBusy() {
		s.drop(ctx, kind, ReasonBusy)
		return nil
	}

	start := time.Now()
	err := s.engine.Submit(ctx, domain.Operation{Kind: kind, Value: value})
	switch {
	case errors.Is(err, domain.ErrBusy):
		// Lost the race against another submission between the check and the engine.
		s.drop(ctx, kind, ReasonBusy)
		return nil
	case errors.Is(err, domain.ErrUnsupportedOperation):
		s.drop(ctx, kind, ReasonUnsupported)
		return nil
	}

	s.emit(ctx, s.hooks.OnSubmit, kind, "", time.Since(start), err)
	if err != nil {
		s.logger.Error("Operation failed", "op", kind, "value", value, "err", err)
		return fmt.Errorf("%s failed: %w", kind, err)
	}

	if field != nil && kind.RequiresValue() {
		field.SetValue("")
	}
	s.logger.Debug("Operation completed", "op", kind, "value", value, "duration", time.Since(start))
	return nil
}

// Clear resets the engine while holding the resetting flag.
// It is ignored while an animation or another reset is in flight; a failing
// reset is returned after the flag has been released.
func (s *Submitter) Clear(ctx context.Context) error {
	start := time.Now()
	entered := false

	err := s.state.RunWhileResetting(ctx, func(ctx context.Context) error {
		entered = true
		return s.engine.Reset(ctx)
	})
	if !entered && errors.Is(err, domain.ErrBusy) {
		s.drop(ctx, domain.OpClear, ReasonBusy)
		return nil
	}

	s.emit(ctx, s.hooks.OnReset, domain.OpClear, "", time.Since(start), err)
	if err != nil {
		s.logger.Error("Reset failed", "err", err)
		return fmt.Errorf("reset failed: %w", err)
	}
	s.logger.Debug("Reset completed", "duration", time.Since(start))
	return nil
}

func (s *Submitter) drop(ctx context.Context, kind domain.OpKind, reason string) {
	s.logger.Debug("Submission dropped", "op", kind, "reason", reason)
	s.emit(ctx, s.hooks.OnDrop, kind, reason, 0, nil)
}

func (s *Submitter) emit(ctx context.Context, hook func(context.Context, *domain.OperationEvent), kind domain.OpKind, reason string, d time.Duration, err error) {
	if hook == nil {
		return
	}
	typ := domain.EventSubmit
	switch {
	case kind == domain.OpClear && reason == "":
		typ = domain.EventReset
	case reason != "":
		typ = domain.EventDrop
	}
	hook(ctx, &domain.OperationEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			Container: s.container,
		},
		Algorithm: s.engine.Name(),
		Kind:      kind,
		Reason:    reason,
		Duration:  d,
		Err:       err,
	})
}
