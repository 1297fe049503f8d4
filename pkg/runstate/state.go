// Package runstate tracks whether a visualization is idle, animating or resetting,
// and exposes the guarded transitions that keep user actions from overlapping.
package runstate

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

type flag int

const (
	flagAnimating flag = iota
	flagResetting
)

func (f flag) String() string {
	if f == flagResetting {
		return "resetting"
	}
	return "animating"
}

// State is the run state of a single page container.
// Flag reads and writes are serialized, and the animating/resetting acquisitions
// are atomic check-and-set operations.
type State struct {
	mu        sync.Mutex
	running   bool
	animating bool
	resetting bool

	indicator ports.Element

	obsMu     sync.Mutex
	observers map[int]func(domain.Status)
	nextObs   int

	logger *slog.Logger
}

// Option configures the State.
type Option func(*State)

// WithIndicator sets the runner control whose "selected" indicator mirrors IsRunning.
func WithIndicator(el ports.Element) Option {
	return func(s *State) {
		s.indicator = el
	}
}

// WithLogger configures a logger for the State.
func WithLogger(logger *slog.Logger) Option {
	return func(s *State) {
		s.logger = logger
	}
}

// New creates an idle State.
func New(opts ...Option) *State {
	s := &State{
		observers: make(map[int]func(domain.Status)),
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status returns a snapshot of all flags.
func (s *State) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot()
}

func (s *State) snapshot() domain.Status {
	return domain.Status{
		Running:   s.running,
		Animating: s.animating,
		Resetting: s.resetting,
	}
}

// IsRunning reports the toolbar runner toggle.
func (s *State) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// SetRunning toggles the runner indicator. It does not block operations.
func (s *State) SetRunning(running bool) *State {
	s.mu.Lock()
	s.running = running
	status := s.snapshot()
	s.mu.Unlock()

	if s.indicator != nil {
		s.indicator.SetSelected(running)
	}
	s.notify(status)
	return s
}

// IsAnimating reports whether an animation sequence is in flight.
func (s *State) IsAnimating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating
}

// SetAnimating sets the animating flag unconditionally.
// Prefer RunWhileAnimating, which refuses to start while a reset is in flight.
func (s *State) SetAnimating(animating bool) {
	s.mu.Lock()
	s.animating = animating
	status := s.snapshot()
	s.mu.Unlock()

	s.notify(status)
}

// IsResetting reports whether a destructive reset is in flight.
func (s *State) IsResetting() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resetting
}

// IsBusy reports whether state-mutating operations must be refused.
func (s *State) IsBusy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.animating || s.resetting
}

// RunWhileAnimating holds the animating flag for the duration of fn.
// It returns domain.ErrBusy without calling fn when an animation or a reset is in flight.
func (s *State) RunWhileAnimating(ctx context.Context, fn func(context.Context) error) error {
	return s.runWhile(ctx, flagAnimating, fn)
}

// RunWhileResetting holds the resetting flag for the duration of fn.
//
// The flag is cleared on every exit path, including a panic in fn, and the error
// returned by fn is passed through to the caller after the flag is cleared.
// A nested call, or a call while animating, returns domain.ErrBusy without calling
// fn and leaves the flag owned by the outer holder.
func (s *State) RunWhileResetting(ctx context.Context, fn func(context.Context) error) error {
	return s.runWhile(ctx, flagResetting, fn)
}

func (s *State) runWhile(ctx context.Context, f flag, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.acquire(f); err != nil {
		return err
	}
	defer s.release(f)

	return fn(ctx)
}

func (s *State) acquire(f flag) error {
	s.mu.Lock()
	if s.animating || s.resetting {
		held := flagAnimating
		if s.resetting {
			held = flagResetting
		}
		s.mu.Unlock()
		s.logger.Debug("Run state transition refused", "want", f.String(), "held", held.String())
		return fmt.Errorf("%w: cannot start %s while %s", domain.ErrBusy, f, held)
	}
	s.set(f, true)
	status := s.snapshot()
	s.mu.Unlock()

	s.notify(status)
	return nil
}

func (s *State) release(f flag) {
	s.mu.Lock()
	s.set(f, false)
	status := s.snapshot()
	s.mu.Unlock()

	s.notify(status)
}

func (s *State) set(f flag, v bool) {
	switch f {
	case flagAnimating:
		s.animating = v
	case flagResetting:
		s.resetting = v
	}
}

// Subscribe registers an observer called after every flag change.
// Observers run outside the state lock and may read the State.
func (s *State) Subscribe(fn func(domain.Status)) (unsubscribe func()) {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *State) notify(status domain.Status) {
	s.obsMu.Lock()
	fns := make([]func(domain.Status), 0, len(s.observers))
	for _, fn := range s.observers {
		fns = append(fns, fn)
	}
	s.obsMu.Unlock()

	for _, fn := range fns {
		fn(status)
	}
}
