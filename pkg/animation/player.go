// Package animation plays frame sequences for visualizers while holding the
// page's animating flag.
package animation

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/runstate"
)

// DefaultStepDelay is the pause between two frames.
const DefaultStepDelay = 400 * time.Millisecond

// Player publishes frames to a sink, one step at a time.
type Player struct {
	name  string
	state *runstate.State
	sink  ports.FrameSink

	mu    sync.Mutex
	delay time.Duration

	logger *slog.Logger
}

// Option configures the Player.
type Option func(*Player)

// WithStepDelay sets the pause between frames. Zero plays without pausing.
func WithStepDelay(d time.Duration) Option {
	return func(p *Player) {
		p.delay = d
	}
}

// WithLogger configures a logger for the Player.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Player) {
		p.logger = logger
	}
}

// New creates a Player for the visualizer registered as name.
func New(name string, state *runstate.State, sink ports.FrameSink, opts ...Option) *Player {
	if sink == nil {
		sink = ports.DiscardFrames
	}
	p := &Player{
		name:   name,
		state:  state,
		sink:   sink,
		delay:  DefaultStepDelay,
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// StepDelay returns the current pause between frames.
func (p *Player) StepDelay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.delay
}

// SetStepDelay changes the pause used by subsequent plays.
func (p *Player) SetStepDelay(d time.Duration) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.delay = max(d, 0)
}

// Show publishes a single frame without animating.
func (p *Player) Show(ctx context.Context, frame domain.Frame) {
	frame.Algorithm = p.name
	p.sink.Publish(ctx, frame)
}

// Play publishes frames in order inside the animating window. It returns
// domain.ErrBusy when another animation or a reset holds the page, and the
// context error when ctx is canceled mid-sequence.
func (p *Player) Play(ctx context.Context, frames []domain.Frame) error {
	return p.state.RunWhileAnimating(ctx, func(ctx context.Context) error {
		return p.play(ctx, frames)
	})
}

// Run executes fn inside the animating window and plays the frames it returns.
// Nothing is published when fn fails.
func (p *Player) Run(ctx context.Context, fn func() ([]domain.Frame, error)) error {
	return p.state.RunWhileAnimating(ctx, func(ctx context.Context) error {
		frames, err := fn()
		if err != nil {
			return err
		}
		return p.play(ctx, frames)
	})
}

func (p *Player) play(ctx context.Context, frames []domain.Frame) error {
	p.state.SetRunning(true)
	defer p.state.SetRunning(false)

	delay := p.StepDelay()
	for i, frame := range frames {
		frame.Algorithm = p.name
		frame.Step = i + 1
		p.sink.Publish(ctx, frame)

		if i == len(frames)-1 || delay == 0 {
			continue
		}
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			p.logger.Debug("Animation interrupted", "algorithm", p.name, "step", frame.Step, "of", len(frames))
			return ctx.Err()
		case <-timer.C:
		}
	}
	return nil
}
