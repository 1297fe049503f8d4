package algorithms

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/animation"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

// base holds what every visualizer shares: its player, options and container.
type base struct {
	name      string
	title     string
	code      string
	opts      Options
	player    *animation.Player
	container ports.Container
	logger    *slog.Logger
}

func newBase(env registry.Env, title, code string, defaultPresets []string) (base, error) {
	opts, err := DecodeOptions(env.Options)
	if err != nil {
		return base{}, err
	}
	if len(opts.Presets) == 0 {
		opts.Presets = defaultPresets
	}
	logger := env.Logger
	if logger == nil {
		logger = logging.NewNop()
	}
	return base{
		name:   env.Name,
		title:  title,
		code:   code,
		opts:   opts,
		player: animation.New(env.Name, env.State, env.Frames, animation.WithStepDelay(opts.StepDelay), animation.WithLogger(logger)),
		logger: logger.With("algorithm", env.Name),
	}, nil
}

func (b *base) Name() string  { return b.name }
func (b *base) Title() string { return b.title }

// PseudoCode returns the markdown shown next to the visualization.
func (b *base) PseudoCode() string { return b.code }

// Presets returns the sample inputs offered by the insert dropdown.
func (b *base) Presets() []string { return slices.Clone(b.opts.Presets) }

// SetStepDelay changes the pause between animation frames.
func (b *base) SetStepDelay(d time.Duration) { b.player.SetStepDelay(d) }

// StepDelay returns the pause between animation frames.
func (b *base) StepDelay() time.Duration { return b.player.StepDelay() }

func (b *base) init(ctx context.Context, container ports.Container, frame domain.Frame) {
	b.container = container
	b.player.Show(ctx, frame)
	b.logger.Debug("Visualizer initialized")
}
