// Package loader resolves the requested algorithm, instantiates its visualizer
// against a page container and keeps the visible URL in sync with the result.
package loader

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/runstate"
)

// DefaultName is the name reported by the engine used when resolution fails.
const DefaultName = "idle"

// ActiveEngine is the visualizer currently bound to a container.
// It is replaced wholesale by a page reload, never mutated in place.
type ActiveEngine struct {
	// Name is the confirmed algorithm name, or DefaultName after a fallback.
	Name      string
	Requested string
	Fallback  bool
	Debug     bool

	Visualizer ports.Visualizer
	Container  ports.Container
	State      *runstate.State
	Logger     *slog.Logger
}

// Loader builds the ActiveEngine of a page.
type Loader struct {
	registry *registry.Registry
	doc      ports.Document
	nav      ports.Navigator

	defaultFactory registry.Factory
	frames         ports.FrameSink
	options        map[string]map[string]any
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
}

// Option configures the Loader.
type Option func(*Loader)

// WithDefault sets the factory used when the requested algorithm cannot be resolved.
func WithDefault(factory registry.Factory) Option {
	return func(l *Loader) {
		l.defaultFactory = factory
	}
}

// WithFrames sets the sink that receives animation frames of the loaded engine.
func WithFrames(sink ports.FrameSink) Option {
	return func(l *Loader) {
		l.frames = sink
	}
}

// WithAlgorithmOptions sets per-algorithm option maps, keyed by registered name.
func WithAlgorithmOptions(options map[string]map[string]any) Option {
	return func(l *Loader) {
		l.options = options
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(l *Loader) {
		l.hooks = hooks
	}
}

// WithLogger sets the base logger. Pages with the debug flag get a debug-level
// console logger instead.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// New creates a Loader that resolves names against reg.
func New(reg *registry.Registry, doc ports.Document, nav ports.Navigator, opts ...Option) *Loader {
	l := &Loader{
		registry:       reg,
		doc:            doc,
		nav:            nav,
		defaultFactory: NewIdle,
		frames:         ports.DiscardFrames,
		logger:         logging.NewNop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// DebugEnabled reports whether the query carries a non-empty debug flag.
func DebugEnabled(query url.Values) bool {
	return query.Get(domain.ParamDebug) != ""
}

// LoadFromQuery loads the algorithm named by the current query string.
func (l *Loader) LoadFromQuery(ctx context.Context, containerID string) (*ActiveEngine, error) {
	return l.Load(ctx, containerID, l.nav.Query().Get(domain.ParamAlgorithm))
}

// Load resolves requested, instantiates the visualizer bound to the container and
// initializes it. Unresolvable names fall back to the default engine and are
// stripped from the visible URL; only a missing container or a failing
// visualizer is an error.
func (l *Loader) Load(ctx context.Context, containerID, requested string) (*ActiveEngine, error) {
	container, err := l.doc.Container(containerID)
	if err != nil {
		return nil, err
	}

	query := l.nav.Query()
	debug := DebugEnabled(query)
	logger := logging.ForDebug(l.logger, debug).With("container", containerID)

	stateOpts := []runstate.Option{runstate.WithLogger(logger)}
	if runner, ok := container.Query(domain.ClassRunner); ok {
		stateOpts = append(stateOpts, runstate.WithIndicator(runner))
	}
	state := runstate.New(stateOpts...)

	selector, hasSelector := container.Query(domain.ClassAlgorithmSelector)
	if hasSelector {
		selector.SetOptions(l.registry.Names())
	}

	engine := &ActiveEngine{
		Requested: requested,
		Debug:     debug,
		Container: container,
		State:     state,
		Logger:    logger,
	}

	factory, ok := l.registry.Resolve(requested)
	if ok {
		engine.Name = requested
		query.Set(domain.ParamAlgorithm, requested)
		if hasSelector {
			selector.SetValue(requested)
		}
	} else {
		if requested != "" {
			logger.Debug("Unknown algorithm requested, using default engine", "requested", requested)
		}
		factory = l.defaultFactory
		engine.Name = DefaultName
		engine.Fallback = true
		query.Del(domain.ParamAlgorithm)
		if hasSelector {
			selector.SetValue("")
		}
	}
	l.nav.Replace(query)

	vis, err := factory(registry.Env{
		Name:    engine.Name,
		State:   state,
		Frames:  l.frames,
		Logger:  logger.With("algorithm", engine.Name),
		Options: l.options[engine.Name],
	})
	if err != nil {
		return nil, fmt.Errorf("failed to construct %s: %w", engine.Name, err)
	}
	engine.Visualizer = vis

	if err := vis.Init(ctx, container); err != nil {
		return nil, fmt.Errorf("failed to initialize %s: %w", engine.Name, err)
	}

	if hasSelector {
		selector.On(domain.EventChange, l.onAlgorithmChange(containerID, query.Get(domain.ParamDebug), logger))
	}

	logger.Debug("Engine loaded", "algorithm", engine.Name, "fallback", engine.Fallback)
	if l.hooks.OnEngineLoad != nil {
		l.hooks.OnEngineLoad(ctx, &domain.LoadEvent{
			EventBase: domain.EventBase{
				Timestamp: time.Now(),
				Type:      domain.EventEngineLoad,
				Container: containerID,
			},
			Algorithm: engine.Name,
			Requested: requested,
			Fallback:  engine.Fallback,
		})
	}

	return engine, nil
}

// onAlgorithmChange restarts the page with the newly selected algorithm.
// Switching is a full reload so that no visualizer needs a teardown contract.
func (l *Loader) onAlgorithmChange(containerID, debugValue string, logger *slog.Logger) ports.EventHandler {
	return func(ctx context.Context, ev *domain.Event) {
		query := url.Values{}
		if ev.Value != "" && registry.ValidName(ev.Value) {
			query.Set(domain.ParamAlgorithm, ev.Value)
		}
		if debugValue != "" {
			query.Set(domain.ParamDebug, debugValue)
		}

		logger.Debug("Algorithm changed, reloading", "algorithm", ev.Value)
		l.nav.Reload(query)
	}
}
