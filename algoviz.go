package algoviz

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/algorithms"
	"github.com/aretw0/algoviz/pkg/cookies"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/loader"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
	"github.com/aretw0/algoviz/pkg/runstate"
	"github.com/aretw0/algoviz/pkg/submit"
	"github.com/aretw0/algoviz/pkg/toolbar"
)

// CookieNames are the settings a page persists.
var CookieNames = []string{domain.CookieShowNullNodes, domain.CookieStepDelay}

// StepDelayer is implemented by visualizers with an adjustable animation speed.
type StepDelayer interface {
	SetStepDelay(d time.Duration)
	StepDelay() time.Duration
}

// Page is one initialized container: its engine, toolbar and settings.
type Page struct {
	Engine    *loader.ActiveEngine
	Submitter *submit.Submitter
	Toolbar   *toolbar.Handles
	Cookies   *cookies.Jar
}

// Option configures Open.
type Option func(*options)

type options struct {
	registry       *registry.Registry
	defaultFactory registry.Factory
	frames         ports.FrameSink
	cookies        ports.CookieSource
	cookieExpiry   int
	algorithmOpts  map[string]map[string]any
	hooks          domain.LifecycleHooks
	logger         *slog.Logger
}

// WithRegistry sets the algorithms that can be loaded. Defaults to NewRegistry.
func WithRegistry(reg *registry.Registry) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// WithDefault sets the engine used when no valid algorithm is requested.
func WithDefault(factory registry.Factory) Option {
	return func(o *options) {
		o.defaultFactory = factory
	}
}

// WithFrames sets the sink receiving the page's animation frames.
func WithFrames(sink ports.FrameSink) Option {
	return func(o *options) {
		o.frames = sink
	}
}

// WithCookies enables settings persistence in the given cookie store.
func WithCookies(source ports.CookieSource) Option {
	return func(o *options) {
		o.cookies = source
	}
}

// WithCookieExpiry sets how many days persisted settings live.
func WithCookieExpiry(days int) Option {
	return func(o *options) {
		o.cookieExpiry = days
	}
}

// WithAlgorithmOptions passes per-algorithm settings, keyed by algorithm name.
func WithAlgorithmOptions(opts map[string]map[string]any) Option {
	return func(o *options) {
		o.algorithmOpts = opts
	}
}

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(o *options) {
		o.hooks = hooks
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// NewRegistry returns a registry holding every shipped visualizer.
func NewRegistry(logger *slog.Logger) *registry.Registry {
	if logger == nil {
		logger = logging.NewNop()
	}
	reg := registry.New(registry.WithLogger(logger))
	if err := algorithms.RegisterAll(reg); err != nil {
		panic(fmt.Sprintf("algoviz: invalid built-in algorithm: %v", err))
	}
	return reg
}

// Open loads the algorithm named in the page query into the container and
// binds its toolbar. Configuration errors in the query fall back to the idle
// engine; a missing container, a missing required control or a malformed
// cookie fail the page.
func Open(ctx context.Context, doc ports.Document, nav ports.Navigator, containerID string, opts ...Option) (*Page, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.registry == nil {
		o.registry = NewRegistry(o.logger)
	}

	loaderOpts := []loader.Option{
		loader.WithLifecycleHooks(o.hooks),
		loader.WithLogger(o.logger),
		loader.WithAlgorithmOptions(o.algorithmOpts),
	}
	if o.defaultFactory != nil {
		loaderOpts = append(loaderOpts, loader.WithDefault(o.defaultFactory))
	}
	if o.frames != nil {
		loaderOpts = append(loaderOpts, loader.WithFrames(o.frames))
	}

	active, err := loader.New(o.registry, doc, nav, loaderOpts...).LoadFromQuery(ctx, containerID)
	if err != nil {
		return nil, err
	}

	page := &Page{Engine: active}
	page.Submitter = submit.New(active.State, active.Visualizer,
		submit.WithContainer(containerID),
		submit.WithLifecycleHooks(o.hooks),
		submit.WithLogger(active.Logger),
	)

	binderOpts := []toolbar.Option{toolbar.WithLogger(active.Logger)}
	if o.cookies != nil {
		jarOpts := []cookies.Option{cookies.WithLogger(active.Logger)}
		if o.cookieExpiry > 0 {
			jarOpts = append(jarOpts, cookies.WithExpiryDays(o.cookieExpiry))
		}
		page.Cookies = cookies.New(o.cookies, CookieNames, jarOpts...)
		binderOpts = append(binderOpts, toolbar.WithCookies(page.Cookies))
		if err := page.restoreStepDelay(); err != nil {
			return nil, err
		}
	}

	handles, err := toolbar.NewBinder(page.Submitter, binderOpts...).Bind(ctx, active.Visualizer, active.Container)
	if err != nil {
		return nil, err
	}
	page.Toolbar = handles
	return page, nil
}

// ID returns the container the page is bound to.
func (p *Page) ID() string { return p.Engine.Container.ID() }

// State returns the run state of the page.
func (p *Page) State() *runstate.State { return p.Engine.State }

// Algorithm returns the confirmed algorithm name.
func (p *Page) Algorithm() string { return p.Engine.Name }

// SetStepDelay changes the animation speed and remembers it in the cookie store.
func (p *Page) SetStepDelay(d time.Duration) error {
	sd, ok := p.Engine.Visualizer.(StepDelayer)
	if !ok {
		return fmt.Errorf("%w: %s has no adjustable speed", domain.ErrUnsupportedOperation, p.Engine.Name)
	}
	sd.SetStepDelay(d)
	if p.Cookies == nil {
		return nil
	}
	return p.Cookies.Set(domain.CookieStepDelay, strconv.FormatInt(d.Milliseconds(), 10))
}

// Close releases the toolbar subscriptions.
func (p *Page) Close() {
	if p.Toolbar != nil {
		p.Toolbar.Close()
	}
}

func (p *Page) restoreStepDelay() error {
	raw, ok, err := p.Cookies.Get(domain.CookieStepDelay)
	if err != nil {
		return fmt.Errorf("failed to load page settings: %w", err)
	}
	sd, delayer := p.Engine.Visualizer.(StepDelayer)
	if !ok || !delayer {
		return nil
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		p.Engine.Logger.Warn("Ignoring invalid step delay cookie", "value", raw)
		return nil
	}
	sd.SetStepDelay(time.Duration(ms) * time.Millisecond)
	return nil
}
