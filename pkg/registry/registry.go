// Package registry maps algorithm names to visualizer factories.
//
// A name resolves only when it matches the identifier grammar and was
// explicitly registered.
package registry

import (
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"sync"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/runstate"
)

var namePattern = regexp.MustCompile(`^[\w.]+$`)

// ValidName reports whether name matches the algorithm identifier grammar
// (ASCII word characters and dots).
func ValidName(name string) bool {
	return namePattern.MatchString(name)
}

// Env is everything a factory may use to build a visualizer for one container.
type Env struct {
	// Name is the registered name the visualizer was resolved by.
	Name   string
	State  *runstate.State
	Frames ports.FrameSink
	Logger *slog.Logger
	// Options holds per-algorithm settings from the configuration file.
	Options map[string]any
}

// Factory builds a visualizer bound to a single page.
type Factory func(env Env) (ports.Visualizer, error)

// Descriptor is a registered algorithm.
type Descriptor struct {
	Name    string
	Title   string
	Summary string
	// PseudoCode is markdown shown next to the visualization.
	PseudoCode string
	Factory    Factory
}

// Registry manages the available algorithms.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Descriptor
	logger  *slog.Logger
}

// Option configures the Registry.
type Option func(*Registry)

// WithLogger configures a logger for the Registry.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

// New creates a new empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		entries: make(map[string]Descriptor),
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a name->factory association.
// If an algorithm with the same name exists, it is overwritten.
func (r *Registry) Register(name string, factory Factory) error {
	return r.RegisterDescriptor(Descriptor{Name: name, Factory: factory})
}

// RegisterDescriptor adds a fully described algorithm.
// If an algorithm with the same name exists, it is overwritten and a warning is logged.
func (r *Registry) RegisterDescriptor(d Descriptor) error {
	if !ValidName(d.Name) {
		return fmt.Errorf("%w: %q", domain.ErrInvalidAlgorithmName, d.Name)
	}
	if d.Factory == nil {
		return fmt.Errorf("algorithm %q has no factory", d.Name)
	}
	if d.Title == "" {
		d.Title = d.Name
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.entries[d.Name]; exists {
		r.logger.Warn("Algorithm registered twice, last registration wins", "algorithm", d.Name)
	}
	r.entries[d.Name] = d
	return nil
}

// MustRegister is like RegisterDescriptor but panics on error.
// It is intended for registrations of built-in algorithms at startup.
func (r *Registry) MustRegister(d Descriptor) {
	if err := r.RegisterDescriptor(d); err != nil {
		panic(err)
	}
}

// Resolve looks up a factory by name.
// It reports false for empty, malformed or unknown names; callers treat that
// as "use the default engine", never as a fatal error.
func (r *Registry) Resolve(name string) (Factory, bool) {
	d, ok := r.Describe(name)
	if !ok {
		return nil, false
	}
	return d.Factory, true
}

// Describe returns the descriptor registered under name, with the same
// validation as Resolve.
func (r *Registry) Describe(name string) (Descriptor, bool) {
	if name == "" || !ValidName(name) {
		return Descriptor{}, false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.entries[name]
	return d, ok
}

// Names returns the registered names in lexical order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.entries))
	for name := range r.entries {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
