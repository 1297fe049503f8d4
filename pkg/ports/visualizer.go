package ports

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
)

// Visualizer is a concrete engine that draws and animates one data structure or algorithm.
type Visualizer interface {
	// Name returns the registered name of the visualizer.
	Name() string

	// Init binds the visualizer to its container and draws the initial empty state.
	Init(ctx context.Context, container Container) error

	// Submit performs an operation. Implementations hold the animating flag for
	// their own duration and return domain.ErrBusy when it cannot be acquired.
	Submit(ctx context.Context, op domain.Operation) error

	// Reset clears the structure back to its initial state.
	Reset(ctx context.Context) error
}

// ControlLayout is implemented by visualizers that need a toolbar layout other
// than the default required control set.
type ControlLayout interface {
	RequiredControls() []string
}

// NullNodeToggler is implemented by tree visualizers that can render empty children.
type NullNodeToggler interface {
	SetShowNullNodes(show bool)
}

// PseudoCoder is implemented by visualizers that publish pseudo-code for display.
type PseudoCoder interface {
	PseudoCode() string
}

// InsertPresets is implemented by visualizers that offer preset insert values.
type InsertPresets interface {
	Presets() []string
}
