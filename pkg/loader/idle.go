package loader

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

// Idle is the default engine: it draws nothing and supports no operation.
type Idle struct{}

// NewIdle is the registry.Factory of the Idle engine.
func NewIdle(registry.Env) (ports.Visualizer, error) {
	return &Idle{}, nil
}

func (i *Idle) Name() string { return DefaultName }

func (i *Idle) Init(ctx context.Context, container ports.Container) error {
	if el, ok := container.Query(domain.ClassPseudoCode); ok {
		el.SetValue("")
	}
	return nil
}

func (i *Idle) Submit(ctx context.Context, op domain.Operation) error {
	return domain.ErrUnsupportedOperation
}

func (i *Idle) Reset(ctx context.Context) error { return nil }
