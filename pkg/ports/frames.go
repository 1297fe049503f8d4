package ports

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
)

// FrameSink receives animation frames as they are produced.
type FrameSink interface {
	Publish(ctx context.Context, frame domain.Frame)
}

// FrameSinkFunc adapts a function to the FrameSink interface.
type FrameSinkFunc func(ctx context.Context, frame domain.Frame)

// Publish calls f(ctx, frame).
func (f FrameSinkFunc) Publish(ctx context.Context, frame domain.Frame) {
	f(ctx, frame)
}

// DiscardFrames is a FrameSink that drops every frame.
var DiscardFrames FrameSink = FrameSinkFunc(func(context.Context, domain.Frame) {})
