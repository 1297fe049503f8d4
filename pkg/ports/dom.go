package ports

import (
	"context"

	"github.com/aretw0/algoviz/pkg/domain"
)

// EventHandler reacts to an event dispatched on an element.
// Handlers run synchronously, in registration order.
type EventHandler func(ctx context.Context, ev *domain.Event)

// Element is a single addressable control inside a container.
type Element interface {
	// Class returns the role class the element was located by.
	Class() string

	Value() string
	SetValue(value string)

	// Options returns the choices of a select element (nil for other elements).
	Options() []string
	SetOptions(options []string)

	// Selected reports the visual "selected" indicator (checkbox state, runner toggle).
	Selected() bool
	SetSelected(selected bool)

	Disabled() bool
	SetDisabled(disabled bool)

	// On registers a handler for the given event type.
	On(eventType domain.EventType, handler EventHandler)
}

// Container is the DOM subtree owned by one visualization.
type Container interface {
	ID() string

	// Query returns the element with the given role class, if present.
	Query(class string) (Element, bool)
}

// Document resolves containers by ID.
type Document interface {
	// Container returns domain.ErrContainerNotFound when no container has the ID.
	Container(id string) (Container, error)
}
