package dom

import (
	"context"
	"slices"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// Element implements ports.Element in memory.
// Safe for concurrent use.
type Element struct {
	class string

	mu       sync.RWMutex
	value    string
	options  []string
	selected bool
	disabled bool
	handlers map[domain.EventType][]ports.EventHandler
}

var _ ports.Element = (*Element)(nil)

// NewElement creates a detached element with the given role class.
func NewElement(class string) *Element {
	return &Element{
		class:    class,
		handlers: make(map[domain.EventType][]ports.EventHandler),
	}
}

func (e *Element) Class() string { return e.class }

func (e *Element) Value() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value
}

func (e *Element) SetValue(value string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.value = value
}

func (e *Element) Options() []string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return slices.Clone(e.options)
}

func (e *Element) SetOptions(options []string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.options = slices.Clone(options)
}

func (e *Element) Selected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

func (e *Element) SetSelected(selected bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selected = selected
}

func (e *Element) Disabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.disabled
}

func (e *Element) SetDisabled(disabled bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.disabled = disabled
}

func (e *Element) On(eventType domain.EventType, handler ports.EventHandler) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.handlers[eventType] = append(e.handlers[eventType], handler)
}

// HandlerCount returns how many handlers are registered for the event type.
func (e *Element) HandlerCount(eventType domain.EventType) int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return len(e.handlers[eventType])
}

// Dispatch delivers ev to every handler registered for its type.
// It returns false if a handler called PreventDefault.
func (e *Element) Dispatch(ctx context.Context, ev *domain.Event) bool {
	e.mu.RLock()
	handlers := slices.Clone(e.handlers[ev.Type])
	if ev.Value == "" {
		ev.Value = e.value
	}
	e.mu.RUnlock()

	for _, h := range handlers {
		h(ctx, ev)
	}
	return !ev.DefaultPrevented()
}

// Click dispatches a click event. Disabled elements ignore clicks, as browsers do.
func (e *Element) Click(ctx context.Context) bool {
	if e.Disabled() {
		return false
	}
	return e.Dispatch(ctx, &domain.Event{Type: domain.EventClick})
}

// Press dispatches a keypress for a named key such as domain.KeyEnter.
func (e *Element) Press(ctx context.Context, key string) bool {
	return e.Dispatch(ctx, &domain.Event{Type: domain.EventKeyPress, Key: key})
}

// Type simulates typing text one character at a time. Each character is
// appended to the value unless a keypress handler prevents it.
func (e *Element) Type(ctx context.Context, text string) {
	for _, r := range text {
		if e.Press(ctx, string(r)) {
			e.mu.Lock()
			e.value += string(r)
			e.mu.Unlock()
		}
	}
}

// Change sets the value and dispatches a change event (select elements).
func (e *Element) Change(ctx context.Context, value string) {
	e.SetValue(value)
	e.Dispatch(ctx, &domain.Event{Type: domain.EventChange, Value: value})
}

// Check sets the selected state and dispatches a change event (checkboxes).
func (e *Element) Check(ctx context.Context, checked bool) {
	e.SetSelected(checked)
	e.Dispatch(ctx, &domain.Event{Type: domain.EventChange, Value: e.Value()})
}
