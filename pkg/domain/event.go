package domain

// EventType defines the category of a DOM event.
type EventType string

const (
	EventClick    EventType = "click"
	EventKeyPress EventType = "keypress"
	EventChange   EventType = "change"
)

// KeyEnter is the Key value of an Enter keypress.
const KeyEnter = "Enter"

// Event is delivered to the handlers registered on an element.
type Event struct {
	Type EventType `json:"type"`
	// Key holds the pressed key for keypress events (a single character or a named key).
	Key string `json:"key,omitempty"`
	// Value holds the element value at dispatch time.
	Value string `json:"value,omitempty"`

	prevented bool
}

// PreventDefault cancels the default action (e.g. appending the typed character).
func (e *Event) PreventDefault() {
	e.prevented = true
}

// DefaultPrevented reports whether a handler called PreventDefault.
func (e *Event) DefaultPrevented() bool {
	return e.prevented
}
