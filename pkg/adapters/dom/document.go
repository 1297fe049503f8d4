// Package dom provides an in-memory implementation of the DOM ports.
// It backs the tests and the server-side model of every HTTP page.
package dom

import (
	"fmt"
	"slices"
	"sync"

	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// Container implements ports.Container in memory.
type Container struct {
	id string

	mu       sync.RWMutex
	order    []string
	elements map[string]*Element
}

var _ ports.Container = (*Container)(nil)

// NewContainer creates a container with one element per class, in order.
func NewContainer(id string, classes ...string) *Container {
	c := &Container{
		id:       id,
		elements: make(map[string]*Element),
	}
	for _, class := range classes {
		c.Add(NewElement(class))
	}
	return c
}

// NewStandardContainer creates a container holding every standard toolbar control.
func NewStandardContainer(id string) *Container {
	return NewContainer(id, domain.StandardControls...)
}

func (c *Container) ID() string { return c.id }

// Add inserts or replaces an element.
func (c *Container) Add(el *Element) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.elements[el.Class()]; !exists {
		c.order = append(c.order, el.Class())
	}
	c.elements[el.Class()] = el
}

// Remove deletes the element with the given class.
func (c *Container) Remove(class string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.elements, class)
	c.order = slices.DeleteFunc(c.order, func(s string) bool { return s == class })
}

func (c *Container) Query(class string) (ports.Element, bool) {
	el := c.Element(class)
	if el == nil {
		return nil, false
	}
	return el, true
}

// Element returns the concrete element with the given class, or nil.
func (c *Container) Element(class string) *Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.elements[class]
}

// Elements returns the elements in insertion order.
func (c *Container) Elements() []*Element {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]*Element, 0, len(c.order))
	for _, class := range c.order {
		out = append(out, c.elements[class])
	}
	return out
}

// Document implements ports.Document in memory.
type Document struct {
	mu         sync.RWMutex
	containers map[string]*Container
}

var _ ports.Document = (*Document)(nil)

// NewDocument creates a document holding the given containers.
func NewDocument(containers ...*Container) *Document {
	d := &Document{containers: make(map[string]*Container)}
	for _, c := range containers {
		d.containers[c.ID()] = c
	}
	return d
}

func (d *Document) Container(id string) (ports.Container, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	c, ok := d.containers[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrContainerNotFound, id)
	}
	return c, nil
}
