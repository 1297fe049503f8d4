package dom

import (
	"net/url"
	"sync"

	"github.com/aretw0/algoviz/pkg/ports"
)

// Location implements ports.Navigator in memory and records every navigation.
type Location struct {
	mu           sync.Mutex
	path         string
	query        url.Values
	replacements []string
	reloads      []string
}

var _ ports.Navigator = (*Location)(nil)

// NewLocation creates a location at path with the given raw query string.
// An unparsable query starts empty.
func NewLocation(path, rawQuery string) *Location {
	q, err := url.ParseQuery(rawQuery)
	if err != nil {
		q = url.Values{}
	}
	return &Location{path: path, query: q}
}

func (l *Location) Query() url.Values {
	l.mu.Lock()
	defer l.mu.Unlock()
	return cloneValues(l.query)
}

func (l *Location) Replace(query url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.query = cloneValues(query)
	l.replacements = append(l.replacements, l.url(query))
}

func (l *Location) Reload(query url.Values) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reloads = append(l.reloads, l.url(query))
}

// URL returns the visible URL.
func (l *Location) URL() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.url(l.query)
}

// Replacements returns every URL written with Replace.
func (l *Location) Replacements() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.replacements...)
}

// Reloads returns every URL requested with Reload.
func (l *Location) Reloads() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.reloads...)
}

func (l *Location) url(q url.Values) string {
	if enc := q.Encode(); enc != "" {
		return l.path + "?" + enc
	}
	return l.path
}

func cloneValues(v url.Values) url.Values {
	out := make(url.Values, len(v))
	for k, vals := range v {
		out[k] = append([]string(nil), vals...)
	}
	return out
}
