package dom

import (
	"strings"
	"sync"

	"github.com/aretw0/algoviz/pkg/ports"
)

// CookieJar implements ports.CookieSource in memory.
// Like document.cookie, reads return only name=value pairs and writes replace
// the entry with the same name.
type CookieJar struct {
	mu      sync.Mutex
	entries []string
	written []string
}

var _ ports.CookieSource = (*CookieJar)(nil)

// NewCookieJar creates a jar from a raw cookie string. Entries are kept verbatim,
// so malformed input is preserved for the reader to reject.
func NewCookieJar(raw string) *CookieJar {
	j := &CookieJar{}
	for _, part := range strings.Split(raw, ";") {
		if part = strings.TrimSpace(part); part != "" {
			j.entries = append(j.entries, part)
		}
	}
	return j
}

func (j *CookieJar) Cookie() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return strings.Join(j.entries, "; ")
}

func (j *CookieJar) SetCookie(raw string) {
	j.mu.Lock()
	defer j.mu.Unlock()

	j.written = append(j.written, raw)

	pair, _, _ := strings.Cut(raw, ";")
	pair = strings.TrimSpace(pair)
	name, _, _ := strings.Cut(pair, "=")
	for i, entry := range j.entries {
		if n, _, _ := strings.Cut(entry, "="); n == name {
			j.entries[i] = pair
			return
		}
	}
	j.entries = append(j.entries, pair)
}

// Written returns every raw cookie passed to SetCookie, attributes included.
func (j *CookieJar) Written() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.written...)
}
