package http

import (
	"net/http"
	"strings"
	"sync"

	"github.com/aretw0/algoviz/pkg/ports"
)

// cookieBridge is the cookie store of one page. Reads come from the latest
// request's Cookie header; writes are queued and sent as Set-Cookie on the
// response of the request that caused them.
type cookieBridge struct {
	mu      sync.Mutex
	entries []string
	pending []string
}

var _ ports.CookieSource = (*cookieBridge)(nil)

func newCookieBridge(header string) *cookieBridge {
	c := &cookieBridge{}
	c.update(header)
	return c
}

func (c *cookieBridge) Cookie() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.entries, "; ")
}

func (c *cookieBridge) SetCookie(raw string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.pending = append(c.pending, raw)

	pair, _, _ := strings.Cut(raw, ";")
	pair = strings.TrimSpace(pair)
	name, _, _ := strings.Cut(pair, "=")
	for i, entry := range c.entries {
		if n, _, _ := strings.Cut(entry, "="); n == name {
			c.entries[i] = pair
			return
		}
	}
	c.entries = append(c.entries, pair)
}

// update replaces the known cookies with the request's header, if any.
func (c *cookieBridge) update(header string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if header == "" {
		return
	}
	c.entries = c.entries[:0]
	for _, part := range strings.Split(header, ";") {
		if part = strings.TrimSpace(part); part != "" {
			c.entries = append(c.entries, part)
		}
	}
}

// flush writes the queued cookies to the response.
func (c *cookieBridge) flush(w http.ResponseWriter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, raw := range c.pending {
		w.Header().Add("Set-Cookie", raw)
	}
	c.pending = nil
}
