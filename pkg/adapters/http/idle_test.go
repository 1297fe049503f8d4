package http_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vizhttp "github.com/aretw0/algoviz/pkg/adapters/http"
	"github.com/aretw0/algoviz/pkg/domain"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func pageStatus(h http.Handler, id string) int {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/pages/"+id, nil))
	return w.Code
}

func TestSweep_FreesIdlePages(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	srv, store := newServer(t, vizhttp.WithIdleTimeout(10*time.Minute), vizhttp.WithClock(clock.Now))
	h := srv.Handler()
	ctx := context.Background()

	abandoned := openJSON(t, h, "?algorithm=BST")
	active := openJSON(t, h, "?algorithm=BST")
	watched := openJSON(t, h, "?algorithm=BinaryHeap")

	_, unsubscribe := srv.Streams().Subscribe(watched.ID)
	defer unsubscribe()

	clock.Advance(5 * time.Minute)
	w, _ := postEvent(t, h, active.ID, vizhttp.EventRequest{Class: domain.ClassPrintSubmit, Type: domain.EventClick})
	require.Equal(t, http.StatusOK, w.Code)

	clock.Advance(6 * time.Minute)
	assert.Equal(t, 1, srv.Sweep(ctx))
	assert.Equal(t, http.StatusNotFound, pageStatus(h, abandoned.ID))
	_, err := store.Load(ctx, abandoned.ID)
	assert.ErrorIs(t, err, domain.ErrPageNotFound)

	clock.Advance(11 * time.Minute)
	assert.Equal(t, 1, srv.Sweep(ctx), "the page with an SSE listener survives")
	assert.Equal(t, http.StatusNotFound, pageStatus(h, active.ID))
	assert.Equal(t, http.StatusOK, pageStatus(h, watched.ID))
}

func TestSweep_ManyAbandonedPages(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	srv, _ := newServer(t, vizhttp.WithIdleTimeout(time.Minute), vizhttp.WithClock(clock.Now))
	h := srv.Handler()

	for i := 0; i < 50; i++ {
		openJSON(t, h, "?algorithm=BST")
	}
	clock.Advance(2 * time.Minute)
	assert.Equal(t, 50, srv.Sweep(context.Background()))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Contains(t, w.Body.String(), `"pages":0`)
}

func TestSweep_DisabledWithZeroTimeout(t *testing.T) {
	clock := &fakeClock{now: time.Now()}
	srv, _ := newServer(t, vizhttp.WithIdleTimeout(0), vizhttp.WithClock(clock.Now))
	view := openJSON(t, srv.Handler(), "?algorithm=BST")

	clock.Advance(48 * time.Hour)
	assert.Zero(t, srv.Sweep(context.Background()))
	assert.Equal(t, http.StatusOK, pageStatus(srv.Handler(), view.ID))
}

func TestCORS_PreflightAllowsPut(t *testing.T) {
	srv, _ := newServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/pages/x/step-delay", nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestDispatchEvent_BodyTooLarge(t *testing.T) {
	srv, _ := newServer(t)
	h := srv.Handler()
	view := openJSON(t, h, "?algorithm=BST")

	var fields []string
	for i := 0; i < 8000; i++ {
		fields = append(fields, fmt.Sprintf(`"f%d":"value"`, i))
	}
	body := `{"class":"printSubmit","type":"click","fields":{` + strings.Join(fields, ",") + `}}`
	require.Greater(t, len(body), vizhttp.MaxEventBodySize)

	req := httptest.NewRequest(http.MethodPost, "/pages/"+view.ID+"/events", strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
