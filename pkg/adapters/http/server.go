// Package http serves algoviz pages to a browser.
//
// Each GET / creates a page: an in-memory container bound to the requested
// algorithm. The browser forwards DOM events to POST /pages/{id}/events and
// receives animation frames and run state changes over SSE.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/adapters/dom"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/registry"
)

const (
	// DefaultIdleTimeout is how long an abandoned page stays in memory.
	DefaultIdleTimeout = 30 * time.Minute

	// MaxEventBodySize bounds the JSON body of event and step-delay requests.
	MaxEventBodySize = 64 << 10
)

// Server hosts live pages.
type Server struct {
	registry  *registry.Registry
	store     ports.PageStore
	streams   *StreamManager
	container string
	algoOpts  map[string]map[string]any
	hooks     domain.LifecycleHooks
	expiry    int
	gatherer  prometheus.Gatherer
	logger    *slog.Logger
	idle      time.Duration
	now       func() time.Time

	mu    sync.RWMutex
	pages map[string]*page
}

// Option configures the Server.
type Option func(*Server)

// WithContainerID sets the container ID rendered in every page.
func WithContainerID(id string) Option {
	return func(s *Server) {
		s.container = id
	}
}

// WithAlgorithmOptions passes per-algorithm settings to every page.
func WithAlgorithmOptions(opts map[string]map[string]any) Option {
	return func(s *Server) {
		s.algoOpts = opts
	}
}

// WithCookieExpiry sets how many days settings cookies live.
func WithCookieExpiry(days int) Option {
	return func(s *Server) {
		s.expiry = days
	}
}

// WithLifecycleHooks registers observability hooks for every page.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(s *Server) {
		s.hooks = hooks
	}
}

// WithMetrics exposes the gatherer on GET /metrics.
func WithMetrics(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.gatherer = g
	}
}

// WithIdleTimeout sets how long a page without SSE listeners and events is kept
// before Sweep frees it. Zero keeps pages until they are closed.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Server) {
		s.idle = d
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		s.now = now
	}
}

// WithLogger configures a logger for the Server.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a server resolving algorithms from reg and recording pages in store.
func NewServer(reg *registry.Registry, store ports.PageStore, opts ...Option) *Server {
	s := &Server{
		registry:  reg,
		store:     store,
		container: "viz",
		logger:    logging.NewNop(),
		idle:      DefaultIdleTimeout,
		now:       time.Now,
		pages:     make(map[string]*page),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)
	return s
}

// Streams returns the SSE stream manager.
func (s *Server) Streams() *StreamManager { return s.streams }

// Handler builds the HTTP routes.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	r.Get("/", s.OpenPage)
	r.Get("/health", s.GetHealth)
	r.Get("/algorithms", s.ListAlgorithms)
	r.Route("/pages", func(r chi.Router) {
		r.Get("/", s.ListPages)
		r.Get("/{id}", s.GetPage)
		r.Delete("/{id}", s.ClosePage)
		r.Post("/{id}/events", s.DispatchEvent)
		r.Put("/{id}/step-delay", s.SetStepDelay)
		r.Get("/{id}/frames", s.SubscribeFrames)
	})
	if s.gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// OpenPage handles GET /: it creates a page for the query's algorithm and
// renders it as HTML, or as JSON when the client asks for it.
func (s *Server) OpenPage(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	p := &page{
		id:        id,
		container: dom.NewStandardContainer(s.container),
		location:  dom.NewLocation("/", r.URL.RawQuery),
		cookies:   newCookieBridge(r.Header.Get("Cookie")),
	}

	ctx := context.WithoutCancel(r.Context())
	app, err := algoviz.Open(ctx, dom.NewDocument(p.container), p.location, s.container,
		algoviz.WithRegistry(s.registry),
		algoviz.WithFrames(frameSink(s.streams, id)),
		algoviz.WithCookies(p.cookies),
		algoviz.WithCookieExpiry(s.expiry),
		algoviz.WithAlgorithmOptions(s.algoOpts),
		algoviz.WithLifecycleHooks(s.hooks),
		algoviz.WithLogger(s.logger.With("page_id", id)),
	)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrMalformedCookie) {
			status = http.StatusBadRequest
		}
		http.Error(w, fmt.Sprintf("Open error: %v", err), status)
		s.logger.Error("OpenPage failed", "error", err)
		return
	}
	p.app = app
	p.created = s.now().UTC()
	p.touch(p.created)
	p.watchStatus(s.streams)

	if err := s.store.Save(r.Context(), p.record(s.now())); err != nil {
		p.close()
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("OpenPage: failed to record page", "error", err)
		return
	}

	s.mu.Lock()
	s.pages[id] = p
	s.mu.Unlock()

	p.cookies.flush(w)
	if wantsJSON(r) {
		writeJSON(w, http.StatusCreated, p.view())
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := renderPage(w, s.container, p.view(), s.pseudoCode(app.Algorithm())); err != nil {
		s.logger.Error("OpenPage: render failed", "error", err)
	}
}

func (s *Server) pseudoCode(name string) string {
	if d, ok := s.registry.Describe(name); ok {
		return d.PseudoCode
	}
	return ""
}

// EventRequest is a DOM event forwarded by the browser.
type EventRequest struct {
	Class string           `json:"class"`
	Type  domain.EventType `json:"type"`
	Key   string           `json:"key,omitempty"`

	// Value is the target control's value as the browser sees it before the event.
	Value   *string `json:"value,omitempty"`
	Checked *bool   `json:"checked,omitempty"`

	// Fields carries the current values of other form controls, keyed by class.
	Fields map[string]string `json:"fields,omitempty"`
}

// EventResponse tells the browser what to do after the event.
type EventResponse struct {
	Prevented bool          `json:"prevented"`
	Reload    string        `json:"reload,omitempty"`
	Controls  []ControlView `json:"controls,omitempty"`
}

// DispatchEvent handles POST /pages/{id}/events.
//
// Events are dispatched synchronously. A click that starts an animation holds
// its request until the animation ends, while concurrent events are handled
// (and dropped when busy) on their own requests.
func (s *Server) DispatchEvent(w http.ResponseWriter, r *http.Request) {
	p, ok := s.page(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	p.touch(s.now())

	var req EventRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxEventBodySize)).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("DispatchEvent: Invalid request body", "error", err)
		return
	}
	if err := req.sanitize(); err != nil {
		http.Error(w, fmt.Sprintf("Input rejected: %v", err), http.StatusBadRequest)
		s.logger.Warn("DispatchEvent: Input rejected", "error", err)
		return
	}
	el := p.container.Element(req.Class)
	if el == nil {
		http.Error(w, fmt.Sprintf("Unknown control %q", req.Class), http.StatusNotFound)
		return
	}

	p.cookies.update(r.Header.Get("Cookie"))
	for class, value := range req.Fields {
		if field := p.container.Element(class); field != nil {
			field.SetValue(value)
		}
	}
	if req.Value != nil {
		el.SetValue(*req.Value)
	}

	reloads := len(p.location.Reloads())
	ctx := context.WithoutCancel(r.Context())

	resp := EventResponse{}
	switch req.Type {
	case domain.EventClick:
		resp.Prevented = !el.Click(ctx)
	case domain.EventKeyPress:
		resp.Prevented = !el.Press(ctx, req.Key)
	case domain.EventChange:
		if req.Checked != nil {
			el.Check(ctx, *req.Checked)
		} else {
			el.Change(ctx, el.Value())
		}
	default:
		http.Error(w, fmt.Sprintf("Unsupported event type %q", req.Type), http.StatusBadRequest)
		return
	}

	p.cookies.flush(w)
	if all := p.location.Reloads(); len(all) > reloads {
		resp.Reload = all[len(all)-1]
		s.remove(r.Context(), p.id)
		writeJSON(w, http.StatusOK, resp)
		return
	}

	resp.Controls = p.view().Controls
	if err := s.store.Save(r.Context(), p.record(s.now())); err != nil {
		s.logger.Warn("DispatchEvent: failed to refresh page record", "error", err)
	}
	writeJSON(w, http.StatusOK, resp)
}

// StepDelayRequest changes the animation speed of a page.
type StepDelayRequest struct {
	Milliseconds int `json:"ms"`
}

// SetStepDelay handles PUT /pages/{id}/step-delay.
func (s *Server) SetStepDelay(w http.ResponseWriter, r *http.Request) {
	p, ok := s.page(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}

	p.touch(s.now())

	var req StepDelayRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxEventBodySize)).Decode(&req); err != nil || req.Milliseconds < 0 {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	p.cookies.update(r.Header.Get("Cookie"))
	if err := p.app.SetStepDelay(time.Duration(req.Milliseconds) * time.Millisecond); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnsupportedOperation) {
			status = http.StatusConflict
		}
		http.Error(w, err.Error(), status)
		return
	}
	p.cookies.flush(w)
	w.WriteHeader(http.StatusNoContent)
}

// SubscribeFrames handles GET /pages/{id}/frames (SSE).
func (s *Server) SubscribeFrames(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.page(id); !ok {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeFrames: Streaming not supported")
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch, cancel := s.streams.Subscribe(id)
	defer func() {
		cancel()
		// The idle clock starts when the last listener leaves.
		if p, ok := s.page(id); ok {
			p.touch(s.now())
		}
	}()

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected", "page_id", id)
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", msg.Event, msg.Data)
			flusher.Flush()
		}
	}
}

// GetPage handles GET /pages/{id}.
func (s *Server) GetPage(w http.ResponseWriter, r *http.Request) {
	p, ok := s.page(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	p.touch(s.now())
	writeJSON(w, http.StatusOK, p.view())
}

// ClosePage handles DELETE /pages/{id}.
func (s *Server) ClosePage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, ok := s.page(id); !ok {
		http.Error(w, "Page not found", http.StatusNotFound)
		return
	}
	s.remove(r.Context(), id)
	w.WriteHeader(http.StatusNoContent)
}

// ListPages handles GET /pages.
func (s *Server) ListPages(w http.ResponseWriter, r *http.Request) {
	ids, err := s.store.List(r.Context())
	if err != nil {
		http.Error(w, fmt.Sprintf("Store error: %v", err), http.StatusInternalServerError)
		s.logger.Error("ListPages failed", "error", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"pages": ids})
}

// AlgorithmView describes a registered algorithm.
type AlgorithmView struct {
	Name    string `json:"name"`
	Title   string `json:"title"`
	Summary string `json:"summary,omitempty"`
}

// ListAlgorithms handles GET /algorithms.
func (s *Server) ListAlgorithms(w http.ResponseWriter, r *http.Request) {
	var out []AlgorithmView
	for _, name := range s.registry.Names() {
		d, _ := s.registry.Describe(name)
		out = append(out, AlgorithmView{Name: d.Name, Title: d.Title, Summary: d.Summary})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetHealth handles GET /health.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	n := len(s.pages)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"version": strings.TrimSpace(algoviz.Version),
		"pages":   n,
	})
}

// Close releases every live page.
func (s *Server) Close(ctx context.Context) {
	s.mu.Lock()
	pages := s.pages
	s.pages = make(map[string]*page)
	s.mu.Unlock()

	for id, p := range pages {
		p.close()
		if err := s.store.Delete(ctx, id); err != nil {
			s.logger.Warn("Failed to delete page record", "page_id", id, "error", err)
		}
	}
}

// Sweep frees pages that have had no SSE listener and no request for longer
// than the idle timeout. Pages in the middle of an animation or reset are kept.
// It returns the number of pages freed.
func (s *Server) Sweep(ctx context.Context) int {
	if s.idle <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idle)

	s.mu.RLock()
	var stale []string
	for id, p := range s.pages {
		if p.lastSeen().After(cutoff) || s.streams.Subscribers(id) > 0 || p.app.State().IsBusy() {
			continue
		}
		stale = append(stale, id)
	}
	s.mu.RUnlock()

	freed := 0
	for _, id := range stale {
		if p, ok := s.page(id); !ok || p.lastSeen().After(cutoff) {
			continue
		}
		s.remove(ctx, id)
		freed++
	}
	if freed > 0 {
		s.logger.Info("Freed idle pages", "count", freed, "idle_timeout", s.idle)
	}
	return freed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (s *Server) RunSweeper(ctx context.Context, interval time.Duration) {
	if s.idle <= 0 || interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep(ctx)
		}
	}
}

func (s *Server) page(id string) (*page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[id]
	return p, ok
}

func (s *Server) remove(ctx context.Context, id string) {
	s.mu.Lock()
	p, ok := s.pages[id]
	delete(s.pages, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	p.close()
	if err := s.store.Delete(ctx, id); err != nil {
		s.logger.Warn("Failed to delete page record", "page_id", id, "error", err)
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Response encode failed", "error", err)
	}
}
