// Package toolbar binds the generic toolbar controls of a container to the
// active visualizer, independent of which algorithm is loaded.
package toolbar

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strconv"

	"github.com/aretw0/algoviz/internal/logging"
	"github.com/aretw0/algoviz/pkg/cookies"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
	"github.com/aretw0/algoviz/pkg/submit"
)

// DefaultRequired is the control set every standard toolbar must provide.
var DefaultRequired = []string{
	domain.ClassInsertField,
	domain.ClassInsertSubmit,
	domain.ClassFindField,
	domain.ClassFindSubmit,
	domain.ClassDeleteField,
	domain.ClassDeleteSubmit,
	domain.ClassPrintSubmit,
	domain.ClassClearSubmit,
}

// action maps a submit button to the operation it triggers and its input field.
type action struct {
	button string
	kind   domain.OpKind
	field  string
}

var actions = []action{
	{domain.ClassInsertSubmit, domain.OpInsert, domain.ClassInsertField},
	{domain.ClassFindSubmit, domain.OpFind, domain.ClassFindField},
	{domain.ClassDeleteSubmit, domain.OpDelete, domain.ClassDeleteField},
	{domain.ClassDeleteMinSubmit, domain.OpDeleteMin, ""},
	{domain.ClassPrintSubmit, domain.OpPrint, ""},
	{domain.ClassSortSubmit, domain.OpSort, ""},
}

// Binder wires toolbar controls to a Submitter.
type Binder struct {
	submitter *submit.Submitter
	jar       *cookies.Jar
	logger    *slog.Logger
}

// Option configures the Binder.
type Option func(*Binder)

// WithCookies persists toolbar settings (show null nodes) in jar.
func WithCookies(jar *cookies.Jar) Option {
	return func(b *Binder) {
		b.jar = jar
	}
}

// WithLogger configures a logger for the Binder.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Binder) {
		b.logger = logger
	}
}

// NewBinder creates a Binder forwarding operations through submitter.
func NewBinder(submitter *submit.Submitter, opts ...Option) *Binder {
	b := &Binder{
		submitter: submitter,
		logger:    logging.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Handles are the controls bound for one container.
type Handles struct {
	controls    map[string]ports.Element
	buttons     []ports.Element
	unsubscribe func()
}

// Control returns a bound control by class.
func (h *Handles) Control(class string) (ports.Element, bool) {
	el, ok := h.controls[class]
	return el, ok
}

// Buttons returns the submit controls that are disabled while the page is busy.
func (h *Handles) Buttons() []ports.Element {
	return slices.Clone(h.buttons)
}

// Close stops mirroring the run state onto the buttons.
func (h *Handles) Close() {
	if h.unsubscribe != nil {
		h.unsubscribe()
		h.unsubscribe = nil
	}
}

// RequiredControls returns the controls engine needs, honoring ports.ControlLayout.
func RequiredControls(engine ports.Visualizer) []string {
	if layout, ok := engine.(ports.ControlLayout); ok {
		return layout.RequiredControls()
	}
	return DefaultRequired
}

// Bind locates the toolbar controls inside container and attaches handlers.
// A missing required control fails the whole bind with *MissingControlError
// before any handler is attached.
func (b *Binder) Bind(ctx context.Context, engine ports.Visualizer, container ports.Container) (*Handles, error) {
	var missing []string
	for _, class := range RequiredControls(engine) {
		if _, ok := container.Query(class); !ok {
			missing = append(missing, class)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingControlError{Container: container.ID(), Missing: missing}
	}

	h := &Handles{controls: make(map[string]ports.Element)}
	for _, class := range domain.StandardControls {
		if el, ok := container.Query(class); ok {
			h.controls[class] = el
		}
	}

	if err := b.bindNullNodes(engine, h); err != nil {
		return nil, err
	}

	for _, a := range actions {
		b.bindAction(a, h)
	}
	b.bindClear(h)
	b.bindInsertSelect(engine, h)

	if pc, ok := engine.(ports.PseudoCoder); ok {
		if el, found := h.controls[domain.ClassPseudoCode]; found {
			el.SetValue(pc.PseudoCode())
		}
	}

	state := b.submitter.State()
	h.unsubscribe = state.Subscribe(func(s domain.Status) {
		for _, btn := range h.buttons {
			btn.SetDisabled(s.Busy())
		}
	})
	busy := state.IsBusy()
	for _, btn := range h.buttons {
		btn.SetDisabled(busy)
	}

	b.logger.Debug("Toolbar bound", "engine", engine.Name(), "controls", len(h.controls))
	return h, nil
}

func (b *Binder) bindAction(a action, h *Handles) {
	var field ports.Element
	if a.field != "" {
		el, ok := h.controls[a.field]
		if !ok {
			return
		}
		field = el
		class := domain.InputClassFor(a.kind)
		field.On(domain.EventKeyPress, func(ctx context.Context, ev *domain.Event) {
			if ev.Key == domain.KeyEnter {
				ev.PreventDefault()
				b.submit(ctx, a.kind, field)
				return
			}
			if !class.AllowsKey(ev.Key) {
				ev.PreventDefault()
			}
		})
	}

	button, ok := h.controls[a.button]
	if !ok {
		return
	}
	h.buttons = append(h.buttons, button)
	button.On(domain.EventClick, func(ctx context.Context, ev *domain.Event) {
		b.submit(ctx, a.kind, field)
	})
}

func (b *Binder) submit(ctx context.Context, kind domain.OpKind, field ports.Element) {
	if err := b.submitter.Submit(ctx, kind, field); err != nil {
		b.logger.Error("Operation failed", "kind", kind, "error", err)
	}
}

func (b *Binder) bindClear(h *Handles) {
	button, ok := h.controls[domain.ClassClearSubmit]
	if !ok {
		return
	}
	h.buttons = append(h.buttons, button)
	button.On(domain.EventClick, func(ctx context.Context, ev *domain.Event) {
		if err := b.submitter.Clear(ctx); err != nil {
			b.logger.Error("Clear failed", "error", err)
		}
	})
}

func (b *Binder) bindInsertSelect(engine ports.Visualizer, h *Handles) {
	sel, ok := h.controls[domain.ClassInsertSelect]
	if !ok {
		return
	}
	if presets, ok := engine.(ports.InsertPresets); ok {
		sel.SetOptions(presets.Presets())
	}
	field, hasField := h.controls[domain.ClassInsertField]
	sel.On(domain.EventChange, func(ctx context.Context, ev *domain.Event) {
		if hasField && ev.Value != "" {
			field.SetValue(ev.Value)
		}
		sel.SetValue("")
	})
}

func (b *Binder) bindNullNodes(engine ports.Visualizer, h *Handles) error {
	box, ok := h.controls[domain.ClassShowNullNodes]
	if !ok {
		return nil
	}
	toggler, ok := engine.(ports.NullNodeToggler)
	if !ok {
		box.SetDisabled(true)
		return nil
	}

	show := box.Selected()
	if r, ok := engine.(interface{ ShowNullNodes() bool }); ok && r.ShowNullNodes() {
		show = true
	}
	if b.jar != nil {
		raw, found, err := b.jar.Get(domain.CookieShowNullNodes)
		if err != nil {
			return fmt.Errorf("failed to load toolbar settings: %w", err)
		}
		if found {
			if v, err := strconv.ParseBool(raw); err == nil {
				show = v
			} else {
				b.logger.Warn("Ignoring invalid setting cookie", "name", domain.CookieShowNullNodes, "value", raw)
			}
		}
	}
	box.SetSelected(show)
	toggler.SetShowNullNodes(show)

	box.On(domain.EventChange, func(ctx context.Context, ev *domain.Event) {
		show := box.Selected()
		toggler.SetShowNullNodes(show)
		if b.jar == nil {
			return
		}
		if err := b.jar.Set(domain.CookieShowNullNodes, strconv.FormatBool(show)); err != nil {
			b.logger.Warn("Failed to persist setting", "name", domain.CookieShowNullNodes, "error", err)
		}
	})
	return nil
}
