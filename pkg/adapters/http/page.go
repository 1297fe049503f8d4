package http

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/aretw0/algoviz"
	"github.com/aretw0/algoviz/pkg/adapters/dom"
	"github.com/aretw0/algoviz/pkg/domain"
	"github.com/aretw0/algoviz/pkg/ports"
)

// page is the server-side model of one browser page.
type page struct {
	id        string
	container *dom.Container
	location  *dom.Location
	cookies   *cookieBridge
	app       *algoviz.Page
	created   time.Time

	seenMu sync.Mutex
	seen   time.Time

	statusMu   sync.Mutex
	lastStatus *domain.Status
	unwatch    func()
}

// frameSink forwards frames of pageID to the stream manager.
func frameSink(streams *StreamManager, pageID string) ports.FrameSink {
	return ports.FrameSinkFunc(func(ctx context.Context, frame domain.Frame) {
		data, err := json.Marshal(frame)
		if err != nil {
			return
		}
		streams.Broadcast(pageID, Message{Event: "frame", Data: string(data)})
	})
}

// watchStatus broadcasts a diff whenever the run state changes.
func (p *page) watchStatus(streams *StreamManager) {
	p.unwatch = p.app.State().Subscribe(func(status domain.Status) {
		p.statusMu.Lock()
		diff := domain.Diff(p.container.ID(), p.lastStatus, status)
		p.lastStatus = &status
		p.statusMu.Unlock()

		if diff == nil {
			return
		}
		if data, err := json.Marshal(diff); err == nil {
			streams.Broadcast(p.id, Message{Event: "status", Data: string(data)})
		}
	})
}

// touch marks the page as used by a client at t.
func (p *page) touch(t time.Time) {
	p.seenMu.Lock()
	defer p.seenMu.Unlock()
	if t.After(p.seen) {
		p.seen = t
	}
}

func (p *page) lastSeen() time.Time {
	p.seenMu.Lock()
	defer p.seenMu.Unlock()
	return p.seen
}

func (p *page) record(now time.Time) *domain.PageRecord {
	return &domain.PageRecord{
		ID:        p.id,
		Container: p.container.ID(),
		Algorithm: p.app.Algorithm(),
		Debug:     p.app.Engine.Debug,
		CreatedAt: p.created,
		UpdatedAt: now.UTC(),
	}
}

func (p *page) close() {
	if p.unwatch != nil {
		p.unwatch()
	}
	p.app.Close()
}

// ControlView is the client-visible state of one control.
type ControlView struct {
	Class    string   `json:"class"`
	Value    string   `json:"value"`
	Options  []string `json:"options,omitempty"`
	Selected bool     `json:"selected,omitempty"`
	Disabled bool     `json:"disabled,omitempty"`
}

// PageView describes a page to the client.
type PageView struct {
	ID        string        `json:"id"`
	URL       string        `json:"url"`
	Algorithm string        `json:"algorithm"`
	Fallback  bool          `json:"fallback"`
	Debug     bool          `json:"debug"`
	Status    domain.Status `json:"status"`
	Controls  []ControlView `json:"controls"`
}

func (p *page) view() PageView {
	v := PageView{
		ID:        p.id,
		URL:       p.location.URL(),
		Algorithm: p.app.Algorithm(),
		Fallback:  p.app.Engine.Fallback,
		Debug:     p.app.Engine.Debug,
		Status:    p.app.State().Status(),
	}
	for _, el := range p.container.Elements() {
		v.Controls = append(v.Controls, ControlView{
			Class:    el.Class(),
			Value:    el.Value(),
			Options:  el.Options(),
			Selected: el.Selected(),
			Disabled: el.Disabled(),
		})
	}
	return v
}
