package view

import (
	"context"
	"fmt"
	"maps"
	"sync"
	"time"
)

const maxNotices = 50

// Layout declares which elements exist on the page.
type Layout struct {
	Elements   []string            // text-only display elements
	Fields     []string            // input fields and selects
	Checkboxes []string            // checkbox inputs
	Forms      map[string][]string // form ID -> named fields
}

// DefaultLayout is the thermostat control page.
func DefaultLayout() Layout {
	return Layout{
		Elements: []string{
			ErrorLog, Temperature, Humidity, Pressure, ConfigContents,
			CurrentSetpoint, Enabled, DeviceStatus,
		},
		Fields:     []string{Setpoint, Mode, Kp, Ki, Kd},
		Checkboxes: []string{PidActive},
		Forms: map[string][]string{
			ConfigForm: {
				"deviceName", "updateInterval", "knxAddress", "knxEnabled",
				"mqttEnabled", "mqttServer", "mqttPort", "mqttUser",
				"mqttPassword", "mqttClientId", "mqttTopicPrefix",
			},
		},
	}
}

// Notice is an alert shown to the operator.
type Notice struct {
	At      time.Time `json:"at"`
	Message string    `json:"message"`
}

// Snapshot is a point-in-time copy of the page.
type Snapshot struct {
	Version    uint64                       `json:"version"`
	Elements   map[string]string            `json:"elements"`
	Fields     map[string]string            `json:"fields"`
	Checked    map[string]bool              `json:"checked"`
	Forms      map[string]map[string]string `json:"forms"`
	Notices    []Notice                     `json:"notices"`
	CSRFLoaded bool                         `json:"csrf_loaded"`
}

// Page is an in-memory Document safe for concurrent use. It also implements
// Dialog: alerts become notices and confirmations are answered from the
// request context.
type Page struct {
	mu      sync.RWMutex
	layout  Layout
	text    map[string]string
	fields  map[string]string
	checked map[string]bool
	forms   map[string]map[string]string
	meta    map[string]string
	notices []Notice
	version uint64

	subMu   sync.Mutex
	subs    map[int]chan struct{}
	nextSub int
}

var (
	_ Document = (*Page)(nil)
	_ Dialog   = (*Page)(nil)
)

// NewPage builds an empty page with the given layout.
func NewPage(layout Layout) *Page {
	p := &Page{layout: layout, subs: make(map[int]chan struct{})}
	p.reset()
	return p
}

func (p *Page) reset() {
	p.text = make(map[string]string, len(p.layout.Elements))
	for _, id := range p.layout.Elements {
		p.text[id] = ""
	}
	p.fields = make(map[string]string, len(p.layout.Fields))
	for _, id := range p.layout.Fields {
		p.fields[id] = ""
	}
	p.checked = make(map[string]bool, len(p.layout.Checkboxes))
	for _, id := range p.layout.Checkboxes {
		p.checked[id] = false
	}
	p.forms = make(map[string]map[string]string, len(p.layout.Forms))
	for id, names := range p.layout.Forms {
		f := make(map[string]string, len(names))
		for _, n := range names {
			f[n] = ""
		}
		p.forms[id] = f
	}
	p.meta = make(map[string]string)
}

// Reset discards every value and meta tag. Notices survive: they were
// already shown to the operator.
func (p *Page) Reset() {
	p.mu.Lock()
	p.reset()
	p.version++
	p.mu.Unlock()
	p.notify()
}

func (p *Page) Has(id string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if _, ok := p.text[id]; ok {
		return true
	}
	if _, ok := p.fields[id]; ok {
		return true
	}
	if _, ok := p.checked[id]; ok {
		return true
	}
	_, ok := p.forms[id]
	return ok
}

func (p *Page) Field(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.fields[id]
	return v, ok
}

func (p *Page) Checked(id string) (bool, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.checked[id]
	return v, ok
}

func (p *Page) FormValues(id string) (map[string]string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	f, ok := p.forms[id]
	if !ok {
		return nil, false
	}
	return maps.Clone(f), true
}

func (p *Page) Meta(name string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.meta[name]
	return v, ok
}

// Text returns the content of a display element.
func (p *Page) Text(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	v, ok := p.text[id]
	return v, ok
}

// SetText writes a display element. Unknown IDs are ignored.
func (p *Page) SetText(id, text string) {
	p.update(func() bool {
		if _, ok := p.text[id]; !ok {
			return false
		}
		p.text[id] = text
		return true
	})
}

// SetField writes an input field. Unknown IDs are ignored.
func (p *Page) SetField(id, value string) {
	p.update(func() bool {
		if _, ok := p.fields[id]; !ok {
			return false
		}
		p.fields[id] = value
		return true
	})
}

// SetChecked writes a checkbox. Unknown IDs are ignored.
func (p *Page) SetChecked(id string, checked bool) {
	p.update(func() bool {
		if _, ok := p.checked[id]; !ok {
			return false
		}
		p.checked[id] = checked
		return true
	})
}

// SetFormField writes a named field of a form, adding it if the form did
// not declare it.
func (p *Page) SetFormField(form, name, value string) error {
	if name == "" {
		return fmt.Errorf("form %q: empty field name", form)
	}
	var found bool
	p.update(func() bool {
		f, ok := p.forms[form]
		if !ok {
			return false
		}
		found = true
		f[name] = value
		return true
	})
	if !found {
		return fmt.Errorf("form %q not found", form)
	}
	return nil
}

func (p *Page) SetMeta(name, content string) {
	p.update(func() bool {
		p.meta[name] = content
		return true
	})
}

// Alert records msg as a notice.
func (p *Page) Alert(_ context.Context, msg string) {
	p.update(func() bool {
		p.notices = append(p.notices, Notice{At: time.Now().UTC(), Message: msg})
		if len(p.notices) > maxNotices {
			p.notices = p.notices[len(p.notices)-maxNotices:]
		}
		return true
	})
}

// Confirm answers from the confirmation stored in ctx; without one the
// prompt counts as declined.
func (p *Page) Confirm(ctx context.Context, _ string) bool {
	return Confirmation(ctx)
}

// Snapshot copies the page for rendering.
func (p *Page) Snapshot() Snapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	forms := make(map[string]map[string]string, len(p.forms))
	for id, f := range p.forms {
		forms[id] = maps.Clone(f)
	}
	_, csrf := p.meta[CSRFMeta]
	return Snapshot{
		Version:    p.version,
		Elements:   maps.Clone(p.text),
		Fields:     maps.Clone(p.fields),
		Checked:    maps.Clone(p.checked),
		Forms:      forms,
		Notices:    append([]Notice(nil), p.notices...),
		CSRFLoaded: csrf,
	}
}

// Subscribe returns a channel signalled after every change. Signals are
// coalesced; a slow reader sees at most one pending signal.
func (p *Page) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	p.subMu.Lock()
	id := p.nextSub
	p.nextSub++
	p.subs[id] = ch
	p.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.subMu.Lock()
			delete(p.subs, id)
			p.subMu.Unlock()
		})
	}
}

func (p *Page) update(fn func() bool) {
	p.mu.Lock()
	changed := fn()
	if changed {
		p.version++
	}
	p.mu.Unlock()
	if changed {
		p.notify()
	}
}

func (p *Page) notify() {
	p.subMu.Lock()
	defer p.subMu.Unlock()
	for _, ch := range p.subs {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
