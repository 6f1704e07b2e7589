package service

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"thermostat_panel/internal/device"
	"thermostat_panel/internal/models"
	"thermostat_panel/internal/view"

	"github.com/gin-gonic/gin"
)

// fakeEventRepo is a minimal stub that satisfies the repository.EventRepo interface.
type fakeEventRepo struct {
	mu sync.Mutex

	// captured inputs
	gotCtx   context.Context
	gotFrom  time.Time
	gotTo    time.Time
	gotType  string
	appended []models.PanelEvent

	// configured outputs
	events []models.PanelEvent
	err    error

	calls int
}

func (f *fakeEventRepo) List(ctx context.Context, from, to time.Time, typ string) ([]models.PanelEvent, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.gotCtx = ctx
	f.gotFrom = from
	f.gotTo = to
	f.gotType = typ
	return f.events, f.err
}

func (f *fakeEventRepo) Append(_ context.Context, e models.PanelEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appended = append(f.appended, e)
	return nil
}

func (f *fakeEventRepo) ofType(typ string) []models.PanelEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.PanelEvent
	for _, e := range f.appended {
		if e.Type == typ {
			out = append(out, e)
		}
	}
	return out
}

type report struct {
	operation string
	err       error
}

// recordingReporter captures every Report call.
type recordingReporter struct {
	mu      sync.Mutex
	reports []report
}

func (r *recordingReporter) Report(_ context.Context, operation string, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reports = append(r.reports, report{operation: operation, err: err})
}

func (r *recordingReporter) all() []report {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]report(nil), r.reports...)
}

// deviceRequest is one request seen by the fake device.
type deviceRequest struct {
	Method      string
	Path        string
	CSRF        string
	ContentType string
	Body        string
	Form        url.Values
}

const testToken = "tok-123"

// fakeDevice is a gin router standing in for the thermostat's HTTP API.
type fakeDevice struct {
	t   *testing.T
	srv *httptest.Server

	mu       sync.Mutex
	requests []deviceRequest
	handlers map[string]gin.HandlerFunc
}

func newFakeDevice(t *testing.T) *fakeDevice {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &fakeDevice{t: t, handlers: map[string]gin.HandlerFunc{}}
	f.on(http.MethodGet, "/", func(c *gin.Context) {
		c.Data(http.StatusOK, "text/html; charset=utf-8",
			[]byte(`<html><head><meta name="csrf-token" content="`+testToken+`"></head><body></body></html>`))
	})
	f.on(http.MethodGet, "/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"temperature": 21.54, "humidity": 40, "pressure": 1013.25})
	})
	for _, p := range []string{"/setpoint", "/mode", "/pid", "/factory_reset", "/reboot"} {
		f.on(http.MethodPost, p, func(c *gin.Context) { c.String(http.StatusOK, "OK") })
	}
	f.on(http.MethodPost, "/save", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	f.on(http.MethodGet, "/config", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"deviceName": "thermo",
			"pid":        gin.H{"kp": 2.5, "ki": 0.1, "kd": 1, "active": true},
		})
	})

	r := gin.New()
	r.Any("/*path", f.dispatch)
	f.srv = httptest.NewServer(r)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeDevice) on(method, path string, h gin.HandlerFunc) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[method+" "+path] = h
}

func (f *fakeDevice) dispatch(c *gin.Context) {
	body, _ := io.ReadAll(c.Request.Body)
	req := deviceRequest{
		Method:      c.Request.Method,
		Path:        c.Request.URL.Path,
		CSRF:        c.GetHeader(device.CSRFHeader),
		ContentType: c.ContentType(),
		Body:        string(body),
	}
	if req.ContentType == "application/x-www-form-urlencoded" {
		req.Form, _ = url.ParseQuery(req.Body)
	}

	f.mu.Lock()
	f.requests = append(f.requests, req)
	h, ok := f.handlers[req.Method+" "+req.Path]
	f.mu.Unlock()

	if !ok {
		c.Status(http.StatusNotFound)
		return
	}
	h(c)
}

func (f *fakeDevice) all() []deviceRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]deviceRequest(nil), f.requests...)
}

// find returns the requests made to method+path.
func (f *fakeDevice) find(method, path string) []deviceRequest {
	var out []deviceRequest
	for _, r := range f.all() {
		if r.Method == method && r.Path == path {
			out = append(out, r)
		}
	}
	return out
}

func (f *fakeDevice) client() *device.Client {
	f.t.Helper()
	c, err := device.NewClient(f.srv.URL, device.WithTimeout(2*time.Second))
	if err != nil {
		f.t.Fatalf("NewClient: %v", err)
	}
	return c
}

// harness wires the synchronization services against a fake device.
type harness struct {
	dev      *fakeDevice
	page     *view.Page
	reporter *recordingReporter
	events   *fakeEventRepo

	poller *StatusPoller
	mirror *ConfigMirror
	loader *PageLoader
	cmds   *CommandSubmitter
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		dev:      newFakeDevice(t),
		page:     view.NewPage(view.DefaultLayout()),
		reporter: &recordingReporter{},
		events:   &fakeEventRepo{},
	}
	d := Deps{
		Client:   h.dev.client(),
		View:     h.page,
		Dialog:   h.page,
		Reporter: h.reporter,
		Events:   h.events,
	}
	h.poller = NewStatusPoller(d)
	h.mirror = NewConfigMirror(d)
	h.loader = NewPageLoader(d, h.page, h.poller)
	h.cmds = NewCommandSubmitter(d, h.poller, h.loader, h.mirror)
	return h
}

// withToken installs the CSRF meta tag without going through a load.
func (h *harness) withToken() *harness {
	h.page.SetMeta(view.CSRFMeta, testToken)
	return h
}

func (h *harness) text(t *testing.T, id string) string {
	t.Helper()
	v, ok := h.page.Text(id)
	if !ok {
		t.Fatalf("element %q not on page", id)
	}
	return v
}

func (h *harness) field(t *testing.T, id string) string {
	t.Helper()
	v, ok := h.page.Field(id)
	if !ok {
		t.Fatalf("field %q not on page", id)
	}
	return v
}

func containsAll(s string, parts ...string) bool {
	for _, p := range parts {
		if !strings.Contains(s, p) {
			return false
		}
	}
	return true
}
