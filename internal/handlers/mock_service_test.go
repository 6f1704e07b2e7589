package handlers

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"thermostat_panel/internal/models"
	"thermostat_panel/internal/service"
	"thermostat_panel/internal/view"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(_ context.Context, username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(_ context.Context, username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

// mockPanel records which panel operations ran and what the page looked
// like when they did.
type mockPanel struct {
	page *view.Page

	mu        sync.Mutex
	calls     []string
	confirmed []bool
	pid       []string
	saved     []string

	config    json.RawMessage
	configErr error
}

func newMockPanel() *mockPanel {
	return &mockPanel{page: view.NewPage(view.DefaultLayout())}
}

func (m *mockPanel) record(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, name)
}

func (m *mockPanel) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

func (m *mockPanel) Poll(context.Context) { m.record("poll") }

func (m *mockPanel) SetSetpoint(context.Context) { m.record("setpoint") }
func (m *mockPanel) SetMode(context.Context)     { m.record("mode") }

func (m *mockPanel) UpdatePid(_ context.Context, kp, ki, kd string, _ bool) {
	m.record("pid")
	m.pid = []string{kp, ki, kd}
}

func (m *mockPanel) SubmitPid(ctx context.Context) {
	kp, _ := m.page.Field(view.Kp)
	ki, _ := m.page.Field(view.Ki)
	kd, _ := m.page.Field(view.Kd)
	active, _ := m.page.Checked(view.PidActive)
	m.UpdatePid(ctx, kp, ki, kd, active)
}

func (m *mockPanel) SaveConfig(_ context.Context, formID string) {
	m.record("save")
	m.saved = append(m.saved, formID)
}

func (m *mockPanel) FactoryReset(ctx context.Context) { m.confirm(ctx, "factory-reset") }
func (m *mockPanel) Reboot(ctx context.Context)       { m.confirm(ctx, "reboot") }

func (m *mockPanel) confirm(ctx context.Context, name string) {
	ok := view.Confirmation(ctx)
	m.mu.Lock()
	m.confirmed = append(m.confirmed, ok)
	m.mu.Unlock()
	if ok {
		m.record(name)
	}
}

func (m *mockPanel) FetchConfig(context.Context) (json.RawMessage, error) {
	m.record("fetch-config")
	return m.config, m.configErr
}
func (m *mockPanel) MirrorPid(context.Context)  { m.record("mirror-pid") }
func (m *mockPanel) ShowConfig(context.Context) { m.record("show-config") }

func (m *mockPanel) Load(context.Context) error   { m.record("load"); return nil }
func (m *mockPanel) Reload(context.Context) error { m.record("reload"); return nil }

type mockEventLog struct {
	resp     []models.PanelEvent
	err      error
	lastFrom time.Time
	lastTo   time.Time
	lastType string
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.PanelEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

// newPanelService builds a Service whose panel operations are all mocked.
func newPanelService(auth *mockAuth, panel *mockPanel) *service.Service {
	return &service.Service{
		Poller:        panel,
		Commands:      panel,
		Mirror:        panel,
		Loader:        panel,
		Authorization: auth,
		Page:          panel.page,
	}
}

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}
