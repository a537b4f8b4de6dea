package handlers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"envmonitor/internal/models"
	"envmonitor/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID    int
	signUpErr   error
	genToken    service.Token
	genTokenErr error
	parseID     service.Identity
	parseErr    error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (service.Token, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (service.Identity, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockSessions struct {
	mu     sync.Mutex
	opened []int
	closed []int
}

func (m *mockSessions) Open(userID int, expiresAt time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.opened = append(m.opened, userID)
}
func (m *mockSessions) Close(userID int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, userID)
}
func (m *mockSessions) Run(ctx context.Context, every time.Duration) {}

type mockMonitoring struct {
	state        models.Snapshot
	history      []models.Sample
	refreshOK    bool
	setRangeErr  error
	refreshCalls int
	lastRange    models.TimeRange
}

func (m *mockMonitoring) State() models.Snapshot   { return m.state }
func (m *mockMonitoring) History() []models.Sample { return m.history }
func (m *mockMonitoring) Refresh() bool {
	m.refreshCalls++
	return m.refreshOK
}
func (m *mockMonitoring) SetRange(r models.TimeRange) error {
	m.lastRange = r
	return m.setRangeErr
}

type mockAlerts struct {
	list   []models.Incident
	acked  map[string]bool
	ackIDs []string
}

func (m *mockAlerts) List() []models.Incident { return m.list }
func (m *mockAlerts) Acknowledge(id string) bool {
	m.ackIDs = append(m.ackIDs, id)
	return m.acked[id]
}

type mockThresholds struct {
	current   models.Thresholds
	updateErr error
	lastActor service.Identity
	lastT     models.Thresholds
	calls     int
}

func (m *mockThresholds) Current() models.Thresholds { return m.current }
func (m *mockThresholds) Update(ctx context.Context, actor service.Identity, t models.Thresholds) (models.Thresholds, error) {
	m.calls++
	m.lastActor = actor
	m.lastT = t
	return t, m.updateErr
}

type mockPreferences struct {
	current   models.Preferences
	updateErr error
	last      service.PreferenceUpdate
}

func (m *mockPreferences) Current() models.Preferences { return m.current }
func (m *mockPreferences) Update(ctx context.Context, u service.PreferenceUpdate) (models.Preferences, error) {
	m.last = u
	if m.updateErr != nil {
		return m.current, m.updateErr
	}
	if u.SoundEnabled != nil {
		m.current.SoundEnabled = *u.SoundEnabled
	}
	if u.NotificationsEnabled != nil {
		m.current.NotificationsEnabled = *u.NotificationsEnabled
	}
	return m.current, nil
}

type mockAudit struct {
	resp   []models.AuditEntry
	err    error
	last   service.AuditFilter
	called int
}

func (m *mockAudit) Record(ctx context.Context, actor service.Identity, action string) {}
func (m *mockAudit) List(ctx context.Context, f service.AuditFilter) ([]models.AuditEntry, error) {
	m.called++
	m.last = f
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

// newTestServices returns a Service with every dependency mocked and a
// viewer identity behind any bearer token.
func newTestServices() (*service.Service, *mockAuth) {
	auth := &mockAuth{parseID: service.Identity{UserID: 1, Username: "viewer", Role: models.RoleViewer}}
	return &service.Service{
		Authorization: auth,
		Sessions:      &mockSessions{},
		Monitoring:    &mockMonitoring{},
		Alerts:        &mockAlerts{},
		Thresholds:    &mockThresholds{},
		Preferences:   &mockPreferences{},
		AuditLog:      &mockAudit{},
	}, auth
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
