package service

import (
	"context"
	"sync"
	"time"

	"envmonitor/internal/models"
)

// mockAuthRepo is a lightweight in-test mock for repository.Authorization.
type mockAuthRepo struct {
	CreateFn        func(username, hash string, role models.Role) (int, error)
	GetByUsernameFn func(username string) (*models.User, error)
	CountFn         func() (int, error)

	createCalls []struct {
		username string
		hash     string
		role     models.Role
	}
	getCalls []string
}

func (m *mockAuthRepo) Create(username, hash string, role models.Role) (int, error) {
	m.createCalls = append(m.createCalls, struct {
		username string
		hash     string
		role     models.Role
	}{username: username, hash: hash, role: role})
	return m.CreateFn(username, hash, role)
}

func (m *mockAuthRepo) GetByUsername(username string) (*models.User, error) {
	m.getCalls = append(m.getCalls, username)
	return m.GetByUsernameFn(username)
}

func (m *mockAuthRepo) Count() (int, error) {
	if m.CountFn == nil {
		return 0, nil
	}
	return m.CountFn()
}

type thresholdRepoStub struct {
	loadResp  models.Thresholds
	loadFound bool
	loadErr   error
	saveErr   error
	saved     []models.Thresholds
}

func (s *thresholdRepoStub) Load(ctx context.Context) (models.Thresholds, bool, error) {
	return s.loadResp, s.loadFound, s.loadErr
}

func (s *thresholdRepoStub) Save(ctx context.Context, t models.Thresholds) error {
	s.saved = append(s.saved, t)
	return s.saveErr
}

type preferenceRepoStub struct {
	loadResp  models.Preferences
	loadFound bool
	loadErr   error
	saveErr   error
	saved     []models.Preferences
}

func (s *preferenceRepoStub) Load(ctx context.Context) (models.Preferences, bool, error) {
	return s.loadResp, s.loadFound, s.loadErr
}

func (s *preferenceRepoStub) Save(ctx context.Context, p models.Preferences) error {
	s.saved = append(s.saved, p)
	return s.saveErr
}

type auditRepoStub struct {
	appendErr error
	appended  []models.AuditEntry

	listResp []models.AuditEntry
	listErr  error
	gotFrom  time.Time
	gotTo    time.Time
	gotLimit int
	calls    int
}

func (s *auditRepoStub) Append(ctx context.Context, e models.AuditEntry) error {
	s.appended = append(s.appended, e)
	return s.appendErr
}

func (s *auditRepoStub) List(ctx context.Context, from, to time.Time, limit int) ([]models.AuditEntry, error) {
	s.calls++
	s.gotFrom, s.gotTo, s.gotLimit = from, to, limit
	return s.listResp, s.listErr
}

type gateStub struct {
	mu      sync.Mutex
	resumes int
	pauses  int
}

func (g *gateStub) Resume() {
	g.mu.Lock()
	g.resumes++
	g.mu.Unlock()
}

func (g *gateStub) Pause() {
	g.mu.Lock()
	g.pauses++
	g.mu.Unlock()
}

func (g *gateStub) counts() (int, int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.resumes, g.pauses
}
