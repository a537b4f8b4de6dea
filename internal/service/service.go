package service

import (
	"context"
	"errors"
	"time"

	"envmonitor/internal/logger"
	"envmonitor/internal/models"
	"envmonitor/internal/monitor"
	"envmonitor/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (Token, error)
	ParseToken(accessToken string) (Identity, error)
}

// Thresholds owns the live threshold configuration read by every poll cycle.
type Thresholds interface {
	Current() models.Thresholds
	// Update applies t locally and then persists it. On a persistence
	// failure the local value stays live and ErrThresholdsNotPersisted is
	// returned.
	Update(ctx context.Context, actor Identity, t models.Thresholds) (models.Thresholds, error)
}

type Preferences interface {
	Current() models.Preferences
	Update(ctx context.Context, u PreferenceUpdate) (models.Preferences, error)
}

// Sessions tracks authenticated sessions and gates polling on them.
type Sessions interface {
	Open(userID int, expiresAt time.Time)
	Close(userID int)
	Run(ctx context.Context, every time.Duration)
}

// Monitoring is the read model of the detection engine.
type Monitoring interface {
	State() models.Snapshot
	History() []models.Sample
	Refresh() bool
	SetRange(r models.TimeRange) error
}

type Alerts interface {
	List() []models.Incident
	Acknowledge(id string) bool
}

// AuditLog exposes the operator action history.
type AuditLog interface {
	Record(ctx context.Context, actor Identity, action string)
	List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error)
}

type Service struct {
	Authorization
	Thresholds
	Preferences
	Sessions
	Monitoring
	Alerts
	AuditLog

	// Poller is driven by main via Run.
	Poller *monitor.Poller

	thresholds *ThresholdService
	prefs      *PreferenceService
}

// Options carries what the services need beyond the repositories.
type Options struct {
	Auth               AuthConfig
	Feed               monitor.Feed
	Dispatcher         *monitor.Dispatcher
	AlertCapacity      int
	PollInterval       time.Duration
	Range              models.TimeRange
	DefaultThresholds  models.Thresholds
	DefaultPreferences models.Preferences
	OnIncident         func(models.Incident)
	Log                *logger.Logger
}

// NewService wires the repository layer and the detection engine into
// concrete services.
func NewService(repos *repository.Repository, opts Options) (*Service, error) {
	if opts.Feed == nil {
		return nil, errors.New("service: feed is required")
	}
	if opts.Log == nil {
		opts.Log = logger.Nop()
	}

	audit := NewAuditService(repos.AuditRepo, opts.Log.Component("audit"))
	thresholds := NewThresholdService(repos.ThresholdRepo, audit, opts.DefaultThresholds, opts.Log.Component("thresholds"))
	prefs := NewPreferenceService(repos.PreferenceRepo, opts.DefaultPreferences)

	station := monitor.NewStation(opts.AlertCapacity)
	poller, err := monitor.NewPoller(monitor.PollerConfig{
		Feed:        opts.Feed,
		Station:     station,
		Thresholds:  thresholds,
		Preferences: prefs,
		Dispatcher:  opts.Dispatcher,
		Interval:    opts.PollInterval,
		Range:       opts.Range,
		Log:         opts.Log.Component("poller"),
		OnIncident:  opts.OnIncident,
	})
	if err != nil {
		return nil, err
	}

	return &Service{
		Authorization: NewAuthService(repos.Auth, opts.Auth),
		Thresholds:    thresholds,
		Preferences:   prefs,
		Sessions:      NewSessionService(poller, opts.Log.Component("sessions")),
		Monitoring:    NewMonitoringService(poller, thresholds),
		Alerts:        NewAlertService(station.Alerts()),
		AuditLog:      audit,
		Poller:        poller,
		thresholds:    thresholds,
		prefs:         prefs,
	}, nil
}

// Restore loads the persisted thresholds and preferences. Missing rows keep
// the configured defaults.
func (s *Service) Restore(ctx context.Context) error {
	if err := s.thresholds.Load(ctx); err != nil {
		return err
	}
	return s.prefs.Load(ctx)
}
