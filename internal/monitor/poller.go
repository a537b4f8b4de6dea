package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"envmonitor/internal/logger"
	"envmonitor/internal/metrics"
	"envmonitor/internal/models"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Feed is the telemetry source polled every cycle.
type Feed interface {
	// Latest returns the newest sample, or nil when the feed is empty.
	Latest(ctx context.Context) (*models.Sample, error)
	History(ctx context.Context, w models.HistoryWindow) ([]models.Sample, error)
}

// ThresholdSource supplies the live threshold version.
type ThresholdSource interface {
	Current() models.Thresholds
}

// PreferenceSource supplies the live notification toggles.
type PreferenceSource interface {
	Current() models.Preferences
}

const (
	DefaultPollInterval = 20 * time.Second
	DefaultRange        = models.Range24h
)

var ErrInvalidRange = errors.New("invalid range: must be 24h, 7d or 30d")

// PollerConfig collects the Poller's collaborators.
type PollerConfig struct {
	Feed        Feed
	Station     *Station
	Thresholds  ThresholdSource
	Preferences PreferenceSource
	Dispatcher  *Dispatcher
	Interval    time.Duration
	Range       models.TimeRange
	Log         *logger.Logger

	// OnIncident, when set, observes every raised incident after commit.
	OnIncident func(models.Incident)
	// Now and NewID default to time.Now().UTC and uuid.NewString.
	Now   func() time.Time
	NewID func() string
}

// Poller drives poll cycles for one Station. Cycles never overlap. Ticks
// and manual triggers are ignored while no session is active.
type Poller struct {
	feed       Feed
	station    *Station
	thresholds ThresholdSource
	prefs      PreferenceSource
	dispatcher *Dispatcher
	interval   time.Duration
	onIncident func(models.Incident)
	now        func() time.Time
	newID      func() string
	log        *logger.Logger

	cycleMu sync.Mutex
	trigger chan struct{}

	mu            sync.Mutex
	rng           models.TimeRange
	active        bool
	sessionCtx    context.Context
	cancelSession context.CancelFunc
}

func NewPoller(cfg PollerConfig) (*Poller, error) {
	if cfg.Feed == nil || cfg.Station == nil || cfg.Thresholds == nil {
		return nil, errors.New("poller requires a feed, a station and a threshold source")
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultPollInterval
	}
	if cfg.Range == "" {
		cfg.Range = DefaultRange
	}
	if _, ok := cfg.Range.Window(); !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, cfg.Range)
	}
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return time.Now().UTC() }
	}
	if cfg.NewID == nil {
		cfg.NewID = uuid.NewString
	}
	if cfg.Log == nil {
		cfg.Log = logger.Nop()
	}
	return &Poller{
		feed:       cfg.Feed,
		station:    cfg.Station,
		thresholds: cfg.Thresholds,
		prefs:      cfg.Preferences,
		dispatcher: cfg.Dispatcher,
		interval:   cfg.Interval,
		onIncident: cfg.OnIncident,
		now:        cfg.Now,
		newID:      cfg.NewID,
		log:        cfg.Log,
		trigger:    make(chan struct{}, 1),
		rng:        cfg.Range,
	}, nil
}

func (p *Poller) Station() *Station { return p.station }

func (p *Poller) Range() models.TimeRange {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rng
}

// SetRange selects the history window used from the next cycle on and
// requests a refresh.
func (p *Poller) SetRange(r models.TimeRange) error {
	if _, ok := r.Window(); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidRange, r)
	}
	p.mu.Lock()
	p.rng = r
	p.mu.Unlock()
	p.Trigger()
	return nil
}

func (p *Poller) Active() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.active
}

// Resume starts polling for a newly established session and requests an
// immediate cycle.
func (p *Poller) Resume() {
	p.mu.Lock()
	if p.active {
		p.mu.Unlock()
		return
	}
	p.active = true
	p.sessionCtx, p.cancelSession = context.WithCancel(context.Background())
	p.mu.Unlock()

	p.log.Infow("polling_resumed")
	p.Trigger()
}

// Pause stops polling: the in-flight cycle is cancelled before it can
// commit and the Station is reset once it has returned.
func (p *Poller) Pause() {
	p.mu.Lock()
	if !p.active {
		p.mu.Unlock()
		return
	}
	p.active = false
	p.cancelSession()
	p.sessionCtx, p.cancelSession = nil, nil
	p.mu.Unlock()

	p.cycleMu.Lock()
	p.station.Reset()
	p.cycleMu.Unlock()
	metrics.ActiveBreaches.Set(0)
	metrics.ConnectionUp.Set(0)
	p.log.Infow("polling_paused")
}

// Trigger requests a cycle outside the fixed cadence. Requests made while a
// cycle is pending coalesce. It reports false when no session is active.
func (p *Poller) Trigger() bool {
	if !p.Active() {
		return false
	}
	select {
	case p.trigger <- struct{}{}:
	default:
	}
	return true
}

// Run drives cycles from the ticker and manual triggers until ctx is done.
func (p *Poller) Run(ctx context.Context) {
	t := time.NewTicker(p.interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			p.Pause()
			return
		case <-t.C:
		case <-p.trigger:
		}
		p.runSessionCycle(ctx)
	}
}

func (p *Poller) runSessionCycle(ctx context.Context) {
	p.mu.Lock()
	sctx := p.sessionCtx
	active := p.active
	p.mu.Unlock()
	if !active {
		return
	}

	cctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(sctx, cancel)
	defer func() {
		stop()
		cancel()
	}()
	// failures are recorded on the Station and logged by Cycle
	_ = p.Cycle(cctx)
}

// Cycle runs one poll: both fetches, then evaluation, tracking and alert
// log append. A failed or cancelled fetch leaves the Station's sample,
// history and breach state untouched. Raised incidents are handed to the
// Dispatcher once the cycle lock is released.
func (p *Poller) Cycle(ctx context.Context) error {
	raised, err := p.cycle(ctx)
	if err != nil {
		return err
	}

	var prefs models.Preferences
	if p.prefs != nil {
		prefs = p.prefs.Current()
	}
	for _, inc := range raised {
		if p.onIncident != nil {
			p.onIncident(inc)
		}
		p.dispatcher.Dispatch(ctx, prefs, inc)
	}
	return nil
}

func (p *Poller) cycle(ctx context.Context) ([]models.Incident, error) {
	p.cycleMu.Lock()
	defer p.cycleMu.Unlock()

	p.station.beginAttempt()
	window, _ := p.Range().Window()

	var (
		latest  *models.Sample
		history []models.Sample
	)
	started := time.Now()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := p.feed.Latest(gctx)
		if err != nil {
			return fmt.Errorf("fetch latest sample: %w", err)
		}
		latest = s
		return nil
	})
	g.Go(func() error {
		h, err := p.feed.History(gctx, window)
		if err != nil {
			return fmt.Errorf("fetch history: %w", err)
		}
		history = h
		return nil
	})
	err := g.Wait()
	metrics.PollDuration.Observe(time.Since(started).Seconds())

	if ctx.Err() != nil {
		metrics.PollCyclesTotal.WithLabelValues("cancelled").Inc()
		return nil, ctx.Err()
	}
	if err != nil {
		p.station.fail(err)
		metrics.PollCyclesTotal.WithLabelValues("error").Inc()
		metrics.ConnectionUp.Set(0)
		p.log.Warnw("poll_cycle_failed", "err", err)
		return nil, err
	}

	now := p.now()
	raised, ok := p.station.commit(ctx, latest, history, p.thresholds.Current(), now, p.newID)
	if !ok {
		metrics.PollCyclesTotal.WithLabelValues("cancelled").Inc()
		return nil, ctx.Err()
	}
	metrics.PollCyclesTotal.WithLabelValues("ok").Inc()
	metrics.ConnectionUp.Set(1)
	metrics.LastSyncTimestamp.Set(float64(now.Unix()))
	metrics.ActiveBreaches.Set(float64(len(p.station.ActiveBreaches())))
	for _, inc := range raised {
		metrics.IncidentsTotal.WithLabelValues(string(inc.Key)).Inc()
		p.log.Infow("incident_raised", "id", inc.ID, "key", inc.Key, "value", inc.Value, "threshold", inc.Threshold)
	}
	p.log.Debugw("poll_cycle_ok", "history", len(history), "raised", len(raised))
	return raised, nil
}
