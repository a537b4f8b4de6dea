package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"envmonitor/internal/logger"
	"envmonitor/internal/metrics"
	"envmonitor/internal/models"
)

// Notification is what a notifier channel receives for one incident.
type Notification struct {
	IncidentID string           `json:"incident_id"`
	Key        models.BreachKey `json:"key"`
	Severity   models.Severity  `json:"severity"`
	Title      string           `json:"title"`
	Body       string           `json:"body"`
}

// NotificationFor builds the payload for inc.
func NotificationFor(inc models.Incident) Notification {
	return Notification{
		IncidentID: inc.ID,
		Key:        inc.Key,
		Severity:   inc.Severity,
		Title:      inc.Title,
		Body:       inc.Description,
	}
}

// Notifier is a fire-and-forget side channel for incidents.
type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Channel binds a Notifier to the preference that enables it.
type Channel struct {
	Name     string
	Notifier Notifier
	Enabled  func(models.Preferences) bool
}

// SoundEnabled and NotificationsEnabled are the preference gates for the
// built-in channels.
func SoundEnabled(p models.Preferences) bool         { return p.SoundEnabled }
func NotificationsEnabled(p models.Preferences) bool { return p.NotificationsEnabled }

const (
	defaultDispatchTimeout = 5 * time.Second
	defaultQueueSize       = 32
)

type delivery struct {
	ctx context.Context
	n   Notification
}

// channelWorker delivers one channel's notifications in order.
type channelWorker struct {
	ch    Channel
	queue chan delivery
}

// Dispatcher fans an incident out to every enabled channel. Each channel
// has its own worker, so a slow or hung notifier delays only itself and
// never the caller. Failures, including panics, are logged and counted,
// never returned.
type Dispatcher struct {
	workers []*channelWorker
	timeout time.Duration
	log     *logger.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

func NewDispatcher(log *logger.Logger, timeout time.Duration, channels ...Channel) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	if timeout <= 0 {
		timeout = defaultDispatchTimeout
	}
	d := &Dispatcher{timeout: timeout, log: log}
	for _, ch := range channels {
		w := &channelWorker{ch: ch, queue: make(chan delivery, defaultQueueSize)}
		d.workers = append(d.workers, w)
		d.wg.Add(1)
		go d.run(w)
	}
	return d
}

// Dispatch queues inc on each channel whose preference gate is open and
// returns without waiting for delivery. A full queue drops the
// notification. Delivery detaches from ctx cancellation so a committed
// incident still goes out.
func (d *Dispatcher) Dispatch(ctx context.Context, prefs models.Preferences, inc models.Incident) {
	if d == nil {
		return
	}
	n := NotificationFor(inc)
	dctx := context.WithoutCancel(ctx)

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}
	for _, w := range d.workers {
		ch := w.ch
		if ch.Notifier == nil || (ch.Enabled != nil && !ch.Enabled(prefs)) {
			metrics.NotificationsTotal.WithLabelValues(ch.Name, "skipped").Inc()
			continue
		}
		select {
		case w.queue <- delivery{ctx: dctx, n: n}:
		default:
			metrics.NotificationsTotal.WithLabelValues(ch.Name, "dropped").Inc()
			d.log.Warnw("notify_dropped", "channel", ch.Name, "incident_id", inc.ID)
		}
	}
}

// Close stops accepting notifications and waits for queued ones to be
// delivered or time out.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, w := range d.workers {
		close(w.queue)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Dispatcher) run(w *channelWorker) {
	defer d.wg.Done()
	for job := range w.queue {
		if err := d.send(job.ctx, w.ch, job.n); err != nil {
			metrics.NotificationsTotal.WithLabelValues(w.ch.Name, "failed").Inc()
			d.log.Warnw("notify_failed", "channel", w.ch.Name, "incident_id", job.n.IncidentID, "err", err)
			continue
		}
		metrics.NotificationsTotal.WithLabelValues(w.ch.Name, "sent").Inc()
	}
}

func (d *Dispatcher) send(ctx context.Context, ch Channel, n Notification) (err error) {
	sctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("notifier %s panicked: %v", ch.Name, r)
		}
	}()
	return ch.Notifier.Notify(sctx, n)
}
