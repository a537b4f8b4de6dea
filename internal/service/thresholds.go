package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"sync"
	"time"

	"envmonitor/internal/logger"
	"envmonitor/internal/models"
	"envmonitor/internal/repository"
)

var (
	// ErrThresholdsNotPersisted means the update is live locally but the
	// store rejected it. Nothing retries it.
	ErrThresholdsNotPersisted = errors.New("thresholds applied locally but not persisted")
	ErrInvalidThreshold       = errors.New("thresholds must be finite numbers")
)

type auditRecorder interface {
	Record(ctx context.Context, actor Identity, action string)
}

// ThresholdService holds the single live threshold version. High and Low
// bounds are not ordered against each other.
type ThresholdService struct {
	repo  repository.ThresholdRepo
	audit auditRecorder
	log   *logger.Logger

	mu      sync.RWMutex
	current models.Thresholds
}

func NewThresholdService(repo repository.ThresholdRepo, audit auditRecorder, defaults models.Thresholds, log *logger.Logger) *ThresholdService {
	if log == nil {
		log = logger.Nop()
	}
	return &ThresholdService{repo: repo, audit: audit, log: log, current: defaults}
}

func (s *ThresholdService) Current() models.Thresholds {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Load replaces the defaults with the stored configuration when one exists.
func (s *ThresholdService) Load(ctx context.Context) error {
	t, found, err := s.repo.Load(ctx)
	if err != nil {
		return fmt.Errorf("load thresholds: %w", err)
	}
	if !found {
		s.log.Infow("thresholds_defaults_in_use")
		return nil
	}
	s.mu.Lock()
	s.current = t
	s.mu.Unlock()
	return nil
}

func (s *ThresholdService) Update(ctx context.Context, actor Identity, t models.Thresholds) (models.Thresholds, error) {
	for _, v := range []float64{t.TempHigh, t.TempLow, t.HumHigh, t.HumLow} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return s.Current(), ErrInvalidThreshold
		}
	}
	t.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	s.mu.Lock()
	s.current = t
	s.mu.Unlock()

	if err := s.repo.Save(ctx, t); err != nil {
		s.log.Errorw("thresholds_persist_failed", "user_id", actor.UserID, "err", err)
		return t, fmt.Errorf("%w: %v", ErrThresholdsNotPersisted, err)
	}
	if s.audit != nil {
		s.audit.Record(ctx, actor, thresholdAuditAction(t))
	}
	return t, nil
}

func thresholdAuditAction(t models.Thresholds) string {
	return fmt.Sprintf("Updated environment thresholds: T(%s-%s) H(%s-%s)",
		num(t.TempLow), num(t.TempHigh), num(t.HumLow), num(t.HumHigh))
}

func num(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
