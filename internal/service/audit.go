package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"envmonitor/internal/logger"
	"envmonitor/internal/models"
	"envmonitor/internal/repository"
)

type AuditService struct {
	auditRepo repository.AuditRepo
	log       *logger.Logger
}

func NewAuditService(auditRepo repository.AuditRepo, log *logger.Logger) *AuditService {
	if log == nil {
		log = logger.Nop()
	}
	return &AuditService{auditRepo: auditRepo, log: log}
}

var (
	errInvalidTimeRange = errors.New("invalid time range: From must be <= To")
)

// normalizeToUTC returns t in UTC, preserving zero time values.
func normalizeToUTC(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.UTC()
}

// normalizeAndValidateFilter prepares query parameters and validates the time range.
func normalizeAndValidateFilter(f AuditFilter) (time.Time, time.Time, error) {
	from := normalizeToUTC(f.From)
	to := normalizeToUTC(f.To)

	if !from.IsZero() && !to.IsZero() && from.After(to) {
		return time.Time{}, time.Time{}, errInvalidTimeRange
	}
	return from, to, nil
}

// Record appends an audit entry. Failures are logged and otherwise ignored.
func (s *AuditService) Record(ctx context.Context, actor Identity, action string) {
	action = strings.TrimSpace(action)
	if action == "" {
		return
	}
	err := s.auditRepo.Append(ctx, models.AuditEntry{
		UserID:   actor.UserID,
		Username: actor.Username,
		Action:   action,
	})
	if err != nil {
		s.log.Warnw("audit_record_failed", "user_id", actor.UserID, "action", action, "err", err)
	}
}

func (s *AuditService) List(ctx context.Context, f AuditFilter) ([]models.AuditEntry, error) {
	from, to, err := normalizeAndValidateFilter(f)
	if err != nil {
		return nil, err
	}
	return s.auditRepo.List(ctx, from, to, f.Limit)
}
