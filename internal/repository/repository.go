package repository

import (
	"context"
	"database/sql"
	"time"

	"envmonitor/internal/models"
)

type Authorization interface {
	Create(username, hash string, role models.Role) (int, error)
	GetByUsername(username string) (*models.User, error)
	Count() (int, error)
}

// ThresholdRepo stores the single global threshold configuration.
type ThresholdRepo interface {
	// Load reports found=false when nothing has been saved yet.
	Load(ctx context.Context) (t models.Thresholds, found bool, err error)
	Save(ctx context.Context, t models.Thresholds) error
}

// PreferenceRepo stores the local notification toggles.
type PreferenceRepo interface {
	Load(ctx context.Context) (p models.Preferences, found bool, err error)
	Save(ctx context.Context, p models.Preferences) error
}

type AuditRepo interface {
	Append(ctx context.Context, e models.AuditEntry) error
	List(ctx context.Context, from, to time.Time, limit int) ([]models.AuditEntry, error)
}

type Repository struct {
	ThresholdRepo  ThresholdRepo
	PreferenceRepo PreferenceRepo
	AuditRepo      AuditRepo
	Auth           Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		ThresholdRepo:  NewThresholdSQLite(db),
		PreferenceRepo: NewPreferenceSQLite(db),
		AuditRepo:      NewAuditSQLite(db),
		Auth:           NewUserRepository(db),
	}
}
