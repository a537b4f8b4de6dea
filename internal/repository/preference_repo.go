package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"envmonitor/internal/models"
)

type PreferenceSQLite struct {
	db *sql.DB
}

func NewPreferenceSQLite(db *sql.DB) *PreferenceSQLite {
	return &PreferenceSQLite{db: db}
}

const (
	preferencesRowID = 1

	upsertPreferencesSQL = `
		INSERT INTO preferences (id, sound_enabled, notifications_enabled, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			sound_enabled=excluded.sound_enabled,
			notifications_enabled=excluded.notifications_enabled,
			updated_at=excluded.updated_at
	`

	selectPreferencesSQL = `
		SELECT sound_enabled, notifications_enabled FROM preferences WHERE id=?
	`
)

func (r *PreferenceSQLite) Save(ctx context.Context, p models.Preferences) error {
	_, err := r.db.ExecContext(ctx, upsertPreferencesSQL,
		preferencesRowID,
		p.SoundEnabled,
		p.NotificationsEnabled,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert preferences: %w", err)
	}
	return nil
}

func (r *PreferenceSQLite) Load(ctx context.Context) (models.Preferences, bool, error) {
	var p models.Preferences
	err := r.db.QueryRowContext(ctx, selectPreferencesSQL, preferencesRowID).Scan(
		&p.SoundEnabled,
		&p.NotificationsEnabled,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Preferences{}, false, nil
		}
		return models.Preferences{}, false, fmt.Errorf("select preferences: %w", err)
	}
	return p, true, nil
}
