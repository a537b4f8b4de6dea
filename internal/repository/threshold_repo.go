package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"envmonitor/internal/models"
)

type ThresholdSQLite struct {
	db *sql.DB
}

func NewThresholdSQLite(db *sql.DB) *ThresholdSQLite {
	return &ThresholdSQLite{db: db}
}

const (
	thresholdsRowID = "global"

	// last writer wins; there is no version check
	upsertThresholdsSQL = `
		INSERT INTO thresholds (id, temp_high, temp_low, hum_high, hum_low, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			temp_high=excluded.temp_high,
			temp_low=excluded.temp_low,
			hum_high=excluded.hum_high,
			hum_low=excluded.hum_low,
			updated_at=excluded.updated_at
	`

	selectThresholdsSQL = `
		SELECT temp_high, temp_low, hum_high, hum_low, updated_at
		FROM thresholds WHERE id=?
	`
)

// Save upserts the global row. A zero UpdatedAt is stamped with now.
func (r *ThresholdSQLite) Save(ctx context.Context, t models.Thresholds) error {
	ts := t.UpdatedAt
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx, upsertThresholdsSQL,
		thresholdsRowID,
		t.TempHigh,
		t.TempLow,
		t.HumHigh,
		t.HumLow,
		ts.UTC(),
	)
	if err != nil {
		return fmt.Errorf("upsert thresholds: %w", err)
	}
	return nil
}

func (r *ThresholdSQLite) Load(ctx context.Context) (models.Thresholds, bool, error) {
	var t models.Thresholds
	err := r.db.QueryRowContext(ctx, selectThresholdsSQL, thresholdsRowID).Scan(
		&t.TempHigh,
		&t.TempLow,
		&t.HumHigh,
		&t.HumLow,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Thresholds{}, false, nil
		}
		return models.Thresholds{}, false, fmt.Errorf("select thresholds: %w", err)
	}
	t.UpdatedAt = t.UpdatedAt.UTC()
	return t, true, nil
}
