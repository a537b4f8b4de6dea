package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"envmonitor/internal/models"

	"github.com/google/uuid"
)

type AuditSQLite struct {
	db *sql.DB
}

func NewAuditSQLite(db *sql.DB) *AuditSQLite { return &AuditSQLite{db: db} }

const (
	insertAuditSQL = `
		INSERT INTO audit_logs (id, occurred_at, user_id, username, action)
		VALUES (?, ?, ?, ?, ?)
	`
	defaultAuditLimit = 30
	maxAuditLimit     = 500
)

// Append inserts a new entry. If ID or OccurredAt are empty, they’re set.
func (r *AuditSQLite) Append(ctx context.Context, e models.AuditEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.OccurredAt.IsZero() {
		e.OccurredAt = time.Now().UTC()
	} else {
		e.OccurredAt = e.OccurredAt.UTC()
	}

	_, err := r.db.ExecContext(ctx, insertAuditSQL,
		e.ID,
		e.OccurredAt,
		e.UserID,
		e.Username,
		strings.TrimSpace(e.Action),
	)
	if err != nil {
		return fmt.Errorf("insert audit entry: %w", err)
	}
	return nil
}

// List returns entries within [from, to] (zero bounds are open), newest
// first, capped at limit.
func (r *AuditSQLite) List(ctx context.Context, from, to time.Time, limit int) ([]models.AuditEntry, error) {
	var (
		conds []string
		args  []any
	)

	if !from.IsZero() {
		conds = append(conds, "occurred_at >= ?")
		args = append(args, from.UTC())
	}
	if !to.IsZero() {
		conds = append(conds, "occurred_at <= ?")
		args = append(args, to.UTC())
	}
	if limit <= 0 {
		limit = defaultAuditLimit
	}
	if limit > maxAuditLimit {
		limit = maxAuditLimit
	}

	q := `SELECT id, occurred_at, user_id, username, action FROM audit_logs`
	if len(conds) > 0 {
		q += " WHERE " + strings.Join(conds, " AND ")
	}
	q += " ORDER BY occurred_at DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query audit entries: %w", err)
	}
	defer rows.Close()

	out := make([]models.AuditEntry, 0, limit)
	for rows.Next() {
		var e models.AuditEntry
		if err := rows.Scan(&e.ID, &e.OccurredAt, &e.UserID, &e.Username, &e.Action); err != nil {
			return nil, fmt.Errorf("scan audit entry: %w", err)
		}
		e.OccurredAt = e.OccurredAt.UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
