package repository

import (
	"context"
	"database/sql"

	"chargerelay/internal/models"
)

// StatusLogRepository appends to the port status audit trail.
// Rows are insert-only; no update or delete path exists.
type StatusLogRepository struct {
	db *sql.DB
}

// NewStatusLogRepository returns repository.
func NewStatusLogRepository(db *sql.DB) *StatusLogRepository {
	return &StatusLogRepository{db: db}
}

// Append records one status transition.
func (r *StatusLogRepository) Append(ctx context.Context, entry *models.PortStatusLog) error {
	const query = `
		INSERT INTO port_status_logs (port_id, old_status, new_status, changed_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		entry.PortID,
		entry.OldStatus,
		entry.NewStatus,
		entry.ChangedAt,
	).Scan(&entry.ID)
}

// ListByPort returns the transition history for one port, newest first.
func (r *StatusLogRepository) ListByPort(ctx context.Context, portID int64, limit int) ([]models.PortStatusLog, error) {
	if limit <= 0 {
		limit = 50
	}
	const query = `
		SELECT id, port_id, old_status, new_status, changed_at
		FROM port_status_logs
		WHERE port_id = $1
		ORDER BY changed_at DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, portID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.PortStatusLog
	for rows.Next() {
		var e models.PortStatusLog
		if err := rows.Scan(&e.ID, &e.PortID, &e.OldStatus, &e.NewStatus, &e.ChangedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}
