package repository

import (
	"context"
	"database/sql"

	"chargerelay/internal/models"
)

// MaintenanceRepository reads the maintenance log for admin views.
type MaintenanceRepository struct {
	db *sql.DB
}

// NewMaintenanceRepository returns repository.
func NewMaintenanceRepository(db *sql.DB) *MaintenanceRepository {
	return &MaintenanceRepository{db: db}
}

// ListRecent returns the newest maintenance entries with station names.
func (r *MaintenanceRepository) ListRecent(ctx context.Context, limit int) ([]models.MaintenanceLog, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `
		SELECT m.id, m.station_id, m.port_id, m.issue, m.maintain_date, m.fix_date, m.status, m.technician,
		       COALESCE(st.operator_name, 'Unknown')
		FROM maintenance_logs m
		LEFT JOIN charging_stations st ON st.id = m.station_id
		ORDER BY m.maintain_date DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []models.MaintenanceLog
	for rows.Next() {
		var m models.MaintenanceLog
		if err := rows.Scan(
			&m.ID,
			&m.StationID,
			&m.PortID,
			&m.Issue,
			&m.MaintainDate,
			&m.FixDate,
			&m.Status,
			&m.Technician,
			&m.StationName,
		); err != nil {
			return nil, err
		}
		logs = append(logs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
