package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargerelay/internal/models"
)

// ErrPortNotFound represents missing port rows.
var ErrPortNotFound = errors.New("port not found")

// PortRepository manages charging port persistence.
type PortRepository struct {
	db *sql.DB
}

// NewPortRepository returns repository.
func NewPortRepository(db *sql.DB) *PortRepository {
	return &PortRepository{db: db}
}

// Create inserts a new port.
func (r *PortRepository) Create(ctx context.Context, port *models.Port) error {
	const query = `
		INSERT INTO charging_ports (station_id, connector_type, max_power_kw, status, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, updated_at
	`
	return r.db.QueryRowContext(ctx, query,
		port.StationID,
		port.ConnectorType,
		port.MaxPowerKW,
		port.Status,
	).Scan(&port.ID, &port.UpdatedAt)
}

// Get fetches a port by id.
func (r *PortRepository) Get(ctx context.Context, portID int64) (*models.Port, error) {
	const query = `
		SELECT id, station_id, connector_type, max_power_kw, status, updated_at
		FROM charging_ports
		WHERE id = $1
	`
	var p models.Port
	err := r.db.QueryRowContext(ctx, query, portID).Scan(
		&p.ID,
		&p.StationID,
		&p.ConnectorType,
		&p.MaxPowerKW,
		&p.Status,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPortNotFound
		}
		return nil, err
	}
	return &p, nil
}

// CompareAndSetStatus transitions a port from one status to another in a
// single conditional UPDATE. It reports false when the port was not in
// the expected status, which makes it the arbiter between two racing
// session starts on the same port.
func (r *PortRepository) CompareAndSetStatus(ctx context.Context, portID int64, from, to string) (bool, error) {
	const query = `
		UPDATE charging_ports
		SET status = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status = $2
	`
	result, err := r.db.ExecContext(ctx, query, portID, from, to)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// SetStatus forces a port into the given status unconditionally and
// returns the previous status for audit logging.
func (r *PortRepository) SetStatus(ctx context.Context, portID int64, status string) (string, error) {
	const query = `
		UPDATE charging_ports p
		SET status = $2,
		    updated_at = NOW()
		FROM (SELECT status FROM charging_ports WHERE id = $1 FOR UPDATE) old
		WHERE p.id = $1
		RETURNING old.status
	`
	var oldStatus string
	err := r.db.QueryRowContext(ctx, query, portID, status).Scan(&oldStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrPortNotFound
		}
		return "", err
	}
	return oldStatus, nil
}

// List returns ports, optionally filtered by status, joined ordering by station.
func (r *PortRepository) List(ctx context.Context, status string) ([]models.Port, error) {
	query := `
		SELECT id, station_id, connector_type, max_power_kw, status, updated_at
		FROM charging_ports
	`
	var args []interface{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY station_id, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPorts(rows)
}

// ListByStatuses returns ports whose status is any of the given values.
func (r *PortRepository) ListByStatuses(ctx context.Context, statuses []string) ([]models.Port, error) {
	const query = `
		SELECT id, station_id, connector_type, max_power_kw, status, updated_at
		FROM charging_ports
		WHERE status = ANY($1)
		ORDER BY status DESC, station_id, id
	`
	rows, err := r.db.QueryContext(ctx, query, statuses)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPorts(rows)
}

// ListByStation returns all ports of one station.
func (r *PortRepository) ListByStation(ctx context.Context, stationID int64) ([]models.Port, error) {
	const query = `
		SELECT id, station_id, connector_type, max_power_kw, status, updated_at
		FROM charging_ports
		WHERE station_id = $1
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query, stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanPorts(rows)
}

func scanPorts(rows *sql.Rows) ([]models.Port, error) {
	var ports []models.Port
	for rows.Next() {
		var p models.Port
		if err := rows.Scan(
			&p.ID,
			&p.StationID,
			&p.ConnectorType,
			&p.MaxPowerKW,
			&p.Status,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		ports = append(ports, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ports, nil
}
