package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"chargerelay/internal/models"
)

// ErrSessionNotFound represents missing session rows.
var ErrSessionNotFound = errors.New("session not found")

// SessionRepository handles persistence of charging sessions.
type SessionRepository struct {
	db *sql.DB
}

// NewSessionRepository returns repository.
func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new open session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	const query = `
		INSERT INTO charging_sessions (user_id, port_id, vehicle_id, start_time)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		session.UserID,
		session.PortID,
		session.VehicleID,
		session.StartTime,
	).Scan(&session.ID)
}

// Get fetches a session by id.
func (r *SessionRepository) Get(ctx context.Context, sessionID int64) (*models.Session, error) {
	const query = `
		SELECT id, user_id, port_id, vehicle_id, start_time, end_time, duration_minutes, energy_kwh, cost
		FROM charging_sessions
		WHERE id = $1
	`
	var s models.Session
	err := r.db.QueryRowContext(ctx, query, sessionID).Scan(
		&s.ID,
		&s.UserID,
		&s.PortID,
		&s.VehicleID,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.EnergyKWh,
		&s.Cost,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// Close finalizes an open session with the computed fields. The
// `end_time IS NULL` guard makes the close idempotence-safe: a session
// already closed by a concurrent call reports false.
func (r *SessionRepository) Close(ctx context.Context, sessionID int64, endTime time.Time, durationMinutes, energyKWh, cost float64) (bool, error) {
	const query = `
		UPDATE charging_sessions
		SET end_time = $2,
		    duration_minutes = $3,
		    energy_kwh = $4,
		    cost = $5
		WHERE id = $1 AND end_time IS NULL
	`
	result, err := r.db.ExecContext(ctx, query, sessionID, endTime, durationMinutes, energyKWh, cost)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// ListByUser returns the user's sessions with joined display fields,
// newest first.
func (r *SessionRepository) ListByUser(ctx context.Context, userID int64) ([]models.SessionDetail, error) {
	const query = `
		SELECT s.id, s.user_id, s.port_id, s.vehicle_id, s.start_time, s.end_time,
		       s.duration_minutes, s.energy_kwh, s.cost,
		       COALESCE(st.operator_name, 'Unknown'),
		       COALESCE(v.plate, 'Unknown'),
		       COALESCE(v.maker_model, 'Unknown'),
		       COALESCE(pay.status, 'Pending')
		FROM charging_sessions s
		LEFT JOIN charging_ports p ON p.id = s.port_id
		LEFT JOIN charging_stations st ON st.id = p.station_id
		LEFT JOIN vehicles v ON v.id = s.vehicle_id
		LEFT JOIN payments pay ON pay.session_id = s.id
		WHERE s.user_id = $1
		ORDER BY s.start_time DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.SessionDetail
	for rows.Next() {
		var s models.SessionDetail
		if err := rows.Scan(
			&s.ID,
			&s.UserID,
			&s.PortID,
			&s.VehicleID,
			&s.StartTime,
			&s.EndTime,
			&s.DurationMinutes,
			&s.EnergyKWh,
			&s.Cost,
			&s.StationName,
			&s.VehiclePlate,
			&s.VehicleModel,
			&s.PaymentStatus,
		); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// OpenSessionByPort returns the open session on a port, if any.
func (r *SessionRepository) OpenSessionByPort(ctx context.Context, portID int64) (*models.Session, error) {
	const query = `
		SELECT id, user_id, port_id, vehicle_id, start_time, end_time, duration_minutes, energy_kwh, cost
		FROM charging_sessions
		WHERE port_id = $1 AND end_time IS NULL
		LIMIT 1
	`
	var s models.Session
	err := r.db.QueryRowContext(ctx, query, portID).Scan(
		&s.ID,
		&s.UserID,
		&s.PortID,
		&s.VehicleID,
		&s.StartTime,
		&s.EndTime,
		&s.DurationMinutes,
		&s.EnergyKWh,
		&s.Cost,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}
