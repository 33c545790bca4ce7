package repository

import (
	"context"
	"database/sql"
	"time"

	"chargerelay/internal/models"
)

// ReportRepository runs the read-side aggregations behind the admin
// dashboard and user analytics. Pure projections; no caching.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository returns repository.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// PortStatusCounts returns the number of ports per status.
func (r *ReportRepository) PortStatusCounts(ctx context.Context) (map[string]int, error) {
	const query = `
		SELECT status, COUNT(*)
		FROM charging_ports
		GROUP BY status
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return counts, nil
}

// CountStations returns total stations.
func (r *ReportRepository) CountStations(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM charging_stations`).Scan(&count)
	return count, err
}

// CountActiveSessions returns the number of open sessions.
func (r *ReportRepository) CountActiveSessions(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM charging_sessions WHERE end_time IS NULL`).Scan(&count)
	return count, err
}

// CountSessionsSince returns sessions started at or after the given instant.
func (r *ReportRepository) CountSessionsSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM charging_sessions WHERE start_time >= $1`, since).Scan(&count)
	return count, err
}

// TotalRevenue sums all payments.
func (r *ReportRepository) TotalRevenue(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments`).Scan(&total)
	return total, err
}

// RevenueSince sums payments dated at or after the given instant.
func (r *ReportRepository) RevenueSince(ctx context.Context, since time.Time) (float64, error) {
	var total float64
	err := r.db.QueryRowContext(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM payments WHERE pay_date >= $1`, since).Scan(&total)
	return total, err
}

// StationRevenue sums payments on a station's sessions within [from, to).
func (r *ReportRepository) StationRevenue(ctx context.Context, stationID int64, from, to time.Time) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(pay.amount), 0)
		FROM payments pay
		JOIN charging_sessions s ON s.id = pay.session_id
		JOIN charging_ports p ON p.id = s.port_id
		WHERE p.station_id = $1
		  AND pay.pay_date >= $2
		  AND pay.pay_date < $3
	`
	var total float64
	err := r.db.QueryRowContext(ctx, query, stationID, from, to).Scan(&total)
	return total, err
}

// CountStationSessions returns all-time session count on a station's ports.
func (r *ReportRepository) CountStationSessions(ctx context.Context, stationID int64) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM charging_sessions s
		JOIN charging_ports p ON p.id = s.port_id
		WHERE p.station_id = $1
	`
	var count int
	err := r.db.QueryRowContext(ctx, query, stationID).Scan(&count)
	return count, err
}

// UserSpending sums payments across the user's sessions.
func (r *ReportRepository) UserSpending(ctx context.Context, userID int64) (float64, error) {
	const query = `
		SELECT COALESCE(SUM(pay.amount), 0)
		FROM payments pay
		JOIN charging_sessions s ON s.id = pay.session_id
		WHERE s.user_id = $1
	`
	var total float64
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&total)
	return total, err
}

// UserSessionStats aggregates the user's sessions in one pass.
func (r *ReportRepository) UserSessionStats(ctx context.Context, userID int64) (sessions int, energyKWh, avgDurationMinutes float64, err error) {
	const query = `
		SELECT COUNT(*),
		       COALESCE(SUM(energy_kwh), 0),
		       COALESCE(AVG(duration_minutes), 0)
		FROM charging_sessions
		WHERE user_id = $1
	`
	err = r.db.QueryRowContext(ctx, query, userID).Scan(&sessions, &energyKWh, &avgDurationMinutes)
	return sessions, energyKWh, avgDurationMinutes, err
}

// UserFavoriteStations returns the stations the user closed the most sessions at.
func (r *ReportRepository) UserFavoriteStations(ctx context.Context, userID int64, limit int) ([]models.FavoriteStation, error) {
	if limit <= 0 {
		limit = 5
	}
	const query = `
		SELECT st.id, st.operator_name, COUNT(*), COALESCE(SUM(s.cost), 0)
		FROM charging_sessions s
		JOIN charging_ports p ON p.id = s.port_id
		JOIN charging_stations st ON st.id = p.station_id
		WHERE s.user_id = $1 AND s.end_time IS NOT NULL
		GROUP BY st.id, st.operator_name
		ORDER BY COUNT(*) DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var stations []models.FavoriteStation
	for rows.Next() {
		var fs models.FavoriteStation
		if err := rows.Scan(&fs.StationID, &fs.Name, &fs.Visits, &fs.Spent); err != nil {
			return nil, err
		}
		stations = append(stations, fs)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}

// UserVehicleUsage aggregates closed sessions per vehicle for the user.
func (r *ReportRepository) UserVehicleUsage(ctx context.Context, userID int64) ([]models.VehicleUsage, error) {
	const query = `
		SELECT v.id, v.maker_model,
		       COUNT(s.id) FILTER (WHERE s.end_time IS NOT NULL),
		       COALESCE(SUM(s.energy_kwh) FILTER (WHERE s.end_time IS NOT NULL), 0),
		       COALESCE(SUM(s.cost) FILTER (WHERE s.end_time IS NOT NULL), 0)
		FROM vehicles v
		LEFT JOIN charging_sessions s ON s.vehicle_id = v.id
		WHERE v.user_id = $1
		GROUP BY v.id, v.maker_model
		ORDER BY v.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var usage []models.VehicleUsage
	for rows.Next() {
		var vu models.VehicleUsage
		if err := rows.Scan(&vu.VehicleID, &vu.Model, &vu.Sessions, &vu.EnergyKWh, &vu.Cost); err != nil {
			return nil, err
		}
		usage = append(usage, vu)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return usage, nil
}
