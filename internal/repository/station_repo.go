package repository

import (
	"context"
	"database/sql"

	"chargerelay/internal/models"
)

// StationRepository manages charging station persistence.
type StationRepository struct {
	db *sql.DB
}

// NewStationRepository returns repository.
func NewStationRepository(db *sql.DB) *StationRepository {
	return &StationRepository{db: db}
}

// Create inserts a new station.
func (r *StationRepository) Create(ctx context.Context, station *models.Station) error {
	const query = `
		INSERT INTO charging_stations (operator_name, location, contact)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	return r.db.QueryRowContext(ctx, query,
		station.OperatorName,
		station.Location,
		station.Contact,
	).Scan(&station.ID, &station.CreatedAt)
}

// List returns all stations.
func (r *StationRepository) List(ctx context.Context) ([]models.Station, error) {
	const query = `
		SELECT id, operator_name, location, contact, created_at
		FROM charging_stations
		ORDER BY id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

// ListVisitedByUser returns distinct stations the user has charged at.
func (r *StationRepository) ListVisitedByUser(ctx context.Context, userID int64) ([]models.Station, error) {
	const query = `
		SELECT DISTINCT st.id, st.operator_name, st.location, st.contact, st.created_at
		FROM charging_stations st
		JOIN charging_ports p ON p.station_id = st.id
		JOIN charging_sessions s ON s.port_id = p.id
		WHERE s.user_id = $1
		ORDER BY st.id
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanStations(rows)
}

func scanStations(rows *sql.Rows) ([]models.Station, error) {
	var stations []models.Station
	for rows.Next() {
		var st models.Station
		if err := rows.Scan(
			&st.ID,
			&st.OperatorName,
			&st.Location,
			&st.Contact,
			&st.CreatedAt,
		); err != nil {
			return nil, err
		}
		stations = append(stations, st)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return stations, nil
}
