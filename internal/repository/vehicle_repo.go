package repository

import (
	"context"
	"database/sql"
	"errors"

	"chargerelay/internal/models"
)

// ErrVehicleNotFound represents missing vehicle rows.
var ErrVehicleNotFound = errors.New("vehicle not found")

// VehicleRepository handles CRUD for the vehicles table.
type VehicleRepository struct {
	db *sql.DB
}

// NewVehicleRepository returns repository.
func NewVehicleRepository(db *sql.DB) *VehicleRepository {
	return &VehicleRepository{db: db}
}

// Create registers a vehicle for a user.
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	const query = `
		INSERT INTO vehicles (user_id, plate, maker_model, battery_health, connector_type, purchase_date, distance_km)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		vehicle.UserID,
		vehicle.Plate,
		vehicle.MakerModel,
		vehicle.BatteryHealth,
		vehicle.ConnectorType,
		vehicle.PurchaseDate,
		vehicle.DistanceKm,
	).Scan(&vehicle.ID)
}

// Get fetches a vehicle by id.
func (r *VehicleRepository) Get(ctx context.Context, vehicleID int64) (*models.Vehicle, error) {
	const query = `
		SELECT id, user_id, plate, maker_model, battery_health, connector_type, purchase_date, distance_km
		FROM vehicles
		WHERE id = $1
	`
	var v models.Vehicle
	err := r.db.QueryRowContext(ctx, query, vehicleID).Scan(
		&v.ID,
		&v.UserID,
		&v.Plate,
		&v.MakerModel,
		&v.BatteryHealth,
		&v.ConnectorType,
		&v.PurchaseDate,
		&v.DistanceKm,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}
	return &v, nil
}

// ListByUser returns the user's vehicles, newest first.
func (r *VehicleRepository) ListByUser(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	const query = `
		SELECT id, user_id, plate, maker_model, battery_health, connector_type, purchase_date, distance_km
		FROM vehicles
		WHERE user_id = $1
		ORDER BY id DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		if err := rows.Scan(
			&v.ID,
			&v.UserID,
			&v.Plate,
			&v.MakerModel,
			&v.BatteryHealth,
			&v.ConnectorType,
			&v.PurchaseDate,
			&v.DistanceKm,
		); err != nil {
			return nil, err
		}
		vehicles = append(vehicles, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return vehicles, nil
}
