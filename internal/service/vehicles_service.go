package service

import (
	"context"
	"strings"

	"chargerelay/internal/models"
	"chargerelay/internal/repository"
)

// VehiclesService manages user vehicle registration.
type VehiclesService struct {
	repo *repository.VehicleRepository
}

// NewVehiclesService builds service.
func NewVehiclesService(repo *repository.VehicleRepository) *VehiclesService {
	return &VehiclesService{repo: repo}
}

// Register adds a vehicle for the user.
func (s *VehiclesService) Register(ctx context.Context, vehicle *models.Vehicle) error {
	vehicle.Plate = strings.ToUpper(strings.TrimSpace(vehicle.Plate))
	if vehicle.Plate == "" || strings.TrimSpace(vehicle.MakerModel) == "" {
		return ErrInvalidVehicle
	}
	return s.repo.Create(ctx, vehicle)
}

// Get returns one vehicle, enforcing ownership.
func (s *VehiclesService) Get(ctx context.Context, vehicleID, callerID int64) (*models.Vehicle, error) {
	vehicle, err := s.repo.Get(ctx, vehicleID)
	if err != nil {
		return nil, err
	}
	if vehicle.UserID != callerID {
		return nil, ErrNotOwner
	}
	return vehicle, nil
}

// ListByUser returns the user's vehicles.
func (s *VehiclesService) ListByUser(ctx context.Context, userID int64) ([]models.Vehicle, error) {
	return s.repo.ListByUser(ctx, userID)
}
