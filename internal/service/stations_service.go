package service

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"chargerelay/internal/models"
)

// Station browser filters.
const (
	AvailabilityAvailable = "available"
	AvailabilityInUse     = "in-use"
)

// StationStore defines station persistence used by the service.
type StationStore interface {
	Create(ctx context.Context, station *models.Station) error
	List(ctx context.Context) ([]models.Station, error)
	ListVisitedByUser(ctx context.Context, userID int64) ([]models.Station, error)
}

// StationPortStore lists ports for grouping under stations.
type StationPortStore interface {
	List(ctx context.Context, status string) ([]models.Port, error)
	ListByStation(ctx context.Context, stationID int64) ([]models.Port, error)
}

// RatingStore supplies station review averages.
type RatingStore interface {
	AvgRatingByStation(ctx context.Context) (map[int64]float64, error)
}

// StationsService is the read side of the station browser plus admin
// station setup. Summaries reflect the tables as of read time; nothing
// is cached.
type StationsService struct {
	stations StationStore
	ports    StationPortStore
	ratings  RatingStore
	logger   *zap.Logger
}

// NewStationsService builds service.
func NewStationsService(stations StationStore, ports StationPortStore, ratings RatingStore, logger *zap.Logger) *StationsService {
	return &StationsService{
		stations: stations,
		ports:    ports,
		ratings:  ratings,
		logger:   logger,
	}
}

// ListFilter narrows the station listing.
type ListFilter struct {
	// ConnectorType keeps only ports with this connector; stations keep
	// their availability counts over all ports.
	ConnectorType string
	// Availability is "available" (at least one free port) or "in-use"
	// (no free ports).
	Availability string
}

// List returns station summaries with availability counts and average
// ratings, filtered.
func (s *StationsService) List(ctx context.Context, filter ListFilter) ([]models.StationSummary, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	ports, err := s.ports.List(ctx, "")
	if err != nil {
		return nil, err
	}
	ratings, err := s.ratings.AvgRatingByStation(ctx)
	if err != nil {
		s.logger.Warn("failed to load station ratings", zap.Error(err))
		ratings = map[int64]float64{}
	}

	portsByStation := make(map[int64][]models.Port, len(stations))
	for _, p := range ports {
		portsByStation[p.StationID] = append(portsByStation[p.StationID], p)
	}

	summaries := make([]models.StationSummary, 0, len(stations))
	for _, st := range stations {
		stationPorts := portsByStation[st.ID]

		available := 0
		for _, p := range stationPorts {
			if p.Status == models.PortAvailable {
				available++
			}
		}

		visible := stationPorts
		if filter.ConnectorType != "" {
			visible = nil
			for _, p := range stationPorts {
				if strings.EqualFold(p.ConnectorType, filter.ConnectorType) {
					visible = append(visible, p)
				}
			}
		}

		summary := models.StationSummary{
			Station:        st,
			Ports:          visible,
			AvailablePorts: available,
			TotalPorts:     len(stationPorts),
		}
		if avg, ok := ratings[st.ID]; ok {
			summary.AvgRating = &avg
		}

		switch filter.Availability {
		case AvailabilityAvailable:
			if available == 0 {
				continue
			}
		case AvailabilityInUse:
			if available > 0 {
				continue
			}
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// Ports returns all ports of one station.
func (s *StationsService) Ports(ctx context.Context, stationID int64) ([]models.Port, error) {
	return s.ports.ListByStation(ctx, stationID)
}

// ListVisited returns the distinct stations a user has charged at.
func (s *StationsService) ListVisited(ctx context.Context, userID int64) ([]models.Station, error) {
	return s.stations.ListVisitedByUser(ctx, userID)
}

// Create registers a new station.
func (s *StationsService) Create(ctx context.Context, station *models.Station) error {
	if strings.TrimSpace(station.OperatorName) == "" || strings.TrimSpace(station.Location) == "" {
		return ErrInvalidStation
	}
	return s.stations.Create(ctx, station)
}
