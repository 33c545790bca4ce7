package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"chargerelay/internal/models"
)

type fakeStationStore struct {
	stations []models.Station
	visited  []models.Station
}

func (f *fakeStationStore) Create(_ context.Context, station *models.Station) error {
	station.ID = int64(len(f.stations) + 1)
	f.stations = append(f.stations, *station)
	return nil
}

func (f *fakeStationStore) List(_ context.Context) ([]models.Station, error) {
	return f.stations, nil
}

func (f *fakeStationStore) ListVisitedByUser(_ context.Context, _ int64) ([]models.Station, error) {
	return f.visited, nil
}

type fakeStationPortStore struct {
	ports []models.Port
}

func (f *fakeStationPortStore) List(_ context.Context, status string) ([]models.Port, error) {
	if status == "" {
		return f.ports, nil
	}
	var out []models.Port
	for _, p := range f.ports {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStationPortStore) ListByStation(_ context.Context, stationID int64) ([]models.Port, error) {
	var out []models.Port
	for _, p := range f.ports {
		if p.StationID == stationID {
			out = append(out, p)
		}
	}
	return out, nil
}

type fakeRatingStore struct {
	ratings map[int64]float64
	err     error
}

func (f *fakeRatingStore) AvgRatingByStation(_ context.Context) (map[int64]float64, error) {
	return f.ratings, f.err
}

func newStationsFixture() *StationsService {
	stations := &fakeStationStore{stations: []models.Station{
		{ID: 1, OperatorName: "GreenCharge", Location: "Downtown"},
		{ID: 2, OperatorName: "VoltHub", Location: "Airport"},
	}}
	ports := &fakeStationPortStore{ports: []models.Port{
		{ID: 11, StationID: 1, ConnectorType: "CCS2", Status: models.PortAvailable},
		{ID: 12, StationID: 1, ConnectorType: "Type2", Status: models.PortInUse},
		{ID: 21, StationID: 2, ConnectorType: "CHAdeMO", Status: models.PortInUse},
	}}
	ratings := &fakeRatingStore{ratings: map[int64]float64{1: 4.5}}
	return NewStationsService(stations, ports, ratings, zap.NewNop())
}

func TestStationListCountsAndRatings(t *testing.T) {
	svc := newStationsFixture()

	summaries, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(summaries) != 2 {
		t.Fatalf("summaries = %d, want 2", len(summaries))
	}

	first := summaries[0]
	if first.TotalPorts != 2 || first.AvailablePorts != 1 {
		t.Fatalf("station 1 counts = %d/%d, want 1/2", first.AvailablePorts, first.TotalPorts)
	}
	if first.AvgRating == nil || *first.AvgRating != 4.5 {
		t.Fatal("station 1 expected avg rating 4.5")
	}
	if summaries[1].AvgRating != nil {
		t.Fatal("station 2 should have no rating")
	}
}

func TestStationListAvailabilityFilter(t *testing.T) {
	svc := newStationsFixture()

	available, err := svc.List(context.Background(), ListFilter{Availability: AvailabilityAvailable})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(available) != 1 || available[0].ID != 1 {
		t.Fatalf("available filter returned %d stations, want station 1 only", len(available))
	}

	busy, err := svc.List(context.Background(), ListFilter{Availability: AvailabilityInUse})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(busy) != 1 || busy[0].ID != 2 {
		t.Fatalf("in-use filter returned %d stations, want station 2 only", len(busy))
	}
}

func TestStationListConnectorFilterKeepsCounts(t *testing.T) {
	svc := newStationsFixture()

	summaries, err := svc.List(context.Background(), ListFilter{ConnectorType: "ccs2"})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}

	// Connector filter narrows the visible ports, not the counts.
	first := summaries[0]
	if len(first.Ports) != 1 || first.Ports[0].ConnectorType != "CCS2" {
		t.Fatalf("station 1 visible ports = %d, want the CCS2 port only", len(first.Ports))
	}
	if first.TotalPorts != 2 {
		t.Fatalf("station 1 total ports = %d, want 2", first.TotalPorts)
	}
}

func TestStationListToleratesRatingFailure(t *testing.T) {
	stations := &fakeStationStore{stations: []models.Station{{ID: 1, OperatorName: "GreenCharge"}}}
	ports := &fakeStationPortStore{}
	ratings := &fakeRatingStore{err: errors.New("query failed")}
	svc := NewStationsService(stations, ports, ratings, zap.NewNop())

	summaries, err := svc.List(context.Background(), ListFilter{})
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(summaries) != 1 || summaries[0].AvgRating != nil {
		t.Fatal("expected one station with no rating")
	}
}

func TestCreateStationRequiresOperatorNameAndLocation(t *testing.T) {
	store := &fakeStationStore{}
	svc := NewStationsService(store, &fakeStationPortStore{}, &fakeRatingStore{}, zap.NewNop())

	if err := svc.Create(context.Background(), &models.Station{Location: "Downtown"}); !errors.Is(err, ErrInvalidStation) {
		t.Fatalf("missing operator: err = %v, want ErrInvalidStation", err)
	}
	if err := svc.Create(context.Background(), &models.Station{OperatorName: "GreenCharge"}); !errors.Is(err, ErrInvalidStation) {
		t.Fatalf("missing location: err = %v, want ErrInvalidStation", err)
	}

	station := &models.Station{OperatorName: "GreenCharge", Location: "Downtown"}
	if err := svc.Create(context.Background(), station); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if station.ID == 0 {
		t.Fatal("expected station to be assigned an id")
	}
}
