package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"chargerelay/internal/models"
	"chargerelay/internal/repository"
)

// DashboardReport is the full admin dashboard payload.
type DashboardReport struct {
	Stats           models.DashboardStats   `json:"stats"`
	MaintenanceLogs []models.MaintenanceLog `json:"maintenance_logs"`
	Stations        []models.StationUsage   `json:"stations"`
}

// ReportsService assembles admin and user reporting. All numbers are
// read-side projections computed at request time.
type ReportsService struct {
	reports     *repository.ReportRepository
	stations    *repository.StationRepository
	ports       *repository.PortRepository
	users       *repository.UserRepository
	maintenance *repository.MaintenanceRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewReportsService builds service.
func NewReportsService(
	reports *repository.ReportRepository,
	stations *repository.StationRepository,
	ports *repository.PortRepository,
	users *repository.UserRepository,
	maintenance *repository.MaintenanceRepository,
	logger *zap.Logger,
) *ReportsService {
	return &ReportsService{
		reports:     reports,
		stations:    stations,
		ports:       ports,
		users:       users,
		maintenance: maintenance,
		logger:      logger,
		now:         time.Now,
	}
}

// Dashboard returns the admin overview: headline stats, recent
// maintenance entries and per-station usage for the current month.
func (s *ReportsService) Dashboard(ctx context.Context) (*DashboardReport, error) {
	statusCounts, err := s.reports.PortStatusCounts(ctx)
	if err != nil {
		return nil, err
	}
	totalPorts := 0
	for _, count := range statusCounts {
		totalPorts += count
	}

	totalStations, err := s.reports.CountStations(ctx)
	if err != nil {
		return nil, err
	}
	activeSessions, err := s.reports.CountActiveSessions(ctx)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.reports.TotalRevenue(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	sessionsToday, err := s.reports.CountSessionsSince(ctx, today)
	if err != nil {
		return nil, err
	}
	revenueToday, err := s.reports.RevenueSince(ctx, today)
	if err != nil {
		return nil, err
	}
	registeredUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, err
	}

	stats := models.DashboardStats{
		TotalStations:         totalStations,
		TotalPorts:            totalPorts,
		ActiveSessions:        activeSessions,
		TotalRevenue:          totalRevenue,
		AvailablePorts:        statusCounts[models.PortAvailable],
		InUsePorts:            statusCounts[models.PortInUse],
		UnderMaintenancePorts: statusCounts[models.PortUnderMaintenance],
		OutOfOrderPorts:       statusCounts[models.PortOutOfOrder],
		SessionsToday:         sessionsToday,
		RevenueToday:          revenueToday,
		RegisteredUsers:       registeredUsers,
	}

	maintenanceLogs, err := s.maintenance.ListRecent(ctx, 10)
	if err != nil {
		s.logger.Warn("failed to load maintenance logs", zap.Error(err))
		maintenanceLogs = nil
	}

	usage, err := s.stationUsage(ctx, now)
	if err != nil {
		return nil, err
	}

	return &DashboardReport{
		Stats:           stats,
		MaintenanceLogs: maintenanceLogs,
		Stations:        usage,
	}, nil
}

// stationUsage computes the per-station dashboard rows: this month's
// revenue, port counts and all-time session count.
func (s *ReportsService) stationUsage(ctx context.Context, now time.Time) ([]models.StationUsage, error) {
	stations, err := s.stations.List(ctx)
	if err != nil {
		return nil, err
	}
	ports, err := s.ports.List(ctx, "")
	if err != nil {
		return nil, err
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	nextMonth := monthStart.AddDate(0, 1, 0)

	usage := make([]models.StationUsage, 0, len(stations))
	for _, st := range stations {
		revenue, err := s.reports.StationRevenue(ctx, st.ID, monthStart, nextMonth)
		if err != nil {
			return nil, err
		}
		sessions, err := s.reports.CountStationSessions(ctx, st.ID)
		if err != nil {
			return nil, err
		}

		total, available := 0, 0
		for _, p := range ports {
			if p.StationID != st.ID {
				continue
			}
			total++
			if p.Status == models.PortAvailable {
				available++
			}
		}

		usage = append(usage, models.StationUsage{
			Station:        st,
			Revenue:        revenue,
			TotalPorts:     total,
			AvailablePorts: available,
			Sessions:       sessions,
		})
	}
	return usage, nil
}

// UserAnalytics returns the personal usage report for one user.
func (s *ReportsService) UserAnalytics(ctx context.Context, userID int64) (*models.UserAnalytics, error) {
	spending, err := s.reports.UserSpending(ctx, userID)
	if err != nil {
		return nil, err
	}
	sessions, energy, avgDuration, err := s.reports.UserSessionStats(ctx, userID)
	if err != nil {
		return nil, err
	}
	favorites, err := s.reports.UserFavoriteStations(ctx, userID, 5)
	if err != nil {
		return nil, err
	}
	vehicles, err := s.reports.UserVehicleUsage(ctx, userID)
	if err != nil {
		return nil, err
	}

	avgCost := 0.0
	if sessions > 0 {
		avgCost = spending / float64(sessions)
	}

	return &models.UserAnalytics{
		TotalSpending:      spending,
		TotalSessions:      sessions,
		TotalEnergyKWh:     energy,
		AvgSessionCost:     avgCost,
		AvgDurationMinutes: avgDuration,
		FavoriteStations:   favorites,
		Vehicles:           vehicles,
	}, nil
}
