package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"chargerelay/internal/models"
)

// PortAdminStore is the port access the admin override path needs.
type PortAdminStore interface {
	Get(ctx context.Context, portID int64) (*models.Port, error)
	SetStatus(ctx context.Context, portID int64, status string) (string, error)
	Create(ctx context.Context, port *models.Port) error
	List(ctx context.Context, status string) ([]models.Port, error)
	ListByStatuses(ctx context.Context, statuses []string) ([]models.Port, error)
}

// PortsService covers admin port administration: forced status
// overrides, maintenance views and station setup.
type PortsService struct {
	ports    PortAdminStore
	audit    StatusLogStore
	notifier StatusNotifier
	logger   *zap.Logger
	now      func() time.Time
}

// NewPortsService builds service. notifier may be nil.
func NewPortsService(ports PortAdminStore, audit StatusLogStore, notifier StatusNotifier, logger *zap.Logger) *PortsService {
	return &PortsService{
		ports:    ports,
		audit:    audit,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// OverrideStatus forces a port into any of the four statuses. The only
// precondition is that the port exists; an open session on the port is
// deliberately not reconciled here.
func (s *PortsService) OverrideStatus(ctx context.Context, portID int64, newStatus string) (*models.Port, error) {
	if !models.ValidPortStatus(newStatus) {
		return nil, ErrInvalidStatus
	}

	oldStatus, err := s.ports.SetStatus(ctx, portID, newStatus)
	if err != nil {
		return nil, err
	}

	entry := &models.PortStatusLog{
		PortID:    portID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedAt: s.now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append status log for admin override",
			zap.Int64("port_id", portID), zap.Error(err))
	}
	if s.notifier != nil {
		s.notifier.NotifyStatus(portID, oldStatus, newStatus)
	}

	s.logger.Info("port status overridden",
		zap.Int64("port_id", portID),
		zap.String("old_status", oldStatus),
		zap.String("new_status", newStatus),
	)
	return s.ports.Get(ctx, portID)
}

// RestoreToService returns a maintenance port to Available.
func (s *PortsService) RestoreToService(ctx context.Context, portID int64) (*models.Port, error) {
	return s.OverrideStatus(ctx, portID, models.PortAvailable)
}

// AddPort registers a new port during station setup.
func (s *PortsService) AddPort(ctx context.Context, port *models.Port) error {
	if port.Status == "" {
		port.Status = models.PortAvailable
	}
	if !models.ValidPortStatus(port.Status) {
		return ErrInvalidStatus
	}
	return s.ports.Create(ctx, port)
}

// List returns ports, optionally filtered by a single status.
func (s *PortsService) List(ctx context.Context, status string) ([]models.Port, error) {
	if status != "" && !models.ValidPortStatus(status) {
		return nil, ErrInvalidStatus
	}
	return s.ports.List(ctx, status)
}

// ListMaintenance returns ports that are out of service.
func (s *PortsService) ListMaintenance(ctx context.Context) ([]models.Port, error) {
	return s.ports.ListByStatuses(ctx, []string{models.PortOutOfOrder, models.PortUnderMaintenance})
}
