package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"chargerelay/internal/cache"
	"chargerelay/internal/models"
	"chargerelay/internal/repository"
)

// PortStore is the port access the lifecycle needs.
type PortStore interface {
	Get(ctx context.Context, portID int64) (*models.Port, error)
	CompareAndSetStatus(ctx context.Context, portID int64, from, to string) (bool, error)
}

// SessionStore is the session persistence contract.
type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	Get(ctx context.Context, sessionID int64) (*models.Session, error)
	Close(ctx context.Context, sessionID int64, endTime time.Time, durationMinutes, energyKWh, cost float64) (bool, error)
	ListByUser(ctx context.Context, userID int64) ([]models.SessionDetail, error)
	OpenSessionByPort(ctx context.Context, portID int64) (*models.Session, error)
}

// PaymentStore persists payments.
type PaymentStore interface {
	Create(ctx context.Context, payment *models.Payment) error
}

// StatusLogStore appends port status audit entries.
type StatusLogStore interface {
	Append(ctx context.Context, entry *models.PortStatusLog) error
}

// StatusNotifier pushes port transitions to live subscribers.
type StatusNotifier interface {
	NotifyStatus(portID int64, oldStatus, newStatus string)
}

// ActiveSessionCache mirrors open sessions for quick lookups.
type ActiveSessionCache interface {
	Save(ctx context.Context, session cache.ActiveSession) error
	Get(ctx context.Context, portID int64) (*cache.ActiveSession, error)
	Delete(ctx context.Context, portID int64) error
}

// SessionsService drives the charging session lifecycle and the port
// status machine it owns. All durable state lives in the stores; the
// conditional status update on the port is the only concurrency arbiter.
type SessionsService struct {
	ports    PortStore
	sessions SessionStore
	payments PaymentStore
	audit    StatusLogStore
	cache    ActiveSessionCache
	notifier StatusNotifier
	pricing  Pricing
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionsService builds service. cache and notifier may be nil.
func NewSessionsService(
	ports PortStore,
	sessions SessionStore,
	payments PaymentStore,
	audit StatusLogStore,
	cacheStore ActiveSessionCache,
	notifier StatusNotifier,
	pricing Pricing,
	logger *zap.Logger,
) *SessionsService {
	return &SessionsService{
		ports:    ports,
		sessions: sessions,
		payments: payments,
		audit:    audit,
		cache:    cacheStore,
		notifier: notifier,
		pricing:  pricing,
		logger:   logger,
		now:      time.Now,
	}
}

// Start opens a session on an Available port. The Available -> In Use
// transition is a single conditional update, so of two concurrent starts
// on the same port exactly one wins; the loser gets ErrPortUnavailable.
func (s *SessionsService) Start(ctx context.Context, userID, portID, vehicleID int64) (*models.Session, error) {
	port, err := s.ports.Get(ctx, portID)
	if err != nil {
		return nil, err
	}
	if port.Status != models.PortAvailable {
		return nil, ErrPortUnavailable
	}

	ok, err := s.ports.CompareAndSetStatus(ctx, portID, models.PortAvailable, models.PortInUse)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrPortUnavailable
	}

	session := &models.Session{
		UserID:    userID,
		PortID:    portID,
		VehicleID: vehicleID,
		StartTime: s.now().UTC(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		// The port was already claimed; put it back so it is not
		// stranded In Use with no session.
		if _, revertErr := s.ports.CompareAndSetStatus(ctx, portID, models.PortInUse, models.PortAvailable); revertErr != nil {
			s.logger.Error("failed to release port after session create failure",
				zap.Int64("port_id", portID), zap.Error(revertErr))
		}
		return nil, err
	}

	s.recordTransition(ctx, portID, models.PortAvailable, models.PortInUse)

	if s.cache != nil {
		if err := s.cache.Save(ctx, cache.ActiveSession{
			SessionID: session.ID,
			PortID:    portID,
			StationID: port.StationID,
			UserID:    userID,
			VehicleID: vehicleID,
			StartTime: session.StartTime,
		}); err != nil {
			s.logger.Warn("failed to cache active session", zap.Int64("session_id", session.ID), zap.Error(err))
		}
	}

	s.logger.Info("session started",
		zap.Int64("session_id", session.ID),
		zap.Int64("user_id", userID),
		zap.Int64("port_id", portID),
	)
	return session, nil
}

// End closes an open session owned by the caller. Duration, energy and
// cost are computed here, once, from the recorded UTC start instant, and
// never recomputed. The payment insert and the port release are
// secondary writes: their failure is logged, not returned, because the
// closed session row is already the durable source of truth.
func (s *SessionsService) End(ctx context.Context, sessionID, callerID int64) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.UserID != callerID {
		return nil, ErrNotOwner
	}
	if !session.Open() {
		return nil, ErrSessionClosed
	}

	var maxPowerKW float64
	port, err := s.ports.Get(ctx, session.PortID)
	if err != nil {
		if !errors.Is(err, repository.ErrPortNotFound) {
			return nil, err
		}
		s.logger.Warn("port missing at session close, using fallback rate", zap.Int64("port_id", session.PortID))
	} else {
		maxPowerKW = port.MaxPowerKW
	}

	endTime := s.now().UTC()
	durationMinutes := endTime.Sub(session.StartTime.UTC()).Minutes()
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	energyKWh := s.pricing.EnergyKWh(durationMinutes, maxPowerKW)
	cost := s.pricing.Cost(energyKWh)

	closed, err := s.sessions.Close(ctx, sessionID, endTime, durationMinutes, energyKWh, cost)
	if err != nil {
		return nil, err
	}
	if !closed {
		// A concurrent End won the race.
		return nil, ErrSessionClosed
	}

	s.releasePort(ctx, session.PortID)

	payment := &models.Payment{
		SessionID: sessionID,
		Status:    models.PaymentCompleted,
		PayDate:   endTime,
		Amount:    cost,
		Method:    models.DefaultPaymentMethod,
	}
	if err := s.payments.Create(ctx, payment); err != nil {
		s.logger.Error("payment creation failed after session close",
			zap.Int64("session_id", sessionID),
			zap.Float64("amount", cost),
			zap.Error(err),
		)
	}

	if s.cache != nil {
		if err := s.cache.Delete(ctx, session.PortID); err != nil {
			s.logger.Warn("failed to evict active session cache", zap.Int64("port_id", session.PortID), zap.Error(err))
		}
	}

	session.EndTime = &endTime
	session.DurationMinutes = &durationMinutes
	session.EnergyKWh = &energyKWh
	session.Cost = &cost

	s.logger.Info("session ended",
		zap.Int64("session_id", sessionID),
		zap.Float64("duration_minutes", durationMinutes),
		zap.Float64("energy_kwh", energyKWh),
		zap.Float64("cost", cost),
	)
	return session, nil
}

// ListByUser returns the caller's session history with joined names.
func (s *SessionsService) ListByUser(ctx context.Context, userID int64) ([]models.SessionDetail, error) {
	return s.sessions.ListByUser(ctx, userID)
}

// ActiveOnPort resolves the open session on a port, if any. The cache is
// consulted first; a miss or a cache error falls through to the table.
func (s *SessionsService) ActiveOnPort(ctx context.Context, portID int64) (*models.Session, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, portID); err == nil && cached != nil {
			return &models.Session{
				ID:        cached.SessionID,
				UserID:    cached.UserID,
				PortID:    cached.PortID,
				VehicleID: cached.VehicleID,
				StartTime: cached.StartTime,
			}, nil
		}
	}

	session, err := s.sessions.OpenSessionByPort(ctx, portID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return session, nil
}

// releasePort returns a port to Available when the session on it closes.
// An admin may have forced the port elsewhere mid-session; in that case
// the CAS fails and the override stands.
func (s *SessionsService) releasePort(ctx context.Context, portID int64) {
	ok, err := s.ports.CompareAndSetStatus(ctx, portID, models.PortInUse, models.PortAvailable)
	if err != nil {
		s.logger.Error("failed to release port after session close", zap.Int64("port_id", portID), zap.Error(err))
		return
	}
	if !ok {
		s.logger.Warn("port not in use at session close, leaving status untouched", zap.Int64("port_id", portID))
		return
	}
	s.recordTransition(ctx, portID, models.PortInUse, models.PortAvailable)
}

func (s *SessionsService) recordTransition(ctx context.Context, portID int64, oldStatus, newStatus string) {
	entry := &models.PortStatusLog{
		PortID:    portID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ChangedAt: s.now().UTC(),
	}
	if err := s.audit.Append(ctx, entry); err != nil {
		s.logger.Error("failed to append status log",
			zap.Int64("port_id", portID),
			zap.String("old_status", oldStatus),
			zap.String("new_status", newStatus),
			zap.Error(err),
		)
	}
	if s.notifier != nil {
		s.notifier.NotifyStatus(portID, oldStatus, newStatus)
	}
}
