package service

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"chargerelay/internal/cache"
	"chargerelay/internal/models"
	"chargerelay/internal/repository"
)

type fakePortStore struct {
	mu    sync.Mutex
	ports map[int64]*models.Port
}

func newFakePortStore(ports ...*models.Port) *fakePortStore {
	store := &fakePortStore{ports: make(map[int64]*models.Port)}
	for _, p := range ports {
		store.ports[p.ID] = p
	}
	return store
}

func (f *fakePortStore) Get(_ context.Context, portID int64) (*models.Port, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	port, ok := f.ports[portID]
	if !ok {
		return nil, repository.ErrPortNotFound
	}
	copied := *port
	return &copied, nil
}

func (f *fakePortStore) CompareAndSetStatus(_ context.Context, portID int64, from, to string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	port, ok := f.ports[portID]
	if !ok {
		return false, repository.ErrPortNotFound
	}
	if port.Status != from {
		return false, nil
	}
	port.Status = to
	return true, nil
}

func (f *fakePortStore) status(portID int64) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ports[portID].Status
}

type fakeSessionStore struct {
	mu        sync.Mutex
	nextID    int64
	sessions  map[int64]*models.Session
	createErr error
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[int64]*models.Session)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *models.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	session.ID = f.nextID
	copied := *session
	f.sessions[session.ID] = &copied
	return nil
}

func (f *fakeSessionStore) Get(_ context.Context, sessionID int64) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) Close(_ context.Context, sessionID int64, endTime time.Time, durationMinutes, energyKWh, cost float64) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.sessions[sessionID]
	if !ok || session.EndTime != nil {
		return false, nil
	}
	session.EndTime = &endTime
	session.DurationMinutes = &durationMinutes
	session.EnergyKWh = &energyKWh
	session.Cost = &cost
	return true, nil
}

func (f *fakeSessionStore) ListByUser(_ context.Context, userID int64) ([]models.SessionDetail, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.SessionDetail
	for _, s := range f.sessions {
		if s.UserID == userID {
			out = append(out, models.SessionDetail{Session: *s})
		}
	}
	return out, nil
}

func (f *fakeSessionStore) OpenSessionByPort(_ context.Context, portID int64) (*models.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, s := range f.sessions {
		if s.PortID == portID && s.EndTime == nil {
			copied := *s
			return &copied, nil
		}
	}
	return nil, repository.ErrSessionNotFound
}

func (f *fakeSessionStore) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sessions)
}

type fakePaymentStore struct {
	mu        sync.Mutex
	payments  []models.Payment
	createErr error
}

func (f *fakePaymentStore) Create(_ context.Context, payment *models.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	payment.ID = int64(len(f.payments) + 1)
	f.payments = append(f.payments, *payment)
	return nil
}

func (f *fakePaymentStore) all() []models.Payment {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Payment, len(f.payments))
	copy(out, f.payments)
	return out
}

type fakeStatusLog struct {
	mu      sync.Mutex
	entries []models.PortStatusLog
}

func (f *fakeStatusLog) Append(_ context.Context, entry *models.PortStatusLog) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeStatusLog) all() []models.PortStatusLog {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.PortStatusLog, len(f.entries))
	copy(out, f.entries)
	return out
}

type fakeActiveCache struct {
	mu      sync.Mutex
	saved   map[int64]cache.ActiveSession
	deletes int
}

func newFakeActiveCache() *fakeActiveCache {
	return &fakeActiveCache{saved: make(map[int64]cache.ActiveSession)}
}

func (f *fakeActiveCache) Save(_ context.Context, session cache.ActiveSession) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[session.PortID] = session
	return nil
}

func (f *fakeActiveCache) Get(_ context.Context, portID int64) (*cache.ActiveSession, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	session, ok := f.saved[portID]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return &session, nil
}

func (f *fakeActiveCache) Delete(_ context.Context, portID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, portID)
	f.deletes++
	return nil
}

type sessionFixture struct {
	svc      *SessionsService
	ports    *fakePortStore
	sessions *fakeSessionStore
	payments *fakePaymentStore
	audit    *fakeStatusLog
	cache    *fakeActiveCache
}

func newSessionFixture(ports ...*models.Port) *sessionFixture {
	f := &sessionFixture{
		ports:    newFakePortStore(ports...),
		sessions: newFakeSessionStore(),
		payments: &fakePaymentStore{},
		audit:    &fakeStatusLog{},
		cache:    newFakeActiveCache(),
	}
	f.svc = NewSessionsService(f.ports, f.sessions, f.payments, f.audit, f.cache, nil, DefaultPricing(), zap.NewNop())
	return f
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestStartSessionClaimsPort(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, StationID: 10, MaxPowerKW: 22, Status: models.PortAvailable})

	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if session.ID == 0 {
		t.Fatal("expected session to be assigned an id")
	}
	if got := f.ports.status(1); got != models.PortInUse {
		t.Fatalf("port status = %q, want %q", got, models.PortInUse)
	}

	entries := f.audit.all()
	if len(entries) != 1 {
		t.Fatalf("audit entries = %d, want 1", len(entries))
	}
	if entries[0].OldStatus != models.PortAvailable || entries[0].NewStatus != models.PortInUse {
		t.Fatalf("audit transition = %q -> %q, want Available -> In Use", entries[0].OldStatus, entries[0].NewStatus)
	}

	f.cache.mu.Lock()
	cached, ok := f.cache.saved[1]
	f.cache.mu.Unlock()
	if !ok || cached.SessionID != session.ID {
		t.Fatal("expected active session to be cached by port")
	}
}

func TestStartSessionRejectsBusyPort(t *testing.T) {
	for _, status := range []string{models.PortInUse, models.PortUnderMaintenance, models.PortOutOfOrder} {
		f := newSessionFixture(&models.Port{ID: 1, Status: status})

		_, err := f.svc.Start(context.Background(), 7, 1, 3)
		if !errors.Is(err, ErrPortUnavailable) {
			t.Fatalf("Start on %q port: err = %v, want ErrPortUnavailable", status, err)
		}
		if f.sessions.count() != 0 {
			t.Fatalf("Start on %q port created a session", status)
		}
		if len(f.audit.all()) != 0 {
			t.Fatalf("Start on %q port appended audit entries", status)
		}
	}
}

func TestStartSessionUnknownPort(t *testing.T) {
	f := newSessionFixture()

	_, err := f.svc.Start(context.Background(), 7, 99, 3)
	if !errors.Is(err, repository.ErrPortNotFound) {
		t.Fatalf("err = %v, want ErrPortNotFound", err)
	}
}

func TestStartSessionRevertsPortWhenCreateFails(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, Status: models.PortAvailable})
	f.sessions.createErr = errors.New("insert failed")

	_, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err == nil {
		t.Fatal("expected error from Start")
	}
	if got := f.ports.status(1); got != models.PortAvailable {
		t.Fatalf("port status after failed create = %q, want Available", got)
	}
}

func TestConcurrentStartsExactlyOneWinner(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, Status: models.PortAvailable})

	const callers = 16
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.svc.Start(context.Background(), int64(i+1), 1, 0)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else if !errors.Is(err, ErrPortUnavailable) {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if winners != 1 {
		t.Fatalf("winners = %d, want exactly 1", winners)
	}
	if f.sessions.count() != 1 {
		t.Fatalf("sessions created = %d, want 1", f.sessions.count())
	}
}

func TestEndSessionComputesEnergyAndCost(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 50, Status: models.PortAvailable})

	start := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return start }
	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	f.svc.now = func() time.Time { return start.Add(10 * time.Minute) }
	ended, err := f.svc.End(context.Background(), session.ID, 7)
	if err != nil {
		t.Fatalf("End returned error: %v", err)
	}

	// 10 min at 50 kW: 10 * 50/60 kWh, priced at 15 per kWh.
	wantEnergy := 10 * 50.0 / 60.0
	if !almostEqual(*ended.EnergyKWh, wantEnergy) {
		t.Fatalf("energy = %v, want %v", *ended.EnergyKWh, wantEnergy)
	}
	if !almostEqual(*ended.Cost, wantEnergy*15.0) {
		t.Fatalf("cost = %v, want %v", *ended.Cost, wantEnergy*15.0)
	}
	if !almostEqual(*ended.DurationMinutes, 10) {
		t.Fatalf("duration = %v, want 10", *ended.DurationMinutes)
	}
	if got := f.ports.status(1); got != models.PortAvailable {
		t.Fatalf("port status after End = %q, want Available", got)
	}
}

func TestEndSessionThirtyMinuteSettlement(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 50, Status: models.PortAvailable})

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return start }
	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	f.svc.now = func() time.Time { return start.Add(30 * time.Minute) }
	ended, err := f.svc.End(context.Background(), session.ID, 7)
	if err != nil {
		t.Fatalf("End returned error: %v", err)
	}

	if !almostEqual(*ended.EnergyKWh, 25.0) {
		t.Fatalf("energy = %v, want 25", *ended.EnergyKWh)
	}
	if !almostEqual(*ended.Cost, 375.0) {
		t.Fatalf("cost = %v, want 375", *ended.Cost)
	}

	payments := f.payments.all()
	if len(payments) != 1 {
		t.Fatalf("payments = %d, want 1", len(payments))
	}
	if payments[0].Status != models.PaymentCompleted {
		t.Fatalf("payment status = %q, want Completed", payments[0].Status)
	}
	if !almostEqual(payments[0].Amount, 375.0) {
		t.Fatalf("payment amount = %v, want 375", payments[0].Amount)
	}

	// Full lifecycle: Available -> In Use on start, In Use -> Available on end.
	entries := f.audit.all()
	if len(entries) != 2 {
		t.Fatalf("audit entries = %d, want 2", len(entries))
	}
	if entries[1].OldStatus != models.PortInUse || entries[1].NewStatus != models.PortAvailable {
		t.Fatalf("closing transition = %q -> %q, want In Use -> Available", entries[1].OldStatus, entries[1].NewStatus)
	}
}

func TestEndSessionFallbackRateWhenPowerUnknown(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 0, Status: models.PortAvailable})

	start := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	f.svc.now = func() time.Time { return start }
	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	f.svc.now = func() time.Time { return start.Add(20 * time.Minute) }
	ended, err := f.svc.End(context.Background(), session.ID, 7)
	if err != nil {
		t.Fatalf("End returned error: %v", err)
	}

	// 20 min at the 0.1 kWh/min fallback.
	if !almostEqual(*ended.EnergyKWh, 2.0) {
		t.Fatalf("energy = %v, want 2", *ended.EnergyKWh)
	}
	if !almostEqual(*ended.Cost, 30.0) {
		t.Fatalf("cost = %v, want 30", *ended.Cost)
	}
}

func TestEndSessionOwnershipAndIdempotence(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 22, Status: models.PortAvailable})

	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	if _, err := f.svc.End(context.Background(), session.ID, 8); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("End by stranger: err = %v, want ErrNotOwner", err)
	}
	if _, err := f.svc.End(context.Background(), 999, 7); !errors.Is(err, repository.ErrSessionNotFound) {
		t.Fatalf("End unknown session: err = %v, want ErrSessionNotFound", err)
	}

	if _, err := f.svc.End(context.Background(), session.ID, 7); err != nil {
		t.Fatalf("first End returned error: %v", err)
	}
	if _, err := f.svc.End(context.Background(), session.ID, 7); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("second End: err = %v, want ErrSessionClosed", err)
	}

	if got := len(f.payments.all()); got != 1 {
		t.Fatalf("payments after double End = %d, want 1", got)
	}
}

func TestEndSessionPaymentFailureDoesNotFailClose(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 22, Status: models.PortAvailable})
	f.payments.createErr = errors.New("billing down")

	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	ended, err := f.svc.End(context.Background(), session.ID, 7)
	if err != nil {
		t.Fatalf("End returned error despite payment failure: %v", err)
	}
	if ended.EndTime == nil {
		t.Fatal("session not closed")
	}
	if got := f.ports.status(1); got != models.PortAvailable {
		t.Fatalf("port status = %q, want Available", got)
	}
}

func TestActiveOnPort(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 22, Status: models.PortAvailable})

	if active, err := f.svc.ActiveOnPort(context.Background(), 1); err != nil || active != nil {
		t.Fatalf("idle port: active = %v, err = %v, want nil/nil", active, err)
	}

	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	active, err := f.svc.ActiveOnPort(context.Background(), 1)
	if err != nil {
		t.Fatalf("ActiveOnPort returned error: %v", err)
	}
	if active == nil || active.ID != session.ID {
		t.Fatalf("active = %+v, want session %d", active, session.ID)
	}

	// Cache wiped: the open row still answers.
	f.cache.mu.Lock()
	delete(f.cache.saved, 1)
	f.cache.mu.Unlock()

	active, err = f.svc.ActiveOnPort(context.Background(), 1)
	if err != nil || active == nil || active.ID != session.ID {
		t.Fatalf("active after cache wipe = %v, err = %v, want session %d", active, err, session.ID)
	}

	if _, err := f.svc.End(context.Background(), session.ID, 7); err != nil {
		t.Fatalf("End returned error: %v", err)
	}
	if active, err := f.svc.ActiveOnPort(context.Background(), 1); err != nil || active != nil {
		t.Fatalf("closed session: active = %v, err = %v, want nil/nil", active, err)
	}
}

func TestEndSessionLeavesOverriddenPortAlone(t *testing.T) {
	f := newSessionFixture(&models.Port{ID: 1, MaxPowerKW: 22, Status: models.PortAvailable})

	session, err := f.svc.Start(context.Background(), 7, 1, 3)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}

	// An operator forces the port out of service mid-session.
	f.ports.mu.Lock()
	f.ports.ports[1].Status = models.PortOutOfOrder
	f.ports.mu.Unlock()

	if _, err := f.svc.End(context.Background(), session.ID, 7); err != nil {
		t.Fatalf("End returned error: %v", err)
	}
	if got := f.ports.status(1); got != models.PortOutOfOrder {
		t.Fatalf("port status = %q, want override to stand", got)
	}

	// Only the opening transition is audited; the blocked release is not.
	if got := len(f.audit.all()); got != 1 {
		t.Fatalf("audit entries = %d, want 1", got)
	}
}
