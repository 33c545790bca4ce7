package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// ActiveSession is the cached view of an open session, keyed by port so
// live displays can resolve "who is charging here" without a table scan.
type ActiveSession struct {
	SessionID int64     `json:"session_id"`
	PortID    int64     `json:"port_id"`
	StationID int64     `json:"station_id"`
	UserID    int64     `json:"user_id"`
	VehicleID int64     `json:"vehicle_id"`
	StartTime time.Time `json:"start_time"`
}

// Store manages the active session cache.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore returns redis-backed store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

func (s *Store) key(portID int64) string {
	return fmt.Sprintf("sessions:active:port:%d", portID)
}

// Save caches the session under its port.
func (s *Store) Save(ctx context.Context, session ActiveSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.key(session.PortID), data, s.ttl).Err()
}

// Get returns the cached session for a port.
func (s *Store) Get(ctx context.Context, portID int64) (*ActiveSession, error) {
	result, err := s.client.Get(ctx, s.key(portID)).Result()
	if err != nil {
		return nil, err
	}
	var session ActiveSession
	if err := json.Unmarshal([]byte(result), &session); err != nil {
		return nil, err
	}
	return &session, nil
}

// Delete removes the cached session for a port.
func (s *Store) Delete(ctx context.Context, portID int64) error {
	return s.client.Del(ctx, s.key(portID)).Err()
}
