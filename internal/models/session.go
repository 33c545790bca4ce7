package models

import "time"

// Session is one charging event bounded by start/end time. A nil EndTime
// means the session is still open; Duration, EnergyKWh and Cost are set
// exactly once, when the session is closed.
type Session struct {
	ID              int64      `db:"id" json:"session_id"`
	UserID          int64      `db:"user_id" json:"user_id"`
	PortID          int64      `db:"port_id" json:"port_id"`
	VehicleID       int64      `db:"vehicle_id" json:"vehicle_id"`
	StartTime       time.Time  `db:"start_time" json:"start_time"`
	EndTime         *time.Time `db:"end_time" json:"end_time,omitempty"`
	DurationMinutes *float64   `db:"duration_minutes" json:"duration_minutes,omitempty"`
	EnergyKWh       *float64   `db:"energy_kwh" json:"energy_kwh,omitempty"`
	Cost            *float64   `db:"cost" json:"cost,omitempty"`
}

// Open reports whether the session has not been closed yet.
func (s *Session) Open() bool {
	return s.EndTime == nil
}

// SessionDetail joins a session with the names a history view renders.
type SessionDetail struct {
	Session
	StationName   string `json:"station_name"`
	VehiclePlate  string `json:"vehicle_plate"`
	VehicleModel  string `json:"vehicle_model"`
	PaymentStatus string `json:"payment_status"`
}
