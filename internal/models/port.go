package models

import "time"

// Port statuses. The four values are fixed; anything else is rejected.
const (
	PortAvailable        = "Available"
	PortInUse            = "In Use"
	PortUnderMaintenance = "Under Maintenance"
	PortOutOfOrder       = "Out of Order"
)

// ValidPortStatus reports whether s is one of the four known statuses.
func ValidPortStatus(s string) bool {
	switch s {
	case PortAvailable, PortInUse, PortUnderMaintenance, PortOutOfOrder:
		return true
	}
	return false
}

// Port is a single charging connector at a station. Status is the only
// field mutated after setup, by the session lifecycle and admin overrides.
type Port struct {
	ID            int64     `db:"id" json:"port_id"`
	StationID     int64     `db:"station_id" json:"station_id"`
	ConnectorType string    `db:"connector_type" json:"connector_type"`
	MaxPowerKW    float64   `db:"max_power_kw" json:"max_power_kw"`
	Status        string    `db:"status" json:"status"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}
