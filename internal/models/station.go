package models

import "time"

// Station groups charging ports under one operator location.
type Station struct {
	ID           int64     `db:"id" json:"station_id"`
	OperatorName string    `db:"operator_name" json:"operator_name"`
	Location     string    `db:"location" json:"location"`
	Contact      string    `db:"contact" json:"contact"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

// StationSummary is the read-side projection served by the station browser:
// the station plus its ports, availability counts and average review rating.
type StationSummary struct {
	Station
	Ports          []Port   `json:"ports"`
	AvailablePorts int      `json:"available_ports"`
	TotalPorts     int      `json:"total_ports"`
	AvgRating      *float64 `json:"avg_rating,omitempty"`
}
