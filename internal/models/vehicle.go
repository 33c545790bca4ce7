package models

import "time"

// Vehicle is an EV registered by a user.
type Vehicle struct {
	ID            int64     `db:"id" json:"vehicle_id"`
	UserID        int64     `db:"user_id" json:"user_id"`
	Plate         string    `db:"plate" json:"plate"`
	MakerModel    string    `db:"maker_model" json:"maker_model"`
	BatteryHealth string    `db:"battery_health" json:"battery_health"`
	ConnectorType string    `db:"connector_type" json:"connector_type"`
	PurchaseDate  time.Time `db:"purchase_date" json:"purchase_date"`
	DistanceKm    float64   `db:"distance_km" json:"distance_km"`
}
