package models

import "time"

// Payment statuses.
const (
	PaymentPending   = "Pending"
	PaymentCompleted = "Completed"
)

// DefaultPaymentMethod is used for payments issued automatically at session close.
const DefaultPaymentMethod = "Cash"

// Payment is the billing record issued once per closed session.
type Payment struct {
	ID        int64     `db:"id" json:"pay_id"`
	SessionID int64     `db:"session_id" json:"session_id"`
	Status    string    `db:"status" json:"pay_status"`
	PayDate   time.Time `db:"pay_date" json:"pay_date"`
	Amount    float64   `db:"amount" json:"amount"`
	Method    string    `db:"method" json:"pay_method"`
}

// PaymentDetail adds the session context a payment history view renders.
type PaymentDetail struct {
	Payment
	StationName     string  `json:"station_name"`
	EnergyKWh       float64 `json:"energy_kwh"`
	DurationMinutes float64 `json:"duration_minutes"`
}
