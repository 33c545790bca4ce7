package repository

import (
	"context"
	"database/sql"

	"chargerelay/internal/models"
)

// PaymentRepository persists payments issued at session close.
type PaymentRepository struct {
	db *sql.DB
}

// NewPaymentRepository returns repository.
func NewPaymentRepository(db *sql.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a new payment.
func (r *PaymentRepository) Create(ctx context.Context, payment *models.Payment) error {
	const query = `
		INSERT INTO payments (session_id, status, pay_date, amount, method)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return r.db.QueryRowContext(ctx, query,
		payment.SessionID,
		payment.Status,
		payment.PayDate,
		payment.Amount,
		payment.Method,
	).Scan(&payment.ID)
}

// ListByUser returns all payments on the user's sessions, newest first.
func (r *PaymentRepository) ListByUser(ctx context.Context, userID int64) ([]models.PaymentDetail, error) {
	const query = `
		SELECT pay.id, pay.session_id, pay.status, pay.pay_date, pay.amount, pay.method,
		       COALESCE(st.operator_name, 'Unknown'),
		       COALESCE(s.energy_kwh, 0),
		       COALESCE(s.duration_minutes, 0)
		FROM payments pay
		JOIN charging_sessions s ON s.id = pay.session_id
		LEFT JOIN charging_ports p ON p.id = s.port_id
		LEFT JOIN charging_stations st ON st.id = p.station_id
		WHERE s.user_id = $1
		ORDER BY pay.pay_date DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payments []models.PaymentDetail
	for rows.Next() {
		var p models.PaymentDetail
		if err := rows.Scan(
			&p.ID,
			&p.SessionID,
			&p.Status,
			&p.PayDate,
			&p.Amount,
			&p.Method,
			&p.StationName,
			&p.EnergyKWh,
			&p.DurationMinutes,
		); err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return payments, nil
}
