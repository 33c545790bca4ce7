package service

import (
	"context"

	"chargerelay/internal/models"
	"chargerelay/internal/repository"
)

// PaymentTotals sums a user's payments by status.
type PaymentTotals struct {
	Total     float64 `json:"total"`
	Pending   float64 `json:"pending"`
	Completed float64 `json:"completed"`
}

// PaymentsService is the read side of payment history.
type PaymentsService struct {
	repo *repository.PaymentRepository
}

// NewPaymentsService builds service.
func NewPaymentsService(repo *repository.PaymentRepository) *PaymentsService {
	return &PaymentsService{repo: repo}
}

// ListByUser returns the user's payments and their totals.
func (s *PaymentsService) ListByUser(ctx context.Context, userID int64) ([]models.PaymentDetail, PaymentTotals, error) {
	payments, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, PaymentTotals{}, err
	}

	var totals PaymentTotals
	for _, p := range payments {
		totals.Total += p.Amount
		switch p.Status {
		case models.PaymentPending:
			totals.Pending += p.Amount
		case models.PaymentCompleted:
			totals.Completed += p.Amount
		}
	}
	return payments, totals, nil
}
