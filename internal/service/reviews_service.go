package service

import (
	"context"
	"strings"
	"time"

	"chargerelay/internal/models"
)

// ReviewStore defines review persistence used by the service.
type ReviewStore interface {
	Create(ctx context.Context, review *models.Review) error
	ListByUser(ctx context.Context, userID int64) ([]models.ReviewDetail, error)
	ListAll(ctx context.Context) ([]models.ReviewDetail, error)
}

// ReviewsService manages station reviews.
type ReviewsService struct {
	repo ReviewStore
	now  func() time.Time
}

// NewReviewsService builds service.
func NewReviewsService(repo ReviewStore) *ReviewsService {
	return &ReviewsService{repo: repo, now: time.Now}
}

// Create stores a review dated today.
func (s *ReviewsService) Create(ctx context.Context, review *models.Review) error {
	if review.Rating < 1 || review.Rating > 5 {
		return ErrInvalidReview
	}
	if review.StationID == 0 {
		return ErrInvalidReview
	}
	review.Comments = strings.TrimSpace(review.Comments)
	review.Date = s.now().UTC()
	return s.repo.Create(ctx, review)
}

// ListByUser returns reviews written by the user.
func (s *ReviewsService) ListByUser(ctx context.Context, userID int64) ([]models.ReviewDetail, error) {
	return s.repo.ListByUser(ctx, userID)
}

// ListAll returns every review across the network, newest first.
func (s *ReviewsService) ListAll(ctx context.Context) ([]models.ReviewDetail, error) {
	return s.repo.ListAll(ctx)
}
