package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"chargerelay/internal/models"
)

type fakeReviewStore struct {
	reviews []models.Review
}

func (f *fakeReviewStore) Create(_ context.Context, review *models.Review) error {
	review.ID = int64(len(f.reviews) + 1)
	f.reviews = append(f.reviews, *review)
	return nil
}

func (f *fakeReviewStore) ListByUser(_ context.Context, userID int64) ([]models.ReviewDetail, error) {
	var out []models.ReviewDetail
	for _, r := range f.reviews {
		if r.UserID == userID {
			out = append(out, models.ReviewDetail{Review: r})
		}
	}
	return out, nil
}

func (f *fakeReviewStore) ListAll(_ context.Context) ([]models.ReviewDetail, error) {
	out := make([]models.ReviewDetail, 0, len(f.reviews))
	for _, r := range f.reviews {
		out = append(out, models.ReviewDetail{Review: r})
	}
	return out, nil
}

func TestCreateReviewValidatesRating(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewsService(store)

	for _, rating := range []int{0, -1, 6} {
		err := svc.Create(context.Background(), &models.Review{StationID: 1, Rating: rating})
		if !errors.Is(err, ErrInvalidReview) {
			t.Fatalf("rating %d: err = %v, want ErrInvalidReview", rating, err)
		}
	}
	if err := svc.Create(context.Background(), &models.Review{Rating: 4}); !errors.Is(err, ErrInvalidReview) {
		t.Fatalf("missing station: err = %v, want ErrInvalidReview", err)
	}
	if len(store.reviews) != 0 {
		t.Fatalf("invalid reviews were stored: %d", len(store.reviews))
	}
}

func TestCreateReviewStampsDate(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewsService(store)
	fixed := time.Date(2026, 4, 2, 15, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	review := &models.Review{UserID: 7, StationID: 1, Rating: 5, Comments: "  fast chargers  "}
	if err := svc.Create(context.Background(), review); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if !review.Date.Equal(fixed) {
		t.Fatalf("date = %v, want %v", review.Date, fixed)
	}
	if review.Comments != "fast chargers" {
		t.Fatalf("comments = %q, want trimmed", review.Comments)
	}

	listed, err := svc.ListByUser(context.Background(), 7)
	if err != nil {
		t.Fatalf("ListByUser returned error: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("reviews = %d, want 1", len(listed))
	}
}

func TestListAllSpansUsers(t *testing.T) {
	store := &fakeReviewStore{}
	svc := NewReviewsService(store)

	for _, r := range []models.Review{
		{UserID: 1, StationID: 1, Rating: 5},
		{UserID: 2, StationID: 1, Rating: 3},
		{UserID: 2, StationID: 2, Rating: 4},
	} {
		r := r
		if err := svc.Create(context.Background(), &r); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}

	all, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("reviews = %d, want 3", len(all))
	}
}
