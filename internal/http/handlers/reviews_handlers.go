package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"chargerelay/internal/http/middleware"
	"chargerelay/internal/models"
	"chargerelay/internal/service"
)

type ReviewsHandlers struct {
	svc    *service.ReviewsService
	logger *zap.Logger
}

func NewReviewsHandlers(svc *service.ReviewsService, logger *zap.Logger) *ReviewsHandlers {
	return &ReviewsHandlers{svc: svc, logger: logger}
}

type createReviewRequest struct {
	StationID int64  `json:"station_id"`
	Rating    int    `json:"rating"`
	Comments  string `json:"comments"`
}

// Create handles POST /api/reviews.
func (h *ReviewsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req createReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	review := &models.Review{
		UserID:    userID,
		StationID: req.StationID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	}
	if err := h.svc.Create(r.Context(), review); err != nil {
		if errors.Is(err, service.ErrInvalidReview) {
			writeError(w, http.StatusBadRequest, "station_id and a rating between 1 and 5 are required")
			return
		}
		h.logger.Error("create review failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create review")
		return
	}
	writeJSON(w, http.StatusCreated, review)
}

// List handles GET /api/reviews.
func (h *ReviewsHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	reviews, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list reviews failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}
