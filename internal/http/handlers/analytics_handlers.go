package handlers

import (
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"chargerelay/internal/http/middleware"
	"chargerelay/internal/service"
)

type AnalyticsHandlers struct {
	reports *service.ReportsService
	pricing service.Pricing
	logger  *zap.Logger
}

func NewAnalyticsHandlers(reports *service.ReportsService, pricing service.Pricing, logger *zap.Logger) *AnalyticsHandlers {
	return &AnalyticsHandlers{reports: reports, pricing: pricing, logger: logger}
}

// Me handles GET /api/analytics/me.
func (h *AnalyticsHandlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	analytics, err := h.reports.UserAnalytics(r.Context(), userID)
	if err != nil {
		h.logger.Error("user analytics failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build analytics")
		return
	}
	writeJSON(w, http.StatusOK, analytics)
}

// Estimate handles GET /api/estimates. Query params: battery_percent
// (required) and capacity_kwh (optional, defaults to the assumed
// battery size).
func (h *AnalyticsHandlers) Estimate(w http.ResponseWriter, r *http.Request) {
	percent, err := strconv.ParseFloat(r.URL.Query().Get("battery_percent"), 64)
	if err != nil || percent < 0 || percent > 100 {
		writeError(w, http.StatusBadRequest, "battery_percent must be between 0 and 100")
		return
	}

	capacity := 0.0
	if raw := r.URL.Query().Get("capacity_kwh"); raw != "" {
		capacity, err = strconv.ParseFloat(raw, 64)
		if err != nil || capacity < 0 {
			writeError(w, http.StatusBadRequest, "capacity_kwh must be a positive number")
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"minutes_to_full": h.pricing.EstimateChargeMinutes(percent, capacity),
		"estimated_cost":  h.pricing.EstimateCost(percent, capacity),
	})
}
