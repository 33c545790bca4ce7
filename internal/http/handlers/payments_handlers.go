package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"chargerelay/internal/http/middleware"
	"chargerelay/internal/service"
)

type PaymentsHandlers struct {
	svc    *service.PaymentsService
	logger *zap.Logger
}

func NewPaymentsHandlers(svc *service.PaymentsService, logger *zap.Logger) *PaymentsHandlers {
	return &PaymentsHandlers{svc: svc, logger: logger}
}

// List handles GET /api/payments.
func (h *PaymentsHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	payments, totals, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list payments failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch payments")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"totals":   totals,
	})
}
