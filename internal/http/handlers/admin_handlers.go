package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"chargerelay/internal/models"
	"chargerelay/internal/repository"
	"chargerelay/internal/service"
)

// AdminHandlers groups the operator-facing endpoints: dashboard,
// port administration and maintenance views.
type AdminHandlers struct {
	ports   *service.PortsService
	reports *service.ReportsService
	reviews *service.ReviewsService
	logs    *repository.StatusLogRepository
	logger  *zap.Logger
}

func NewAdminHandlers(ports *service.PortsService, reports *service.ReportsService, reviews *service.ReviewsService, logs *repository.StatusLogRepository, logger *zap.Logger) *AdminHandlers {
	return &AdminHandlers{ports: ports, reports: reports, reviews: reviews, logs: logs, logger: logger}
}

// Dashboard handles GET /api/admin/dashboard.
func (h *AdminHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	report, err := h.reports.Dashboard(r.Context())
	if err != nil {
		h.logger.Error("dashboard report failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to build dashboard")
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// ListReviews handles GET /api/admin/reviews.
func (h *AdminHandlers) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.reviews.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list reviews failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch reviews")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"reviews": reviews})
}

// ListPorts handles GET /api/admin/ports. Supports ?status=.
func (h *AdminHandlers) ListPorts(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	ports, err := h.ports.List(r.Context(), status)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "unknown port status")
			return
		}
		h.logger.Error("list ports failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch ports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ports": ports})
}

type addPortRequest struct {
	StationID     int64   `json:"station_id"`
	ConnectorType string  `json:"connector_type"`
	MaxPowerKW    float64 `json:"max_power_kw"`
	Status        string  `json:"status"`
}

// AddPort handles POST /api/admin/ports.
func (h *AdminHandlers) AddPort(w http.ResponseWriter, r *http.Request) {
	var req addPortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.StationID == 0 || req.ConnectorType == "" {
		writeError(w, http.StatusBadRequest, "station_id and connector_type are required")
		return
	}

	port := &models.Port{
		StationID:     req.StationID,
		ConnectorType: req.ConnectorType,
		MaxPowerKW:    req.MaxPowerKW,
		Status:        req.Status,
	}
	if err := h.ports.AddPort(r.Context(), port); err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			writeError(w, http.StatusBadRequest, "unknown port status")
			return
		}
		h.logger.Error("add port failed", zap.Int64("station_id", req.StationID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to add port")
		return
	}
	writeJSON(w, http.StatusCreated, port)
}

type overridePortRequest struct {
	Status string `json:"status"`
}

// OverridePort handles PATCH /api/admin/ports/{id}.
func (h *AdminHandlers) OverridePort(w http.ResponseWriter, r *http.Request) {
	portID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid port id")
		return
	}

	var req overridePortRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	port, err := h.ports.OverrideStatus(r.Context(), portID, req.Status)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			writeError(w, http.StatusBadRequest, "unknown port status")
		case errors.Is(err, repository.ErrPortNotFound):
			writeError(w, http.StatusNotFound, "port not found")
		default:
			h.logger.Error("override port failed", zap.Int64("port_id", portID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to update port")
		}
		return
	}
	writeJSON(w, http.StatusOK, port)
}

// PortStatusLog handles GET /api/admin/ports/{id}/log.
func (h *AdminHandlers) PortStatusLog(w http.ResponseWriter, r *http.Request) {
	portID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid port id")
		return
	}

	entries, err := h.logs.ListByPort(r.Context(), portID, 100)
	if err != nil {
		h.logger.Error("list status log failed", zap.Int64("port_id", portID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch status log")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"log": entries})
}

// MaintenancePorts handles GET /api/admin/maintenance/ports.
func (h *AdminHandlers) MaintenancePorts(w http.ResponseWriter, r *http.Request) {
	ports, err := h.ports.ListMaintenance(r.Context())
	if err != nil {
		h.logger.Error("list maintenance ports failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch ports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ports": ports})
}

// RestorePort handles POST /api/admin/maintenance/ports/{id}/restore.
func (h *AdminHandlers) RestorePort(w http.ResponseWriter, r *http.Request) {
	portID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid port id")
		return
	}

	port, err := h.ports.RestoreToService(r.Context(), portID)
	if err != nil {
		if errors.Is(err, repository.ErrPortNotFound) {
			writeError(w, http.StatusNotFound, "port not found")
			return
		}
		h.logger.Error("restore port failed", zap.Int64("port_id", portID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to restore port")
		return
	}
	writeJSON(w, http.StatusOK, port)
}
