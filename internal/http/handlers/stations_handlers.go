package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"chargerelay/internal/http/middleware"
	"chargerelay/internal/models"
	"chargerelay/internal/service"
)

// StationsHandlers serves the station browser and admin station creation.
type StationsHandlers struct {
	svc    *service.StationsService
	logger *zap.Logger
}

func NewStationsHandlers(svc *service.StationsService, logger *zap.Logger) *StationsHandlers {
	return &StationsHandlers{svc: svc, logger: logger}
}

// List handles GET /api/stations. Supports ?connector_type= and
// ?availability=available|in-use filters.
func (h *StationsHandlers) List(w http.ResponseWriter, r *http.Request) {
	filter := service.ListFilter{
		ConnectorType: r.URL.Query().Get("connector_type"),
		Availability:  r.URL.Query().Get("availability"),
	}

	stations, err := h.svc.List(r.Context(), filter)
	if err != nil {
		h.logger.Error("list stations failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch stations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stations": stations})
}

// Ports handles GET /api/stations/{id}/ports.
func (h *StationsHandlers) Ports(w http.ResponseWriter, r *http.Request) {
	stationID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid station id")
		return
	}

	ports, err := h.svc.Ports(r.Context(), stationID)
	if err != nil {
		h.logger.Error("list station ports failed", zap.Int64("station_id", stationID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch ports")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"ports": ports})
}

// Visited handles GET /api/stations/visited: stations the caller has
// charged at.
func (h *StationsHandlers) Visited(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	stations, err := h.svc.ListVisited(r.Context(), userID)
	if err != nil {
		h.logger.Error("list visited stations failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch stations")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"stations": stations})
}

type createStationRequest struct {
	OperatorName string `json:"operator_name"`
	Location     string `json:"location"`
	Contact      string `json:"contact"`
}

// Create handles POST /api/admin/stations.
func (h *StationsHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req createStationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	station := &models.Station{
		OperatorName: req.OperatorName,
		Location:     req.Location,
		Contact:      req.Contact,
	}
	if err := h.svc.Create(r.Context(), station); err != nil {
		if errors.Is(err, service.ErrInvalidStation) {
			writeError(w, http.StatusBadRequest, "operator name and location are required")
			return
		}
		h.logger.Error("create station failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to create station")
		return
	}
	writeJSON(w, http.StatusCreated, station)
}
