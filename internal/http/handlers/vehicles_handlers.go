package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"chargerelay/internal/http/middleware"
	"chargerelay/internal/models"
	"chargerelay/internal/repository"
	"chargerelay/internal/service"
)

type VehiclesHandlers struct {
	svc    *service.VehiclesService
	logger *zap.Logger
}

func NewVehiclesHandlers(svc *service.VehiclesService, logger *zap.Logger) *VehiclesHandlers {
	return &VehiclesHandlers{svc: svc, logger: logger}
}

type registerVehicleRequest struct {
	Plate         string  `json:"plate"`
	MakerModel    string  `json:"maker_model"`
	BatteryHealth string  `json:"battery_health"`
	ConnectorType string  `json:"connector_type"`
	PurchaseDate  string  `json:"purchase_date"`
	DistanceKm    float64 `json:"distance_km"`
}

// Register handles POST /api/vehicles.
func (h *VehiclesHandlers) Register(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req registerVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	vehicle := &models.Vehicle{
		UserID:        userID,
		Plate:         req.Plate,
		MakerModel:    req.MakerModel,
		BatteryHealth: req.BatteryHealth,
		ConnectorType: req.ConnectorType,
		DistanceKm:    req.DistanceKm,
	}
	if req.PurchaseDate != "" {
		date, err := time.Parse("2006-01-02", req.PurchaseDate)
		if err != nil {
			writeError(w, http.StatusBadRequest, "purchase_date must be YYYY-MM-DD")
			return
		}
		vehicle.PurchaseDate = date
	}

	if err := h.svc.Register(r.Context(), vehicle); err != nil {
		if errors.Is(err, service.ErrInvalidVehicle) {
			writeError(w, http.StatusBadRequest, "plate and maker_model are required")
			return
		}
		h.logger.Error("register vehicle failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to register vehicle")
		return
	}
	writeJSON(w, http.StatusCreated, vehicle)
}

// Get handles GET /api/vehicles/{id}.
func (h *VehiclesHandlers) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vehicleID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid vehicle id")
		return
	}

	vehicle, err := h.svc.Get(r.Context(), vehicleID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrVehicleNotFound):
			writeError(w, http.StatusNotFound, "vehicle not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "not your vehicle")
		default:
			h.logger.Error("get vehicle failed", zap.Int64("vehicle_id", vehicleID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to fetch vehicle")
		}
		return
	}
	writeJSON(w, http.StatusOK, vehicle)
}

// List handles GET /api/vehicles.
func (h *VehiclesHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	vehicles, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list vehicles failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch vehicles")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"vehicles": vehicles})
}
