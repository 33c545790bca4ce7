package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"chargerelay/internal/http/middleware"
	"chargerelay/internal/models"
	"chargerelay/internal/repository"
	"chargerelay/internal/service"
)

// SessionsHandlers exposes session lifecycle and history.
type SessionsHandlers struct {
	svc    *service.SessionsService
	logger *zap.Logger
}

// NewSessionsHandlers returns handler set.
func NewSessionsHandlers(svc *service.SessionsService, logger *zap.Logger) *SessionsHandlers {
	return &SessionsHandlers{svc: svc, logger: logger}
}

type startSessionRequest struct {
	PortID    int64 `json:"port_id"`
	VehicleID int64 `json:"vehicle_id"`
}

// Start handles POST /api/sessions.
func (h *SessionsHandlers) Start(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}
	if req.PortID == 0 {
		writeError(w, http.StatusBadRequest, "port_id is required")
		return
	}

	session, err := h.svc.Start(r.Context(), userID, req.PortID, req.VehicleID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrPortNotFound):
			writeError(w, http.StatusBadRequest, "invalid port")
		case errors.Is(err, service.ErrPortUnavailable):
			writeError(w, http.StatusBadRequest, "port is not available")
		default:
			h.logger.Error("start session failed", zap.Int64("port_id", req.PortID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to start session")
		}
		return
	}
	writeJSON(w, http.StatusCreated, session)
}

// End handles POST /api/sessions/{id}/end.
func (h *SessionsHandlers) End(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	sessionID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	session, err := h.svc.End(r.Context(), sessionID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrSessionNotFound):
			writeError(w, http.StatusNotFound, "session not found")
		case errors.Is(err, service.ErrNotOwner):
			writeError(w, http.StatusForbidden, "not your session")
		case errors.Is(err, service.ErrSessionClosed):
			writeError(w, http.StatusBadRequest, "session already closed")
		default:
			h.logger.Error("end session failed", zap.Int64("session_id", sessionID), zap.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to end session")
		}
		return
	}
	writeJSON(w, http.StatusOK, session)
}

// ActiveOnPort handles GET /api/ports/{id}/session: whether someone is
// charging on the port right now.
func (h *SessionsHandlers) ActiveOnPort(w http.ResponseWriter, r *http.Request) {
	portID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid port id")
		return
	}

	session, err := h.svc.ActiveOnPort(r.Context(), portID)
	if err != nil {
		h.logger.Error("active session lookup failed", zap.Int64("port_id", portID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to check port")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"in_use":  session != nil,
		"session": session,
	})
}

// List handles GET /api/sessions: completed history plus the active
// session, if any.
func (h *SessionsHandlers) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}

	sessions, err := h.svc.ListByUser(r.Context(), userID)
	if err != nil {
		h.logger.Error("list sessions failed", zap.Int64("user_id", userID), zap.Error(err))
		writeError(w, http.StatusInternalServerError, "failed to fetch sessions")
		return
	}

	var active *models.SessionDetail
	completed := make([]models.SessionDetail, 0, len(sessions))
	for i := range sessions {
		if sessions[i].Open() {
			if active == nil {
				active = &sessions[i]
			}
			continue
		}
		completed = append(completed, sessions[i])
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"sessions":       completed,
		"active_session": active,
	})
}
