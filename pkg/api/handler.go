// Package api provides the REST endpoints for sessions, notifications,
// users, and therapists. It is a thin layer: request decoding, service
// calls, and error-kind to status-code mapping only.
package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/txn2/mind-connect/pkg/actor"
	"github.com/txn2/mind-connect/pkg/health"
	"github.com/txn2/mind-connect/pkg/notification"
	"github.com/txn2/mind-connect/pkg/session"
)

// HandlerConfig wires the services the API exposes.
type HandlerConfig struct {
	Sessions      *session.Service
	Notifications *notification.Service
	Users         actor.UserDirectory
	Therapists    actor.TherapistDirectory
	Health        *health.Checker
}

// Handler provides the REST API.
type Handler struct {
	mux           *http.ServeMux
	sessions      *session.Service
	notifications *notification.Service
	users         actor.UserDirectory
	therapists    actor.TherapistDirectory
	health        *health.Checker
}

// NewHandler creates the API handler and registers all routes.
func NewHandler(cfg HandlerConfig) *Handler {
	h := &Handler{
		mux:           http.NewServeMux(),
		sessions:      cfg.Sessions,
		notifications: cfg.Notifications,
		users:         cfg.Users,
		therapists:    cfg.Therapists,
		health:        cfg.Health,
	}
	h.registerRoutes()
	return h
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

// registerRoutes registers all API routes.
func (h *Handler) registerRoutes() {
	h.mux.HandleFunc("POST /api/v1/sessions", h.createSession)
	h.mux.HandleFunc("GET /api/v1/sessions", h.listSessions)
	h.mux.HandleFunc("GET /api/v1/sessions/range", h.listSessionsInRange)
	h.mux.HandleFunc("GET /api/v1/sessions/{id}", h.getSession)
	h.mux.HandleFunc("PUT /api/v1/sessions/{id}", h.updateSession)
	h.mux.HandleFunc("PUT /api/v1/sessions/{id}/status", h.updateSessionStatus)
	h.mux.HandleFunc("DELETE /api/v1/sessions/{id}", h.deleteSession)
	h.mux.HandleFunc("GET /api/v1/sessions/user/{userID}", h.listSessionsByUser)
	h.mux.HandleFunc("GET /api/v1/sessions/user/{userID}/upcoming", h.listUpcomingSessions)
	h.mux.HandleFunc("GET /api/v1/sessions/therapist/{therapistID}", h.listSessionsByTherapist)
	h.mux.HandleFunc("GET /api/v1/sessions/status/{status}", h.listSessionsByStatus)

	h.mux.HandleFunc("POST /api/v1/notifications", h.createNotification)
	h.mux.HandleFunc("GET /api/v1/notifications/{id}", h.getNotification)
	h.mux.HandleFunc("PUT /api/v1/notifications/{id}/read", h.markNotificationRead)
	h.mux.HandleFunc("DELETE /api/v1/notifications/{id}", h.deleteNotification)
	h.mux.HandleFunc("GET /api/v1/notifications/user/{userID}", h.listNotificationsByUser)
	h.mux.HandleFunc("GET /api/v1/notifications/user/{userID}/unread", h.listUnreadNotificationsByUser)

	h.mux.HandleFunc("POST /api/v1/users", h.createUser)
	h.mux.HandleFunc("GET /api/v1/users", h.listUsers)
	h.mux.HandleFunc("GET /api/v1/users/{id}", h.getUser)
	h.mux.HandleFunc("PUT /api/v1/users/{id}", h.updateUser)
	h.mux.HandleFunc("DELETE /api/v1/users/{id}", h.deleteUser)

	h.mux.HandleFunc("POST /api/v1/therapists", h.createTherapist)
	h.mux.HandleFunc("GET /api/v1/therapists", h.listTherapists)
	h.mux.HandleFunc("GET /api/v1/therapists/{id}", h.getTherapist)
	h.mux.HandleFunc("PUT /api/v1/therapists/{id}", h.updateTherapist)
	h.mux.HandleFunc("DELETE /api/v1/therapists/{id}", h.deleteTherapist)

	if h.health != nil {
		h.mux.HandleFunc("GET /healthz", h.health.LivenessHandler())
		h.mux.HandleFunc("GET /readyz", h.health.ReadinessHandler())
	}
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service error kinds to status codes: missing
// targets to 404, dangling actor references to 422, everything else to
// a logged 500.
func writeServiceError(w http.ResponseWriter, err error) {
	var refErr *session.ReferenceNotFoundError
	switch {
	case errors.Is(err, session.ErrNotFound),
		errors.Is(err, notification.ErrNotFound),
		errors.Is(err, actor.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.As(err, &refErr):
		writeError(w, http.StatusUnprocessableEntity, refErr.Error())
	default:
		slog.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// decodeJSON decodes a request body, rejecting unknown fields.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}
