package api

import (
	"net/http"

	"github.com/txn2/mind-connect/pkg/notification"
)

type createNotificationRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	Type      string `json:"type"`
}

func (h *Handler) createNotification(w http.ResponseWriter, r *http.Request) {
	var req createNotificationRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.UserID == "" || req.Title == "" || req.Message == "" {
		writeError(w, http.StatusBadRequest, "user_id, title and message are required")
		return
	}

	n, err := h.notifications.Create(r.Context(), &notification.Notification{
		UserID:    req.UserID,
		SessionID: req.SessionID,
		Title:     req.Title,
		Message:   req.Message,
		Type:      notification.Type(req.Type),
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (h *Handler) getNotification(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handler) markNotificationRead(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.MarkAsRead(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *Handler) deleteNotification(w http.ResponseWriter, r *http.Request) {
	if err := h.notifications.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) listNotificationsByUser(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListByUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *Handler) listUnreadNotificationsByUser(w http.ResponseWriter, r *http.Request) {
	notifications, err := h.notifications.ListUnreadByUser(r.Context(), r.PathValue("userID"))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}
