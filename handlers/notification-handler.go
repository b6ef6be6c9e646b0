package handlers

import (
	"net/http"

	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type NotificationHandler struct {
	Service *services.NotificationService
}

func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{Service: service}
}

// ListNotifications returns the notifications of the authenticated user.
func (h *NotificationHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("Username")
	if username == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	notifications, err := h.Service.ListForUser(r.Context(), username)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, notifications)
}

func (h *NotificationHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("Username")
	if username == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.MarkRead(r.Context(), vars["id"], username); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
}

func (h *NotificationHandler) DeleteNotification(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("Username")
	if username == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}
	vars := mux.Vars(r)

	if err := h.Service.Delete(r.Context(), vars["id"], username); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Notification deleted successfully"})
}
