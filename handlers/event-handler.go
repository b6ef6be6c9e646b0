package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type EventHandler struct {
	Service *services.EventService
}

func NewEventHandler(service *services.EventService) *EventHandler {
	return &EventHandler{Service: service}
}

func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var event models.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateEvent(r.Context(), &event)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Service.ListEvents(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

func (h *EventHandler) GetEventByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	event, err := h.Service.GetEventByID(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.Event
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	event, err := h.Service.UpdateEvent(r.Context(), vars["id"], update)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}

func (h *EventHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteEvent(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Event deleted successfully"})
}
