package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type MeetingHandler struct {
	Service *services.MeetingService
}

func NewMeetingHandler(service *services.MeetingService) *MeetingHandler {
	return &MeetingHandler{Service: service}
}

func (h *MeetingHandler) CreateMeeting(w http.ResponseWriter, r *http.Request) {
	var meeting models.Meeting
	if err := json.NewDecoder(r.Body).Decode(&meeting); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateMeeting(r.Context(), &meeting)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *MeetingHandler) ListMeetings(w http.ResponseWriter, r *http.Request) {
	meetings, err := h.Service.ListMeetings(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meetings)
}

func (h *MeetingHandler) GetMeetingByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	meeting, err := h.Service.GetMeetingByID(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) UpdateMeeting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.Meeting
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	meeting, err := h.Service.UpdateMeeting(r.Context(), vars["id"], update)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, meeting)
}

func (h *MeetingHandler) DeleteMeeting(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteMeeting(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Meeting deleted successfully"})
}
