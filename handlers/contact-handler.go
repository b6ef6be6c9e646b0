package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type ContactHandler struct {
	Service *services.ContactService
}

func NewContactHandler(service *services.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

func (h *ContactHandler) CreateContact(w http.ResponseWriter, r *http.Request) {
	var contact models.Contact
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateContact(r.Context(), &contact)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *ContactHandler) ListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Service.ListContacts(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) DeleteContact(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteContact(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Contact message deleted successfully"})
}
