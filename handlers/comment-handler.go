package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type CommentHandler struct {
	Service *services.CommentService
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{Service: service}
}

func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	var comment models.Comment
	if err := json.NewDecoder(r.Body).Decode(&comment); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateComment(r.Context(), &comment)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

// ListComments serves GET /api/comments?project=... or ?task=...
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	comments, err := h.Service.ListComments(r.Context(), query.Get("project"), query.Get("task"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, comments)
}

func (h *CommentHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteComment(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
}
