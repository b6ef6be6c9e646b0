package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"taskhub-project/backend/services"
)

// parseListOptions reads the common listing query parameters.
func parseListOptions(r *http.Request) services.ListOptions {
	query := r.URL.Query()

	opts := services.ListOptions{
		Status:     query.Get("status"),
		Department: query.Get("department"),
		Date:       query.Get("date"),
	}
	if page, err := strconv.ParseInt(query.Get("page"), 10, 64); err == nil {
		opts.Page = page
	}
	if limit, err := strconv.ParseInt(query.Get("limit"), 10, 64); err == nil {
		opts.Limit = limit
	}
	return opts
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusForError maps service error messages onto HTTP statuses. Validation
// messages come back as 400, missing entities as 404, duplicates as 409,
// anything unexpected as 500.
func statusForError(err error) int {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		return http.StatusNotFound
	case strings.Contains(msg, "already exists"):
		return http.StatusConflict
	case strings.Contains(msg, "invalid"),
		strings.Contains(msg, "required"),
		strings.Contains(msg, "must"),
		strings.Contains(msg, "cannot"),
		strings.Contains(msg, "expected"),
		strings.Contains(msg, "nothing to update"),
		strings.Contains(msg, "too common"),
		strings.Contains(msg, "incorrect"),
		strings.Contains(msg, "expired"),
		strings.Contains(msg, "unfinished"):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func handleServiceError(w http.ResponseWriter, err error) {
	status := statusForError(err)
	if status == http.StatusInternalServerError {
		http.Error(w, "Internal server error", status)
		return
	}
	http.Error(w, err.Error(), status)
}
