package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusForError(t *testing.T) {
	tests := []struct {
		msg  string
		want int
	}{
		{"project not found", http.StatusNotFound},
		{"project with the same name already exists", http.StatusConflict},
		{"invalid project id", http.StatusBadRequest},
		{"project name is required", http.StatusBadRequest},
		{"task due date cannot exceed project due date", http.StatusBadRequest},
		{"project has unfinished tasks", http.StatusBadRequest},
		{"password is too common", http.StatusBadRequest},
		{"old password is incorrect", http.StatusBadRequest},
		{"verification code has expired", http.StatusBadRequest},
		{"nothing to update", http.StatusBadRequest},
		{"connection reset by peer", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			assert.Equal(t, tt.want, statusForError(errors.New(tt.msg)))
		})
	}
}

func TestHandleServiceErrorHidesInternalDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	handleServiceError(rr, errors.New("dial tcp: connection refused"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, "Internal server error\n", rr.Body.String())
}

func TestParseListOptions(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/projects?status=overdue&department=abc&page=2&limit=5", nil)

	opts := parseListOptions(req)
	assert.Equal(t, "overdue", opts.Status)
	assert.Equal(t, "abc", opts.Department)
	assert.Equal(t, int64(2), opts.Page)
	assert.Equal(t, int64(5), opts.Limit)
}

func TestParseListOptionsIgnoresBadNumbers(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/projects?page=abc&limit=", nil)

	opts := parseListOptions(req)
	assert.Equal(t, int64(0), opts.Page)
	assert.Equal(t, int64(0), opts.Limit)
}
