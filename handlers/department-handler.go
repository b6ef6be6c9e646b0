package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type DepartmentHandler struct {
	Service *services.DepartmentService
}

func NewDepartmentHandler(service *services.DepartmentService) *DepartmentHandler {
	return &DepartmentHandler{Service: service}
}

func (h *DepartmentHandler) CreateDepartment(w http.ResponseWriter, r *http.Request) {
	var department models.Department
	if err := json.NewDecoder(r.Body).Decode(&department); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateDepartment(r.Context(), &department)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *DepartmentHandler) ListDepartments(w http.ResponseWriter, r *http.Request) {
	departments, err := h.Service.ListDepartments(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, departments)
}

func (h *DepartmentHandler) GetDepartmentByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	department, err := h.Service.GetDepartmentByID(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

func (h *DepartmentHandler) UpdateDepartment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.Department
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	department, err := h.Service.UpdateDepartment(r.Context(), vars["id"], update)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, department)
}

func (h *DepartmentHandler) DeleteDepartment(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteDepartment(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Department deleted successfully"})
}
