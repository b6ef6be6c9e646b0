package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateProject(r.Context(), &project)
	if err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_CREATE_FAILED, Description: Failed to create project '%s': %v", project.Name, err)
		handleServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project '%s' created", created.Name)
	writeJSON(w, http.StatusCreated, created)
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.ListProjects(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProjectByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	project, err := h.Service.GetProjectByID(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, project)
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.ProjectUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateProject(r.Context(), vars["id"], &update)
	if err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_UPDATE_FAILED, Description: Failed to update project %s: %v", vars["id"], err)
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteProject(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted", vars["id"])
	writeJSON(w, http.StatusOK, map[string]string{"message": "Project deleted successfully"})
}

// BulkDeleteProjects removes every project in the ids list. Responds 404 when
// none of the ids matched.
func (h *ProjectHandler) BulkDeleteProjects(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.BulkDeleteProjects(r.Context(), body.IDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if deleted == 0 {
		http.Error(w, "No projects found for the given ids", http.StatusNotFound)
		return
	}

	logging.Logger.Infof("Event ID: PROJECTS_BULK_DELETED, Description: %d projects deleted", deleted)
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
