package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type TaskHandler struct {
	Service *services.TaskService
}

func NewTaskHandler(service *services.TaskService) *TaskHandler {
	return &TaskHandler{Service: service}
}

func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var task models.Task
	if err := json.NewDecoder(r.Body).Decode(&task); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	created, err := h.Service.CreateTask(r.Context(), &task)
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_CREATE_FAILED, Description: Failed to create task '%s': %v", task.Title, err)
		handleServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task '%s' created", created.Title)
	writeJSON(w, http.StatusCreated, created)
}

func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := h.Service.ListTasks(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// ListTasksByProject serves GET /api/projects/{id}/tasks.
func (h *TaskHandler) ListTasksByProject(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	tasks, err := h.Service.ListTasksByProject(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

func (h *TaskHandler) GetTaskByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	task, err := h.Service.GetTaskByID(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.Task
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	updated, err := h.Service.UpdateTask(r.Context(), vars["id"], &update)
	if err != nil {
		logging.Logger.Warnf("Event ID: TASK_UPDATE_FAILED, Description: Failed to update task %s: %v", vars["id"], err)
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

// CompleteTask serves PATCH /api/tasks/{id}/complete.
func (h *TaskHandler) CompleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	task, err := h.Service.CompleteTask(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: TASK_COMPLETED, Description: Task '%s' marked as completed", task.Title)
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteTask(r.Context(), vars["id"]); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

func (h *TaskHandler) BulkDeleteTasks(w http.ResponseWriter, r *http.Request) {
	var body struct {
		IDs []string `json:"ids"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	deleted, err := h.Service.BulkDeleteTasks(r.Context(), body.IDs)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if deleted == 0 {
		http.Error(w, "No tasks found for the given ids", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"deleted": deleted})
}
