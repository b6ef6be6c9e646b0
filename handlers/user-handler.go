package handlers

import (
	"encoding/json"
	"net/http"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/models"
	"taskhub-project/backend/services"

	"github.com/gorilla/mux"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if user.Username == "" || user.Email == "" || user.Password == "" {
		http.Error(w, "Username, email and password are required", http.StatusBadRequest)
		return
	}

	if err := h.Service.RegisterUser(r.Context(), user); err != nil {
		logging.Logger.Warnf("Event ID: USER_REGISTER_FAILED, Description: Failed to register user '%s': %v", user.Username, err)
		handleServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_REGISTERED, Description: User '%s' registered, verification code sent", user.Username)
	writeJSON(w, http.StatusCreated, map[string]string{"message": "Verification code sent to your email"})
}

func (h *UserHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Code     string `json:"code"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.VerifyUser(r.Context(), req.Username, req.Code); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Account verified successfully"})
}

func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.Service.ListUsers(r.Context(), parseListOptions(r))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	user, err := h.Service.GetUserByID(r.Context(), vars["id"])
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var update models.User
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	user, err := h.Service.UpdateUser(r.Context(), vars["id"], update)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	if err := h.Service.DeleteUser(r.Context(), vars["id"]); err != nil {
		if err.Error() == "cannot delete user assigned to an in-progress task" {
			http.Error(w, err.Error(), http.StatusForbidden)
			return
		}
		handleServiceError(w, err)
		return
	}

	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s deleted", vars["id"])
	writeJSON(w, http.StatusOK, map[string]string{"message": "User deleted successfully"})
}

// ChangePassword changes the password of the authenticated user.
func (h *UserHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	username := r.Header.Get("Username")
	if username == "" {
		http.Error(w, "Authentication required", http.StatusUnauthorized)
		return
	}

	var req struct {
		OldPassword string `json:"oldPassword"`
		NewPassword string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	if err := h.Service.ChangePassword(r.Context(), username, req.OldPassword, req.NewPassword); err != nil {
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}
