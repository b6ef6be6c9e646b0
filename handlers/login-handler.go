package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/services"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type LoginHandler struct {
	UserService *services.UserService
}

func NewLoginHandler(userService *services.UserService) *LoginHandler {
	return &LoginHandler{UserService: userService}
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}

	token, user, err := h.UserService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		switch err.Error() {
		case "invalid username or password":
			http.Error(w, err.Error(), http.StatusUnauthorized)
		case "account is not verified":
			http.Error(w, err.Error(), http.StatusForbidden)
		default:
			http.Error(w, "Login failed", http.StatusInternalServerError)
		}
		logging.Logger.Warnf("Event ID: LOGIN_FAILED, Description: Login failed for '%s': %v", req.Username, err)
		return
	}

	logging.Logger.Infof("Event ID: LOGIN_SUCCESS, Description: User '%s' logged in", user.Username)
	writeJSON(w, http.StatusOK, LoginResponse{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	})
}

// Logout revokes the presented bearer token.
func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		http.Error(w, "Authorization header missing", http.StatusUnauthorized)
		return
	}
	token := strings.TrimPrefix(authHeader, "Bearer ")

	if err := h.UserService.Logout(r.Context(), token); err != nil {
		if err.Error() == "invalid token" {
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
		http.Error(w, "Logout failed", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}

// CheckUsername reports whether a username is already taken.
func (h *LoginHandler) CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		http.Error(w, "Username is required", http.StatusBadRequest)
		return
	}

	if _, err := h.UserService.GetUserByUsername(r.Context(), username); err != nil {
		if err.Error() == "user not found" {
			writeJSON(w, http.StatusOK, map[string]bool{"taken": false})
			return
		}
		handleServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"taken": true})
}
