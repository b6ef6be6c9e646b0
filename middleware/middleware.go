package middleware

import (
	"context"
	"net/http"
	"strings"

	"taskhub-project/backend/logging"
	"taskhub-project/backend/utils"
)

// TokenRevoker reports whether a bearer token has been revoked by logout.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// JWTAuthMiddleware validates the bearer token, checks it against the revoked
// set and gates the request by role. The resolved username and role are set as
// request headers for downstream handlers.
func JWTAuthMiddleware(next http.Handler, allowedRoles []string, revoker TokenRevoker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			logging.Logger.Warnf("Event ID: JWT_AUTH_MISSING_HEADER, Description: Authorization header missing for request to %s %s", r.Method, r.URL.Path)
			http.Error(w, "Authorization header missing", http.StatusUnauthorized)
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := utils.ValidateToken(tokenStr)
		if err != nil {
			logging.Logger.Warnf("Event ID: JWT_AUTH_INVALID_TOKEN, Description: Invalid token provided for request to %s %s: %v", r.Method, r.URL.Path, err)
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		if revoker != nil {
			revoked, err := revoker.IsRevoked(r.Context(), tokenStr)
			if err != nil {
				logging.Logger.Errorf("Event ID: JWT_AUTH_REVOCATION_CHECK_FAILED, Description: Failed to check token revocation: %v", err)
				http.Error(w, "Failed to validate token", http.StatusInternalServerError)
				return
			}
			if revoked {
				http.Error(w, "Token has been revoked", http.StatusUnauthorized)
				return
			}
		}

		if claims.Role == "" {
			http.Error(w, "Missing role in token", http.StatusUnauthorized)
			return
		}

		if len(allowedRoles) > 0 && !contains(allowedRoles, claims.Role) {
			http.Error(w, "Access forbidden", http.StatusForbidden)
			return
		}

		r.Header.Set("Role", claims.Role)
		r.Header.Set("Username", claims.Username)
		next.ServeHTTP(w, r)
	})
}

// EnableCORS allows the frontend origin and handles preflight requests.
func EnableCORS(next http.Handler, origin string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", origin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, Role, Username")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
