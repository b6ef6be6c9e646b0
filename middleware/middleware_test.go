package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskhub-project/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRevoker struct {
	revoked map[string]bool
}

func (f *fakeRevoker) IsRevoked(_ context.Context, token string) (bool, error) {
	return f.revoked[token], nil
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestJWTAuthMiddlewareMissingHeader(t *testing.T) {
	utils.InitJWT("test-secret")
	next, called := okHandler()

	handler := JWTAuthMiddleware(next, []string{"Admin"}, nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/projects", nil))

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestJWTAuthMiddlewareInvalidToken(t *testing.T) {
	utils.InitJWT("test-secret")
	next, called := okHandler()

	handler := JWTAuthMiddleware(next, []string{"Admin"}, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	req.Header.Set("Authorization", "Bearer garbage")

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestJWTAuthMiddlewareForbiddenRole(t *testing.T) {
	utils.InitJWT("test-secret")
	token, err := utils.GenerateToken("jsmith", "Member")
	require.NoError(t, err)

	next, called := okHandler()
	handler := JWTAuthMiddleware(next, []string{"Admin"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.False(t, *called)
}

func TestJWTAuthMiddlewareRevokedToken(t *testing.T) {
	utils.InitJWT("test-secret")
	token, err := utils.GenerateToken("jsmith", "Admin")
	require.NoError(t, err)

	next, called := okHandler()
	revoker := &fakeRevoker{revoked: map[string]bool{token: true}}
	handler := JWTAuthMiddleware(next, []string{"Admin"}, revoker)

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.False(t, *called)
}

func TestJWTAuthMiddlewareAllowsValidToken(t *testing.T) {
	utils.InitJWT("test-secret")
	token, err := utils.GenerateToken("adoe", "Admin")
	require.NoError(t, err)

	var gotUsername, gotRole string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUsername = r.Header.Get("Username")
		gotRole = r.Header.Get("Role")
		w.WriteHeader(http.StatusOK)
	})

	handler := JWTAuthMiddleware(next, []string{"Admin", "Manager"}, &fakeRevoker{revoked: map[string]bool{}})

	req := httptest.NewRequest(http.MethodGet, "/api/dashboard", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "adoe", gotUsername)
	assert.Equal(t, "Admin", gotRole)
}

func TestEnableCORSPreflight(t *testing.T) {
	next, called := okHandler()
	handler := EnableCORS(next, "http://localhost:4200")

	req := httptest.NewRequest(http.MethodOptions, "/api/projects", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "http://localhost:4200", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, *called)
}
