package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"wheelshare-backend/internal/domain"
	"wheelshare-backend/internal/security"
)

func okHandler(t *testing.T, wantUserID int32) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := userFrom(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantUserID, user.ID)
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	m := newMiddleware(tokens)

	t.Run("MissingHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		rec := httptest.NewRecorder()

		m.authenticate(okHandler(t, 0)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("MalformedHeader", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Basic abc")
		rec := httptest.NewRecorder()

		m.authenticate(okHandler(t, 0)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("InvalidToken", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer garbage")
		rec := httptest.NewRecorder()

		m.authenticate(okHandler(t, 0)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("ValidToken", func(t *testing.T) {
		token, err := tokens.GenerateAccessToken(42, "rita@example.com", domain.RoleRenter)
		assert.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/api/profile", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()

		m.authenticate(okHandler(t, 42)).ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireRole(t *testing.T) {
	tokens := security.NewTokenManager("test-secret", time.Hour)
	m := newMiddleware(tokens)

	serve := func(role domain.UserRole, allowed ...domain.UserRole) int {
		token, err := tokens.GenerateAccessToken(42, "user@example.com", role)
		assert.NoError(t, err)

		handler := m.authenticate(m.requireRole(allowed...)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})))

		req := httptest.NewRequest(http.MethodGet, "/api/admin/overview", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec.Code
	}

	t.Run("RoleAllowed", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(domain.RoleAdmin, domain.RoleAdmin))
	})

	t.Run("RoleDenied", func(t *testing.T) {
		assert.Equal(t, http.StatusForbidden, serve(domain.RoleRenter, domain.RoleAdmin))
	})

	t.Run("MultipleRoles", func(t *testing.T) {
		assert.Equal(t, http.StatusOK, serve(domain.RoleOwner, domain.RoleOwner, domain.RoleAdmin))
	})
}
