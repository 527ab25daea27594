package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kopitoko/backend/internal/infrastructure/auth"
	"github.com/kopitoko/backend/internal/infrastructure/config"
)

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-middleware-tests",
		AccessTokenExpiration:  time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "kopitoko-test",
	})
}

func setupAuthRouter(t *testing.T, admin bool) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc := newTestJWTService()

	r := gin.New()
	handlers := []gin.HandlerFunc{RequireAuth(svc, nil)}
	if admin {
		handlers = append(handlers, RequireAdmin())
	}
	handlers = append(handlers, func(c *gin.Context) {
		id, _ := GetCustomerID(c)
		c.JSON(http.StatusOK, gin.H{"customer_id": id.String()})
	})
	r.GET("/protected", handlers...)
	return r, svc
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token passes", func(t *testing.T) {
		r, svc := setupAuthRouter(t, false)
		customerID := uuid.New()
		pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: customerID,
			Email:  "budi@example.com",
			Role:   "CUSTOMER",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), customerID.String())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		r, _ := setupAuthRouter(t, false)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/protected", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token rejected", func(t *testing.T) {
		r, _ := setupAuthRouter(t, false)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_TOKEN")
	})

	t.Run("refresh token rejected as access token", func(t *testing.T) {
		r, svc := setupAuthRouter(t, false)
		pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "budi@example.com",
			Role:   "CUSTOMER",
		})
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAdmin(t *testing.T) {
	issue := func(t *testing.T, svc *auth.JWTService, role string) string {
		pair, err := svc.GenerateTokenPair(auth.GenerateTokenInput{
			UserID: uuid.New(),
			Email:  "someone@example.com",
			Role:   role,
		})
		require.NoError(t, err)
		return pair.AccessToken
	}

	t.Run("admin role passes", func(t *testing.T) {
		r, svc := setupAuthRouter(t, true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, svc, "ADMIN"))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("customer role forbidden", func(t *testing.T) {
		r, svc := setupAuthRouter(t, true)
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+issue(t, svc, "CUSTOMER"))
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
