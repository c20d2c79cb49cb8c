package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comunidad/backend/internal/infrastructure/auth"
	"github.com/comunidad/backend/internal/infrastructure/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestJWTService() *auth.JWTService {
	return auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-middleware",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 24 * time.Hour,
		Issuer:                 "comunidad-test",
		MaxRefreshCount:        10,
	})
}

func setupProtectedRoute(cfg JWTMiddlewareConfig) *gin.Engine {
	engine := gin.New()
	engine.Use(JWTAuth(cfg))
	engine.GET("/protected", func(c *gin.Context) {
		username, _ := GetJWTUsername(c)
		c.JSON(http.StatusOK, gin.H{"username": username})
	})
	engine.GET("/public", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return engine
}

func TestJWTAuth(t *testing.T) {
	jwtService := newTestJWTService()
	userID := uuid.New()

	pair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   userID,
		Username: "admin1",
		Role:     "admin",
	})
	require.NoError(t, err)

	t.Run("accepts a valid bearer token", func(t *testing.T) {
		engine := setupProtectedRoute(JWTMiddlewareConfig{JWTService: jwtService})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "admin1")
	})

	t.Run("rejects a missing token", func(t *testing.T) {
		engine := setupProtectedRoute(JWTMiddlewareConfig{JWTService: jwtService})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
	})

	t.Run("rejects a malformed header", func(t *testing.T) {
		engine := setupProtectedRoute(JWTMiddlewareConfig{JWTService: jwtService})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic abc123")
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a refresh token on an access endpoint", func(t *testing.T) {
		engine := setupProtectedRoute(JWTMiddlewareConfig{JWTService: jwtService})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("rejects a blacklisted token", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		engine := setupProtectedRoute(JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
		})

		claims, err := jwtService.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		require.NoError(t, blacklist.AddToBlacklist(context.Background(), claims.ID, time.Minute))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_REVOKED")
	})

	t.Run("rejects tokens issued before a user-wide invalidation", func(t *testing.T) {
		blacklist := auth.NewInMemoryTokenBlacklist()
		engine := setupProtectedRoute(JWTMiddlewareConfig{
			JWTService:     jwtService,
			TokenBlacklist: blacklist,
		})

		require.NoError(t, blacklist.AddUserTokensToBlacklist(
			context.Background(), userID.String(), time.Hour))

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("skips configured paths", func(t *testing.T) {
		engine := setupProtectedRoute(JWTMiddlewareConfig{
			JWTService: jwtService,
			SkipPaths:  []string{"/public"},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/public", nil)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestRequireRole(t *testing.T) {
	jwtService := newTestJWTService()

	newEngine := func(roles ...string) *gin.Engine {
		engine := gin.New()
		engine.Use(JWTAuth(JWTMiddlewareConfig{JWTService: jwtService}))
		engine.Use(RequireRole(roles...))
		engine.GET("/admin-only", func(c *gin.Context) {
			c.Status(http.StatusOK)
		})
		return engine
	}

	operatorPair, err := jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		UserID:   uuid.New(),
		Username: "operator1",
		Role:     "operator",
	})
	require.NoError(t, err)

	t.Run("allows a permitted role", func(t *testing.T) {
		engine := newEngine("admin", "operator")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+operatorPair.AccessToken)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("rejects a missing role", func(t *testing.T) {
		engine := newEngine("admin")

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
		req.Header.Set("Authorization", "Bearer "+operatorPair.AccessToken)
		engine.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "FORBIDDEN")
	})
}
