package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/config"
	"github.com/openshelf/openshelf/internal/entities"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func configAuthForTest() config.Auth {
	return config.Auth{TokenTTL: time.Hour, BcryptCost: 4}
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
	}{
		{"missing header", "", ""},
		{"well-formed", "Bearer abc123", "abc123"},
		{"case-insensitive scheme", "bearer abc123", "abc123"},
		{"wrong scheme", "Basic abc123", ""},
		{"no token", "Bearer", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			assert.Equal(t, tt.want, BearerToken(req))
		})
	}
}

func TestMiddleware_RequireRole(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, configAuthForTest())
	middleware := NewMiddleware(svc)

	createUser(t, db, "reader@example.com", "password123")
	createPublisher(t, db, "press@example.com", "password123")

	_, userToken, err := svc.LoginUser("reader@example.com", "password123")
	require.NoError(t, err)
	_, publisherToken, err := svc.LoginPublisher("press@example.com", "password123")
	require.NoError(t, err)

	router := gin.New()
	router.GET("/user-only", middleware.RequireRole(entities.EntityTypeUser), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"entity_id": GetEntityID(c), "role": GetRole(c)})
	})

	t.Run("no token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Unauthorized"}`, rr.Body.String())
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
		req.Header.Set("Authorization", "Bearer not-a-real-token")
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("wrong role is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
		req.Header.Set("Authorization", "Bearer "+publisherToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("matching role passes with identity in context", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/user-only", nil)
		req.Header.Set("Authorization", "Bearer "+userToken)
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"role":"user"`)
	})
}

func TestMiddleware_ResolveProbeOrder(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, configAuthForTest())
	middleware := NewMiddleware(svc)

	publisher := createPublisher(t, db, "press@example.com", "password123")
	_, token, err := svc.LoginPublisher("press@example.com", "password123")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)

	identity, ok := middleware.Resolve(req)
	require.True(t, ok)
	assert.Equal(t, publisher.ID, identity.ID)
	assert.Equal(t, entities.EntityTypePublisher, identity.Role)
}

func TestMiddleware_ResolveMissingHeader(t *testing.T) {
	db := setupTestDB(t)
	middleware := NewMiddleware(NewService(db, configAuthForTest()))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	identity, ok := middleware.Resolve(req)
	assert.False(t, ok)
	assert.Nil(t, identity)
}
