package http

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/entities"
)

func TestLogin(t *testing.T) {
	env := newTestEnv(t)
	user, _ := env.createUser(t, "reader@example.com", "password123")
	env.createPublisher(t, "press@example.com", "password123")

	category := env.createCategory(t, "Fiction")
	require.NoError(t, env.db.Create(&entities.Subscription{
		UserID: user.ID, CategoryID: category.ID, ExpiryDate: today().AddDate(0, 0, 30),
	}).Error)

	t.Run("user login returns token and subscriptions", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "reader@example.com", "password": "password123"}, "")
		require.Equal(t, http.StatusOK, rr.Code)

		var resp struct {
			UserID        uint   `json:"user_id"`
			Type          string `json:"type"`
			SessionToken  string `json:"session_token"`
			Subscriptions []struct {
				CategoryID uint `json:"category_id"`
			} `json:"subscriptions"`
		}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, user.ID, resp.UserID)
		assert.Equal(t, "user", resp.Type)
		assert.Len(t, resp.SessionToken, 40)
		require.Len(t, resp.Subscriptions, 1)
		assert.Equal(t, category.ID, resp.Subscriptions[0].CategoryID)
	})

	t.Run("publisher login when email misses the user store", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "press@example.com", "password": "password123"}, "")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"type":"publisher"`)
		assert.Contains(t, rr.Body.String(), `"publisher_id"`)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "reader@example.com", "password": "nope"}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, rr.Body.String())
	})

	t.Run("unknown email", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "ghost@example.com", "password": "password123"}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestRegisterUser(t *testing.T) {
	env := newTestEnv(t)

	t.Run("valid registration", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/register",
			gin.H{"name": "Reader", "email": "new@example.com", "phone": "555-0100", "password": "password123"}, "")
		assert.Equal(t, http.StatusCreated, rr.Code)

		// The fresh account can log in
		rr = env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "new@example.com", "password": "password123"}, "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/register",
			gin.H{"name": "Reader"}, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("duplicate email", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/register",
			gin.H{"name": "Imposter", "email": "new@example.com", "password": "password123"}, "")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Failed to create user, email may already exist"}`, rr.Body.String())
	})
}

func TestUpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	_, token := env.createUser(t, "reader@example.com", "password123")

	t.Run("rename without touching the password", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/profile",
			gin.H{"name": "Renamed"}, token)
		assert.Equal(t, http.StatusOK, rr.Code)

		// Old password still works
		rr = env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "reader@example.com", "password": "password123"}, "")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), `"name":"Renamed"`)
	})

	t.Run("password change", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/profile",
			gin.H{"name": "Renamed", "password": "changed456"}, token)
		assert.Equal(t, http.StatusOK, rr.Code)

		rr = env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "reader@example.com", "password": "password123"}, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)

		rr = env.request(t, http.MethodPost, "/api/login",
			gin.H{"email": "reader@example.com", "password": "changed456"}, "")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("missing name", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/profile", gin.H{}, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSubscribe(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "reader@example.com", "password123")
	category := env.createCategory(t, "Fiction")

	t.Run("grants an access window", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/subscribe",
			gin.H{"category_id": category.ID}, token)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Contains(t, rr.Body.String(), "Successfully subscribed to category")

		var sub entities.Subscription
		require.NoError(t, env.db.Where("user_id = ? AND category_id = ?", user.ID, category.ID).First(&sub).Error)
		assert.False(t, sub.ExpiryDate.Before(today().AddDate(0, 0, 29)))
	})

	t.Run("re-subscribing keeps a single row", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/subscribe",
			gin.H{"category_id": category.ID}, token)
		require.Equal(t, http.StatusOK, rr.Code)

		var count int64
		require.NoError(t, env.db.Model(&entities.Subscription{}).
			Where("user_id = ? AND category_id = ?", user.ID, category.ID).Count(&count).Error)
		assert.EqualValues(t, 1, count)
	})

	t.Run("missing category ID", func(t *testing.T) {
		rr := env.request(t, http.MethodPost, "/api/user/subscribe", gin.H{}, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Category ID is required"}`, rr.Body.String())
	})
}
