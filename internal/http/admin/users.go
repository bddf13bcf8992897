package admin

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/database/subscriptions"
	"github.com/openshelf/openshelf/internal/database/users"
	httpx "github.com/openshelf/openshelf/internal/http"
)

// UsersController serves the admin panel's user management.
type UsersController struct {
	users            *users.Repository
	subscriptions    *subscriptions.Repository
	subscriptionDays int
}

func NewUsersController(userRepo *users.Repository, subRepo *subscriptions.Repository, subscriptionDays int) *UsersController {
	return &UsersController{
		users:            userRepo,
		subscriptions:    subRepo,
		subscriptionDays: subscriptionDays,
	}
}

// List returns every user with their active subscription categories.
func (ct *UsersController) List(c *gin.Context) {
	listings, err := ct.users.ListForAdmin(today())
	if err != nil {
		httpx.RespondInternalError(c, err, "list users")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// Get returns one user's editable details.
func (ct *UsersController) Get(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id", "user")
	if !ok {
		return
	}
	user, err := ct.users.GetByID(id)
	if err != nil {
		httpx.RespondNotFound(c, "User not found")
		return
	}
	c.JSON(http.StatusOK, user)
}

type updateUserRequest struct {
	UserID uint   `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
}

func (ct *UsersController) Update(c *gin.Context) {
	var req updateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	if err := ct.users.UpdateContact(req.UserID, req.Name, req.Phone); err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusOK, httpx.SuccessResponse{Success: true})
}

type deleteUserRequest struct {
	UserID uint `json:"user_id"`
}

// Delete removes a user; subscriptions, bookmarks and history cascade.
func (ct *UsersController) Delete(c *gin.Context) {
	var req deleteUserRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	if err := ct.users.Delete(req.UserID); err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusOK, httpx.SuccessResponse{Success: true})
}

type subscriptionRequest struct {
	UserID     uint `json:"user_id"`
	CategoryID uint `json:"category_id"`
}

// AddSubscription grants or extends a user's access to a category.
func (ct *UsersController) AddSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	expiry := today().AddDate(0, 0, ct.subscriptionDays)
	if err := ct.subscriptions.Upsert(req.UserID, req.CategoryID, expiry); err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusOK, httpx.SuccessResponse{Success: true})
}

// RemoveSubscription drops a user's subscription to a category.
func (ct *UsersController) RemoveSubscription(c *gin.Context) {
	var req subscriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.UserID == 0 || req.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	if err := ct.subscriptions.Remove(req.UserID, req.CategoryID); err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusOK, httpx.SuccessResponse{Success: true})
}

func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
