package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/subscriptions"
	"github.com/openshelf/openshelf/internal/database/users"
	"github.com/openshelf/openshelf/internal/entities"
)

// AccountsController serves login, user registration and profile updates.
type AccountsController struct {
	authService      *auth.Service
	users            *users.Repository
	subscriptions    *subscriptions.Repository
	subscriptionDays int
}

func NewAccountsController(authService *auth.Service, userRepo *users.Repository, subRepo *subscriptions.Repository, subscriptionDays int) *AccountsController {
	return &AccountsController{
		authService:      authService,
		users:            userRepo,
		subscriptions:    subRepo,
		subscriptionDays: subscriptionDays,
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userLoginResponse struct {
	UserID        uint                    `json:"user_id"`
	Name          string                  `json:"name"`
	Email         string                  `json:"email"`
	Type          string                  `json:"type"`
	SessionToken  string                  `json:"session_token"`
	Subscriptions []entities.Subscription `json:"subscriptions"`
}

type publisherLoginResponse struct {
	PublisherID  uint   `json:"publisher_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Type         string `json:"type"`
	SessionToken string `json:"session_token"`
}

// Login authenticates against the user store first, then the publisher
// store; the first credential match wins. Admin login lives on the admin
// server, it is not part of this resolution order.
func (ct *AccountsController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid JSON")
		return
	}

	if user, token, err := ct.authService.LoginUser(req.Email, req.Password); err == nil {
		subs, err := ct.subscriptions.ActiveForUser(user.ID, today())
		if err != nil {
			RespondInternalError(c, err, "load subscriptions")
			return
		}
		c.JSON(http.StatusOK, userLoginResponse{
			UserID:        user.ID,
			Name:          user.Name,
			Email:         user.Email,
			Type:          string(entities.EntityTypeUser),
			SessionToken:  token,
			Subscriptions: subs,
		})
		return
	}

	if publisher, token, err := ct.authService.LoginPublisher(req.Email, req.Password); err == nil {
		c.JSON(http.StatusOK, publisherLoginResponse{
			PublisherID:  publisher.ID,
			Name:         publisher.Name,
			Email:        publisher.Email,
			Type:         string(entities.EntityTypePublisher),
			SessionToken: token,
		})
		return
	}

	RespondUnauthorized(c, "Invalid credentials")
}

type registerUserRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// RegisterUser creates a reader account. Missing required fields are a
// 400; a duplicate email surfaces from the store as the same generic 400.
func (ct *AccountsController) RegisterUser(c *gin.Context) {
	var req registerUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid JSON")
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		RespondBadRequest(c, "Name, email and password are required")
		return
	}

	hash, err := auth.HashPassword(req.Password, ct.authService.BcryptCost())
	if err != nil {
		RespondInternalError(c, err, "hash password")
		return
	}

	if _, err := ct.users.Create(req.Name, req.Email, req.Phone, hash); err != nil {
		RespondBadRequest(c, "Failed to create user, email may already exist")
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "User created successfully"})
}

type updateProfileRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// UpdateProfile updates the authenticated user's name, and password when
// one is supplied. An omitted password keeps the stored credential.
func (ct *AccountsController) UpdateProfile(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid JSON")
		return
	}
	if req.Name == "" {
		RespondBadRequest(c, "Name is required")
		return
	}

	hash := ""
	if req.Password != "" {
		var err error
		hash, err = auth.HashPassword(req.Password, ct.authService.BcryptCost())
		if err != nil {
			RespondInternalError(c, err, "hash password")
			return
		}
	}

	if err := ct.users.UpdateProfile(auth.GetEntityID(c), req.Name, hash); err != nil {
		RespondInternalError(c, err, "update profile")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Profile updated"})
}

type subscribeRequest struct {
	CategoryID uint `json:"category_id"`
}

// Subscribe grants or extends the authenticated user's access window for a
// category.
func (ct *AccountsController) Subscribe(c *gin.Context) {
	var req subscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBadRequest(c, "Invalid JSON")
		return
	}
	if req.CategoryID == 0 {
		RespondBadRequest(c, "Category ID is required")
		return
	}

	expiry := today().AddDate(0, 0, ct.subscriptionDays)
	if err := ct.subscriptions.Upsert(auth.GetEntityID(c), req.CategoryID, expiry); err != nil {
		RespondInternalError(c, err, "add subscription")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{
		Message: fmt.Sprintf("Successfully subscribed to category %d", req.CategoryID),
	})
}

// today truncates the clock to a date; subscription expiry comparisons are
// date-based ("active" means expiry date >= today).
func today() time.Time {
	now := time.Now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
}
