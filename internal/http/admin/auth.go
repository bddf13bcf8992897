package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/entities"
	httpx "github.com/openshelf/openshelf/internal/http"
)

// AuthController serves admin login. Admin sessions live in their own
// token namespace; the public login endpoint never resolves them.
type AuthController struct {
	authService *auth.Service
}

func NewAuthController(authService *auth.Service) *AuthController {
	return &AuthController{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AdminID      uint   `json:"admin_id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Type         string `json:"type"`
	SessionToken string `json:"session_token"`
}

func (ct *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.RespondBadRequest(c, "Invalid JSON")
		return
	}

	admin, token, err := ct.authService.LoginAdmin(req.Email, req.Password)
	if err != nil {
		httpx.RespondUnauthorized(c, "Invalid admin credentials")
		return
	}
	c.JSON(http.StatusOK, loginResponse{
		AdminID:      admin.ID,
		Name:         admin.Name,
		Email:        admin.Email,
		Type:         string(entities.EntityTypeAdmin),
		SessionToken: token,
	})
}
