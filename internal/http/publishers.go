package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/publishers"
	"github.com/openshelf/openshelf/internal/entities"
	"github.com/openshelf/openshelf/internal/uploads"
)

// PublishersController serves publisher registration and public details.
type PublishersController struct {
	authService *auth.Service
	publishers  *publishers.Repository
	uploads     *uploads.Store
}

func NewPublishersController(authService *auth.Service, repo *publishers.Repository, uploadStore *uploads.Store) *PublishersController {
	return &PublishersController{
		authService: authService,
		publishers:  repo,
		uploads:     uploadStore,
	}
}

// Register creates a publisher account from a multipart form. The profile
// image is optional; when present it is stored before the row is written.
func (ct *PublishersController) Register(c *gin.Context) {
	name := c.PostForm("name")
	email := c.PostForm("email")
	password := c.PostForm("password")
	if name == "" || email == "" || password == "" {
		RespondBadRequest(c, "Name, email and password are required")
		return
	}

	imagePath := ""
	if header, err := c.FormFile("image"); err == nil {
		path, err := ct.uploads.Save(header, uploads.KindPublisherImage)
		if err != nil {
			RespondInternalError(c, err, "save publisher image")
			return
		}
		imagePath = path
	}

	hash, err := auth.HashPassword(password, ct.authService.BcryptCost())
	if err != nil {
		RespondInternalError(c, err, "hash password")
		return
	}

	publisher := &entities.Publisher{
		Name:         name,
		Email:        email,
		Phone:        c.PostForm("phone"),
		Address:      c.PostForm("address"),
		Description:  c.PostForm("description"),
		ImagePath:    imagePath,
		PasswordHash: hash,
	}
	if err := ct.publishers.Create(publisher); err != nil {
		RespondBadRequest(c, "Failed to create publisher")
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Publisher created"})
}

// PublicDetails returns the storefront view of one publisher, selected by
// the "id" query parameter.
func (ct *PublishersController) PublicDetails(c *gin.Context) {
	idStr := c.Query("id")
	if idStr == "" {
		RespondBadRequest(c, "Publisher ID is required")
		return
	}
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		RespondBadRequest(c, "Invalid publisher ID format")
		return
	}

	details, err := ct.publishers.GetPublicDetails(uint(id))
	if err != nil {
		RespondNotFound(c, "Publisher not found")
		return
	}
	c.JSON(http.StatusOK, details)
}
