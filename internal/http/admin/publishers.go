package admin

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/database/publishers"
	httpx "github.com/openshelf/openshelf/internal/http"
	"github.com/openshelf/openshelf/internal/uploads"
)

// PublishersController serves the admin panel's publisher management.
type PublishersController struct {
	publishers *publishers.Repository
	uploads    *uploads.Store
}

func NewPublishersController(repo *publishers.Repository, uploadStore *uploads.Store) *PublishersController {
	return &PublishersController{publishers: repo, uploads: uploadStore}
}

// List returns all publishers.
func (ct *PublishersController) List(c *gin.Context) {
	list, err := ct.publishers.ListForAdmin()
	if err != nil {
		httpx.RespondInternalError(c, err, "list publishers")
		return
	}
	c.JSON(http.StatusOK, list)
}

// Get returns one publisher's editable details.
func (ct *PublishersController) Get(c *gin.Context) {
	id, ok := httpx.ParseIDParam(c, "id", "publisher")
	if !ok {
		return
	}
	publisher, err := ct.publishers.GetByID(id)
	if err != nil {
		httpx.RespondNotFound(c, "Publisher not found")
		return
	}
	c.JSON(http.StatusOK, publisher)
}

type updatePublisherRequest struct {
	PublisherID uint   `json:"publisher_id"`
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	Description string `json:"description"`
}

func (ct *PublishersController) Update(c *gin.Context) {
	var req updatePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PublisherID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	err := ct.publishers.UpdateByAdmin(req.PublisherID, req.Name, req.Phone, req.Address, req.Description)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusOK, httpx.SuccessResponse{Success: true})
}

type deletePublisherRequest struct {
	PublisherID uint `json:"publisher_id"`
}

// Delete removes a publisher with all their books, then sweeps the
// orphaned upload files from disk. File removal is best-effort; the rows
// are already gone when it runs.
func (ct *PublishersController) Delete(c *gin.Context) {
	var req deletePublisherRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.PublisherID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}

	files, err := ct.publishers.Delete(req.PublisherID)
	if err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}

	for _, path := range append(append(files.Covers, files.PDFs...), files.PublisherImages...) {
		if err := ct.uploads.Remove(path); err != nil {
			log.Printf("Failed to remove file %s: %v", path, err)
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Publisher and assets deleted"})
}
