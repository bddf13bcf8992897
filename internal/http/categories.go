package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/database/categories"
)

// CategoriesController serves the public category list.
type CategoriesController struct {
	categories *categories.Repository
}

func NewCategoriesController(repo *categories.Repository) *CategoriesController {
	return &CategoriesController{categories: repo}
}

func (ct *CategoriesController) List(c *gin.Context) {
	list, err := ct.categories.List()
	if err != nil {
		RespondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, list)
}
