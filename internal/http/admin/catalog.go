package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/database/categories"
	httpx "github.com/openshelf/openshelf/internal/http"
	"github.com/openshelf/openshelf/internal/uploads"
)

// CatalogController serves the admin panel's book and category management.
type CatalogController struct {
	books      *books.Repository
	categories *categories.Repository
	uploads    *uploads.Store
}

func NewCatalogController(bookRepo *books.Repository, categoryRepo *categories.Repository, uploadStore *uploads.Store) *CatalogController {
	return &CatalogController{
		books:      bookRepo,
		categories: categoryRepo,
		uploads:    uploadStore,
	}
}

// ListBooks returns the whole catalog, unfiltered.
func (ct *CatalogController) ListBooks(c *gin.Context) {
	listings, err := ct.books.List("", 0)
	if err != nil {
		httpx.RespondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, listings)
}

type deleteBookRequest struct {
	BookID uint `json:"book_id"`
}

// DeleteBook removes any book regardless of owner, then cleans up its
// files best-effort.
func (ct *CatalogController) DeleteBook(c *gin.Context) {
	var req deleteBookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		httpx.RespondBadRequest(c, "Invalid book ID format")
		return
	}

	paths, err := ct.books.Delete(req.BookID, 0)
	if err != nil {
		httpx.RespondNotFound(c, "Book not found")
		return
	}

	httpx.RemoveBookFiles(ct.uploads, paths)
	c.JSON(http.StatusOK, httpx.MessageResponse{Message: "Book deleted"})
}

// ListCategories returns all categories.
func (ct *CatalogController) ListCategories(c *gin.Context) {
	list, err := ct.categories.List()
	if err != nil {
		httpx.RespondInternalError(c, err, "list categories")
		return
	}
	c.JSON(http.StatusOK, list)
}

type addCategoryRequest struct {
	Name string `json:"name"`
}

// AddCategory creates a category; duplicate names fail on the unique
// constraint.
func (ct *CatalogController) AddCategory(c *gin.Context) {
	var req addCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Name == "" {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	if _, err := ct.categories.Create(req.Name); err != nil {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusCreated, httpx.SuccessResponse{Success: true})
}

type deleteCategoryRequest struct {
	CategoryID uint `json:"category_id"`
}

// DeleteCategory removes a category unless books still reference it; the
// refusal is a 400 and the row stays intact.
func (ct *CatalogController) DeleteCategory(c *gin.Context) {
	var req deleteCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.CategoryID == 0 {
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	if err := ct.categories.Delete(req.CategoryID); err != nil {
		if errors.Is(err, categories.ErrCategoryInUse) {
			httpx.RespondBadRequest(c, "Category is in use by existing books")
			return
		}
		c.JSON(http.StatusBadRequest, httpx.SuccessResponse{Success: false})
		return
	}
	c.JSON(http.StatusOK, httpx.SuccessResponse{Success: true})
}
