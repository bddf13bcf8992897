package http

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
	"github.com/openshelf/openshelf/internal/uploads"
)

// BooksController serves the catalog and the publisher-side book CRUD.
type BooksController struct {
	books   *books.Repository
	uploads *uploads.Store
}

func NewBooksController(repo *books.Repository, uploadStore *uploads.Store) *BooksController {
	return &BooksController{books: repo, uploads: uploadStore}
}

// List returns the catalog, filtered by the optional "search" and
// "category_id" query parameters. A malformed category_id is ignored
// rather than rejected, matching the storefront's lenient filter contract.
func (ct *BooksController) List(c *gin.Context) {
	var categoryID uint
	if raw := c.Query("category_id"); raw != "" {
		if id, err := strconv.ParseUint(raw, 10, 32); err == nil {
			categoryID = uint(id)
		}
	}

	listings, err := ct.books.List(c.Query("search"), categoryID)
	if err != nil {
		RespondInternalError(c, err, "list books")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// ListOwn returns the authenticated publisher's books.
func (ct *BooksController) ListOwn(c *gin.Context) {
	listings, err := ct.books.ListByPublisher(auth.GetEntityID(c))
	if err != nil {
		RespondInternalError(c, err, "list publisher books")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// Add creates a book from a multipart form: text fields plus a required
// "pdf" file and an optional "cover" image. The files are written first and
// the row references their relative paths.
func (ct *BooksController) Add(c *gin.Context) {
	title := c.PostForm("name")
	author := c.PostForm("author_name")
	if title == "" || author == "" {
		RespondBadRequest(c, "Name and author are required")
		return
	}

	pdfHeader, err := c.FormFile("pdf")
	if err != nil {
		RespondBadRequest(c, "PDF file is required")
		return
	}
	pdfPath, err := ct.uploads.Save(pdfHeader, uploads.KindPDF)
	if err != nil {
		RespondInternalError(c, err, "save pdf")
		return
	}

	coverPath := ""
	if header, err := c.FormFile("cover"); err == nil {
		coverPath, err = ct.uploads.Save(header, uploads.KindCover)
		if err != nil {
			RespondInternalError(c, err, "save cover")
			return
		}
	}

	book := &entities.Book{
		Title:       title,
		Author:      author,
		Description: c.PostForm("description"),
		CategoryID:  parseOptionalCategoryID(c.PostForm("category_id")),
		CoverPath:   coverPath,
		PDFPath:     pdfPath,
		PublisherID: auth.GetEntityID(c),
	}
	if err := ct.books.Create(book); err != nil {
		RespondBadRequest(c, "Failed to add book")
		return
	}
	c.JSON(http.StatusCreated, MessageResponse{Message: "Book added"})
}

// Update rewrites a book's fields from a multipart form. A freshly
// uploaded "cover" replaces the stored one, otherwise the submitted
// "existing_cover_path" is kept. Only the owning publisher's books match.
func (ct *BooksController) Update(c *gin.Context) {
	bookID, err := strconv.ParseUint(c.PostForm("book_id"), 10, 32)
	if err != nil {
		RespondBadRequest(c, "Invalid book ID format")
		return
	}
	title := c.PostForm("name")
	author := c.PostForm("author_name")
	if title == "" || author == "" {
		RespondBadRequest(c, "Name and author are required")
		return
	}

	coverPath := c.PostForm("existing_cover_path")
	if header, err := c.FormFile("cover"); err == nil {
		coverPath, err = ct.uploads.Save(header, uploads.KindCover)
		if err != nil {
			RespondInternalError(c, err, "save cover")
			return
		}
	}

	err = ct.books.Update(
		uint(bookID),
		auth.GetEntityID(c),
		title,
		author,
		c.PostForm("description"),
		parseOptionalCategoryID(c.PostForm("category_id")),
		coverPath,
	)
	if err != nil {
		RespondBadRequest(c, "Failed to update book")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Book updated"})
}

type deleteBookRequest struct {
	BookID uint `json:"book_id"`
}

// Delete removes the authenticated publisher's book. The row goes first,
// inside the store transaction; removing the backing files afterwards is
// best-effort and never fails the response.
func (ct *BooksController) Delete(c *gin.Context) {
	var req deleteBookRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		RespondBadRequest(c, "Invalid book ID format")
		return
	}

	paths, err := ct.books.Delete(req.BookID, auth.GetEntityID(c))
	if err != nil {
		RespondNotFound(c, "Book not found or failed to delete")
		return
	}

	RemoveBookFiles(ct.uploads, paths)
	c.JSON(http.StatusOK, MessageResponse{Message: "Book deleted"})
}

// RemoveBookFiles deletes a removed book's cover and PDF from disk,
// logging failures instead of escalating them: the rows are already gone.
func RemoveBookFiles(store *uploads.Store, paths *books.FilePaths) {
	if err := store.Remove(paths.CoverPath); err != nil {
		log.Printf("Failed to remove cover %s: %v", paths.CoverPath, err)
	}
	if err := store.Remove(paths.PDFPath); err != nil {
		log.Printf("Failed to remove pdf %s: %v", paths.PDFPath, err)
	}
}

// parseOptionalCategoryID maps a form value to a nullable category
// reference; empty, zero or malformed values mean "no category".
func parseOptionalCategoryID(raw string) *uint {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return nil
	}
	categoryID := uint(id)
	return &categoryID
}
