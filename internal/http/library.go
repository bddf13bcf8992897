package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/bookmarks"
	"github.com/openshelf/openshelf/internal/database/history"
)

// LibraryController serves the authenticated user's bookmarks and reading
// history.
type LibraryController struct {
	bookmarks    *bookmarks.Repository
	history      *history.Repository
	historyLimit int
}

func NewLibraryController(bookmarkRepo *bookmarks.Repository, historyRepo *history.Repository, historyLimit int) *LibraryController {
	return &LibraryController{
		bookmarks:    bookmarkRepo,
		history:      historyRepo,
		historyLimit: historyLimit,
	}
}

type bookActionRequest struct {
	BookID uint `json:"book_id"`
}

// ListBookmarks returns the user's bookmarked books.
func (ct *LibraryController) ListBookmarks(c *gin.Context) {
	listings, err := ct.bookmarks.ListForUser(auth.GetEntityID(c))
	if err != nil {
		RespondInternalError(c, err, "list bookmarks")
		return
	}
	c.JSON(http.StatusOK, listings)
}

// AddBookmark bookmarks a book; repeating the call is a no-op.
func (ct *LibraryController) AddBookmark(c *gin.Context) {
	var req bookActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		RespondBadRequest(c, "Invalid book ID format")
		return
	}
	if err := ct.bookmarks.Add(auth.GetEntityID(c), req.BookID); err != nil {
		RespondInternalError(c, err, "add bookmark")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Action successful"})
}

// RemoveBookmark drops a bookmark.
func (ct *LibraryController) RemoveBookmark(c *gin.Context) {
	var req bookActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		RespondBadRequest(c, "Invalid book ID format")
		return
	}
	if err := ct.bookmarks.Remove(auth.GetEntityID(c), req.BookID); err != nil {
		RespondInternalError(c, err, "remove bookmark")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Action successful"})
}

// ListHistory returns the user's most recently read books, newest first.
func (ct *LibraryController) ListHistory(c *gin.Context) {
	entries, err := ct.history.ListForUser(auth.GetEntityID(c), ct.historyLimit)
	if err != nil {
		RespondInternalError(c, err, "list history")
		return
	}
	c.JSON(http.StatusOK, entries)
}

// TouchHistory records a read of a book, moving it to the top of the
// user's history.
func (ct *LibraryController) TouchHistory(c *gin.Context) {
	var req bookActionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.BookID == 0 {
		RespondBadRequest(c, "Invalid book ID format")
		return
	}
	if err := ct.history.Touch(auth.GetEntityID(c), req.BookID, time.Now()); err != nil {
		RespondInternalError(c, err, "touch history")
		return
	}
	c.JSON(http.StatusOK, MessageResponse{Message: "Action successful"})
}
