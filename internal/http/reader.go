package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/openshelf/openshelf/internal/auth"
	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/database/subscriptions"
	"github.com/openshelf/openshelf/internal/uploads"
)

// ReaderController streams book PDFs to subscribed users.
type ReaderController struct {
	books         *books.Repository
	subscriptions *subscriptions.Repository
	uploads       *uploads.Store
}

func NewReaderController(bookRepo *books.Repository, subRepo *subscriptions.Repository, uploadStore *uploads.Store) *ReaderController {
	return &ReaderController{
		books:         bookRepo,
		subscriptions: subRepo,
		uploads:       uploadStore,
	}
}

// Read serves the PDF of one book to the authenticated user, provided they
// hold an active subscription covering the book's category. The ladder:
// 400 malformed ID, 403 unsubscribed, 404 missing book or file, 200 PDF.
func (ct *ReaderController) Read(c *gin.Context) {
	bookID, ok := ParseIDParam(c, "id", "book")
	if !ok {
		return
	}

	subscribed, err := ct.subscriptions.HasActiveForBook(auth.GetEntityID(c), bookID, today())
	if err != nil {
		RespondInternalError(c, err, "check subscription")
		return
	}
	if !subscribed {
		c.JSON(http.StatusForbidden, ErrorResponse{Error: "Subscription required for this category"})
		return
	}

	pdfPath, err := ct.books.GetPDFPath(bookID)
	if err != nil || pdfPath == "" {
		RespondNotFound(c, "PDF file not found for this book")
		return
	}
	if !ct.uploads.Exists(pdfPath) {
		RespondNotFound(c, "PDF file missing from server storage")
		return
	}

	c.Header("Content-Type", "application/pdf")
	c.File(ct.uploads.AbsPath(pdfPath))
}
