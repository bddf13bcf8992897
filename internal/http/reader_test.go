package http

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openshelf/openshelf/internal/entities"
)

func TestRead(t *testing.T) {
	env := newTestEnv(t)
	user, token := env.createUser(t, "reader@example.com", "password123")
	publisher, _ := env.createPublisher(t, "press@example.com", "password123")
	category := env.createCategory(t, "Fiction")

	pdfContent := []byte("%PDF-1.4 fake content")
	require.NoError(t, os.WriteFile(
		filepath.Join(env.uploads.Root(), "pdfs", "book.pdf"), pdfContent, 0644))

	book := env.createBook(t, publisher.ID, &category.ID, "Dune", "pdfs/book.pdf")
	noPDF := env.createBook(t, publisher.ID, &category.ID, "Unscanned", "")
	ghostPDF := env.createBook(t, publisher.ID, &category.ID, "Ghost", "pdfs/gone.pdf")

	readPath := func(id any) string { return fmt.Sprintf("/api/books/read/%v", id) }

	t.Run("unauthenticated", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath(book.ID), nil, "")
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})

	t.Run("malformed book ID", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath("abc"), nil, token)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.JSONEq(t, `{"error":"Invalid book ID format"}`, rr.Body.String())
	})

	t.Run("no subscription", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath(book.ID), nil, token)
		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.JSONEq(t, `{"error":"Subscription required for this category"}`, rr.Body.String())
	})

	// Everything below runs with an active subscription
	require.NoError(t, env.db.Create(&entities.Subscription{
		UserID: user.ID, CategoryID: category.ID, ExpiryDate: today().AddDate(0, 0, 30),
	}).Error)

	t.Run("book without a PDF", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath(noPDF.ID), nil, token)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"PDF file not found for this book"}`, rr.Body.String())
	})

	t.Run("PDF row present but file gone", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath(ghostPDF.ID), nil, token)
		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.JSONEq(t, `{"error":"PDF file missing from server storage"}`, rr.Body.String())
	})

	t.Run("nonexistent book is not covered by any subscription", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath(9999), nil, token)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})

	t.Run("subscribed read streams the PDF", func(t *testing.T) {
		rr := env.request(t, http.MethodGet, readPath(book.ID), nil, token)
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "application/pdf", rr.Header().Get("Content-Type"))
		assert.Equal(t, pdfContent, rr.Body.Bytes())
	})

	t.Run("expired subscription loses access", func(t *testing.T) {
		require.NoError(t, env.db.Model(&entities.Subscription{}).
			Where("user_id = ? AND category_id = ?", user.ID, category.ID).
			Update("expiry_date", today().AddDate(0, 0, -1)).Error)

		rr := env.request(t, http.MethodGet, readPath(book.ID), nil, token)
		assert.Equal(t, http.StatusForbidden, rr.Code)
	})
}
