// Package books provides database operations for the book catalog.
package books

import (
	"strings"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

// Listing is the storefront row for a book: the book's own columns joined
// with its publisher and category names. The PDF path is deliberately
// absent, it is only reachable through the protected read endpoint.
type Listing struct {
	BookID        uint   `json:"book_id"`
	Title         string `json:"name"`
	Author        string `json:"author_name"`
	Description   string `json:"description,omitempty"`
	CoverPath     string `json:"cover_path,omitempty"`
	PublisherID   uint   `json:"publisher_id"`
	CategoryID    *uint  `json:"category_id,omitempty"`
	PublisherName string `json:"publisher_name"`
	CategoryName  string `json:"category_name,omitempty"`
}

// FilePaths holds the upload paths of a deleted book so the caller can
// remove the backing files after the row is gone.
type FilePaths struct {
	CoverPath string
	PDFPath   string
}

// Repository handles all book database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new books repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(book *entities.Book) error {
	return r.db.Create(book).Error
}

func (r *Repository) GetByID(id uint) (*entities.Book, error) {
	var book entities.Book
	err := r.db.First(&book, id).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

// listingQuery is the shared join for all listing-shaped reads.
func (r *Repository) listingQuery() *gorm.DB {
	return r.db.Table("books b").
		Select(`b.id AS book_id, b.title, b.author, b.description, b.cover_path,
			b.publisher_id, b.category_id, p.name AS publisher_name, c.name AS category_name`).
		Joins("JOIN publishers p ON p.id = b.publisher_id").
		Joins("LEFT JOIN categories c ON c.id = b.category_id")
}

// List returns the catalog with optional case-insensitive search over
// title, author and category name, and an optional category filter.
func (r *Repository) List(search string, categoryID uint) ([]Listing, error) {
	query := r.listingQuery()

	if search != "" {
		pattern := "%" + strings.ToUpper(search) + "%"
		query = query.Where(
			"UPPER(b.title) LIKE ? OR UPPER(b.author) LIKE ? OR UPPER(c.name) LIKE ?",
			pattern, pattern, pattern,
		)
	}
	if categoryID > 0 {
		query = query.Where("b.category_id = ?", categoryID)
	}

	listings := []Listing{}
	err := query.Scan(&listings).Error
	return listings, err
}

// ListByPublisher returns a publisher's own books ordered by title.
func (r *Repository) ListByPublisher(publisherID uint) ([]Listing, error) {
	listings := []Listing{}
	err := r.listingQuery().
		Where("b.publisher_id = ?", publisherID).
		Order("b.title").
		Scan(&listings).Error
	return listings, err
}

// Update rewrites a book's editable fields. The update is scoped to the
// owning publisher, other publishers' books are untouchable.
func (r *Repository) Update(id, publisherID uint, title, author, description string, categoryID *uint, coverPath string) error {
	result := r.db.Model(&entities.Book{}).
		Where("id = ? AND publisher_id = ?", id, publisherID).
		Updates(map[string]any{
			"title":       title,
			"author":      author,
			"description": description,
			"category_id": categoryID,
			"cover_path":  coverPath,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// GetPDFPath retrieves just the PDF path for the protected read endpoint.
func (r *Repository) GetPDFPath(id uint) (string, error) {
	var book entities.Book
	err := r.db.Select("pdf_path").First(&book, id).Error
	if err != nil {
		return "", err
	}
	return book.PDFPath, nil
}

// Delete removes a book and returns the file paths that must be cleaned
// up. When ownerID is non-zero the delete is scoped to that publisher;
// zero means an admin delete with no ownership check. The row delete
// commits first, file removal stays the caller's best-effort concern.
func (r *Repository) Delete(id, ownerID uint) (*FilePaths, error) {
	paths := &FilePaths{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var book entities.Book
		query := tx.Where("id = ?", id)
		if ownerID != 0 {
			query = query.Where("publisher_id = ?", ownerID)
		}
		if err := query.First(&book).Error; err != nil {
			return err
		}
		paths.CoverPath = book.CoverPath
		paths.PDFPath = book.PDFPath

		return tx.Delete(&entities.Book{}, book.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return paths, nil
}

// CountByCategory reports how many books reference a category. Category
// deletion is refused while this is non-zero.
func (r *Repository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Book{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
