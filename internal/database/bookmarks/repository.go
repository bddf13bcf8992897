// Package bookmarks provides database operations for user bookmarks.
package bookmarks

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openshelf/openshelf/internal/database/books"
	"github.com/openshelf/openshelf/internal/entities"
)

// Repository handles all bookmark database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new bookmarks repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Add bookmarks a book for a user. Adding an existing bookmark is a no-op.
func (r *Repository) Add(userID, bookID uint) error {
	bookmark := entities.Bookmark{UserID: userID, BookID: bookID}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&bookmark).Error
}

// Remove drops a bookmark.
func (r *Repository) Remove(userID, bookID uint) error {
	result := r.db.
		Where("user_id = ? AND book_id = ?", userID, bookID).
		Delete(&entities.Bookmark{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForUser returns the bookmarked books in catalog listing shape.
func (r *Repository) ListForUser(userID uint) ([]books.Listing, error) {
	listings := []books.Listing{}
	err := r.db.Table("books b").
		Select(`b.id AS book_id, b.title, b.author, b.description, b.cover_path,
			b.publisher_id, b.category_id, p.name AS publisher_name, c.name AS category_name`).
		Joins("JOIN bookmarks bm ON bm.book_id = b.id").
		Joins("JOIN publishers p ON p.id = b.publisher_id").
		Joins("LEFT JOIN categories c ON c.id = b.category_id").
		Where("bm.user_id = ?", userID).
		Scan(&listings).Error
	return listings, err
}
