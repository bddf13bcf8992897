// Package history provides database operations for reading history.
package history

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openshelf/openshelf/internal/entities"
)

// Entry is one reading-history row in catalog listing shape, with the
// last-read timestamp attached.
type Entry struct {
	BookID        uint      `json:"book_id"`
	Title         string    `json:"name"`
	Author        string    `json:"author_name"`
	Description   string    `json:"description,omitempty"`
	CoverPath     string    `json:"cover_path,omitempty"`
	PublisherID   uint      `json:"publisher_id"`
	CategoryID    *uint     `json:"category_id,omitempty"`
	PublisherName string    `json:"publisher_name"`
	CategoryName  string    `json:"category_name,omitempty"`
	LastReadAt    time.Time `json:"last_read_timestamp"`
}

// Repository handles all reading history database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new history repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Touch records a read of a book, updating the timestamp when an entry for
// the (user, book) pair already exists.
func (r *Repository) Touch(userID, bookID uint, readAt time.Time) error {
	entry := entities.ReadingHistoryEntry{
		UserID:     userID,
		BookID:     bookID,
		LastReadAt: readAt,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "book_id"}},
		DoUpdates: clause.Assignments(map[string]any{"last_read_at": readAt}),
	}).Create(&entry).Error
}

// ListForUser returns the user's most recently read books, newest first,
// bounded by limit.
func (r *Repository) ListForUser(userID uint, limit int) ([]Entry, error) {
	entries := []Entry{}
	err := r.db.Table("books b").
		Select(`b.id AS book_id, b.title, b.author, b.description, b.cover_path,
			b.publisher_id, b.category_id, p.name AS publisher_name, c.name AS category_name,
			rh.last_read_at`).
		Joins("JOIN reading_history_entries rh ON rh.book_id = b.id").
		Joins("JOIN publishers p ON p.id = b.publisher_id").
		Joins("LEFT JOIN categories c ON c.id = b.category_id").
		Where("rh.user_id = ?", userID).
		Order("rh.last_read_at DESC").
		Limit(limit).
		Scan(&entries).Error
	return entries, err
}
