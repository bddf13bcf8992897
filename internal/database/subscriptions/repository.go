// Package subscriptions provides database operations for category
// subscriptions, the paid access windows of the storefront.
package subscriptions

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/openshelf/openshelf/internal/entities"
)

// Repository handles all subscription database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new subscriptions repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert grants or extends a user's access to a category. Re-subscribing
// overwrites the expiry date instead of inserting a second row.
func (r *Repository) Upsert(userID, categoryID uint, expiry time.Time) error {
	subscription := entities.Subscription{
		UserID:     userID,
		CategoryID: categoryID,
		ExpiryDate: expiry,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "category_id"}},
		DoUpdates: clause.Assignments(map[string]any{"expiry_date": expiry}),
	}).Create(&subscription).Error
}

// ActiveForUser returns the user's subscriptions whose expiry date has not
// passed as of today.
func (r *Repository) ActiveForUser(userID uint, today time.Time) ([]entities.Subscription, error) {
	subscriptions := []entities.Subscription{}
	err := r.db.
		Where("user_id = ? AND expiry_date >= ?", userID, today).
		Find(&subscriptions).Error
	return subscriptions, err
}

// HasActiveForBook reports whether the user holds an active subscription
// covering the given book's category.
func (r *Repository) HasActiveForBook(userID, bookID uint, today time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&entities.Subscription{}).
		Joins("JOIN books ON books.category_id = subscriptions.category_id").
		Where("books.id = ? AND subscriptions.user_id = ? AND subscriptions.expiry_date >= ?",
			bookID, userID, today).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Remove drops a user's subscription to a category.
func (r *Repository) Remove(userID, categoryID uint) error {
	result := r.db.
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Delete(&entities.Subscription{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// CountForPair reports how many rows exist for a (user, category) pair.
// Kept for invariant checks: the answer is always 0 or 1.
func (r *Repository) CountForPair(userID, categoryID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entities.Subscription{}).
		Where("user_id = ? AND category_id = ?", userID, categoryID).
		Count(&count).Error
	return count, err
}
