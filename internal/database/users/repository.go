// Package users provides database operations for reader accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByEmail(email)
package users

import (
	"time"

	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

// AdminListing is one row of the admin panel's user overview, with the
// user's active subscription categories flattened into a display string.
type AdminListing struct {
	UserID              uint   `json:"user_id"`
	Name                string `json:"name"`
	Email               string `json:"email"`
	Phone               string `json:"phone,omitempty"`
	ActiveSubscriptions string `json:"active_subscriptions,omitempty"`
}

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user. A unique-constraint error surfaces when the
// email is already registered.
func (r *Repository) Create(name, email, phone, passwordHash string) (*entities.User, error) {
	user := &entities.User{
		Name:         name,
		Email:        email,
		Phone:        phone,
		PasswordHash: passwordHash,
	}
	if err := r.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByEmail retrieves a user by email.
func (r *Repository) GetByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile updates a user's name and, when passwordHash is non-empty,
// their password. An empty hash keeps the stored credential untouched.
func (r *Repository) UpdateProfile(id uint, name, passwordHash string) error {
	updates := map[string]any{"name": name}
	if passwordHash != "" {
		updates["password_hash"] = passwordHash
	}
	result := r.db.Model(&entities.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// UpdateContact updates the fields the admin panel may edit.
func (r *Repository) UpdateContact(id uint, name, phone string) error {
	result := r.db.Model(&entities.User{}).Where("id = ?", id).
		Updates(map[string]any{"name": name, "phone": phone})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListForAdmin returns every user together with a comma-separated list of
// the categories they hold an active subscription for.
func (r *Repository) ListForAdmin(today time.Time) ([]AdminListing, error) {
	rows := []AdminListing{}
	err := r.db.Raw(`
		SELECT
			u.id AS user_id,
			u.name,
			u.email,
			u.phone,
			(
				SELECT GROUP_CONCAT(c.name, ', ')
				FROM subscriptions s
				JOIN categories c ON c.id = s.category_id
				WHERE s.user_id = u.id AND s.expiry_date >= ?
			) AS active_subscriptions
		FROM users u
		ORDER BY u.id`, today).Scan(&rows).Error
	return rows, err
}

// Delete removes a user. Subscriptions, bookmarks and reading history rows
// go with it via the cascade constraints.
func (r *Repository) Delete(id uint) error {
	result := r.db.Delete(&entities.User{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
