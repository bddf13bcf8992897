// Package admins provides database operations for admin accounts.
package admins

import (
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

// Repository handles all admin database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new admins repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(name, email, passwordHash string) (*entities.Admin, error) {
	admin := &entities.Admin{
		Name:         name,
		Email:        email,
		PasswordHash: passwordHash,
	}
	if err := r.db.Create(admin).Error; err != nil {
		return nil, err
	}
	return admin, nil
}

func (r *Repository) GetByID(id uint) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.First(&admin, id).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}

func (r *Repository) GetByEmail(email string) (*entities.Admin, error) {
	var admin entities.Admin
	err := r.db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		return nil, err
	}
	return &admin, nil
}
