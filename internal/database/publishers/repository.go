// Package publishers provides database operations for publisher accounts.
package publishers

import (
	"gorm.io/gorm"

	"github.com/openshelf/openshelf/internal/entities"
)

// PublicDetails is the storefront-facing view of a publisher, without
// credentials or session state.
type PublicDetails struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone,omitempty"`
	Address     string `json:"address,omitempty"`
	Description string `json:"description,omitempty"`
	ImagePath   string `json:"image_path,omitempty"`
}

// OrphanedFiles lists the upload paths left behind by a publisher delete.
// The caller is responsible for removing them from disk.
type OrphanedFiles struct {
	Covers          []string
	PDFs            []string
	PublisherImages []string
}

// Repository handles all publisher database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new publishers repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(p *entities.Publisher) error {
	return r.db.Create(p).Error
}

func (r *Repository) GetByID(id uint) (*entities.Publisher, error) {
	var publisher entities.Publisher
	err := r.db.First(&publisher, id).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

func (r *Repository) GetByEmail(email string) (*entities.Publisher, error) {
	var publisher entities.Publisher
	err := r.db.Where("email = ?", email).First(&publisher).Error
	if err != nil {
		return nil, err
	}
	return &publisher, nil
}

// GetPublicDetails fetches the storefront view of a single publisher.
func (r *Repository) GetPublicDetails(id uint) (*PublicDetails, error) {
	var details PublicDetails
	err := r.db.Model(&entities.Publisher{}).
		Select("name", "email", "phone", "address", "description", "image_path").
		Where("id = ?", id).
		Take(&details).Error
	if err != nil {
		return nil, err
	}
	return &details, nil
}

// ListForAdmin returns all publishers ordered by ID.
func (r *Repository) ListForAdmin() ([]entities.Publisher, error) {
	publishers := []entities.Publisher{}
	err := r.db.Order("id").Find(&publishers).Error
	return publishers, err
}

// UpdateByAdmin updates the fields the admin panel may edit.
func (r *Repository) UpdateByAdmin(id uint, name, phone, address, description string) error {
	result := r.db.Model(&entities.Publisher{}).Where("id = ?", id).Updates(map[string]any{
		"name":        name,
		"phone":       phone,
		"address":     address,
		"description": description,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete removes a publisher inside a transaction and returns the upload
// paths that now have no owning rows. The books themselves, and their
// bookmarks and history entries, are removed by the cascade constraints.
func (r *Repository) Delete(id uint) (*OrphanedFiles, error) {
	files := &OrphanedFiles{}

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var publisher entities.Publisher
		if err := tx.First(&publisher, id).Error; err != nil {
			return err
		}
		if publisher.ImagePath != "" {
			files.PublisherImages = append(files.PublisherImages, publisher.ImagePath)
		}

		var books []entities.Book
		if err := tx.Where("publisher_id = ?", id).Find(&books).Error; err != nil {
			return err
		}
		for _, book := range books {
			if book.CoverPath != "" {
				files.Covers = append(files.Covers, book.CoverPath)
			}
			if book.PDFPath != "" {
				files.PDFs = append(files.PDFs, book.PDFPath)
			}
		}

		return tx.Delete(&entities.Publisher{}, id).Error
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
