package entities

import (
	"time"
)

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"category_id"`
	Name      string    `gorm:"uniqueIndex;size:100" json:"category_name"`
	CreatedAt time.Time `json:"created_at"`
}

type Book struct {
	ID          uint      `gorm:"primaryKey" json:"book_id"`
	Title       string    `gorm:"index;size:512" json:"name"`
	Author      string    `gorm:"index;size:256" json:"author_name"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	CoverPath   string    `gorm:"size:1024" json:"cover_path,omitempty"`
	PDFPath     string    `gorm:"size:1024" json:"-"` // never exposed; streamed via the protected read endpoint
	PublisherID uint      `gorm:"index" json:"publisher_id"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:RESTRICT" json:"-"`
	Publisher   Publisher `gorm:"foreignKey:PublisherID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
