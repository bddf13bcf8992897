package entities

import (
	"time"
)

// EntityType identifies which account table a session token belongs to.
type EntityType string

const (
	EntityTypeUser      EntityType = "user"
	EntityTypePublisher EntityType = "publisher"
	EntityTypeAdmin     EntityType = "admin"
)

type User struct {
	ID           uint       `gorm:"primaryKey" json:"user_id"`
	Name         string     `gorm:"size:100" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:255" json:"email"`
	Phone        string     `gorm:"size:30" json:"phone,omitempty"`
	PasswordHash string     `gorm:"size:100" json:"-"`
	SessionToken *string    `gorm:"index;size:40" json:"-"`
	TokenExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Publisher struct {
	ID           uint       `gorm:"primaryKey" json:"publisher_id"`
	Name         string     `gorm:"size:100" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:255" json:"email"`
	Phone        string     `gorm:"size:30" json:"phone,omitempty"`
	Address      string     `gorm:"size:512" json:"address,omitempty"`
	Description  string     `gorm:"type:text" json:"description,omitempty"`
	ImagePath    string     `gorm:"size:1024" json:"image_path,omitempty"`
	PasswordHash string     `gorm:"size:100" json:"-"`
	SessionToken *string    `gorm:"index;size:40" json:"-"`
	TokenExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

type Admin struct {
	ID           uint       `gorm:"primaryKey" json:"admin_id"`
	Name         string     `gorm:"size:100" json:"name"`
	Email        string     `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash string     `gorm:"size:100" json:"-"`
	SessionToken *string    `gorm:"index;size:40" json:"-"`
	TokenExpiry  *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
