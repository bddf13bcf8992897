package entities

import (
	"time"
)

// Subscription grants a user access to one category until ExpiryDate.
// Re-subscribing overwrites the expiry, the (user, category) pair stays unique.
type Subscription struct {
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	CategoryID uint      `gorm:"primaryKey" json:"category_id"`
	ExpiryDate time.Time `json:"expiry_date"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Category   Category  `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type Bookmark struct {
	UserID    uint      `gorm:"primaryKey" json:"user_id"`
	BookID    uint      `gorm:"primaryKey" json:"book_id"`
	User      User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book      Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ReadingHistoryEntry records the most recent read of a book per user.
type ReadingHistoryEntry struct {
	UserID     uint      `gorm:"primaryKey" json:"user_id"`
	BookID     uint      `gorm:"primaryKey" json:"book_id"`
	LastReadAt time.Time `gorm:"index" json:"last_read_timestamp"`
	User       User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Book       Book      `gorm:"foreignKey:BookID;constraint:OnDelete:CASCADE" json:"-"`
}
