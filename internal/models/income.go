package models

import "time"

// Income is a single incoming ledger record owned by one user.
type Income struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Value       float64   `gorm:"not null" json:"value"`
	OwnerID     uint      `gorm:"index;not null" json:"ownerId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
