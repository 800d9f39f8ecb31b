package models

import "time"

// User represents a registered account. Password holds the bcrypt hash and is
// never serialized.
type User struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Name        string     `gorm:"size:100;not null" json:"name"`
	LastName    string     `gorm:"size:100;not null" json:"lastName"`
	Email       string     `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password    string     `gorm:"size:255;not null" json:"-"`
	DateOfBirth *time.Time `json:"dateOfBirth,omitempty"`
	ProfileURL  string     `gorm:"size:255" json:"profileUrl,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`

	Expenses []Expense `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Incomes  []Income  `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
}
