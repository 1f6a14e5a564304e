package model

import "time"

// User represents an authenticated user in the system.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:120;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;size:256;not null"` // Never expose in JSON
	IsActive     bool      `json:"is_active" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`

	// Relations
	Notes []Note `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
