package model

import "time"

// Note is a titled piece of text owned by exactly one user.
type Note struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Title     string    `json:"title" gorm:"size:100;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime;<-:create"`
	UserID    uint      `json:"user_id" gorm:"not null;index"`

	// Tags is read through note_tags and never written through this field;
	// associations change only via NoteTag rows.
	Tags []Tag `json:"tags" gorm:"-"`

	// Relations
	NoteTags []NoteTag `json:"-" gorm:"foreignKey:NoteID;constraint:OnDelete:CASCADE"`
}
