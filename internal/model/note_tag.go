package model

import "time"

// NoteTag associates a note with a tag. The composite key allows at most
// one row per (note, tag) pair.
type NoteTag struct {
	NoteID    uint      `json:"note_id" gorm:"primaryKey;autoIncrement:false"`
	TagID     uint      `json:"tag_id" gorm:"primaryKey;autoIncrement:false;index"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName pins the association table name.
func (NoteTag) TableName() string {
	return "note_tags"
}

// All lists every entity in migration order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&Note{},
		&Tag{},
		&NoteTag{},
	}
}
