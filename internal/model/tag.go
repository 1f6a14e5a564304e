package model

// Tag is a label shared by every user; names are globally unique.
type Tag struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`

	// Relations
	NoteTags []NoteTag `json:"-" gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}
