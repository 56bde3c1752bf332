package models

// NoteModel is a personal rich-text note. The slug is the external lookup
// key and is immutable after creation. Notes are hard-deleted.
type NoteModel struct {
	Base
	OwnerID string `json:"-"       gorm:"index;not null"`
	Title   string `json:"title"   gorm:"not null"`
	Content string `json:"content" gorm:"type:longtext"`
	Slug    string `json:"slug"    gorm:"uniqueIndex;not null"`
}

func (NoteModel) TableName() string { return "notes" }
