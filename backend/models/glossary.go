package models

import "time"

type GlossaryTerm struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Term       string    `gorm:"not null;index" json:"term"`
	Definition string    `gorm:"type:text;not null" json:"definition"`
	Category   string    `gorm:"size:64;not null;index" json:"category"`
	Example    string    `gorm:"type:text" json:"example"`
	ChapterRef *int      `json:"chapterRef"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
