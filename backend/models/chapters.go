package models

import "time"

type Chapter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Number      int       `gorm:"uniqueIndex;not null" json:"number"`
	Title       string    `gorm:"not null" json:"title"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	Summary     string    `gorm:"type:text" json:"summary"`
	ReadingTime int       `gorm:"not null" json:"readingTime"` // minutes
	ImageURL    string    `json:"imageUrl"`
	IsLocked    bool      `gorm:"not null" json:"isLocked"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ChapterProgress is one reader's position in one chapter.
type ChapterProgress struct {
	ID                 uint       `gorm:"primaryKey" json:"id"`
	UserID             string     `gorm:"size:255;not null;uniqueIndex:idx_chapter_progress_user_chapter" json:"userId"`
	ChapterID          uint       `gorm:"not null;uniqueIndex:idx_chapter_progress_user_chapter" json:"chapterId"`
	IsCompleted        bool       `gorm:"not null" json:"isCompleted"`
	ProgressPercentage int        `gorm:"not null" json:"progressPercentage"`
	CompletedAt        *time.Time `json:"completedAt"`
	CreatedAt          time.Time  `json:"createdAt"`
}

func (ChapterProgress) TableName() string { return "user_chapter_progress" }
