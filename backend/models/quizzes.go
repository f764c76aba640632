package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	QuestionMultipleChoice = "multiple_choice"
	QuestionTrueFalse      = "true_false"
)

type Quiz struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	ChapterID   uint      `gorm:"not null;index" json:"chapterId"`
	Title       string    `gorm:"not null" json:"title"`
	Description string    `json:"description"`
	XPReward    int       `gorm:"column:xp_reward;not null" json:"xpReward"`
	CreatedAt   time.Time `json:"createdAt"`
}

type QuizQuestion struct {
	ID            uint                        `gorm:"primaryKey" json:"id"`
	QuizID        uint                        `gorm:"not null;index" json:"quizId"`
	Question      string                      `gorm:"type:text;not null" json:"question"`
	Type          string                      `gorm:"size:32;not null" json:"type"`
	Options       datatypes.JSONSlice[string] `json:"options"`
	CorrectAnswer string                      `gorm:"not null" json:"correctAnswer"`
	Explanation   string                      `gorm:"type:text" json:"explanation"`
	Points        int                         `gorm:"not null" json:"points"`
	Order         int                         `gorm:"column:sort_order;not null" json:"order"`
}

// QuizAttempt is append-only; a reader may retake a quiz any number of times.
type QuizAttempt struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	UserID         string    `gorm:"size:255;not null;index" json:"userId"`
	QuizID         uint      `gorm:"not null;index" json:"quizId"`
	Score          int       `gorm:"not null" json:"score"` // percent
	TotalQuestions int       `gorm:"not null" json:"totalQuestions"`
	CorrectAnswers int       `gorm:"not null" json:"correctAnswers"`
	XPEarned       int       `gorm:"column:xp_earned;not null" json:"xpEarned"`
	CompletedAt    time.Time `json:"completedAt"`
}

func (QuizAttempt) TableName() string { return "user_quiz_attempts" }
