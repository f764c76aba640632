package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	BadgeAchievement = "achievement"
	BadgeStreak      = "streak"
	BadgeChapter     = "chapter"
	BadgeQuiz        = "quiz"
)

type Badge struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Name        string            `gorm:"not null" json:"name"`
	Description string            `json:"description"`
	Icon        string            `json:"icon"`
	Type        string            `gorm:"size:32;not null" json:"type"`
	Requirement datatypes.JSONMap `json:"requirement"`
	XPReward    int               `gorm:"column:xp_reward;not null" json:"xpReward"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// UserBadge records that a reader holds a badge. A badge is held at most once.
type UserBadge struct {
	ID       uint      `gorm:"primaryKey" json:"id"`
	UserID   string    `gorm:"size:255;not null;uniqueIndex:idx_user_badges_user_badge" json:"userId"`
	BadgeID  uint      `gorm:"not null;uniqueIndex:idx_user_badges_user_badge" json:"badgeId"`
	EarnedAt time.Time `json:"earnedAt"`
	Badge    *Badge    `gorm:"foreignKey:BadgeID" json:"badge,omitempty"`
}
