package models

import (
	"time"

	"gorm.io/datatypes"
)

type DailyChallenge struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Description string            `json:"description"`
	Type        string            `gorm:"size:32;not null" json:"type"`
	Requirement datatypes.JSONMap `json:"requirement"`
	XPReward    int               `gorm:"column:xp_reward;not null" json:"xpReward"`
	CoinReward  int               `gorm:"not null" json:"coinReward"`
	Date        time.Time         `gorm:"not null;index" json:"date"`
	IsActive    bool              `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
}

type WeeklyChallenge struct {
	ID          uint              `gorm:"primaryKey" json:"id"`
	Title       string            `gorm:"not null" json:"title"`
	Description string            `json:"description"`
	Type        string            `gorm:"size:32;not null" json:"type"`
	Requirement datatypes.JSONMap `json:"requirement"`
	XPReward    int               `gorm:"column:xp_reward;not null" json:"xpReward"`
	CoinReward  int               `gorm:"not null" json:"coinReward"`
	BadgeReward *uint             `json:"badgeReward"`
	StartDate   time.Time         `gorm:"not null;index" json:"startDate"`
	EndDate     time.Time         `gorm:"not null;index" json:"endDate"`
	IsActive    bool              `gorm:"not null" json:"isActive"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// ChallengeProgress is shared by the per-user daily and weekly rows.
// CompletedAt is non-nil exactly when IsCompleted is true.
type ChallengeProgress struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	UserID        string     `gorm:"size:255;not null;index:,unique,composite:user_challenge" json:"userId"`
	ChallengeID   uint       `gorm:"not null;index:,unique,composite:user_challenge" json:"challengeId"`
	Progress      int        `gorm:"not null" json:"progress"`
	IsCompleted   bool       `gorm:"not null" json:"isCompleted"`
	CompletedAt   *time.Time `json:"completedAt"`
	RewardClaimed bool       `gorm:"not null" json:"rewardClaimed"`
	CreatedAt     time.Time  `json:"createdAt"`
}

type UserDailyChallenge struct {
	ChallengeProgress
}

func (UserDailyChallenge) TableName() string { return "user_daily_challenges" }

type UserWeeklyChallenge struct {
	ChallengeProgress
}

func (UserWeeklyChallenge) TableName() string { return "user_weekly_challenges" }
