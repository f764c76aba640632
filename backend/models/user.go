package models

import "time"

// XPPerLevel is how much XP separates two consecutive levels.
const XPPerLevel = 1000

// User is a reader. The id is the identity provider's subject.
type User struct {
	ID              string     `gorm:"primaryKey;size:255" json:"id"`
	Email           *string    `gorm:"uniqueIndex;size:255" json:"email"`
	FirstName       string     `json:"firstName"`
	LastName        string     `json:"lastName"`
	ProfileImageURL string     `json:"profileImageUrl"`
	Level           int        `gorm:"not null" json:"level"`
	XP              int        `gorm:"column:xp;not null;index" json:"xp"`
	Coins           int        `gorm:"not null" json:"coins"`
	Streak          int        `gorm:"not null" json:"streak"`
	LastLoginDate   *time.Time `json:"lastLoginDate"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// LevelForXP derives the level from total XP: 0-999 is level 1, 1000-1999 level 2, and so on.
func LevelForXP(xp int) int {
	if xp < 0 {
		return 1
	}
	return xp/XPPerLevel + 1
}

// AdminUser is an editor account, unrelated to readers.
type AdminUser struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:50;not null" json:"username"`
	Password  string    `gorm:"not null" json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}
