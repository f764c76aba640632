package models

import "gorm.io/gorm"

// All lists every persisted entity in dependency order.
func All() []interface{} {
	return []interface{}{
		&User{},
		&AdminUser{},
		&Chapter{},
		&ChapterProgress{},
		&Quiz{},
		&QuizQuestion{},
		&QuizAttempt{},
		&Badge{},
		&UserBadge{},
		&DailyChallenge{},
		&WeeklyChallenge{},
		&UserDailyChallenge{},
		&UserWeeklyChallenge{},
		&Friendship{},
		&GlossaryTerm{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
