// Package services holds the reading-companion rules: progression, challenges,
// quiz scoring, leaderboards and badges, on top of the repositories.
package services

import (
	"fmt"
	"time"

	"readquest/backend/config"
	"readquest/backend/repository"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

// Clock returns the current instant. Tests pin it.
type Clock func() time.Time

type Options struct {
	Location            *time.Location
	Now                 Clock
	ChallengeAutoReward bool
	BadgeAutoAward      bool
	BcryptCost          int
}

func OptionsFromConfig(cfg *config.Config) (Options, error) {
	loc, err := cfg.Location()
	if err != nil {
		return Options{}, fmt.Errorf("load location: %w", err)
	}
	return Options{
		Location:            loc,
		Now:                 time.Now,
		ChallengeAutoReward: cfg.ChallengeAutoReward,
		BadgeAutoAward:      cfg.BadgeAutoAward,
		BcryptCost:          cfg.BcryptCost,
	}, nil
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.UTC
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}

type Services struct {
	Users       *UserService
	Progression *ProgressionService
	Badges      *BadgeService
	Challenges  *ChallengeService
	Quizzes     *QuizService
	Leaderboard *LeaderboardService
	Content     *ContentService
	Social      *SocialService
	Admins      *AdminService
}

func New(db *gorm.DB, opts Options, log *utils.Logger) *Services {
	opts = opts.withDefaults()

	users := repository.NewUserRepo(db, log)
	chapters := repository.NewChapterRepo(db, log)
	quizzes := repository.NewQuizRepo(db, log)
	badges := repository.NewBadgeRepo(db, log)
	challenges := repository.NewChallengeRepo(db, log)
	friendships := repository.NewFriendshipRepo(db, log)
	glossary := repository.NewGlossaryRepo(db, log)
	admins := repository.NewAdminRepo(db, log)

	progression := NewProgressionService(db, users, opts, log)
	badgeSvc := NewBadgeService(db, badges, users, chapters, quizzes, opts, log)

	return &Services{
		Users:       NewUserService(users, progression, badgeSvc, log),
		Progression: progression,
		Badges:      badgeSvc,
		Challenges:  NewChallengeService(db, challenges, users, badgeSvc, opts, log),
		Quizzes:     NewQuizService(db, quizzes, chapters, users, badgeSvc, opts, log),
		Leaderboard: NewLeaderboardService(users, log),
		Content:     NewContentService(chapters, glossary, badgeSvc, opts, log),
		Social:      NewSocialService(friendships, users, log),
		Admins:      NewAdminService(admins, opts, log),
	}
}
