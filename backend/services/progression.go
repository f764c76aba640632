package services

import (
	"context"
	"fmt"
	"time"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

type ProgressionService struct {
	db    *gorm.DB
	users repository.UserRepo
	log   *utils.Logger
	now   Clock
	loc   *time.Location
}

func NewProgressionService(db *gorm.DB, users repository.UserRepo, opts Options, log *utils.Logger) *ProgressionService {
	opts = opts.withDefaults()
	return &ProgressionService{
		db:    db,
		users: users,
		log:   log.With("service", "ProgressionService"),
		now:   opts.Now,
		loc:   opts.Location,
	}
}

// AwardXP adds amount to the reader's XP and returns the updated reader.
// Level is rewritten in the same statement, so xp and level never disagree.
func (s *ProgressionService) AwardXP(ctx context.Context, userID string, amount int) (*models.User, error) {
	dbc := repository.Ctx(ctx)
	if err := s.awardXP(dbc, userID, amount); err != nil {
		return nil, err
	}
	return s.users.Get(dbc, userID)
}

func (s *ProgressionService) awardXP(dbc repository.DBContext, userID string, amount int) error {
	if amount < 0 {
		return models.ErrInvalidXPAmount
	}
	if err := s.users.AddXP(dbc, userID, amount); err != nil {
		return fmt.Errorf("award %d xp to %s: %w", amount, userID, err)
	}
	return nil
}

// TouchLoginStreak records a visit and updates the consecutive-day streak.
func (s *ProgressionService) TouchLoginStreak(ctx context.Context, userID string) (*models.User, error) {
	var out *models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := repository.InTx(ctx, tx)
		u, err := s.users.Get(dbc, userID)
		if err != nil {
			return err
		}
		now := s.now().UTC()
		streak := NextStreak(u.Streak, u.LastLoginDate, now, s.loc)
		if err := s.users.SetStreak(dbc, userID, streak, now); err != nil {
			return err
		}
		u.Streak = streak
		u.LastLoginDate = &now
		out = u
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("touch login streak: %w", err)
	}
	return out, nil
}

// NextStreak applies the daily-visit rule: the first visit starts a streak of 1,
// a second visit on the same calendar day changes nothing, a visit on the next
// day extends it, and any longer gap restarts it at 1.
func NextStreak(current int, last *time.Time, now time.Time, loc *time.Location) int {
	if last == nil {
		return 1
	}
	switch days := CalendarDaysBetween(*last, now, loc); {
	case days <= 0:
		return current
	case days == 1:
		return current + 1
	default:
		return 1
	}
}

// CalendarDaysBetween counts midnights crossed from a to b in loc.
func CalendarDaysBetween(a, b time.Time, loc *time.Location) int {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// StartOfDay is local midnight of t's calendar day in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}
