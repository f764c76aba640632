package services

import (
	"context"
	"fmt"
	"time"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// Requirement keys understood by the badge evaluator.
const (
	RequireChapter             = "chapter"
	RequireConsecutiveChapters = "consecutive_chapters"
	RequirePerfectQuizzes      = "perfect_quizzes"
	RequireStreakDays          = "streak_days"
	RequireXP                  = "xp"
)

type BadgeService struct {
	db        *gorm.DB
	badges    repository.BadgeRepo
	users     repository.UserRepo
	chapters  repository.ChapterRepo
	quizzes   repository.QuizRepo
	log       *utils.Logger
	now       Clock
	autoAward bool
}

func NewBadgeService(
	db *gorm.DB,
	badges repository.BadgeRepo,
	users repository.UserRepo,
	chapters repository.ChapterRepo,
	quizzes repository.QuizRepo,
	opts Options,
	log *utils.Logger,
) *BadgeService {
	opts = opts.withDefaults()
	return &BadgeService{
		db:        db,
		badges:    badges,
		users:     users,
		chapters:  chapters,
		quizzes:   quizzes,
		log:       log.With("service", "BadgeService"),
		now:       opts.Now,
		autoAward: opts.BadgeAutoAward,
	}
}

func (s *BadgeService) List(ctx context.Context) ([]models.Badge, error) {
	return s.badges.List(repository.Ctx(ctx))
}

func (s *BadgeService) ForUser(ctx context.Context, userID string) ([]models.UserBadge, error) {
	return s.badges.ForUser(repository.Ctx(ctx), userID)
}

func (s *BadgeService) Create(ctx context.Context, b *models.Badge) error {
	return s.badges.Create(repository.Ctx(ctx), b)
}

// AwardBadge grants the badge once. Repeated awards are no-ops and report false.
func (s *BadgeService) AwardBadge(ctx context.Context, userID string, badgeID uint) (bool, error) {
	var awarded bool
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		awarded, err = s.award(repository.InTx(ctx, tx), userID, badgeID)
		return err
	})
	return awarded, err
}

func (s *BadgeService) award(dbc repository.DBContext, userID string, badgeID uint) (bool, error) {
	badge, err := s.badges.Get(dbc, badgeID)
	if err != nil {
		return false, err
	}
	if _, err := s.users.Get(dbc, userID); err != nil {
		return false, err
	}
	awarded, err := s.badges.Award(dbc, userID, badgeID, s.now())
	if err != nil {
		return false, fmt.Errorf("award badge %d: %w", badgeID, err)
	}
	if awarded && badge.XPReward > 0 {
		if err := s.users.AddXP(dbc, userID, badge.XPReward); err != nil {
			return false, err
		}
	}
	return awarded, nil
}

// ReaderFacts is what badge requirements are checked against.
type ReaderFacts struct {
	CompletedChapters []int
	PerfectQuizzes    int
	Streak            int
	XP                int
}

// EvaluateBadges grants every badge whose requirement the reader now meets.
func (s *BadgeService) EvaluateBadges(ctx context.Context, userID string) ([]models.Badge, error) {
	dbc := repository.Ctx(ctx)
	user, err := s.users.Get(dbc, userID)
	if err != nil {
		return nil, err
	}
	completed, err := s.chapters.CompletedNumbers(dbc, userID)
	if err != nil {
		return nil, err
	}
	perfect, err := s.quizzes.CountPerfectAttempts(dbc, userID)
	if err != nil {
		return nil, err
	}
	all, err := s.badges.List(dbc)
	if err != nil {
		return nil, err
	}
	held, err := s.badges.HeldIDs(dbc, userID)
	if err != nil {
		return nil, err
	}

	facts := ReaderFacts{
		CompletedChapters: completed,
		PerfectQuizzes:    int(perfect),
		Streak:            user.Streak,
		XP:                user.XP,
	}
	due := lo.Filter(all, func(b models.Badge, _ int) bool {
		return !lo.Contains(held, b.ID) && RequirementMet(b.Requirement, facts)
	})
	if len(due) == 0 {
		return nil, nil
	}

	var awarded []models.Badge
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := repository.InTx(ctx, tx)
		for _, b := range due {
			ok, err := s.award(txc, userID, b.ID)
			if err != nil {
				return err
			}
			if ok {
				awarded = append(awarded, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return awarded, nil
}

// Refresh runs EvaluateBadges when automatic awarding is on. Failures are
// logged and swallowed so they never fail the write that triggered them.
func (s *BadgeService) Refresh(ctx context.Context, userID string) []models.Badge {
	if !s.autoAward {
		return nil
	}
	start := time.Now()
	awarded, err := s.EvaluateBadges(ctx, userID)
	if err != nil {
		s.log.Warn("badge evaluation failed", "user_id", userID, "error", err)
		return nil
	}
	if len(awarded) > 0 {
		s.log.Info("badges awarded",
			"user_id", userID,
			"badges", lo.Map(awarded, func(b models.Badge, _ int) string { return b.Name }),
			"took", time.Since(start),
		)
	}
	return awarded
}

// RequirementMet reports whether every key of the requirement holds. Empty or
// unknown requirements never match; such badges are granted by hand.
func RequirementMet(req map[string]interface{}, f ReaderFacts) bool {
	if len(req) == 0 {
		return false
	}
	for key, raw := range req {
		n, ok := toInt(raw)
		if !ok {
			return false
		}
		switch key {
		case RequireChapter:
			if !lo.Contains(f.CompletedChapters, n) {
				return false
			}
		case RequireConsecutiveChapters:
			if LongestConsecutiveRun(f.CompletedChapters) < n {
				return false
			}
		case RequirePerfectQuizzes:
			if f.PerfectQuizzes < n {
				return false
			}
		case RequireStreakDays:
			if f.Streak < n {
				return false
			}
		case RequireXP:
			if f.XP < n {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// LongestConsecutiveRun finds the longest run of consecutive chapter numbers.
func LongestConsecutiveRun(numbers []int) int {
	set := lo.SliceToMap(numbers, func(n int) (int, struct{}) { return n, struct{}{} })
	best := 0
	for n := range set {
		if _, ok := set[n-1]; ok {
			continue
		}
		run := 1
		for {
			if _, ok := set[n+run]; !ok {
				break
			}
			run++
		}
		if run > best {
			best = run
		}
	}
	return best
}

func toInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	default:
		return 0, false
	}
}
