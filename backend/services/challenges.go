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

// CompletionThreshold is the progress value at which a challenge counts as done.
const CompletionThreshold = 100

type ChallengeService struct {
	db         *gorm.DB
	challenges repository.ChallengeRepo
	users      repository.UserRepo
	badges     *BadgeService
	log        *utils.Logger
	now        Clock
	loc        *time.Location
	autoReward bool
}

func NewChallengeService(
	db *gorm.DB,
	challenges repository.ChallengeRepo,
	users repository.UserRepo,
	badges *BadgeService,
	opts Options,
	log *utils.Logger,
) *ChallengeService {
	opts = opts.withDefaults()
	return &ChallengeService{
		db:         db,
		challenges: challenges,
		users:      users,
		badges:     badges,
		log:        log.With("service", "ChallengeService"),
		now:        opts.Now,
		loc:        opts.Location,
		autoReward: opts.ChallengeAutoReward,
	}
}

// TodaysDaily returns today's active daily challenge, or nil.
func (s *ChallengeService) TodaysDaily(ctx context.Context) (*models.DailyChallenge, error) {
	start := StartOfDay(s.now(), s.loc)
	return s.challenges.ActiveDaily(repository.Ctx(ctx), start, start.AddDate(0, 0, 1))
}

// CurrentWeekly returns the active weekly challenge whose window contains now, or nil.
func (s *ChallengeService) CurrentWeekly(ctx context.Context) (*models.WeeklyChallenge, error) {
	return s.challenges.ActiveWeekly(repository.Ctx(ctx), s.now())
}

func (s *ChallengeService) DailyProgress(ctx context.Context, userID string, challengeID uint) (*models.ChallengeProgress, error) {
	return s.challenges.GetProgress(repository.Ctx(ctx), repository.DailyProgressTable, userID, challengeID)
}

func (s *ChallengeService) WeeklyProgress(ctx context.Context, userID string, challengeID uint) (*models.ChallengeProgress, error) {
	return s.challenges.GetProgress(repository.Ctx(ctx), repository.WeeklyProgressTable, userID, challengeID)
}

func (s *ChallengeService) UpdateDailyProgress(ctx context.Context, userID string, challengeID uint, progress int) (*models.ChallengeProgress, error) {
	ch, err := s.challenges.GetDaily(repository.Ctx(ctx), challengeID)
	if err != nil {
		return nil, err
	}
	return s.updateProgress(ctx, repository.DailyProgressTable, userID, challengeID, progress, reward{
		xp:    ch.XPReward,
		coins: ch.CoinReward,
	})
}

func (s *ChallengeService) UpdateWeeklyProgress(ctx context.Context, userID string, challengeID uint, progress int) (*models.ChallengeProgress, error) {
	ch, err := s.challenges.GetWeekly(repository.Ctx(ctx), challengeID)
	if err != nil {
		return nil, err
	}
	return s.updateProgress(ctx, repository.WeeklyProgressTable, userID, challengeID, progress, reward{
		xp:    ch.XPReward,
		coins: ch.CoinReward,
		badge: ch.BadgeReward,
	})
}

type reward struct {
	xp    int
	coins int
	badge *uint
}

func (s *ChallengeService) updateProgress(ctx context.Context, table, userID string, challengeID uint, progress int, rw reward) (*models.ChallengeProgress, error) {
	if progress < 0 {
		return nil, models.ErrInvalidProgress
	}

	row := &models.ChallengeProgress{
		UserID:      userID,
		ChallengeID: challengeID,
		Progress:    progress,
		IsCompleted: progress >= CompletionThreshold,
	}
	if row.IsCompleted {
		now := s.now().UTC()
		row.CompletedAt = &now
	}

	var (
		saved    *models.ChallengeProgress
		credited bool
	)
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		dbc := repository.InTx(ctx, tx)
		var err error
		saved, err = s.challenges.UpsertProgress(dbc, table, row)
		if err != nil {
			return err
		}
		if !s.autoReward || !saved.IsCompleted {
			return nil
		}
		claimed, err := s.challenges.ClaimReward(dbc, table, userID, challengeID)
		if err != nil || !claimed {
			return err
		}
		if rw.xp > 0 {
			if err := s.users.AddXP(dbc, userID, rw.xp); err != nil {
				return err
			}
		}
		if rw.coins > 0 {
			if err := s.users.AddCoins(dbc, userID, rw.coins); err != nil {
				return err
			}
		}
		if rw.badge != nil {
			if _, err := s.badges.award(dbc, userID, *rw.badge); err != nil {
				return err
			}
		}
		saved.RewardClaimed = true
		credited = true
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update %s progress: %w", table, err)
	}

	if credited {
		s.log.Info("challenge reward credited",
			"user_id", userID, "challenge_id", challengeID, "table", table, "xp", rw.xp, "coins", rw.coins)
		s.badges.Refresh(ctx, userID)
	}
	return saved, nil
}

func (s *ChallengeService) List(ctx context.Context) ([]models.DailyChallenge, []models.WeeklyChallenge, error) {
	dbc := repository.Ctx(ctx)
	daily, err := s.challenges.ListDaily(dbc)
	if err != nil {
		return nil, nil, err
	}
	weekly, err := s.challenges.ListWeekly(dbc)
	if err != nil {
		return nil, nil, err
	}
	return daily, weekly, nil
}

func (s *ChallengeService) CreateDaily(ctx context.Context, ch *models.DailyChallenge) error {
	return s.challenges.CreateDaily(repository.Ctx(ctx), ch)
}

func (s *ChallengeService) CreateWeekly(ctx context.Context, ch *models.WeeklyChallenge) error {
	if ch.BadgeReward != nil {
		if _, err := s.badges.badges.Get(repository.Ctx(ctx), *ch.BadgeReward); err != nil {
			return err
		}
	}
	return s.challenges.CreateWeekly(repository.Ctx(ctx), ch)
}

func (s *ChallengeService) DeleteDaily(ctx context.Context, id uint) error {
	return s.challenges.DeleteDaily(repository.Ctx(ctx), id)
}

func (s *ChallengeService) DeleteWeekly(ctx context.Context, id uint) error {
	return s.challenges.DeleteWeekly(repository.Ctx(ctx), id)
}

// DeactivateExpired switches off challenges whose window has passed.
func (s *ChallengeService) DeactivateExpired(ctx context.Context) (int64, int64, error) {
	now := s.now()
	return s.challenges.DeactivateExpired(repository.Ctx(ctx), StartOfDay(now, s.loc), now)
}
