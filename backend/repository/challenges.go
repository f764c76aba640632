package repository

import (
	"errors"
	"fmt"
	"time"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DailyProgressTable  = "user_daily_challenges"
	WeeklyProgressTable = "user_weekly_challenges"
)

type ChallengeRepo interface {
	ActiveDaily(dbc DBContext, from, to time.Time) (*models.DailyChallenge, error)
	ActiveWeekly(dbc DBContext, at time.Time) (*models.WeeklyChallenge, error)
	GetDaily(dbc DBContext, id uint) (*models.DailyChallenge, error)
	GetWeekly(dbc DBContext, id uint) (*models.WeeklyChallenge, error)
	ListDaily(dbc DBContext) ([]models.DailyChallenge, error)
	ListWeekly(dbc DBContext) ([]models.WeeklyChallenge, error)
	CreateDaily(dbc DBContext, ch *models.DailyChallenge) error
	CreateWeekly(dbc DBContext, ch *models.WeeklyChallenge) error
	DeleteDaily(dbc DBContext, id uint) error
	DeleteWeekly(dbc DBContext, id uint) error
	DeactivateExpired(dbc DBContext, dayStart, now time.Time) (daily int64, weekly int64, err error)

	GetProgress(dbc DBContext, table, userID string, challengeID uint) (*models.ChallengeProgress, error)
	UpsertProgress(dbc DBContext, table string, row *models.ChallengeProgress) (*models.ChallengeProgress, error)
	ClaimReward(dbc DBContext, table, userID string, challengeID uint) (bool, error)
}

type challengeRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewChallengeRepo(db *gorm.DB, baseLog *utils.Logger) ChallengeRepo {
	return &challengeRepo{db: db, log: baseLog.With("repo", "ChallengeRepo")}
}

// ActiveDaily picks the active challenge dated in [from, to). When several
// qualify the most recently created wins.
func (r *challengeRepo) ActiveDaily(dbc DBContext, from, to time.Time) (*models.DailyChallenge, error) {
	var ch models.DailyChallenge
	err := dbc.conn(r.db).
		Where("date >= ? AND date < ? AND is_active = ?", from.UTC(), to.UTC(), true).
		Order("id DESC").
		Limit(1).
		Find(&ch).Error
	if err != nil {
		return nil, err
	}
	if ch.ID == 0 {
		return nil, nil
	}
	return &ch, nil
}

func (r *challengeRepo) ActiveWeekly(dbc DBContext, at time.Time) (*models.WeeklyChallenge, error) {
	var ch models.WeeklyChallenge
	err := dbc.conn(r.db).
		Where("start_date <= ? AND end_date >= ? AND is_active = ?", at.UTC(), at.UTC(), true).
		Order("id DESC").
		Limit(1).
		Find(&ch).Error
	if err != nil {
		return nil, err
	}
	if ch.ID == 0 {
		return nil, nil
	}
	return &ch, nil
}

func (r *challengeRepo) GetDaily(dbc DBContext, id uint) (*models.DailyChallenge, error) {
	var ch models.DailyChallenge
	err := dbc.conn(r.db).First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *challengeRepo) GetWeekly(dbc DBContext, id uint) (*models.WeeklyChallenge, error) {
	var ch models.WeeklyChallenge
	err := dbc.conn(r.db).First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrChallengeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *challengeRepo) ListDaily(dbc DBContext) ([]models.DailyChallenge, error) {
	var rows []models.DailyChallenge
	err := dbc.conn(r.db).Order("date DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *challengeRepo) ListWeekly(dbc DBContext) ([]models.WeeklyChallenge, error) {
	var rows []models.WeeklyChallenge
	err := dbc.conn(r.db).Order("start_date DESC").Order("id DESC").Find(&rows).Error
	return rows, err
}

func (r *challengeRepo) CreateDaily(dbc DBContext, ch *models.DailyChallenge) error {
	ch.Date = ch.Date.UTC()
	return dbc.conn(r.db).Create(ch).Error
}

func (r *challengeRepo) CreateWeekly(dbc DBContext, ch *models.WeeklyChallenge) error {
	ch.StartDate = ch.StartDate.UTC()
	ch.EndDate = ch.EndDate.UTC()
	return dbc.conn(r.db).Create(ch).Error
}

func (r *challengeRepo) DeleteDaily(dbc DBContext, id uint) error {
	return r.deleteWithProgress(dbc, &models.DailyChallenge{}, DailyProgressTable, id)
}

func (r *challengeRepo) DeleteWeekly(dbc DBContext, id uint) error {
	return r.deleteWithProgress(dbc, &models.WeeklyChallenge{}, WeeklyProgressTable, id)
}

func (r *challengeRepo) deleteWithProgress(dbc DBContext, model interface{}, table string, id uint) error {
	return dbc.conn(r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(model, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrChallengeNotFound
		}
		return tx.Table(table).Where("challenge_id = ?", id).Delete(&models.ChallengeProgress{}).Error
	})
}

// DeactivateExpired switches off daily challenges dated before dayStart and
// weekly challenges that ended before now.
func (r *challengeRepo) DeactivateExpired(dbc DBContext, dayStart, now time.Time) (int64, int64, error) {
	conn := dbc.conn(r.db)
	daily := conn.Model(&models.DailyChallenge{}).
		Where("date < ? AND is_active = ?", dayStart.UTC(), true).
		Update("is_active", false)
	if daily.Error != nil {
		return 0, 0, daily.Error
	}
	weekly := conn.Model(&models.WeeklyChallenge{}).
		Where("end_date < ? AND is_active = ?", now.UTC(), true).
		Update("is_active", false)
	if weekly.Error != nil {
		return daily.RowsAffected, 0, weekly.Error
	}
	return daily.RowsAffected, weekly.RowsAffected, nil
}

func (r *challengeRepo) GetProgress(dbc DBContext, table, userID string, challengeID uint) (*models.ChallengeProgress, error) {
	var row models.ChallengeProgress
	err := dbc.conn(r.db).Table(table).
		Where("user_id = ? AND challenge_id = ?", userID, challengeID).
		Limit(1).
		Find(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, nil
	}
	return &row, nil
}

// UpsertProgress stores the reported progress in one statement. An existing
// completion timestamp survives later completed writes and is cleared when the
// row drops back under completion.
func (r *challengeRepo) UpsertProgress(dbc DBContext, table string, row *models.ChallengeProgress) (*models.ChallengeProgress, error) {
	conn := dbc.conn(r.db)
	completedAt := fmt.Sprintf(
		"CASE WHEN excluded.is_completed THEN COALESCE(%s.completed_at, excluded.completed_at) ELSE NULL END",
		table,
	)
	err := conn.Table(table).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "challenge_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"progress":     gorm.Expr("excluded.progress"),
				"is_completed": gorm.Expr("excluded.is_completed"),
				"completed_at": gorm.Expr(completedAt),
			}),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	return r.GetProgress(dbc, table, row.UserID, row.ChallengeID)
}

// ClaimReward flips reward_claimed on a completed row. Only the caller that
// flips it gets true.
func (r *challengeRepo) ClaimReward(dbc DBContext, table, userID string, challengeID uint) (bool, error) {
	res := dbc.conn(r.db).Table(table).
		Where("user_id = ? AND challenge_id = ? AND is_completed = ? AND reward_claimed = ?", userID, challengeID, true, false).
		Update("reward_claimed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}
