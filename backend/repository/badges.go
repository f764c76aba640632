package repository

import (
	"errors"
	"time"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BadgeRepo interface {
	List(dbc DBContext) ([]models.Badge, error)
	Get(dbc DBContext, id uint) (*models.Badge, error)
	Create(dbc DBContext, b *models.Badge) error
	Award(dbc DBContext, userID string, badgeID uint, at time.Time) (bool, error)
	ForUser(dbc DBContext, userID string) ([]models.UserBadge, error)
	HeldIDs(dbc DBContext, userID string) ([]uint, error)
}

type badgeRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewBadgeRepo(db *gorm.DB, baseLog *utils.Logger) BadgeRepo {
	return &badgeRepo{db: db, log: baseLog.With("repo", "BadgeRepo")}
}

func (r *badgeRepo) List(dbc DBContext) ([]models.Badge, error) {
	var badges []models.Badge
	err := dbc.conn(r.db).Order("id ASC").Find(&badges).Error
	return badges, err
}

func (r *badgeRepo) Get(dbc DBContext, id uint) (*models.Badge, error) {
	var b models.Badge
	err := dbc.conn(r.db).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrBadgeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *badgeRepo) Create(dbc DBContext, b *models.Badge) error {
	return dbc.conn(r.db).Create(b).Error
}

// Award inserts the (user, badge) pair. It reports false, without error, when
// the reader already holds the badge.
func (r *badgeRepo) Award(dbc DBContext, userID string, badgeID uint, at time.Time) (bool, error) {
	row := &models.UserBadge{UserID: userID, BadgeID: badgeID, EarnedAt: at.UTC()}
	res := dbc.conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "badge_id"}},
			DoNothing: true,
		}).
		Create(row)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *badgeRepo) ForUser(dbc DBContext, userID string) ([]models.UserBadge, error) {
	var rows []models.UserBadge
	err := dbc.conn(r.db).
		Preload("Badge").
		Where("user_id = ?", userID).
		Order("earned_at DESC").Order("id DESC").
		Find(&rows).Error
	return rows, err
}

func (r *badgeRepo) HeldIDs(dbc DBContext, userID string) ([]uint, error) {
	var ids []uint
	err := dbc.conn(r.db).Model(&models.UserBadge{}).
		Where("user_id = ?", userID).
		Pluck("badge_id", &ids).Error
	return ids, err
}
