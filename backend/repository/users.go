package repository

import (
	"errors"
	"time"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepo interface {
	Get(dbc DBContext, id string) (*models.User, error)
	EnsureExists(dbc DBContext, u *models.User) error
	UpsertProfile(dbc DBContext, u *models.User) error
	AddXP(dbc DBContext, id string, amount int) error
	AddCoins(dbc DBContext, id string, amount int) error
	SetStreak(dbc DBContext, id string, streak int, lastLogin time.Time) error
	TopByXP(dbc DBContext, limit int) ([]models.User, error)
	AcceptedFriendsByXP(dbc DBContext, userID string, limit int) ([]models.User, error)
}

type userRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewUserRepo(db *gorm.DB, baseLog *utils.Logger) UserRepo {
	return &userRepo{db: db, log: baseLog.With("repo", "UserRepo")}
}

func (r *userRepo) Get(dbc DBContext, id string) (*models.User, error) {
	var u models.User
	err := dbc.conn(r.db).Where("id = ?", id).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EnsureExists inserts a fresh reader row unless one already exists.
func (r *userRepo) EnsureExists(dbc DBContext, u *models.User) error {
	if u.Level == 0 {
		u.Level = models.LevelForXP(u.XP)
	}
	return dbc.conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(u).Error
}

// UpsertProfile creates the reader or refreshes the identity-provided fields.
// Progression fields are never touched here.
func (r *userRepo) UpsertProfile(dbc DBContext, u *models.User) error {
	if u.Level == 0 {
		u.Level = models.LevelForXP(u.XP)
	}
	return dbc.conn(r.db).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"email", "first_name", "last_name", "profile_image_url", "updated_at",
			}),
		}).
		Create(u).Error
}

// AddXP increments XP and recomputes level in the same statement.
func (r *userRepo) AddXP(dbc DBContext, id string, amount int) error {
	res := dbc.conn(r.db).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"xp":         gorm.Expr("xp + ?", amount),
			"level":      gorm.Expr("(xp + ?) / ? + 1", amount, models.XPPerLevel),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) AddCoins(dbc DBContext, id string, amount int) error {
	res := dbc.conn(r.db).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"coins":      gorm.Expr("coins + ?", amount),
			"updated_at": time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) SetStreak(dbc DBContext, id string, streak int, lastLogin time.Time) error {
	res := dbc.conn(r.db).Model(&models.User{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"streak":          streak,
			"last_login_date": lastLogin.UTC(),
			"updated_at":      time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrUserNotFound
	}
	return nil
}

func (r *userRepo) TopByXP(dbc DBContext, limit int) ([]models.User, error) {
	var users []models.User
	err := dbc.conn(r.db).
		Order("xp DESC").Order("id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}

func (r *userRepo) AcceptedFriendsByXP(dbc DBContext, userID string, limit int) ([]models.User, error) {
	var users []models.User
	err := dbc.conn(r.db).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ? AND friendships.status = ?", userID, models.FriendshipAccepted).
		Order("users.xp DESC").Order("users.id ASC").
		Limit(limit).
		Find(&users).Error
	return users, err
}
