package repository

import (
	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FriendshipRepo interface {
	Upsert(dbc DBContext, edge *models.Friendship) error
	SetStatus(dbc DBContext, userID, friendID, status string) error
	Friends(dbc DBContext, userID string) ([]models.User, error)
}

type friendshipRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewFriendshipRepo(db *gorm.DB, baseLog *utils.Logger) FriendshipRepo {
	return &friendshipRepo{db: db, log: baseLog.With("repo", "FriendshipRepo")}
}

func (r *friendshipRepo) Upsert(dbc DBContext, edge *models.Friendship) error {
	return dbc.conn(r.db).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "friend_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status"}),
		}).
		Create(edge).Error
}

func (r *friendshipRepo) SetStatus(dbc DBContext, userID, friendID, status string) error {
	res := dbc.conn(r.db).Model(&models.Friendship{}).
		Where("user_id = ? AND friend_id = ?", userID, friendID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrFriendNotFound
	}
	return nil
}

func (r *friendshipRepo) Friends(dbc DBContext, userID string) ([]models.User, error) {
	var users []models.User
	err := dbc.conn(r.db).
		Joins("JOIN friendships ON friendships.friend_id = users.id").
		Where("friendships.user_id = ? AND friendships.status = ?", userID, models.FriendshipAccepted).
		Order("users.first_name ASC").Order("users.id ASC").
		Find(&users).Error
	return users, err
}
