package repository

import (
	"errors"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

type AdminRepo interface {
	GetByUsername(dbc DBContext, username string) (*models.AdminUser, error)
	Create(dbc DBContext, admin *models.AdminUser) error
	UpdatePassword(dbc DBContext, username, hash string) error
}

type adminRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewAdminRepo(db *gorm.DB, baseLog *utils.Logger) AdminRepo {
	return &adminRepo{db: db, log: baseLog.With("repo", "AdminRepo")}
}

// GetByUsername returns nil, nil when no such admin exists.
func (r *adminRepo) GetByUsername(dbc DBContext, username string) (*models.AdminUser, error) {
	var admin models.AdminUser
	err := dbc.conn(r.db).Where("username = ?", username).Limit(1).Find(&admin).Error
	if err != nil {
		return nil, err
	}
	if admin.ID == 0 {
		return nil, nil
	}
	return &admin, nil
}

func (r *adminRepo) Create(dbc DBContext, admin *models.AdminUser) error {
	err := dbc.conn(r.db).Create(admin).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrDuplicateAdmin
	}
	return err
}

func (r *adminRepo) UpdatePassword(dbc DBContext, username, hash string) error {
	return dbc.conn(r.db).Model(&models.AdminUser{}).
		Where("username = ?", username).
		Update("password", hash).Error
}
