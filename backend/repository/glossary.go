package repository

import (
	"errors"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

type GlossaryRepo interface {
	List(dbc DBContext, category string) ([]models.GlossaryTerm, error)
	Get(dbc DBContext, id uint) (*models.GlossaryTerm, error)
	Create(dbc DBContext, term *models.GlossaryTerm) error
	Update(dbc DBContext, id uint, fields map[string]interface{}) (*models.GlossaryTerm, error)
	Delete(dbc DBContext, id uint) error
	UpsertByTerm(dbc DBContext, term *models.GlossaryTerm) (created bool, err error)
}

type glossaryRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewGlossaryRepo(db *gorm.DB, baseLog *utils.Logger) GlossaryRepo {
	return &glossaryRepo{db: db, log: baseLog.With("repo", "GlossaryRepo")}
}

func (r *glossaryRepo) List(dbc DBContext, category string) ([]models.GlossaryTerm, error) {
	var terms []models.GlossaryTerm
	q := dbc.conn(r.db)
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("term ASC").Order("id ASC").Find(&terms).Error
	return terms, err
}

func (r *glossaryRepo) Get(dbc DBContext, id uint) (*models.GlossaryTerm, error) {
	var term models.GlossaryTerm
	err := dbc.conn(r.db).First(&term, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrTermNotFound
	}
	if err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *glossaryRepo) Create(dbc DBContext, term *models.GlossaryTerm) error {
	return dbc.conn(r.db).Create(term).Error
}

func (r *glossaryRepo) Update(dbc DBContext, id uint, fields map[string]interface{}) (*models.GlossaryTerm, error) {
	if len(fields) > 0 {
		res := dbc.conn(r.db).Model(&models.GlossaryTerm{}).Where("id = ?", id).Updates(fields)
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.Get(dbc, id)
}

func (r *glossaryRepo) Delete(dbc DBContext, id uint) error {
	res := dbc.conn(r.db).Delete(&models.GlossaryTerm{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrTermNotFound
	}
	return nil
}

// UpsertByTerm matches an existing entry on (term, category) and overwrites
// its text, or inserts a new one.
func (r *glossaryRepo) UpsertByTerm(dbc DBContext, term *models.GlossaryTerm) (bool, error) {
	conn := dbc.conn(r.db)
	var existing models.GlossaryTerm
	err := conn.Where("term = ? AND category = ?", term.Term, term.Category).Limit(1).Find(&existing).Error
	if err != nil {
		return false, err
	}
	if existing.ID == 0 {
		return true, conn.Create(term).Error
	}
	term.ID = existing.ID
	err = conn.Model(&existing).Updates(map[string]interface{}{
		"definition":  term.Definition,
		"example":     term.Example,
		"chapter_ref": term.ChapterRef,
	}).Error
	return false, err
}
