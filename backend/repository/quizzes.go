package repository

import (
	"errors"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

type QuizRepo interface {
	ListAll(dbc DBContext) ([]models.Quiz, error)
	ListByChapter(dbc DBContext, chapterID uint) ([]models.Quiz, error)
	Get(dbc DBContext, id uint) (*models.Quiz, error)
	Create(dbc DBContext, q *models.Quiz) error
	Update(dbc DBContext, id uint, fields map[string]interface{}) (*models.Quiz, error)
	Delete(dbc DBContext, id uint) error

	Questions(dbc DBContext, quizID uint) ([]models.QuizQuestion, error)
	GetQuestion(dbc DBContext, id uint) (*models.QuizQuestion, error)
	CreateQuestion(dbc DBContext, q *models.QuizQuestion) error
	UpdateQuestion(dbc DBContext, id uint, fields map[string]interface{}) (*models.QuizQuestion, error)
	DeleteQuestion(dbc DBContext, id uint) error

	CreateAttempt(dbc DBContext, a *models.QuizAttempt) error
	AttemptsForUser(dbc DBContext, userID string) ([]models.QuizAttempt, error)
	CountPerfectAttempts(dbc DBContext, userID string) (int64, error)
}

type quizRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewQuizRepo(db *gorm.DB, baseLog *utils.Logger) QuizRepo {
	return &quizRepo{db: db, log: baseLog.With("repo", "QuizRepo")}
}

func (r *quizRepo) ListAll(dbc DBContext) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := dbc.conn(r.db).Order("chapter_id ASC").Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepo) ListByChapter(dbc DBContext, chapterID uint) ([]models.Quiz, error) {
	var quizzes []models.Quiz
	err := dbc.conn(r.db).Where("chapter_id = ?", chapterID).Order("id ASC").Find(&quizzes).Error
	return quizzes, err
}

func (r *quizRepo) Get(dbc DBContext, id uint) (*models.Quiz, error) {
	var q models.Quiz
	err := dbc.conn(r.db).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrQuizNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quizRepo) Create(dbc DBContext, q *models.Quiz) error {
	return dbc.conn(r.db).Create(q).Error
}

func (r *quizRepo) Update(dbc DBContext, id uint, fields map[string]interface{}) (*models.Quiz, error) {
	if len(fields) > 0 {
		if err := dbc.conn(r.db).Model(&models.Quiz{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.Get(dbc, id)
}

// Delete removes the quiz and its questions. Attempts stay as history.
func (r *quizRepo) Delete(dbc DBContext, id uint) error {
	return dbc.conn(r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Quiz{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrQuizNotFound
		}
		return tx.Where("quiz_id = ?", id).Delete(&models.QuizQuestion{}).Error
	})
}

func (r *quizRepo) Questions(dbc DBContext, quizID uint) ([]models.QuizQuestion, error) {
	var questions []models.QuizQuestion
	err := dbc.conn(r.db).
		Where("quiz_id = ?", quizID).
		Order("sort_order ASC").Order("id ASC").
		Find(&questions).Error
	return questions, err
}

func (r *quizRepo) GetQuestion(dbc DBContext, id uint) (*models.QuizQuestion, error) {
	var q models.QuizQuestion
	err := dbc.conn(r.db).First(&q, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrQuestionNotFound
	}
	if err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *quizRepo) CreateQuestion(dbc DBContext, q *models.QuizQuestion) error {
	return dbc.conn(r.db).Create(q).Error
}

func (r *quizRepo) UpdateQuestion(dbc DBContext, id uint, fields map[string]interface{}) (*models.QuizQuestion, error) {
	if len(fields) > 0 {
		if err := dbc.conn(r.db).Model(&models.QuizQuestion{}).Where("id = ?", id).Updates(fields).Error; err != nil {
			return nil, err
		}
	}
	return r.GetQuestion(dbc, id)
}

func (r *quizRepo) DeleteQuestion(dbc DBContext, id uint) error {
	res := dbc.conn(r.db).Delete(&models.QuizQuestion{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return models.ErrQuestionNotFound
	}
	return nil
}

func (r *quizRepo) CreateAttempt(dbc DBContext, a *models.QuizAttempt) error {
	return dbc.conn(r.db).Create(a).Error
}

func (r *quizRepo) AttemptsForUser(dbc DBContext, userID string) ([]models.QuizAttempt, error) {
	var attempts []models.QuizAttempt
	err := dbc.conn(r.db).
		Where("user_id = ?", userID).
		Order("completed_at DESC").Order("id DESC").
		Find(&attempts).Error
	return attempts, err
}

func (r *quizRepo) CountPerfectAttempts(dbc DBContext, userID string) (int64, error) {
	var n int64
	err := dbc.conn(r.db).Model(&models.QuizAttempt{}).
		Where("user_id = ? AND score >= ?", userID, 100).
		Count(&n).Error
	return n, err
}
