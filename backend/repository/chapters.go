package repository

import (
	"errors"

	"readquest/backend/models"
	"readquest/backend/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ChapterRepo interface {
	List(dbc DBContext) ([]models.Chapter, error)
	Get(dbc DBContext, id uint) (*models.Chapter, error)
	Create(dbc DBContext, ch *models.Chapter) error
	Update(dbc DBContext, id uint, fields map[string]interface{}) (*models.Chapter, error)
	Delete(dbc DBContext, id uint) error

	UpsertProgress(dbc DBContext, row *models.ChapterProgress, columns []string) (*models.ChapterProgress, error)
	ListProgress(dbc DBContext, userID string) ([]models.ChapterProgress, error)
	CompletedNumbers(dbc DBContext, userID string) ([]int, error)
}

type chapterRepo struct {
	db  *gorm.DB
	log *utils.Logger
}

func NewChapterRepo(db *gorm.DB, baseLog *utils.Logger) ChapterRepo {
	return &chapterRepo{db: db, log: baseLog.With("repo", "ChapterRepo")}
}

func (r *chapterRepo) List(dbc DBContext) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := dbc.conn(r.db).Order("number ASC").Find(&chapters).Error
	return chapters, err
}

func (r *chapterRepo) Get(dbc DBContext, id uint) (*models.Chapter, error) {
	var ch models.Chapter
	err := dbc.conn(r.db).First(&ch, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, models.ErrChapterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ch, nil
}

func (r *chapterRepo) Create(dbc DBContext, ch *models.Chapter) error {
	err := dbc.conn(r.db).Create(ch).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return models.ErrDuplicateChapterNumber
	}
	return err
}

func (r *chapterRepo) Update(dbc DBContext, id uint, fields map[string]interface{}) (*models.Chapter, error) {
	conn := dbc.conn(r.db)
	if len(fields) > 0 {
		res := conn.Model(&models.Chapter{}).Where("id = ?", id).Updates(fields)
		if errors.Is(res.Error, gorm.ErrDuplicatedKey) {
			return nil, models.ErrDuplicateChapterNumber
		}
		if res.Error != nil {
			return nil, res.Error
		}
	}
	return r.Get(dbc, id)
}

// Delete removes the chapter with its quizzes, their questions and every
// reader's progress on it. Quiz attempts stay as history.
func (r *chapterRepo) Delete(dbc DBContext, id uint) error {
	return dbc.conn(r.db).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Chapter{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrChapterNotFound
		}
		quizIDs := tx.Model(&models.Quiz{}).Select("id").Where("chapter_id = ?", id)
		if err := tx.Where("quiz_id IN (?)", quizIDs).Delete(&models.QuizQuestion{}).Error; err != nil {
			return err
		}
		if err := tx.Where("chapter_id = ?", id).Delete(&models.Quiz{}).Error; err != nil {
			return err
		}
		return tx.Where("chapter_id = ?", id).Delete(&models.ChapterProgress{}).Error
	})
}

// UpsertProgress writes the row, overwriting only the listed columns when the
// reader already has progress on the chapter.
func (r *chapterRepo) UpsertProgress(dbc DBContext, row *models.ChapterProgress, columns []string) (*models.ChapterProgress, error) {
	conn := dbc.conn(r.db)
	err := conn.
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "chapter_id"}},
			DoUpdates: clause.AssignmentColumns(columns),
		}).
		Create(row).Error
	if err != nil {
		return nil, err
	}
	var out models.ChapterProgress
	err = conn.Where("user_id = ? AND chapter_id = ?", row.UserID, row.ChapterID).First(&out).Error
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *chapterRepo) ListProgress(dbc DBContext, userID string) ([]models.ChapterProgress, error) {
	var rows []models.ChapterProgress
	err := dbc.conn(r.db).Where("user_id = ?", userID).Order("chapter_id ASC").Find(&rows).Error
	return rows, err
}

// CompletedNumbers lists the numbers of chapters the reader finished, ascending.
func (r *chapterRepo) CompletedNumbers(dbc DBContext, userID string) ([]int, error) {
	var numbers []int
	err := dbc.conn(r.db).
		Model(&models.ChapterProgress{}).
		Joins("JOIN chapters ON chapters.id = user_chapter_progress.chapter_id").
		Where("user_chapter_progress.user_id = ? AND user_chapter_progress.is_completed = ?", userID, true).
		Order("chapters.number ASC").
		Pluck("chapters.number", &numbers).Error
	return numbers, err
}
