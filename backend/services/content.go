package services

import (
	"context"
	"time"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"
)

// ContentService serves chapters, reading progress and the glossary.
type ContentService struct {
	chapters repository.ChapterRepo
	glossary repository.GlossaryRepo
	badges   *BadgeService
	log      *utils.Logger
	now      Clock
}

func NewContentService(chapters repository.ChapterRepo, glossary repository.GlossaryRepo, badges *BadgeService, opts Options, log *utils.Logger) *ContentService {
	opts = opts.withDefaults()
	return &ContentService{
		chapters: chapters,
		glossary: glossary,
		badges:   badges,
		log:      log.With("service", "ContentService"),
		now:      opts.Now,
	}
}

func (s *ContentService) ListChapters(ctx context.Context) ([]models.Chapter, error) {
	return s.chapters.List(repository.Ctx(ctx))
}

func (s *ContentService) GetChapter(ctx context.Context, id uint) (*models.Chapter, error) {
	return s.chapters.Get(repository.Ctx(ctx), id)
}

func (s *ContentService) CreateChapter(ctx context.Context, ch *models.Chapter) error {
	return s.chapters.Create(repository.Ctx(ctx), ch)
}

func (s *ContentService) UpdateChapter(ctx context.Context, id uint, fields map[string]interface{}) (*models.Chapter, error) {
	dbc := repository.Ctx(ctx)
	if _, err := s.chapters.Get(dbc, id); err != nil {
		return nil, err
	}
	return s.chapters.Update(dbc, id, fields)
}

func (s *ContentService) DeleteChapter(ctx context.Context, id uint) error {
	return s.chapters.Delete(repository.Ctx(ctx), id)
}

type ProgressUpdate struct {
	ProgressPercentage int
	IsCompleted        *bool
	CompletedAt        *time.Time
}

// UpdateChapterProgress upserts the reader's progress. Fields left out of the
// update keep their stored values; marking a chapter complete without a
// timestamp stamps it with now.
func (s *ContentService) UpdateChapterProgress(ctx context.Context, userID string, chapterID uint, upd ProgressUpdate) (*models.ChapterProgress, error) {
	if upd.ProgressPercentage < 0 || upd.ProgressPercentage > 100 {
		return nil, models.ErrInvalidProgress
	}
	dbc := repository.Ctx(ctx)
	if _, err := s.chapters.Get(dbc, chapterID); err != nil {
		return nil, err
	}

	row := &models.ChapterProgress{
		UserID:             userID,
		ChapterID:          chapterID,
		ProgressPercentage: upd.ProgressPercentage,
	}
	columns := []string{"progress_percentage"}
	if upd.IsCompleted != nil {
		row.IsCompleted = *upd.IsCompleted
		columns = append(columns, "is_completed", "completed_at")
		if row.IsCompleted {
			row.CompletedAt = upd.CompletedAt
			if row.CompletedAt == nil {
				now := s.now().UTC()
				row.CompletedAt = &now
			}
		}
	} else if upd.CompletedAt != nil {
		row.CompletedAt = upd.CompletedAt
		columns = append(columns, "completed_at")
	}

	saved, err := s.chapters.UpsertProgress(dbc, row, columns)
	if err != nil {
		return nil, err
	}
	if saved.IsCompleted {
		s.badges.Refresh(ctx, userID)
	}
	return saved, nil
}

func (s *ContentService) UserProgress(ctx context.Context, userID string) ([]models.ChapterProgress, error) {
	return s.chapters.ListProgress(repository.Ctx(ctx), userID)
}

func (s *ContentService) ListTerms(ctx context.Context, category string) ([]models.GlossaryTerm, error) {
	return s.glossary.List(repository.Ctx(ctx), category)
}

func (s *ContentService) GetTerm(ctx context.Context, id uint) (*models.GlossaryTerm, error) {
	return s.glossary.Get(repository.Ctx(ctx), id)
}

func (s *ContentService) CreateTerm(ctx context.Context, term *models.GlossaryTerm) error {
	return s.glossary.Create(repository.Ctx(ctx), term)
}

func (s *ContentService) UpdateTerm(ctx context.Context, id uint, fields map[string]interface{}) (*models.GlossaryTerm, error) {
	dbc := repository.Ctx(ctx)
	if _, err := s.glossary.Get(dbc, id); err != nil {
		return nil, err
	}
	return s.glossary.Update(dbc, id, fields)
}

func (s *ContentService) DeleteTerm(ctx context.Context, id uint) error {
	return s.glossary.Delete(repository.Ctx(ctx), id)
}

// UpsertTerm is used by bulk imports: it reports whether a new entry was created.
func (s *ContentService) UpsertTerm(ctx context.Context, term *models.GlossaryTerm) (bool, error) {
	return s.glossary.UpsertByTerm(repository.Ctx(ctx), term)
}
