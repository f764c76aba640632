// Package seed loads the sample book content: chapters, quizzes, badges,
// today's challenge and optionally an admin account. Running it twice is safe.
package seed

import (
	"context"
	"errors"
	"fmt"
	"time"

	"readquest/backend/models"
	"readquest/backend/services"
	"readquest/backend/utils"

	"gorm.io/gorm"
)

type Options struct {
	AdminUsername string
	AdminPassword string
	Location      *time.Location
	Now           services.Clock
}

type Result struct {
	Chapters  int
	Quizzes   int
	Questions int
	Badges    int
	Challenge bool
	Admin     bool
}

// Run inserts whatever sample rows are missing. Existing rows are left as they are.
func Run(ctx context.Context, db *gorm.DB, svc *services.Services, opts Options, log *utils.Logger) (*Result, error) {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	res := &Result{}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		chapterIDs := make(map[int]uint, len(chapters))
		for _, ch := range chapters {
			row := ch
			created, err := firstOrCreate(tx, &row, "number = ?", ch.Number)
			if err != nil {
				return fmt.Errorf("chapter %d: %w", ch.Number, err)
			}
			if created {
				res.Chapters++
			}
			chapterIDs[ch.Number] = row.ID
		}

		for _, qs := range quizzes {
			quiz := qs.quiz
			quiz.ChapterID = chapterIDs[qs.chapter]
			created, err := firstOrCreate(tx, &quiz, "chapter_id = ? AND title = ?", quiz.ChapterID, quiz.Title)
			if err != nil {
				return fmt.Errorf("quiz %q: %w", quiz.Title, err)
			}
			if created {
				res.Quizzes++
			}
			for _, q := range qs.questions {
				question := q
				question.QuizID = quiz.ID
				created, err := firstOrCreate(tx, &question, "quiz_id = ? AND sort_order = ?", quiz.ID, q.Order)
				if err != nil {
					return fmt.Errorf("quiz %q question %d: %w", quiz.Title, q.Order, err)
				}
				if created {
					res.Questions++
				}
			}
		}

		for _, b := range badges {
			badge := b
			created, err := firstOrCreate(tx, &badge, "name = ?", b.Name)
			if err != nil {
				return fmt.Errorf("badge %q: %w", b.Name, err)
			}
			if created {
				res.Badges++
			}
		}

		start := services.StartOfDay(opts.Now(), opts.Location)
		challenge := dailyChallenge
		challenge.Date = start.UTC()
		created, err := firstOrCreate(tx, &challenge, "title = ? AND date >= ? AND date < ?",
			challenge.Title, start.UTC(), start.AddDate(0, 0, 1).UTC())
		if err != nil {
			return fmt.Errorf("daily challenge: %w", err)
		}
		res.Challenge = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	if opts.AdminUsername != "" && opts.AdminPassword != "" {
		_, err := svc.Admins.CreateAdmin(ctx, opts.AdminUsername, opts.AdminPassword, false)
		switch {
		case err == nil:
			res.Admin = true
		case errors.Is(err, models.ErrDuplicateAdmin):
		default:
			return nil, fmt.Errorf("admin %q: %w", opts.AdminUsername, err)
		}
	}

	log.Info("seed finished",
		"chapters", res.Chapters,
		"quizzes", res.Quizzes,
		"questions", res.Questions,
		"badges", res.Badges,
		"challenge", res.Challenge,
		"admin", res.Admin,
	)
	return res, nil
}

// firstOrCreate loads the row matching the condition into dst, or inserts dst.
func firstOrCreate(tx *gorm.DB, dst interface{}, query string, args ...interface{}) (bool, error) {
	res := tx.Where(query, args...).Limit(1).Find(dst)
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected > 0 {
		return false, nil
	}
	return true, tx.Create(dst).Error
}
