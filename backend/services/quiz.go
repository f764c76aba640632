package services

import (
	"context"
	"fmt"
	"math"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

// QuizScore is the outcome of grading one submission.
type QuizScore struct {
	Correct  int `json:"correctAnswers"`
	Total    int `json:"totalQuestions"`
	Score    int `json:"score"`
	XPEarned int `json:"xpEarned"`
}

// ScoreQuiz grades answers (keyed by question id) against the stored correct
// answers. Matching is exact and case-sensitive; unanswered questions are wrong.
func ScoreQuiz(questions []models.QuizQuestion, answers map[uint]string, xpReward int) (QuizScore, error) {
	if len(questions) == 0 {
		return QuizScore{}, models.ErrQuizHasNoQuestions
	}
	correct := lo.CountBy(questions, func(q models.QuizQuestion) bool {
		answer, ok := answers[q.ID]
		return ok && answer == q.CorrectAnswer
	})
	total := len(questions)
	return QuizScore{
		Correct:  correct,
		Total:    total,
		Score:    int(math.Round(float64(correct) * 100 / float64(total))),
		XPEarned: int(math.Round(float64(xpReward) * float64(correct) / float64(total))),
	}, nil
}

type Answer struct {
	QuestionID uint
	Answer     string
}

// AttemptSubmission carries either raw answers, which the server grades, or a
// score the client already computed.
type AttemptSubmission struct {
	Answers        []Answer
	Score          *int
	TotalQuestions *int
	CorrectAnswers *int
	XPEarned       *int
}

type AttemptResult struct {
	Attempt *models.QuizAttempt `json:"attempt"`
	User    *models.User        `json:"user"`
	Badges  []models.Badge      `json:"badges,omitempty"`
}

type QuizService struct {
	db       *gorm.DB
	quizzes  repository.QuizRepo
	chapters repository.ChapterRepo
	users    repository.UserRepo
	badges   *BadgeService
	log      *utils.Logger
	now      Clock
}

func NewQuizService(
	db *gorm.DB,
	quizzes repository.QuizRepo,
	chapters repository.ChapterRepo,
	users repository.UserRepo,
	badges *BadgeService,
	opts Options,
	log *utils.Logger,
) *QuizService {
	opts = opts.withDefaults()
	return &QuizService{
		db:       db,
		quizzes:  quizzes,
		chapters: chapters,
		users:    users,
		badges:   badges,
		log:      log.With("service", "QuizService"),
		now:      opts.Now,
	}
}

func (s *QuizService) ListByChapter(ctx context.Context, chapterID uint) ([]models.Quiz, error) {
	dbc := repository.Ctx(ctx)
	if _, err := s.chapters.Get(dbc, chapterID); err != nil {
		return nil, err
	}
	return s.quizzes.ListByChapter(dbc, chapterID)
}

func (s *QuizService) Questions(ctx context.Context, quizID uint) ([]models.QuizQuestion, error) {
	dbc := repository.Ctx(ctx)
	if _, err := s.quizzes.Get(dbc, quizID); err != nil {
		return nil, err
	}
	return s.quizzes.Questions(dbc, quizID)
}

func (s *QuizService) Attempts(ctx context.Context, userID string) ([]models.QuizAttempt, error) {
	return s.quizzes.AttemptsForUser(repository.Ctx(ctx), userID)
}

// SubmitAttempt records one attempt and credits the earned XP in the same
// transaction. Every attempt is stored; retakes are not capped.
func (s *QuizService) SubmitAttempt(ctx context.Context, userID string, quizID uint, sub AttemptSubmission) (*AttemptResult, error) {
	dbc := repository.Ctx(ctx)
	quiz, err := s.quizzes.Get(dbc, quizID)
	if err != nil {
		return nil, err
	}

	var score QuizScore
	if len(sub.Answers) > 0 {
		questions, err := s.quizzes.Questions(dbc, quizID)
		if err != nil {
			return nil, err
		}
		answers := lo.SliceToMap(sub.Answers, func(a Answer) (uint, string) { return a.QuestionID, a.Answer })
		score, err = ScoreQuiz(questions, answers, quiz.XPReward)
		if err != nil {
			return nil, err
		}
	} else {
		score, err = reportedScore(sub, quiz.XPReward)
		if err != nil {
			return nil, err
		}
	}

	attempt := &models.QuizAttempt{
		UserID:         userID,
		QuizID:         quizID,
		Score:          score.Score,
		TotalQuestions: score.Total,
		CorrectAnswers: score.Correct,
		XPEarned:       score.XPEarned,
		CompletedAt:    s.now().UTC(),
	}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txc := repository.InTx(ctx, tx)
		if err := s.quizzes.CreateAttempt(txc, attempt); err != nil {
			return err
		}
		if attempt.XPEarned > 0 {
			return s.users.AddXP(txc, userID, attempt.XPEarned)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("record attempt on quiz %d: %w", quizID, err)
	}

	badges := s.badges.Refresh(ctx, userID)
	user, err := s.users.Get(dbc, userID)
	if err != nil {
		return nil, err
	}
	return &AttemptResult{Attempt: attempt, User: user, Badges: badges}, nil
}

// reportedScore accepts a client-computed result after sanity checks. Only
// totalQuestions is required; a missing score, correctAnswers or xpEarned
// counts as 0. The reported XP may not exceed what the quiz can award.
func reportedScore(sub AttemptSubmission, xpReward int) (QuizScore, error) {
	if sub.TotalQuestions == nil {
		return QuizScore{}, fmt.Errorf("%w: answers or totalQuestions is required", models.ErrInvalidAttempt)
	}
	score := QuizScore{
		Score:    lo.FromPtr(sub.Score),
		Total:    *sub.TotalQuestions,
		Correct:  lo.FromPtr(sub.CorrectAnswers),
		XPEarned: lo.FromPtr(sub.XPEarned),
	}
	switch {
	case score.Total <= 0:
		return QuizScore{}, fmt.Errorf("%w: totalQuestions must be positive", models.ErrInvalidAttempt)
	case score.Correct < 0 || score.Correct > score.Total:
		return QuizScore{}, fmt.Errorf("%w: correctAnswers out of range", models.ErrInvalidAttempt)
	case score.Score < 0 || score.Score > 100:
		return QuizScore{}, fmt.Errorf("%w: score must be between 0 and 100", models.ErrInvalidAttempt)
	case score.XPEarned < 0 || score.XPEarned > xpReward:
		return QuizScore{}, fmt.Errorf("%w: xpEarned must be between 0 and %d", models.ErrInvalidAttempt, xpReward)
	}
	return score, nil
}

func (s *QuizService) ListAll(ctx context.Context) ([]models.Quiz, error) {
	return s.quizzes.ListAll(repository.Ctx(ctx))
}

func (s *QuizService) Create(ctx context.Context, q *models.Quiz) error {
	dbc := repository.Ctx(ctx)
	if _, err := s.chapters.Get(dbc, q.ChapterID); err != nil {
		return err
	}
	return s.quizzes.Create(dbc, q)
}

func (s *QuizService) Update(ctx context.Context, id uint, fields map[string]interface{}) (*models.Quiz, error) {
	dbc := repository.Ctx(ctx)
	if _, err := s.quizzes.Get(dbc, id); err != nil {
		return nil, err
	}
	if chapterID, ok := fields["chapter_id"].(uint); ok {
		if _, err := s.chapters.Get(dbc, chapterID); err != nil {
			return nil, err
		}
	}
	return s.quizzes.Update(dbc, id, fields)
}

func (s *QuizService) Delete(ctx context.Context, id uint) error {
	return s.quizzes.Delete(repository.Ctx(ctx), id)
}

func (s *QuizService) CreateQuestion(ctx context.Context, q *models.QuizQuestion) error {
	dbc := repository.Ctx(ctx)
	if _, err := s.quizzes.Get(dbc, q.QuizID); err != nil {
		return err
	}
	return s.quizzes.CreateQuestion(dbc, q)
}

func (s *QuizService) UpdateQuestion(ctx context.Context, id uint, fields map[string]interface{}) (*models.QuizQuestion, error) {
	dbc := repository.Ctx(ctx)
	if _, err := s.quizzes.GetQuestion(dbc, id); err != nil {
		return nil, err
	}
	return s.quizzes.UpdateQuestion(dbc, id, fields)
}

func (s *QuizService) DeleteQuestion(ctx context.Context, id uint) error {
	return s.quizzes.DeleteQuestion(repository.Ctx(ctx), id)
}
