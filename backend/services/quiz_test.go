package services

import (
	"context"
	"testing"

	"readquest/backend/models"
	"readquest/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestScoreQuiz(t *testing.T) {
	questions := []models.QuizQuestion{
		{ID: 1, CorrectAnswer: "A"},
		{ID: 2, CorrectAnswer: "B"},
		{ID: 3, CorrectAnswer: "C"},
		{ID: 4, CorrectAnswer: "D"},
	}

	tests := []struct {
		name    string
		answers map[uint]string
		reward  int
		want    QuizScore
	}{
		{
			name:    "three of four",
			answers: map[uint]string{1: "A", 2: "B", 3: "X", 4: "D"},
			reward:  100,
			want:    QuizScore{Correct: 3, Total: 4, Score: 75, XPEarned: 75},
		},
		{
			name:    "case sensitive",
			answers: map[uint]string{1: "a", 2: "B", 3: "C", 4: "D"},
			reward:  50,
			want:    QuizScore{Correct: 3, Total: 4, Score: 75, XPEarned: 38},
		},
		{
			name:    "unanswered count as wrong",
			answers: map[uint]string{2: "B"},
			reward:  100,
			want:    QuizScore{Correct: 1, Total: 4, Score: 25, XPEarned: 25},
		},
		{
			name:    "perfect",
			answers: map[uint]string{1: "A", 2: "B", 3: "C", 4: "D"},
			reward:  100,
			want:    QuizScore{Correct: 4, Total: 4, Score: 100, XPEarned: 100},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ScoreQuiz(questions, tt.answers, tt.reward)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ScoreQuiz(nil, map[uint]string{}, 100)
	assert.ErrorIs(t, err, models.ErrQuizHasNoQuestions)
}

func seedQuiz(t *testing.T, db *gorm.DB) (*models.Quiz, []models.QuizQuestion) {
	t.Helper()
	ch := &models.Chapter{Number: 1, Title: "Quel ramo del lago di Como", Content: "..."}
	require.NoError(t, db.Create(ch).Error)
	quiz := &models.Quiz{ChapterID: ch.ID, Title: "Capitolo 1", XPReward: 100}
	require.NoError(t, db.Create(quiz).Error)
	questions := []models.QuizQuestion{
		{QuizID: quiz.ID, Question: "Chi sono i bravi?", Type: models.QuestionMultipleChoice, CorrectAnswer: "A", Order: 1},
		{QuizID: quiz.ID, Question: "Don Abbondio e coraggioso?", Type: models.QuestionTrueFalse, CorrectAnswer: "false", Order: 2},
		{QuizID: quiz.ID, Question: "Dove inizia il romanzo?", Type: models.QuestionMultipleChoice, CorrectAnswer: "C", Order: 3},
		{QuizID: quiz.ID, Question: "Chi manda i bravi?", Type: models.QuestionMultipleChoice, CorrectAnswer: "D", Order: 4},
	}
	require.NoError(t, db.Create(&questions).Error)
	return quiz, questions
}

func TestSubmitAttemptGradesAnswers(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	testutil.CreateUser(t, db, "renzo", 950)
	quiz, qs := seedQuiz(t, db)

	sub := AttemptSubmission{Answers: []Answer{
		{QuestionID: qs[0].ID, Answer: "A"},
		{QuestionID: qs[1].ID, Answer: "false"},
		{QuestionID: qs[2].ID, Answer: "X"},
		{QuestionID: qs[3].ID, Answer: "D"},
	}}
	res, err := svc.Quizzes.SubmitAttempt(ctx, "renzo", quiz.ID, sub)
	require.NoError(t, err)
	assert.Equal(t, 75, res.Attempt.Score)
	assert.Equal(t, 3, res.Attempt.CorrectAnswers)
	assert.Equal(t, 4, res.Attempt.TotalQuestions)
	assert.Equal(t, 75, res.Attempt.XPEarned)
	assert.Equal(t, 1025, res.User.XP)
	assert.Equal(t, 2, res.User.Level)

	// retakes are recorded and credited again
	_, err = svc.Quizzes.SubmitAttempt(ctx, "renzo", quiz.ID, sub)
	require.NoError(t, err)
	attempts, err := svc.Quizzes.Attempts(ctx, "renzo")
	require.NoError(t, err)
	assert.Len(t, attempts, 2)
	u, err := svc.Users.Get(ctx, "renzo")
	require.NoError(t, err)
	assert.Equal(t, 1100, u.XP)
}

func TestSubmitAttemptReportedScore(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	testutil.CreateUser(t, db, "lucia", 0)
	quiz, _ := seedQuiz(t, db)
	ptr := func(n int) *int { return &n }

	res, err := svc.Quizzes.SubmitAttempt(ctx, "lucia", quiz.ID, AttemptSubmission{
		Score: ptr(0), TotalQuestions: ptr(4), CorrectAnswers: ptr(0), XPEarned: ptr(0),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.User.XP, "zero xp attempts are still recorded")
	attempts, err := svc.Quizzes.Attempts(ctx, "lucia")
	require.NoError(t, err)
	assert.Len(t, attempts, 1)

	res, err = svc.Quizzes.SubmitAttempt(ctx, "lucia", quiz.ID, AttemptSubmission{TotalQuestions: ptr(4)})
	require.NoError(t, err, "omitted score fields default to zero")
	assert.Equal(t, 0, res.Attempt.Score)
	assert.Equal(t, 0, res.Attempt.CorrectAnswers)
	assert.Equal(t, 0, res.Attempt.XPEarned)
	attempts, err = svc.Quizzes.Attempts(ctx, "lucia")
	require.NoError(t, err)
	assert.Len(t, attempts, 2)

	bad := []AttemptSubmission{
		{},
		{Score: ptr(50), CorrectAnswers: ptr(2), XPEarned: ptr(0)},
		{Score: ptr(50), TotalQuestions: ptr(0), CorrectAnswers: ptr(0), XPEarned: ptr(0)},
		{Score: ptr(50), TotalQuestions: ptr(4), CorrectAnswers: ptr(5), XPEarned: ptr(0)},
		{Score: ptr(150), TotalQuestions: ptr(4), CorrectAnswers: ptr(4), XPEarned: ptr(0)},
		{Score: ptr(100), TotalQuestions: ptr(4), CorrectAnswers: ptr(4), XPEarned: ptr(5000)},
	}
	for _, sub := range bad {
		_, err := svc.Quizzes.SubmitAttempt(ctx, "lucia", quiz.ID, sub)
		assert.ErrorIs(t, err, models.ErrInvalidAttempt)
	}

	_, err = svc.Quizzes.SubmitAttempt(ctx, "lucia", 9999, AttemptSubmission{})
	assert.ErrorIs(t, err, models.ErrQuizNotFound)
}

func TestQuestionsOrderedAndChapterChecked(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	quiz, _ := seedQuiz(t, db)

	qs, err := svc.Quizzes.Questions(ctx, quiz.ID)
	require.NoError(t, err)
	require.Len(t, qs, 4)
	for i, q := range qs {
		assert.Equal(t, i+1, q.Order)
	}

	_, err = svc.Quizzes.ListByChapter(ctx, 4242)
	assert.ErrorIs(t, err, models.ErrChapterNotFound)

	err = svc.Quizzes.Create(ctx, &models.Quiz{ChapterID: 4242, Title: "x", XPReward: 10})
	assert.ErrorIs(t, err, models.ErrChapterNotFound)
}
