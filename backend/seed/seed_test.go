package seed

import (
	"context"
	"testing"
	"time"

	"readquest/backend/models"
	"readquest/backend/services"
	"readquest/backend/testutil"
	"readquest/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC)
	log := utils.NewNopLogger()
	svc := services.New(db, services.Options{Now: testutil.FixedClock(now), BcryptCost: 4}, log)
	opts := Options{AdminUsername: "manzoni", AdminPassword: "quel-ramo", Now: testutil.FixedClock(now)}

	first, err := Run(context.Background(), db, svc, opts, log)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Chapters)
	assert.Equal(t, 2, first.Quizzes)
	assert.Equal(t, 7, first.Questions)
	assert.Equal(t, 4, first.Badges)
	assert.True(t, first.Challenge)
	assert.True(t, first.Admin)

	second, err := Run(context.Background(), db, svc, opts, log)
	require.NoError(t, err)
	assert.Equal(t, Result{}, *second)

	var count int64
	require.NoError(t, db.Model(&models.QuizQuestion{}).Count(&count).Error)
	assert.EqualValues(t, 7, count)

	daily, err := svc.Challenges.TodaysDaily(context.Background())
	require.NoError(t, err)
	require.NotNil(t, daily)
	assert.Equal(t, "Lettore del Giorno", daily.Title)

	admin, err := svc.Admins.Authenticate(context.Background(), "manzoni", "quel-ramo")
	require.NoError(t, err)
	assert.Equal(t, "manzoni", admin.Username)
}

func TestRunWithoutAdminCredentials(t *testing.T) {
	db := testutil.NewDB(t)
	log := utils.NewNopLogger()
	svc := services.New(db, services.Options{}, log)

	res, err := Run(context.Background(), db, svc, Options{}, log)
	require.NoError(t, err)
	assert.False(t, res.Admin)

	var admins int64
	require.NoError(t, db.Model(&models.AdminUser{}).Count(&admins).Error)
	assert.Zero(t, admins)
}

func TestSeededQuizScoresPerfect(t *testing.T) {
	db := testutil.NewDB(t)
	log := utils.NewNopLogger()
	svc := services.New(db, services.Options{}, log)
	_, err := Run(context.Background(), db, svc, Options{}, log)
	require.NoError(t, err)

	var quiz models.Quiz
	require.NoError(t, db.Where("title = ?", quizzes[0].quiz.Title).First(&quiz).Error)
	questions, err := svc.Quizzes.Questions(context.Background(), quiz.ID)
	require.NoError(t, err)
	require.Len(t, questions, 4)

	answers := map[uint]string{}
	for _, q := range questions {
		answers[q.ID] = q.CorrectAnswer
	}
	score, err := services.ScoreQuiz(questions, answers, quiz.XPReward)
	require.NoError(t, err)
	assert.Equal(t, 100, score.Score)
	assert.Equal(t, 100, score.XPEarned)
}
