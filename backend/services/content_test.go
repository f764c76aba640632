package services

import (
	"context"
	"testing"
	"time"

	"readquest/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateChapterProgress(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	ch := &models.Chapter{Number: 2, Title: "Don Abbondio", Content: "..."}
	require.NoError(t, db.Create(ch).Error)

	row, err := svc.Content.UpdateChapterProgress(ctx, "renzo", ch.ID, ProgressUpdate{ProgressPercentage: 60})
	require.NoError(t, err)
	assert.Equal(t, 60, row.ProgressPercentage)
	assert.False(t, row.IsCompleted)

	done := true
	row, err = svc.Content.UpdateChapterProgress(ctx, "renzo", ch.ID, ProgressUpdate{ProgressPercentage: 100, IsCompleted: &done})
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, testNow.Equal(*row.CompletedAt))

	// a later partial update leaves completion alone
	row, err = svc.Content.UpdateChapterProgress(ctx, "renzo", ch.ID, ProgressUpdate{ProgressPercentage: 100})
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)

	explicit := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	row, err = svc.Content.UpdateChapterProgress(ctx, "lucia", ch.ID, ProgressUpdate{ProgressPercentage: 100, IsCompleted: &done, CompletedAt: &explicit})
	require.NoError(t, err)
	assert.True(t, explicit.Equal(*row.CompletedAt))

	rows, err := svc.Content.UserProgress(ctx, "renzo")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	_, err = svc.Content.UpdateChapterProgress(ctx, "renzo", ch.ID, ProgressUpdate{ProgressPercentage: 101})
	assert.ErrorIs(t, err, models.ErrInvalidProgress)
	_, err = svc.Content.UpdateChapterProgress(ctx, "renzo", 999, ProgressUpdate{ProgressPercentage: 1})
	assert.ErrorIs(t, err, models.ErrChapterNotFound)
}

func TestChapterCRUD(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	ctx := context.Background()

	for _, n := range []int{3, 1, 2} {
		require.NoError(t, svc.Content.CreateChapter(ctx, &models.Chapter{Number: n, Title: "c", Content: "x", ReadingTime: 10}))
	}
	chapters, err := svc.Content.ListChapters(ctx)
	require.NoError(t, err)
	require.Len(t, chapters, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{chapters[0].Number, chapters[1].Number, chapters[2].Number})

	updated, err := svc.Content.UpdateChapter(ctx, chapters[0].ID, map[string]interface{}{"title": "Quel ramo", "is_locked": true})
	require.NoError(t, err)
	assert.Equal(t, "Quel ramo", updated.Title)
	assert.True(t, updated.IsLocked)

	_, err = svc.Content.UpdateChapter(ctx, chapters[0].ID, map[string]interface{}{"number": 2})
	assert.ErrorIs(t, err, models.ErrDuplicateChapterNumber)

	require.NoError(t, svc.Content.DeleteChapter(ctx, chapters[0].ID))
	assert.ErrorIs(t, svc.Content.DeleteChapter(ctx, chapters[0].ID), models.ErrChapterNotFound)
	_, err = svc.Content.UpdateChapter(ctx, 999, map[string]interface{}{"title": "x"})
	assert.ErrorIs(t, err, models.ErrChapterNotFound)
}

func TestDeleteChapterRemovesQuizzes(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	quiz, _ := seedQuiz(t, db)

	require.NoError(t, svc.Content.DeleteChapter(ctx, quiz.ChapterID))

	var quizzes, questions int64
	require.NoError(t, db.Model(&models.Quiz{}).Count(&quizzes).Error)
	require.NoError(t, db.Model(&models.QuizQuestion{}).Count(&questions).Error)
	assert.Zero(t, quizzes)
	assert.Zero(t, questions)
}

func TestGlossaryTerms(t *testing.T) {
	svc, _ := newTestServices(t, Options{})
	ctx := context.Background()

	term := &models.GlossaryTerm{Term: "Bravo", Definition: "sgherro al servizio di un signore", Category: "personaggi"}
	require.NoError(t, svc.Content.CreateTerm(ctx, term))

	got, err := svc.Content.GetTerm(ctx, term.ID)
	require.NoError(t, err)
	assert.Equal(t, "Bravo", got.Term)

	updated, err := svc.Content.UpdateTerm(ctx, term.ID, map[string]interface{}{"example": "Due bravi aspettavano Don Abbondio"})
	require.NoError(t, err)
	assert.Equal(t, "Due bravi aspettavano Don Abbondio", updated.Example)

	require.NoError(t, svc.Content.DeleteTerm(ctx, term.ID))
	_, err = svc.Content.GetTerm(ctx, term.ID)
	assert.ErrorIs(t, err, models.ErrTermNotFound)
}
