package repository

import (
	"context"
	"testing"
	"time"

	"readquest/backend/models"
	"readquest/backend/testutil"
	"readquest/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepoAddXPKeepsLevelInSync(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())
	testutil.CreateUser(t, db, "renzo", 950)

	require.NoError(t, repo.AddXP(dbc, "renzo", 100))
	u, err := repo.Get(dbc, "renzo")
	require.NoError(t, err)
	assert.Equal(t, 1050, u.XP)
	assert.Equal(t, 2, u.Level)

	assert.ErrorIs(t, repo.AddXP(dbc, "nobody", 10), models.ErrUserNotFound)
}

func TestUserRepoUpsertProfileKeepsProgression(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewUserRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())
	testutil.CreateUser(t, db, "lucia", 2500)

	email := "lucia@lecco.it"
	require.NoError(t, repo.UpsertProfile(dbc, &models.User{ID: "lucia", Email: &email, FirstName: "Lucia"}))

	u, err := repo.Get(dbc, "lucia")
	require.NoError(t, err)
	assert.Equal(t, "Lucia", u.FirstName)
	assert.Equal(t, 2500, u.XP)
	assert.Equal(t, 3, u.Level)
}

func TestChapterProgressUpsertNeverDuplicates(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChapterRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())
	ch := &models.Chapter{Number: 1, Title: "Quel ramo", Content: "..."}
	require.NoError(t, repo.Create(dbc, ch))

	cols := []string{"progress_percentage", "is_completed"}
	_, err := repo.UpsertProgress(dbc, &models.ChapterProgress{UserID: "renzo", ChapterID: ch.ID, ProgressPercentage: 40}, cols)
	require.NoError(t, err)
	out, err := repo.UpsertProgress(dbc, &models.ChapterProgress{UserID: "renzo", ChapterID: ch.ID, ProgressPercentage: 100, IsCompleted: true}, cols)
	require.NoError(t, err)
	assert.Equal(t, 100, out.ProgressPercentage)
	assert.True(t, out.IsCompleted)

	rows, err := repo.ListProgress(dbc, "renzo")
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	numbers, err := repo.CompletedNumbers(dbc, "renzo")
	require.NoError(t, err)
	assert.Equal(t, []int{1}, numbers)
}

func TestChapterDuplicateNumber(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChapterRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())

	require.NoError(t, repo.Create(dbc, &models.Chapter{Number: 1, Title: "a", Content: "a"}))
	err := repo.Create(dbc, &models.Chapter{Number: 1, Title: "b", Content: "b"})
	assert.ErrorIs(t, err, models.ErrDuplicateChapterNumber)
}

func TestBadgeAwardIsIdempotent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewBadgeRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())
	b := &models.Badge{Name: "Primo Capitolo", Type: models.BadgeChapter}
	require.NoError(t, repo.Create(dbc, b))

	awarded, err := repo.Award(dbc, "renzo", b.ID, time.Now())
	require.NoError(t, err)
	assert.True(t, awarded)

	awarded, err = repo.Award(dbc, "renzo", b.ID, time.Now())
	require.NoError(t, err)
	assert.False(t, awarded)

	rows, err := repo.ForUser(dbc, "renzo")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].Badge)
	assert.Equal(t, "Primo Capitolo", rows[0].Badge.Name)
}

func TestChallengeProgressCompletionTimestamp(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChallengeRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())

	first := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	later := first.Add(2 * time.Hour)

	row, err := repo.UpsertProgress(dbc, DailyProgressTable, &models.ChallengeProgress{
		UserID: "renzo", ChallengeID: 7, Progress: 100, IsCompleted: true, CompletedAt: &first,
	})
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, first.Equal(*row.CompletedAt))

	row, err = repo.UpsertProgress(dbc, DailyProgressTable, &models.ChallengeProgress{
		UserID: "renzo", ChallengeID: 7, Progress: 120, IsCompleted: true, CompletedAt: &later,
	})
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, first.Equal(*row.CompletedAt), "completion time must not move")
	assert.Equal(t, 120, row.Progress)

	row, err = repo.UpsertProgress(dbc, DailyProgressTable, &models.ChallengeProgress{
		UserID: "renzo", ChallengeID: 7, Progress: 30,
	})
	require.NoError(t, err)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)
}

func TestChallengeClaimRewardOnce(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChallengeRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())
	now := time.Now().UTC()

	_, err := repo.UpsertProgress(dbc, WeeklyProgressTable, &models.ChallengeProgress{
		UserID: "renzo", ChallengeID: 1, Progress: 50,
	})
	require.NoError(t, err)
	claimed, err := repo.ClaimReward(dbc, WeeklyProgressTable, "renzo", 1)
	require.NoError(t, err)
	assert.False(t, claimed, "incomplete rows cannot be claimed")

	_, err = repo.UpsertProgress(dbc, WeeklyProgressTable, &models.ChallengeProgress{
		UserID: "renzo", ChallengeID: 1, Progress: 100, IsCompleted: true, CompletedAt: &now,
	})
	require.NoError(t, err)

	claimed, err = repo.ClaimReward(dbc, WeeklyProgressTable, "renzo", 1)
	require.NoError(t, err)
	assert.True(t, claimed)
	claimed, err = repo.ClaimReward(dbc, WeeklyProgressTable, "renzo", 1)
	require.NoError(t, err)
	assert.False(t, claimed)
}

func TestActiveDailyWindow(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewChallengeRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())
	day := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.CreateDaily(dbc, &models.DailyChallenge{Title: "yesterday", Type: "reading", Date: day.Add(-time.Hour), IsActive: true}))
	require.NoError(t, repo.CreateDaily(dbc, &models.DailyChallenge{Title: "inactive", Type: "reading", Date: day.Add(time.Hour), IsActive: false}))
	require.NoError(t, repo.CreateDaily(dbc, &models.DailyChallenge{Title: "today", Type: "reading", Date: day.Add(8 * time.Hour), IsActive: true}))
	require.NoError(t, repo.CreateDaily(dbc, &models.DailyChallenge{Title: "tomorrow", Type: "reading", Date: day.Add(24 * time.Hour), IsActive: true}))

	ch, err := repo.ActiveDaily(dbc, day, day.Add(24*time.Hour))
	require.NoError(t, err)
	require.NotNil(t, ch)
	assert.Equal(t, "today", ch.Title)

	none, err := repo.ActiveDaily(dbc, day.Add(-48*time.Hour), day.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestGlossaryListOrderAndFilter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGlossaryRepo(db, utils.NewNopLogger())
	dbc := Ctx(context.Background())

	for _, term := range []models.GlossaryTerm{
		{Term: "Bravo", Definition: "sgherro", Category: "personaggi"},
		{Term: "Azzeccagarbugli", Definition: "avvocato", Category: "personaggi"},
		{Term: "Lazzaretto", Definition: "ospedale", Category: "luoghi"},
	} {
		term := term
		require.NoError(t, repo.Create(dbc, &term))
	}

	all, err := repo.List(dbc, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Azzeccagarbugli", all[0].Term)

	places, err := repo.List(dbc, "luoghi")
	require.NoError(t, err)
	require.Len(t, places, 1)

	created, err := repo.UpsertByTerm(dbc, &models.GlossaryTerm{Term: "Bravo", Category: "personaggi", Definition: "uomo d'arme"})
	require.NoError(t, err)
	assert.False(t, created)
	got, err := repo.Get(dbc, all[1].ID)
	require.NoError(t, err)
	assert.Equal(t, "uomo d'arme", got.Definition)
}
