package services

import (
	"context"
	"testing"
	"time"

	"readquest/backend/models"
	"readquest/backend/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTodaysDailyAndCurrentWeekly(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	today := StartOfDay(testNow, time.UTC)

	none, err := svc.Challenges.TodaysDaily(ctx)
	require.NoError(t, err)
	assert.Nil(t, none)

	require.NoError(t, db.Create(&models.DailyChallenge{Title: "older", Type: "reading", Date: today.Add(2 * time.Hour), IsActive: true}).Error)
	require.NoError(t, db.Create(&models.DailyChallenge{Title: "newer", Type: "quiz", Date: today.Add(time.Hour), IsActive: true}).Error)
	require.NoError(t, db.Create(&models.DailyChallenge{Title: "off", Type: "quiz", Date: today.Add(3 * time.Hour), IsActive: false}).Error)

	daily, err := svc.Challenges.TodaysDaily(ctx)
	require.NoError(t, err)
	require.NotNil(t, daily)
	assert.Equal(t, "newer", daily.Title, "most recently created wins")

	require.NoError(t, db.Create(&models.WeeklyChallenge{
		Title: "settimana", Type: "reading",
		StartDate: testNow.Add(-48 * time.Hour), EndDate: testNow.Add(48 * time.Hour), IsActive: true,
	}).Error)
	require.NoError(t, db.Create(&models.WeeklyChallenge{
		Title: "passata", Type: "reading",
		StartDate: testNow.Add(-10 * 24 * time.Hour), EndDate: testNow.Add(-3 * 24 * time.Hour), IsActive: true,
	}).Error)

	weekly, err := svc.Challenges.CurrentWeekly(ctx)
	require.NoError(t, err)
	require.NotNil(t, weekly)
	assert.Equal(t, "settimana", weekly.Title)
}

func TestUpdateDailyProgressCreditsRewardOnce(t *testing.T) {
	now := testNow
	svc, db := newTestServices(t, Options{
		Now:                 func() time.Time { return now },
		ChallengeAutoReward: true,
	})
	ctx := context.Background()
	testutil.CreateUser(t, db, "renzo", 950)
	ch := &models.DailyChallenge{Title: "Leggi un capitolo", Type: "reading", XPReward: 100, CoinReward: 5, Date: testNow, IsActive: true}
	require.NoError(t, db.Create(ch).Error)

	row, err := svc.Challenges.UpdateDailyProgress(ctx, "renzo", ch.ID, 40)
	require.NoError(t, err)
	assert.False(t, row.IsCompleted)
	assert.Nil(t, row.CompletedAt)

	row, err = svc.Challenges.UpdateDailyProgress(ctx, "renzo", ch.ID, 100)
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, now.Equal(*row.CompletedAt))
	assert.True(t, row.RewardClaimed)

	firstCompletion := now
	now = now.Add(time.Hour)
	row, err = svc.Challenges.UpdateDailyProgress(ctx, "renzo", ch.ID, 100)
	require.NoError(t, err)
	require.NotNil(t, row.CompletedAt)
	assert.True(t, firstCompletion.Equal(*row.CompletedAt))

	u, err := svc.Users.Get(ctx, "renzo")
	require.NoError(t, err)
	assert.Equal(t, 1050, u.XP)
	assert.Equal(t, 2, u.Level)
	assert.Equal(t, 5, u.Coins)

	// dropping back and completing again does not pay twice
	_, err = svc.Challenges.UpdateDailyProgress(ctx, "renzo", ch.ID, 10)
	require.NoError(t, err)
	_, err = svc.Challenges.UpdateDailyProgress(ctx, "renzo", ch.ID, 100)
	require.NoError(t, err)
	u, err = svc.Users.Get(ctx, "renzo")
	require.NoError(t, err)
	assert.Equal(t, 1050, u.XP)

	var n int64
	require.NoError(t, db.Model(&models.UserDailyChallenge{}).Count(&n).Error)
	assert.Equal(t, int64(1), n)
}

func TestUpdateProgressWithoutAutoReward(t *testing.T) {
	svc, db := newTestServices(t, Options{ChallengeAutoReward: false})
	ctx := context.Background()
	testutil.CreateUser(t, db, "lucia", 0)
	ch := &models.WeeklyChallenge{Title: "w", Type: "reading", XPReward: 500, CoinReward: 100,
		StartDate: testNow.Add(-time.Hour), EndDate: testNow.Add(time.Hour), IsActive: true}
	require.NoError(t, db.Create(ch).Error)

	row, err := svc.Challenges.UpdateWeeklyProgress(ctx, "lucia", ch.ID, 150)
	require.NoError(t, err)
	assert.True(t, row.IsCompleted)
	assert.Equal(t, 150, row.Progress)
	assert.False(t, row.RewardClaimed)

	u, err := svc.Users.Get(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, 0, u.XP)
}

func TestWeeklyRewardGrantsBadge(t *testing.T) {
	svc, db := newTestServices(t, Options{ChallengeAutoReward: true})
	ctx := context.Background()
	testutil.CreateUser(t, db, "lucia", 0)
	badge := &models.Badge{Name: "Settimana perfetta", Type: models.BadgeAchievement, XPReward: 25}
	require.NoError(t, db.Create(badge).Error)
	ch := &models.WeeklyChallenge{Title: "w", Type: "reading", XPReward: 500, CoinReward: 100, BadgeReward: &badge.ID,
		StartDate: testNow.Add(-time.Hour), EndDate: testNow.Add(time.Hour), IsActive: true}
	require.NoError(t, db.Create(ch).Error)

	_, err := svc.Challenges.UpdateWeeklyProgress(ctx, "lucia", ch.ID, 100)
	require.NoError(t, err)

	u, err := svc.Users.Get(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, 525, u.XP)
	assert.Equal(t, 100, u.Coins)

	held, err := svc.Badges.ForUser(ctx, "lucia")
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestUpdateProgressErrors(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	ch := &models.DailyChallenge{Title: "d", Type: "reading", Date: testNow, IsActive: true}
	require.NoError(t, db.Create(ch).Error)

	_, err := svc.Challenges.UpdateDailyProgress(ctx, "renzo", 999, 10)
	assert.ErrorIs(t, err, models.ErrChallengeNotFound)

	_, err = svc.Challenges.UpdateDailyProgress(ctx, "renzo", ch.ID, -1)
	assert.ErrorIs(t, err, models.ErrInvalidProgress)
}

func TestDeactivateExpired(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	today := StartOfDay(testNow, time.UTC)

	require.NoError(t, db.Create(&models.DailyChallenge{Title: "ieri", Type: "r", Date: today.Add(-time.Hour), IsActive: true}).Error)
	require.NoError(t, db.Create(&models.DailyChallenge{Title: "oggi", Type: "r", Date: today.Add(time.Hour), IsActive: true}).Error)
	require.NoError(t, db.Create(&models.WeeklyChallenge{Title: "finita", Type: "r",
		StartDate: testNow.Add(-9 * 24 * time.Hour), EndDate: testNow.Add(-2 * 24 * time.Hour), IsActive: true}).Error)

	daily, weekly, err := svc.Challenges.DeactivateExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), daily)
	assert.Equal(t, int64(1), weekly)

	current, err := svc.Challenges.TodaysDaily(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "oggi", current.Title)
}
