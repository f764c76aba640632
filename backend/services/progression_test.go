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

func TestAwardXP(t *testing.T) {
	svc, db := newTestServices(t, Options{})
	ctx := context.Background()
	testutil.CreateUser(t, db, "renzo", 950)

	u, err := svc.Progression.AwardXP(ctx, "renzo", 100)
	require.NoError(t, err)
	assert.Equal(t, 1050, u.XP)
	assert.Equal(t, 2, u.Level)

	for _, amount := range []int{0, 949, 1, 3000, 7} {
		u, err = svc.Progression.AwardXP(ctx, "renzo", amount)
		require.NoError(t, err)
		assert.Equal(t, models.LevelForXP(u.XP), u.Level)
	}
	assert.Equal(t, 5007, u.XP)

	_, err = svc.Progression.AwardXP(ctx, "renzo", -1)
	assert.ErrorIs(t, err, models.ErrInvalidXPAmount)

	_, err = svc.Progression.AwardXP(ctx, "ghost", 10)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestNextStreak(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	at := func(d time.Duration) *time.Time {
		t := now.Add(d)
		return &t
	}

	tests := []struct {
		name    string
		current int
		last    *time.Time
		want    int
	}{
		{"first login", 0, nil, 1},
		{"same day", 4, at(-2 * time.Hour), 4},
		{"next day", 4, at(-24 * time.Hour), 5},
		{"just after midnight", 2, at(-10 * time.Hour), 3},
		{"gap of two days", 9, at(-48 * time.Hour), 1},
		{"long gap", 9, at(-30 * 24 * time.Hour), 1},
		{"clock skew", 3, at(26 * time.Hour), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NextStreak(tt.current, tt.last, now, time.UTC))
		})
	}
}

func TestCalendarDaysBetweenUsesZone(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	require.NoError(t, err)

	a := time.Date(2026, 3, 10, 22, 30, 0, 0, time.UTC) // 23:30 in Rome
	b := time.Date(2026, 3, 10, 23, 30, 0, 0, time.UTC) // 00:30 next day in Rome

	assert.Equal(t, 0, CalendarDaysBetween(a, b, time.UTC))
	assert.Equal(t, 1, CalendarDaysBetween(a, b, rome))

	// DST change in Rome on 2026-03-29 must not skew the count.
	c := time.Date(2026, 3, 28, 12, 0, 0, 0, rome)
	d := time.Date(2026, 3, 30, 12, 0, 0, 0, rome)
	assert.Equal(t, 2, CalendarDaysBetween(c, d, rome))
}

func TestTouchLoginStreak(t *testing.T) {
	now := testNow
	svc, db := newTestServices(t, Options{Now: func() time.Time { return now }})
	ctx := context.Background()
	testutil.CreateUser(t, db, "lucia", 0)

	u, err := svc.Progression.TouchLoginStreak(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, 1, u.Streak)

	now = now.Add(3 * time.Hour)
	u, err = svc.Progression.TouchLoginStreak(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, 1, u.Streak)

	now = now.Add(24 * time.Hour)
	u, err = svc.Progression.TouchLoginStreak(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, 2, u.Streak)

	now = now.Add(72 * time.Hour)
	u, err = svc.Progression.TouchLoginStreak(ctx, "lucia")
	require.NoError(t, err)
	assert.Equal(t, 1, u.Streak)

	var stored models.User
	require.NoError(t, db.First(&stored, "id = ?", "lucia").Error)
	require.NotNil(t, stored.LastLoginDate)
	assert.True(t, now.Equal(*stored.LastLoginDate))

	_, err = svc.Progression.TouchLoginStreak(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}
