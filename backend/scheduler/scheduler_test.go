package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"readquest/backend/config"
	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/services"
	"readquest/backend/testutil"
	"readquest/backend/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSweeper struct {
	calls int
	err   error
}

func (c *countingSweeper) DeactivateExpired(context.Context) (int64, int64, error) {
	c.calls++
	return 1, 0, c.err
}

func TestNewRejectsBadSpec(t *testing.T) {
	_, err := New("every tuesday", time.UTC, &countingSweeper{}, utils.NewNopLogger())
	assert.Error(t, err)
}

func TestDefaultSpecMatchesConfig(t *testing.T) {
	t.Setenv("DB_DRIVER", "sqlite")
	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, DefaultSweepSpec, cfg.ChallengeSweepSpec)

	_, err = New(DefaultSweepSpec, time.UTC, &countingSweeper{}, utils.NewNopLogger())
	assert.NoError(t, err)
}

func TestSweepSurvivesErrors(t *testing.T) {
	sw := &countingSweeper{err: errors.New("db down")}
	s, err := New("", nil, sw, utils.NewNopLogger())
	require.NoError(t, err)

	s.SweepChallenges()
	s.SweepChallenges()
	assert.Equal(t, 2, sw.calls)
}

func TestStartStop(t *testing.T) {
	s, err := New("@every 1h", time.UTC, &countingSweeper{}, utils.NewNopLogger())
	require.NoError(t, err)
	s.Start()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
	assert.NoError(t, ctx.Err())
}

func TestSweepDeactivatesPastChallenges(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Date(2026, 3, 10, 0, 5, 0, 0, time.UTC)
	log := utils.NewNopLogger()
	svc := services.New(db, services.Options{Now: testutil.FixedClock(now)}, log)

	old := &models.DailyChallenge{Title: "ieri", Type: "reading", Date: now.AddDate(0, 0, -1), IsActive: true}
	today := &models.DailyChallenge{Title: "oggi", Type: "reading", Date: now, IsActive: true}
	repo := repository.NewChallengeRepo(db, log)
	require.NoError(t, repo.CreateDaily(repository.Ctx(context.Background()), old))
	require.NoError(t, repo.CreateDaily(repository.Ctx(context.Background()), today))

	s, err := New("", time.UTC, svc.Challenges, log)
	require.NoError(t, err)
	s.SweepChallenges()

	var active []models.DailyChallenge
	require.NoError(t, db.Where("is_active = ?", true).Find(&active).Error)
	require.Len(t, active, 1)
	assert.Equal(t, "oggi", active[0].Title)
}
