package services

import (
	"cmp"
	"context"
	"slices"
	"strconv"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"

	"github.com/samber/lo"
)

const (
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)

type LeaderboardEntry struct {
	Rank int `json:"rank"`
	models.User
}

type LeaderboardService struct {
	users repository.UserRepo
	log   *utils.Logger
}

func NewLeaderboardService(users repository.UserRepo, log *utils.Logger) *LeaderboardService {
	return &LeaderboardService{users: users, log: log.With("service", "LeaderboardService")}
}

// ParseLimit turns the raw ?limit= value into a usable size. Missing, garbled
// or non-positive values fall back to the default; large ones are capped.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return DefaultLeaderboardLimit
	}
	return min(n, MaxLeaderboardLimit)
}

// Global ranks all readers by XP, highest first. Ties go to the lower id.
func (s *LeaderboardService) Global(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	users, err := s.users.TopByXP(repository.Ctx(ctx), limit)
	if err != nil {
		return nil, err
	}
	return rank(users, limit), nil
}

// Friends ranks the reader's accepted friends together with the reader.
// The reader is always present, even with no friends.
func (s *LeaderboardService) Friends(ctx context.Context, userID string, limit int) ([]LeaderboardEntry, error) {
	dbc := repository.Ctx(ctx)
	friends, err := s.users.AcceptedFriendsByXP(dbc, userID, limit)
	if err != nil {
		return nil, err
	}
	self, err := s.users.Get(dbc, userID)
	if err != nil {
		return nil, err
	}
	pool := lo.UniqBy(append(friends, *self), func(u models.User) string { return u.ID })
	return rank(pool, limit), nil
}

func rank(users []models.User, limit int) []LeaderboardEntry {
	sorted := slices.Clone(users)
	slices.SortStableFunc(sorted, func(a, b models.User) int {
		if c := cmp.Compare(b.XP, a.XP); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return lo.Map(sorted, func(u models.User, i int) LeaderboardEntry {
		return LeaderboardEntry{Rank: i + 1, User: u}
	})
}
