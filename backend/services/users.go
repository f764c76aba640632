package services

import (
	"context"
	"fmt"
	"strings"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"
)

type UserService struct {
	users       repository.UserRepo
	progression *ProgressionService
	badges      *BadgeService
	log         *utils.Logger
}

func NewUserService(users repository.UserRepo, progression *ProgressionService, badges *BadgeService, log *utils.Logger) *UserService {
	return &UserService{
		users:       users,
		progression: progression,
		badges:      badges,
		log:         log.With("service", "UserService"),
	}
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	return s.users.Get(repository.Ctx(ctx), id)
}

// EnsureUser makes sure the token's subject has a reader row.
func (s *UserService) EnsureUser(ctx context.Context, id utils.Identity) error {
	if err := s.users.EnsureExists(repository.Ctx(ctx), userFromIdentity(id)); err != nil {
		return fmt.Errorf("ensure user %s: %w", id.UserID, err)
	}
	return nil
}

// Login refreshes the profile from the token, advances the streak and grants
// any badges that became due. It returns the reader as stored afterwards.
func (s *UserService) Login(ctx context.Context, id utils.Identity) (*models.User, error) {
	dbc := repository.Ctx(ctx)
	if err := s.users.UpsertProfile(dbc, userFromIdentity(id)); err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", id.UserID, err)
	}
	u, err := s.progression.TouchLoginStreak(ctx, id.UserID)
	if err != nil {
		return nil, err
	}
	if awarded := s.badges.Refresh(ctx, id.UserID); len(awarded) > 0 {
		return s.users.Get(dbc, id.UserID)
	}
	return u, nil
}

func userFromIdentity(id utils.Identity) *models.User {
	u := &models.User{
		ID:              id.UserID,
		FirstName:       id.FirstName,
		LastName:        id.LastName,
		ProfileImageURL: id.ProfileImageURL,
		Level:           1,
	}
	if email := strings.TrimSpace(id.Email); email != "" {
		u.Email = &email
	}
	return u
}
