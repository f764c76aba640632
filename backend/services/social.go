package services

import (
	"context"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"
)

type SocialService struct {
	friendships repository.FriendshipRepo
	users       repository.UserRepo
	log         *utils.Logger
}

func NewSocialService(friendships repository.FriendshipRepo, users repository.UserRepo, log *utils.Logger) *SocialService {
	return &SocialService{
		friendships: friendships,
		users:       users,
		log:         log.With("service", "SocialService"),
	}
}

func (s *SocialService) Friends(ctx context.Context, userID string) ([]models.User, error) {
	return s.friendships.Friends(repository.Ctx(ctx), userID)
}

// AddFriend lists friendID among userID's friends. Requests are accepted
// immediately; there is no approval step.
func (s *SocialService) AddFriend(ctx context.Context, userID, friendID string) (*models.Friendship, error) {
	if userID == friendID {
		return nil, models.ErrSelfFriendship
	}
	dbc := repository.Ctx(ctx)
	if _, err := s.users.Get(dbc, friendID); err != nil {
		return nil, err
	}
	edge := &models.Friendship{UserID: userID, FriendID: friendID, Status: models.FriendshipAccepted}
	if err := s.friendships.Upsert(dbc, edge); err != nil {
		return nil, err
	}
	return edge, nil
}

func (s *SocialService) SetStatus(ctx context.Context, userID, friendID, status string) error {
	switch status {
	case models.FriendshipPending, models.FriendshipAccepted, models.FriendshipBlocked:
	default:
		return models.ErrInvalidStatus
	}
	return s.friendships.SetStatus(repository.Ctx(ctx), userID, friendID, status)
}
