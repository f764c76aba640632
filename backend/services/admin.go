package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"readquest/backend/models"
	"readquest/backend/repository"
	"readquest/backend/utils"

	"golang.org/x/crypto/bcrypt"
)

// dummyHash keeps a failed lookup as slow as a failed password check.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("readquest-dummy"), bcrypt.MinCost)

type AdminService struct {
	admins repository.AdminRepo
	log    *utils.Logger
	cost   int
}

func NewAdminService(admins repository.AdminRepo, opts Options, log *utils.Logger) *AdminService {
	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &AdminService{admins: admins, log: log.With("service", "AdminService"), cost: cost}
}

// Authenticate checks the credentials and returns the admin on success.
func (s *AdminService) Authenticate(ctx context.Context, username, password string) (*models.AdminUser, error) {
	admin, err := s.admins.GetByUsername(repository.Ctx(ctx), strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if admin == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
		return nil, models.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(password)); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return admin, nil
}

// CreateAdmin stores a new admin with a bcrypt-hashed password. With reset set,
// an existing admin gets the new password instead of an error.
func (s *AdminService) CreateAdmin(ctx context.Context, username, password string, reset bool) (*models.AdminUser, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", models.ErrInvalidCredentials)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	dbc := repository.Ctx(ctx)
	admin := &models.AdminUser{Username: username, Password: string(hash)}
	err = s.admins.Create(dbc, admin)
	if errors.Is(err, models.ErrDuplicateAdmin) && reset {
		if err := s.admins.UpdatePassword(dbc, username, string(hash)); err != nil {
			return nil, err
		}
		s.log.Info("admin password reset", "username", username)
		return s.admins.GetByUsername(dbc, username)
	}
	if err != nil {
		return nil, err
	}
	s.log.Info("admin created", "username", username)
	return admin, nil
}
