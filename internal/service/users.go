package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/auth"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

// UserService covers registration, login, profiles and the admin surface.
// Deleting a user clears their dataset history first so no backing files
// are orphaned by the cascade.
type UserService struct {
	log      *slog.Logger
	users    UsersRepository
	datasets *DatasetService
	tokens   TokenIssuer
}

func NewUserService(log *slog.Logger, users UsersRepository, datasets *DatasetService, tokens TokenIssuer) *UserService {
	return &UserService{
		log:      log,
		users:    users,
		datasets: datasets,
		tokens:   tokens,
	}
}

type Profile struct {
	User    *domain.User `json:"user"`
	Uploads []uuid.UUID  `json:"uploads"`
}

func (s *UserService) Register(ctx context.Context, name, email, password string) (*domain.User, string, error) {
	if name == "" || email == "" || password == "" {
		return nil, "", errors.New("name, email and password are required")
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, "", err
	}

	user := &domain.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Roles:        []string{domain.RoleUser},
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", user.ID.String()))

	return user, token, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.users.ByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, "", domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, "", domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", err
	}

	return user, token, nil
}

func (s *UserService) Profile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	user, err := s.users.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	uploads, err := s.users.UploadIDs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &Profile{
		User:    user,
		Uploads: uploads,
	}, nil
}

func (s *UserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.users.All(ctx)
}

func (s *UserService) PromoteUser(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.users.Promote(ctx, id)
}

func (s *UserService) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, err := s.users.ByID(ctx, id); err != nil {
		return err
	}

	if err := s.datasets.ClearHistory(ctx, id); err != nil {
		return fmt.Errorf("failed to clear user history: %w", err)
	}

	if err := s.users.DeleteByID(ctx, id); err != nil {
		return err
	}

	s.log.InfoContext(ctx, "user deleted", slog.String("user_id", id.String()))

	return nil
}
