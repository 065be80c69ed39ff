package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// User errors.
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrUserNotFound      = errors.New("user not found")
	ErrEmptyUsername     = errors.New("username must not be empty")
)

// UserService registers and looks up players by username.
type UserService struct {
	users *repository.UserRepository
	now   func() time.Time
}

// NewUserService creates a new UserService instance.
func NewUserService(users *repository.UserRepository, now func() time.Time) *UserService {
	if now == nil {
		now = time.Now
	}
	return &UserService{users: users, now: now}
}

// Register creates a user with a fresh id. Usernames are matched exactly.
func (s *UserService) Register(ctx context.Context, username string) (*model.User, error) {
	if strings.TrimSpace(username) == "" {
		return nil, ErrEmptyUsername
	}

	now := s.now()
	user := model.User{
		ID:        newUserID(now),
		Username:  username,
		CreatedAt: now.UTC(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserExists) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to register: %w", err)
	}

	log.Info().Str("user_id", user.ID).Str("username", username).Msg("User registered")
	return &user, nil
}

// Login returns the user registered under username.
func (s *UserService) Login(ctx context.Context, username string) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to login: %w", err)
	}
	return user, nil
}

// Get returns the user with the given id.
func (s *UserService) Get(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// List returns every registered user in registration order.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// newUserID is the base36 creation time followed by a random suffix.
func newUserID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return strconv.FormatInt(now.UnixMilli(), 36) + suffix
}
