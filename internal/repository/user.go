// Package repository provides typed access to the persisted key space.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"quizforge/internal/model"
	"quizforge/internal/storage"
)

// Common errors for repository operations.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already registered")
)

// UserRepository handles the global user registry.
type UserRepository struct {
	store storage.Store
	keys  storage.Keys
	mu    sync.Mutex // guards read-modify-write of the registry value
}

// NewUserRepository creates a new UserRepository instance.
func NewUserRepository(store storage.Store, keys storage.Keys) *UserRepository {
	return &UserRepository{store: store, keys: keys}
}

// List returns every registered user in registration order.
// A corrupt registry reads as empty.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	raw, ok, err := r.store.Get(ctx, r.keys.Users())
	if err != nil {
		return nil, fmt.Errorf("failed to read user registry: %w", err)
	}
	if !ok {
		return nil, nil
	}

	var users []model.User
	if err := json.Unmarshal(raw, &users); err != nil {
		log.Warn().Err(err).Str("key", r.keys.Users()).Msg("Corrupt user registry, using empty list")
		return nil, nil
	}
	return users, nil
}

// Create appends user to the registry. The username must not already exist.
func (r *UserRepository) Create(ctx context.Context, user model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	users, err := r.List(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.Username == user.Username {
			return ErrUserExists
		}
	}

	users = append(users, user)
	raw, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user registry: %w", err)
	}
	if err := r.store.Set(ctx, r.keys.Users(), raw); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetByUsername finds a user by exact username.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}

// GetByID finds a user by id.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, ErrUserNotFound
}
