// Package service implements the progression engines on top of the field repositories.
// Every mutating method serializes on the per-user lock.
package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
)

// CoinListener is notified after every coin balance mutation.
// Listeners run after the user lock is released and may call back into services.
type CoinListener interface {
	OnCoinsChanged(ctx context.Context, userID string, total int64)
}

// ProgressionService owns coins, inventory and the equipped artifact.
type ProgressionService struct {
	profile  *repository.ProfileRepository
	userLock *lock.UserLock

	mu        sync.RWMutex
	listeners []CoinListener
}

// NewProgressionService creates a new ProgressionService instance.
func NewProgressionService(profile *repository.ProfileRepository, userLock *lock.UserLock) *ProgressionService {
	return &ProgressionService{
		profile:  profile,
		userLock: userLock,
	}
}

// Subscribe registers a listener for coin changes.
func (s *ProgressionService) Subscribe(l CoinListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Coins returns the user's balance, 0 when unset.
func (s *ProgressionService) Coins(ctx context.Context, userID string) (int64, error) {
	return s.profile.Coins(ctx, userID)
}

// AddCoins adds delta to the balance and returns the new total.
// Negative deltas are accepted and the result is not clamped at zero.
func (s *ProgressionService) AddCoins(ctx context.Context, userID string, delta int64) (int64, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return 0, err
	}
	total, err := s.addCoinsLocked(ctx, userID, delta)
	s.userLock.Unlock(userID)
	if err != nil {
		return 0, err
	}

	s.notify(ctx, userID, total)
	return total, nil
}

// addCoinsLocked must be called with the user lock held.
func (s *ProgressionService) addCoinsLocked(ctx context.Context, userID string, delta int64) (int64, error) {
	coins, err := s.profile.Coins(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to add coins: %w", err)
	}
	total := coins + delta
	if err := s.profile.SetCoins(ctx, userID, total); err != nil {
		return 0, fmt.Errorf("failed to add coins: %w", err)
	}
	log.Debug().Str("user_id", userID).Int64("delta", delta).Int64("total", total).Msg("Coins updated")
	return total, nil
}

func (s *ProgressionService) notify(ctx context.Context, userID string, total int64) {
	s.mu.RLock()
	listeners := make([]CoinListener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()

	for _, l := range listeners {
		l.OnCoinsChanged(ctx, userID, total)
	}
}

// Inventory returns the owned artifact ids in acquisition order.
func (s *ProgressionService) Inventory(ctx context.Context, userID string) ([]string, error) {
	inv, err := s.profile.Inventory(ctx, userID)
	if err != nil {
		return nil, err
	}
	if inv == nil {
		inv = []string{}
	}
	return inv, nil
}

// AddToInventory inserts id unless it is already owned.
// It reports whether the inventory changed.
func (s *ProgressionService) AddToInventory(ctx context.Context, userID, id string) (bool, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return false, err
	}
	defer s.userLock.Unlock(userID)
	return s.addToInventoryLocked(ctx, userID, id)
}

func (s *ProgressionService) addToInventoryLocked(ctx context.Context, userID, id string) (bool, error) {
	inv, err := s.profile.Inventory(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to add to inventory: %w", err)
	}
	if lo.Contains(inv, id) {
		return false, nil
	}
	if err := s.profile.SetInventory(ctx, userID, append(inv, id)); err != nil {
		return false, fmt.Errorf("failed to add to inventory: %w", err)
	}
	return true, nil
}

// Equipped returns the equipped artifact id, or nil.
func (s *ProgressionService) Equipped(ctx context.Context, userID string) (*string, error) {
	return s.profile.Equipped(ctx, userID)
}

// SetEquipped stores id verbatim. Ownership is not checked; pass nil to unequip.
func (s *ProgressionService) SetEquipped(ctx context.Context, userID string, id *string) error {
	return s.userLock.WithLockContext(ctx, userID, func() error {
		return s.profile.SetEquipped(ctx, userID, id)
	})
}
