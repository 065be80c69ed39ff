package service

import (
	"context"
	"fmt"
	"slices"

	"quizforge/internal/model"
	"quizforge/internal/repository"
)

// RankEntry is one leaderboard row.
type RankEntry struct {
	User  model.User `json:"user"`
	Coins int64      `json:"coins"`
}

// RankingService builds leaderboards over the user registry.
type RankingService struct {
	users   *repository.UserRepository
	profile *repository.ProfileRepository
}

// NewRankingService creates a new RankingService instance.
func NewRankingService(users *repository.UserRepository, profile *repository.ProfileRepository) *RankingService {
	return &RankingService{users: users, profile: profile}
}

// TopByCoins returns up to limit users ordered by balance descending.
// Ties keep registration order. A non-positive limit returns everyone.
func (s *RankingService) TopByCoins(ctx context.Context, limit int) ([]RankEntry, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	entries := make([]RankEntry, 0, len(users))
	for _, u := range users {
		coins, err := s.profile.Coins(ctx, u.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to read coins: %w", err)
		}
		entries = append(entries, RankEntry{User: u, Coins: coins})
	}

	slices.SortStableFunc(entries, func(a, b RankEntry) int {
		switch {
		case a.Coins > b.Coins:
			return -1
		case a.Coins < b.Coins:
			return 1
		}
		return 0
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
