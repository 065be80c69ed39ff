package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog/log"

	"quizforge/internal/catalog"
	"quizforge/internal/model"
	"quizforge/internal/pkg/lock"
)

// DefaultGachaCost is the price of one draw.
const DefaultGachaCost int64 = 500

// ErrInsufficientCoins is returned when a draw is attempted without enough coins.
var ErrInsufficientCoins = errors.New("insufficient coins")

// Picker returns an index in [0, n).
type Picker func(n int) int

// DrawResult describes one successful draw.
type DrawResult struct {
	Artifact model.Artifact `json:"artifact"`
	New      bool           `json:"new"`
	Coins    int64          `json:"coins"`
}

// GachaService performs coin-gated draws over the artifact catalog.
// Every artifact has the same chance regardless of rarity.
type GachaService struct {
	progression *ProgressionService
	userLock    *lock.UserLock
	cost        int64
	pick        Picker
}

// NewGachaService creates a new GachaService instance.
// A non-positive cost falls back to DefaultGachaCost; a nil pick uses math/rand/v2.
func NewGachaService(progression *ProgressionService, userLock *lock.UserLock, cost int64, pick Picker) *GachaService {
	if cost <= 0 {
		cost = DefaultGachaCost
	}
	if pick == nil {
		pick = rand.IntN
	}
	return &GachaService{
		progression: progression,
		userLock:    userLock,
		cost:        cost,
		pick:        pick,
	}
}

// Cost returns the price of one draw.
func (s *GachaService) Cost() int64 {
	return s.cost
}

// Draw debits the cost, picks an artifact and adds it to the inventory.
// Drawing an owned artifact still costs coins and leaves the inventory unchanged.
func (s *GachaService) Draw(ctx context.Context, userID string) (*DrawResult, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return nil, err
	}
	result, err := s.drawLocked(ctx, userID)
	s.userLock.Unlock(userID)
	if err != nil {
		return nil, err
	}

	s.progression.notify(ctx, userID, result.Coins)
	log.Info().
		Str("user_id", userID).
		Str("artifact_id", result.Artifact.ID).
		Str("rarity", string(result.Artifact.Rarity)).
		Bool("new", result.New).
		Msg("Gacha draw")
	return result, nil
}

func (s *GachaService) drawLocked(ctx context.Context, userID string) (*DrawResult, error) {
	coins, err := s.progression.Coins(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to draw: %w", err)
	}
	if coins < s.cost {
		return nil, ErrInsufficientCoins
	}

	artifacts := catalog.Artifacts()
	artifact := artifacts[s.pick(len(artifacts))]

	total, err := s.progression.addCoinsLocked(ctx, userID, -s.cost)
	if err != nil {
		return nil, err
	}
	added, err := s.progression.addToInventoryLocked(ctx, userID, artifact.ID)
	if err != nil {
		return nil, err
	}

	return &DrawResult{Artifact: artifact, New: added, Coins: total}, nil
}
