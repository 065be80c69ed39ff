package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"quizforge/internal/model"
	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
)

// MistakeService is the per-user mistake ledger, deduplicated by question text.
// Removing a record does not touch stats; callers count the clear.
type MistakeService struct {
	profile  *repository.ProfileRepository
	userLock *lock.UserLock
	now      func() time.Time
}

// NewMistakeService creates a new MistakeService instance.
func NewMistakeService(profile *repository.ProfileRepository, userLock *lock.UserLock, now func() time.Time) *MistakeService {
	if now == nil {
		now = time.Now
	}
	return &MistakeService{
		profile:  profile,
		userLock: userLock,
		now:      now,
	}
}

// List returns the ledger, newest first.
func (s *MistakeService) List(ctx context.Context, userID string) ([]model.MistakeRecord, error) {
	m, err := s.profile.Mistakes(ctx, userID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		m = []model.MistakeRecord{}
	}
	return m, nil
}

// Contains reports whether a record with this exact question text exists.
func (s *MistakeService) Contains(ctx context.Context, userID, questionText string) (bool, error) {
	m, err := s.profile.Mistakes(ctx, userID)
	if err != nil {
		return false, err
	}
	return lo.ContainsBy(m, func(r model.MistakeRecord) bool { return r.Question == questionText }), nil
}

// Record prepends q unless its text is already in the ledger.
// It reports whether a record was added.
func (s *MistakeService) Record(ctx context.Context, userID, subjectID string, q model.Question) (bool, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return false, err
	}
	defer s.userLock.Unlock(userID)

	m, err := s.profile.Mistakes(ctx, userID)
	if err != nil {
		return false, fmt.Errorf("failed to record mistake: %w", err)
	}
	if lo.ContainsBy(m, func(r model.MistakeRecord) bool { return r.Question == q.Question }) {
		return false, nil
	}

	rec := model.MistakeRecord{
		ID:           uuid.NewString(),
		Question:     q.Question,
		Options:      q.Options,
		CorrectIndex: q.CorrectIndex,
		Explanation:  q.Explanation,
		SubjectID:    subjectID,
		AddedAt:      s.now().UnixMilli(),
	}
	if err := s.profile.SetMistakes(ctx, userID, append([]model.MistakeRecord{rec}, m...)); err != nil {
		return false, fmt.Errorf("failed to record mistake: %w", err)
	}
	log.Debug().Str("user_id", userID).Str("subject_id", subjectID).Msg("Mistake recorded")
	return true, nil
}

// Remove deletes every record with this exact question text and returns how many were removed.
func (s *MistakeService) Remove(ctx context.Context, userID, questionText string) (int, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return 0, err
	}
	defer s.userLock.Unlock(userID)

	m, err := s.profile.Mistakes(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove mistake: %w", err)
	}
	kept := lo.Reject(m, func(r model.MistakeRecord, _ int) bool { return r.Question == questionText })
	removed := len(m) - len(kept)
	if removed == 0 {
		return 0, nil
	}
	if err := s.profile.SetMistakes(ctx, userID, kept); err != nil {
		return 0, fmt.Errorf("failed to remove mistake: %w", err)
	}
	return removed, nil
}
