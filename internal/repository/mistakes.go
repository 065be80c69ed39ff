package repository

import (
	"context"

	"quizforge/internal/model"
	"quizforge/internal/storage"
)

// Mistakes returns the ledger, newest first.
func (r *ProfileRepository) Mistakes(ctx context.Context, userID string) ([]model.MistakeRecord, error) {
	m, _, err := readField[[]model.MistakeRecord](ctx, r, userID, storage.FieldMistakes)
	return m, err
}

// SetMistakes stores the ledger.
func (r *ProfileRepository) SetMistakes(ctx context.Context, userID string, m []model.MistakeRecord) error {
	if m == nil {
		m = []model.MistakeRecord{}
	}
	return r.writeJSON(ctx, userID, storage.FieldMistakes, m)
}
