package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"quizforge/internal/storage"
)

// ProfileRepository reads and writes the independently serialized per-user fields.
// Values that fail to decode are logged and replaced by the field default;
// store I/O errors are returned.
type ProfileRepository struct {
	store storage.Store
	keys  storage.Keys
}

// NewProfileRepository creates a new ProfileRepository instance.
func NewProfileRepository(store storage.Store, keys storage.Keys) *ProfileRepository {
	return &ProfileRepository{store: store, keys: keys}
}

// readField decodes one field. It reports false when the field is missing or
// corrupt, in which case the zero value of T is returned.
func readField[T any](ctx context.Context, r *ProfileRepository, userID, field string) (T, bool, error) {
	var v T
	key := r.keys.Field(userID, field)
	raw, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return v, false, fmt.Errorf("failed to read %s: %w", field, err)
	}
	if !ok {
		return v, false, nil
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		log.Warn().
			Err(err).
			Str("user_id", userID).
			Str("key", key).
			Msg("Corrupt persisted value, using default")
		var zero T
		return zero, false, nil
	}
	return v, true, nil
}

func (r *ProfileRepository) writeJSON(ctx context.Context, userID, field string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", field, err)
	}
	if err := r.store.Set(ctx, r.keys.Field(userID, field), raw); err != nil {
		return fmt.Errorf("failed to write %s: %w", field, err)
	}
	return nil
}

// writeMany encodes several fields and stores them in one atomic write.
func (r *ProfileRepository) writeMany(ctx context.Context, userID string, fields map[string]any) error {
	entries := make(map[string][]byte, len(fields))
	for field, v := range fields {
		raw, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", field, err)
		}
		entries[r.keys.Field(userID, field)] = raw
	}
	if err := r.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to write fields: %w", err)
	}
	return nil
}

// Coins returns the balance, 0 by default.
func (r *ProfileRepository) Coins(ctx context.Context, userID string) (int64, error) {
	coins, _, err := readField[int64](ctx, r, userID, storage.FieldCoins)
	return coins, err
}

// SetCoins stores the balance verbatim; negative values are allowed.
func (r *ProfileRepository) SetCoins(ctx context.Context, userID string, coins int64) error {
	return r.writeJSON(ctx, userID, storage.FieldCoins, coins)
}

// Inventory returns owned artifact ids in acquisition order.
func (r *ProfileRepository) Inventory(ctx context.Context, userID string) ([]string, error) {
	inv, _, err := readField[[]string](ctx, r, userID, storage.FieldInventory)
	return inv, err
}

// SetInventory stores the inventory.
func (r *ProfileRepository) SetInventory(ctx context.Context, userID string, inv []string) error {
	if inv == nil {
		inv = []string{}
	}
	return r.writeJSON(ctx, userID, storage.FieldInventory, inv)
}

// Equipped returns the equipped artifact id or nil.
func (r *ProfileRepository) Equipped(ctx context.Context, userID string) (*string, error) {
	id, _, err := readField[*string](ctx, r, userID, storage.FieldEquipped)
	return id, err
}

// SetEquipped stores id, or null when id is nil.
func (r *ProfileRepository) SetEquipped(ctx context.Context, userID string, id *string) error {
	return r.writeJSON(ctx, userID, storage.FieldEquipped, id)
}
