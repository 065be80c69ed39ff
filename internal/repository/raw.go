package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"quizforge/internal/storage"
)

// RawFields returns each stored per-user field exactly as persisted.
// Missing fields are omitted. A value that is not valid JSON is returned as a
// JSON string of its bytes, which still reads back as the field's default.
func (r *ProfileRepository) RawFields(ctx context.Context, userID string) (map[string]json.RawMessage, error) {
	out := make(map[string]json.RawMessage, len(storage.UserFields))
	for _, field := range storage.UserFields {
		key := r.keys.Field(userID, field)
		raw, ok, err := r.store.Get(ctx, key)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", field, err)
		}
		if !ok {
			continue
		}
		if !json.Valid(raw) {
			log.Warn().Str("user_id", userID).Str("key", key).Msg("Corrupt field exported as a string")
			quoted, err := json.Marshal(string(raw))
			if err != nil {
				return nil, fmt.Errorf("failed to quote %s: %w", field, err)
			}
			raw = quoted
		}
		out[field] = json.RawMessage(raw)
	}
	return out, nil
}

// WriteRawFields stores every given field verbatim in a single atomic write.
// Unknown field names are ignored.
func (r *ProfileRepository) WriteRawFields(ctx context.Context, userID string, fields map[string]json.RawMessage) error {
	entries := make(map[string][]byte, len(fields))
	for field, raw := range fields {
		if !storage.IsUserField(field) {
			continue
		}
		entries[r.keys.Field(userID, field)] = []byte(raw)
	}
	if err := r.store.SetMany(ctx, entries); err != nil {
		return fmt.Errorf("failed to write fields: %w", err)
	}
	return nil
}
