package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"quizforge/internal/pkg/lock"
	"quizforge/internal/repository"
	"quizforge/internal/storage"
)

// BundleVersion is the only save format version understood by Import.
const BundleVersion = 1

// ErrInvalidFormat is returned for save files that cannot be imported.
var ErrInvalidFormat = errors.New("invalid save file")

// Bundle is a manual backup of one user's persisted fields.
// Fields hold each value exactly as stored. On the wire the fields sit
// next to version, userId and timestamp in one flat object.
type Bundle struct {
	Version   int
	UserID    string
	Timestamp int64 // unix millis
	Fields    map[string]json.RawMessage
}

// MarshalJSON flattens the bundle.
func (b Bundle) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(b.Fields)+3)
	for k, v := range b.Fields {
		out[k] = v
	}
	out["version"] = b.Version
	out["userId"] = b.UserID
	out["timestamp"] = b.Timestamp
	return json.Marshal(out)
}

// ParseBundle decodes and validates a save file. Unknown keys are ignored.
func ParseBundle(data []byte) (*Bundle, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidFormat, err)
	}

	var b Bundle
	if v, ok := raw["version"]; !ok || json.Unmarshal(v, &b.Version) != nil || b.Version == 0 {
		return nil, fmt.Errorf("%w: missing version", ErrInvalidFormat)
	}
	if b.Version != BundleVersion {
		return nil, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, b.Version)
	}
	if v, ok := raw["userId"]; !ok || json.Unmarshal(v, &b.UserID) != nil || b.UserID == "" {
		return nil, fmt.Errorf("%w: missing userId", ErrInvalidFormat)
	}
	if v, ok := raw["timestamp"]; ok {
		_ = json.Unmarshal(v, &b.Timestamp)
	}

	b.Fields = make(map[string]json.RawMessage)
	for k, v := range raw {
		if storage.IsUserField(k) {
			b.Fields[k] = v
		}
	}
	return &b, nil
}

// TransferService exports and imports save bundles.
type TransferService struct {
	profile     *repository.ProfileRepository
	progression *ProgressionService
	userLock    *lock.UserLock
	now         func() time.Time
}

// NewTransferService creates a new TransferService instance.
func NewTransferService(
	profile *repository.ProfileRepository,
	progression *ProgressionService,
	userLock *lock.UserLock,
	now func() time.Time,
) *TransferService {
	if now == nil {
		now = time.Now
	}
	return &TransferService{
		profile:     profile,
		progression: progression,
		userLock:    userLock,
		now:         now,
	}
}

// Export snapshots every stored field of the user.
func (s *TransferService) Export(ctx context.Context, userID string) (*Bundle, error) {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return nil, err
	}
	defer s.userLock.Unlock(userID)

	fields, err := s.profile.RawFields(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to export: %w", err)
	}
	return &Bundle{
		Version:   BundleVersion,
		UserID:    userID,
		Timestamp: s.now().UnixMilli(),
		Fields:    fields,
	}, nil
}

// Import parses data and restores it into userID. See ImportBundle.
func (s *TransferService) Import(ctx context.Context, userID string, data []byte) error {
	b, err := ParseBundle(data)
	if err != nil {
		return err
	}
	return s.ImportBundle(ctx, userID, b)
}

// ImportBundle overwrites every field present in b for userID in one atomic
// write. Absent fields are left untouched. The bundle's own userId is not
// required to match.
func (s *TransferService) ImportBundle(ctx context.Context, userID string, b *Bundle) error {
	if err := s.userLock.LockContext(ctx, userID); err != nil {
		return err
	}
	err := s.profile.WriteRawFields(ctx, userID, b.Fields)
	s.userLock.Unlock(userID)
	if err != nil {
		return fmt.Errorf("failed to import: %w", err)
	}

	log.Info().
		Str("user_id", userID).
		Str("source_user_id", b.UserID).
		Int("fields", len(b.Fields)).
		Msg("Save imported")

	if _, ok := b.Fields[storage.FieldCoins]; ok {
		coins, err := s.profile.Coins(ctx, userID)
		if err != nil {
			return err
		}
		s.progression.notify(ctx, userID, coins)
	}
	return nil
}
