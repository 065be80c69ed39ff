package storage

import "strings"

// Per-user field names. They double as the export bundle field names.
const (
	FieldCoins            = "coins"
	FieldInventory        = "inventory"
	FieldEquipped         = "equipped"
	FieldMistakes         = "mistakes"
	FieldTasks            = "tasks"
	FieldLastLogin        = "last_login"
	FieldTutorialComplete = "tutorial_complete"
	FieldStats            = "stats"
	FieldAchievements     = "achievements"
)

// UserFields lists every per-user field in export order.
var UserFields = []string{
	FieldCoins,
	FieldInventory,
	FieldEquipped,
	FieldMistakes,
	FieldTasks,
	FieldLastLogin,
	FieldTutorialComplete,
	FieldStats,
	FieldAchievements,
}

// IsUserField reports whether name is a known per-user field.
func IsUserField(name string) bool {
	for _, f := range UserFields {
		if f == name {
			return true
		}
	}
	return false
}

// Keys builds store keys under a stable prefix.
type Keys struct {
	Prefix string
}

// NewKeys returns a key builder. An empty prefix falls back to "quizforge_".
func NewKeys(prefix string) Keys {
	if prefix == "" {
		prefix = "quizforge_"
	}
	return Keys{Prefix: prefix}
}

// Users is the global registry key.
func (k Keys) Users() string {
	return k.Prefix + "users"
}

// Field is the key for one field of one user: prefix + userID + "_" + field.
func (k Keys) Field(userID, field string) string {
	var b strings.Builder
	b.Grow(len(k.Prefix) + len(userID) + len(field) + 1)
	b.WriteString(k.Prefix)
	b.WriteString(userID)
	b.WriteByte('_')
	b.WriteString(field)
	return b.String()
}

// User is the key prefix shared by every field of one user.
func (k Keys) User(userID string) string {
	return k.Prefix + userID + "_"
}
