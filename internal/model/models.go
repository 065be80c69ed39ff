// Package model defines the data models for the quiz progression engine.
package model

import "time"

// User is a registered player. ID is generated at registration and never changes.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rarity is cosmetic metadata on an artifact; draws ignore it.
type Rarity string

const (
	RarityR   Rarity = "R"
	RaritySR  Rarity = "SR"
	RaritySSR Rarity = "SSR"
)

// Artifact is a collectible obtained from the gacha.
type Artifact struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Rarity      Rarity `json:"rarity"`
	Bonus       int    `json:"bonus"` // percent added to quiz payouts while equipped
	Description string `json:"description"`
}

// Difficulty labels a daily task.
type Difficulty string

const (
	DifficultyEasy      Difficulty = "EASY"
	DifficultyNormal    Difficulty = "NORMAL"
	DifficultyHard      Difficulty = "HARD"
	DifficultyNightmare Difficulty = "NIGHTMARE"
)

// Daily task identifiers.
const (
	TaskLogin       = "login"
	TaskQuiz        = "quiz"
	TaskCorrect     = "correct"
	TaskStreak      = "streak"
	TaskNecromancer = "necromancer"
	TaskScholar     = "scholar"
)

// DailyTask is one daily objective. Current is kept within [0, Target].
type DailyTask struct {
	ID         string     `json:"id"`
	Title      string     `json:"title"`
	Target     int        `json:"target"`
	Current    int        `json:"current"`
	Reward     int64      `json:"reward"`
	Claimed    bool       `json:"claimed"`
	Difficulty Difficulty `json:"difficulty"`
}

// Done reports whether the task's target has been reached.
func (t DailyTask) Done() bool {
	return t.Current >= t.Target
}

// ConditionType is the stat an achievement watches.
type ConditionType string

const (
	ConditionTotalCorrect    ConditionType = "total_correct"
	ConditionTotalAnswered   ConditionType = "total_answered"
	ConditionTotalCoins      ConditionType = "total_coins"
	ConditionMistakesCleared ConditionType = "mistakes_cleared"
	ConditionStreakRecord    ConditionType = "streak_record"
)

// Achievement is a permanent unlock definition.
type Achievement struct {
	ID            string        `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	ConditionType ConditionType `json:"conditionType"`
	TargetValue   int64         `json:"targetValue"`
}

// Stats are lifetime counters. They never decrease.
type Stats struct {
	TotalCorrect    int64 `json:"totalCorrect"`
	TotalAnswered   int64 `json:"totalAnswered"`
	MistakesCleared int64 `json:"mistakesCleared"`
	MaxStreak       int64 `json:"maxStreak"`
}

// Question is a single multiple-choice quiz item.
type Question struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
}

// CorrectOption returns the text of the correct option, or "" if the index is out of range.
func (q Question) CorrectOption() string {
	if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
		return ""
	}
	return q.Options[q.CorrectIndex]
}

// MistakeRecord is a question the player answered incorrectly.
// Question text is the dedup key.
type MistakeRecord struct {
	ID           string   `json:"id"`
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation"`
	SubjectID    string   `json:"subjectId"`
	AddedAt      int64    `json:"addedAt"` // unix millis
}

// AsQuestion converts the record back into a quiz question.
func (m MistakeRecord) AsQuestion() Question {
	return Question{
		Question:     m.Question,
		Options:      m.Options,
		CorrectIndex: m.CorrectIndex,
		Explanation:  m.Explanation,
	}
}

// Subject describes what a quiz is about.
type Subject struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}
