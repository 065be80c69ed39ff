// Package catalog holds the fixed game content: gacha artifacts, daily tasks and achievements.
package catalog

import "quizforge/internal/model"

// artifacts contains every item the gacha can yield, in display order.
var artifacts = []model.Artifact{
	{ID: "quill", Name: "Scholar's Quill", Rarity: model.RarityR, Bonus: 5, Description: "A well-worn feather pen"},
	{ID: "abacus", Name: "Brass Abacus", Rarity: model.RarityR, Bonus: 5, Description: "Counts faster than you do"},
	{ID: "lantern", Name: "Study Lantern", Rarity: model.RarityR, Bonus: 5, Description: "Never runs out of oil"},
	{ID: "hourglass", Name: "Sand Hourglass", Rarity: model.RarityR, Bonus: 5, Description: "Time is on your side"},
	{ID: "compass", Name: "Astral Compass", Rarity: model.RaritySR, Bonus: 10, Description: "Points at the right answer, usually"},
	{ID: "tome", Name: "Forbidden Tome", Rarity: model.RaritySR, Bonus: 10, Description: "Footnotes in a dead language"},
	{ID: "owl", Name: "Silver Owl", Rarity: model.RaritySR, Bonus: 15, Description: "Watches over late-night revision"},
	{ID: "crown", Name: "Laurel Crown", Rarity: model.RaritySSR, Bonus: 25, Description: "Worn by champions of trivia"},
	{ID: "phoenix", Name: "Phoenix Feather", Rarity: model.RaritySSR, Bonus: 30, Description: "Rises from every wrong answer"},
}

var artifactIndex = func() map[string]model.Artifact {
	m := make(map[string]model.Artifact, len(artifacts))
	for _, a := range artifacts {
		m[a.ID] = a
	}
	return m
}()

// Artifacts returns a copy of the artifact catalog in display order.
func Artifacts() []model.Artifact {
	out := make([]model.Artifact, len(artifacts))
	copy(out, artifacts)
	return out
}

// Artifact looks up an artifact by id.
func Artifact(id string) (model.Artifact, bool) {
	a, ok := artifactIndex[id]
	return a, ok
}
