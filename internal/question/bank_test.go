package question

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"quizforge/internal/model"
)

func science(t *testing.T) model.Subject {
	s, ok := SubjectByID("science")
	require.True(t, ok)
	return s
}

func TestBankProvider_FilterAndPad(t *testing.T) {
	p := NewBankProvider(rand.New(rand.NewPCG(1, 2)))
	ctx := context.Background()

	qs, err := p.Generate(ctx, science(t), Config{QuestionCount: 5, Topic: "planet"})
	require.NoError(t, err)
	require.Len(t, qs, 5)
	for _, q := range qs {
		assert.Contains(t, q.Question, "planet")
		assert.Len(t, q.Options, 4)
	}
}

func TestBankProvider_Empty(t *testing.T) {
	p := NewBankProvider(nil)
	ctx := context.Background()

	_, err := p.Generate(ctx, science(t), Config{QuestionCount: 3, Topic: "medieval poetry"})
	assert.ErrorIs(t, err, ErrEmptyQuestionSet)

	_, err = p.Generate(ctx, model.Subject{ID: "astrology"}, Config{QuestionCount: 3})
	assert.ErrorIs(t, err, ErrEmptyQuestionSet)
}

func TestBankProvider_Deterministic(t *testing.T) {
	ctx := context.Background()
	cfg := Config{QuestionCount: 4}

	a, err := NewBankProvider(rand.New(rand.NewPCG(7, 7))).Generate(ctx, science(t), cfg)
	require.NoError(t, err)
	b, err := NewBankProvider(rand.New(rand.NewPCG(7, 7))).Generate(ctx, science(t), cfg)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestBankProvider_DoesNotAliasBank(t *testing.T) {
	p := NewBankProvider(nil)
	qs, err := p.Generate(context.Background(), science(t), Config{QuestionCount: 1})
	require.NoError(t, err)

	text := qs[0].Question
	qs[0].Options[0] = "mutated"
	for _, q := range bank["science"] {
		if q.Question == text {
			assert.NotEqual(t, "mutated", q.Options[0])
		}
	}
}

func TestBankProvider_RevengeReplaysMistakes(t *testing.T) {
	p := NewBankProvider(nil)
	ctx := context.Background()
	mistakes := []model.MistakeRecord{
		{Question: "In which year did the Berlin Wall fall?", Options: []string{"1987", "1989", "1991", "1993"}, CorrectIndex: 1, SubjectID: "history"},
		{Question: "What is H2O?", Options: []string{"salt", "water", "air", "gold"}, CorrectIndex: 1, SubjectID: "science"},
	}

	qs, err := p.Generate(ctx, science(t), Config{
		QuestionCount: len(mistakes),
		Topic:         TopicRevenge,
		ContextData:   BuildRevengeContext(mistakes),
		Mistakes:      mistakes,
	})
	require.NoError(t, err)
	require.Len(t, qs, 2)
	for i, q := range qs {
		assert.Equal(t, mistakes[i].AsQuestion(), q)
	}

	qs[0].Options[0] = "mutated"
	assert.Equal(t, "1987", mistakes[0].Options[0])

	_, err = p.Generate(ctx, science(t), Config{QuestionCount: 3, Topic: TopicRevenge})
	assert.ErrorIs(t, err, ErrEmptyQuestionSet)
}

// The bank always returns exactly the requested count, drawn from the filtered set.
func TestBankCountProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		subject := rapid.SampledFrom(Subjects()).Draw(rt, "subject")
		count := rapid.IntRange(1, 40).Draw(rt, "count")
		topic := rapid.SampledFrom([]string{"", "capital", "what", "which"}).Draw(rt, "topic")

		p := NewBankProvider(rand.New(rand.NewPCG(rapid.Uint64().Draw(rt, "seed"), 0)))
		qs, err := p.Generate(context.Background(), subject, Config{QuestionCount: count, Topic: topic})

		matched := Filter(bank[subject.ID], topic)
		if len(matched) == 0 {
			if err != ErrEmptyQuestionSet {
				rt.Fatalf("expected ErrEmptyQuestionSet, got %v", err)
			}
			return
		}
		if err != nil {
			rt.Fatalf("Generate failed: %v", err)
		}
		if len(qs) != count {
			rt.Fatalf("got %d questions, want %d", len(qs), count)
		}
		texts := make(map[string]bool, len(matched))
		for _, q := range matched {
			texts[q.Question] = true
		}
		for _, q := range qs {
			if !texts[q.Question] {
				rt.Fatalf("question %q is outside the filtered set", q.Question)
			}
		}
	})
}

func TestFilter(t *testing.T) {
	qs := []model.Question{
		{Question: "What is the capital of Japan?"},
		{Question: "Which river is longest?"},
	}
	assert.Len(t, Filter(qs, ""), 2)
	assert.Len(t, Filter(qs, "CAPITAL"), 1)
	assert.Len(t, Filter(qs, "river capital"), 2)
	assert.Empty(t, Filter(qs, "volcano"))
}
