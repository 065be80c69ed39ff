package question

import (
	"context"
	"math/rand/v2"
	"slices"
	"strings"
	"sync"

	"github.com/samber/lo"

	"quizforge/internal/model"
)

// BankProvider serves questions from the built-in question bank.
// Topic words filter questions by text; the result is padded by repetition
// and shuffled to the requested count. The revenge topic replays the
// mistakes themselves, in order.
type BankProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewBankProvider creates a bank provider. A nil rng is seeded randomly.
func NewBankProvider(rng *rand.Rand) *BankProvider {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &BankProvider{rng: rng}
}

// Name implements Provider.
func (p *BankProvider) Name() string {
	return "bank"
}

// Subjects lists the subjects the bank has questions for.
func Subjects() []model.Subject {
	return slices.Clone(subjects)
}

// SubjectByID looks up a bank subject.
func SubjectByID(id string) (model.Subject, bool) {
	return lo.Find(subjects, func(s model.Subject) bool { return s.ID == id })
}

// Generate implements Provider. It returns ErrEmptyQuestionSet when nothing matches.
func (p *BankProvider) Generate(_ context.Context, subject model.Subject, cfg Config) ([]model.Question, error) {
	if cfg.Topic == TopicRevenge {
		return replay(cfg.Mistakes)
	}

	matched := Filter(bank[subject.ID], cfg.Topic)
	if len(matched) == 0 || cfg.QuestionCount <= 0 {
		return nil, ErrEmptyQuestionSet
	}

	pool := make([]model.Question, 0, cfg.QuestionCount+len(matched))
	for len(pool) < cfg.QuestionCount {
		pool = append(pool, matched...)
	}

	p.mu.Lock()
	p.rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })
	p.mu.Unlock()

	out := pool[:cfg.QuestionCount]
	for i := range out {
		out[i].Options = slices.Clone(out[i].Options)
	}
	return out, nil
}

// replay serves each mistake back as its original question.
func replay(mistakes []model.MistakeRecord) ([]model.Question, error) {
	if len(mistakes) == 0 {
		return nil, ErrEmptyQuestionSet
	}
	return lo.Map(mistakes, func(m model.MistakeRecord, _ int) model.Question {
		q := m.AsQuestion()
		q.Options = slices.Clone(q.Options)
		return q
	}), nil
}

// Filter keeps questions whose text contains any word of topic, case-insensitively.
// An empty topic keeps everything.
func Filter(qs []model.Question, topic string) []model.Question {
	words := strings.Fields(strings.ToLower(topic))
	if len(words) == 0 {
		return slices.Clone(qs)
	}
	return lo.Filter(qs, func(q model.Question, _ int) bool {
		text := strings.ToLower(q.Question)
		return lo.SomeBy(words, func(w string) bool { return strings.Contains(text, w) })
	})
}
