// Package question produces quiz questions for a subject, either from the
// local question bank or from an OpenAI-compatible chat completion endpoint.
package question

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"

	"quizforge/internal/model"
)

// Provider errors.
var (
	ErrEmptyQuestionSet = errors.New("no questions available")
	ErrProviderFailure  = errors.New("question provider failed")
	ErrUnknownProvider  = errors.New("unknown question provider")
)

// TopicRevenge asks for questions similar to the player's past mistakes.
const TopicRevenge = "revenge"

// Config describes one quiz request.
type Config struct {
	QuestionCount int
	Topic         string
	IsExam        bool
	ContextData   string // numbered mistake list for TopicRevenge

	// Mistakes are the ledger records behind ContextData, in the same order.
	Mistakes []model.MistakeRecord
}

// Provider turns a subject and config into exactly QuestionCount questions.
type Provider interface {
	// Name returns the registry key (e.g. "bank", "openai").
	Name() string

	// Generate returns the questions or an error. Implementations do not retry.
	Generate(ctx context.Context, subject model.Subject, cfg Config) ([]model.Question, error)
}

// Registry maps provider names to providers.
type Registry struct {
	providers map[string]Provider
	mu        sync.RWMutex
}

// NewRegistry creates a new provider registry.
func NewRegistry() *Registry {
	return &Registry{
		providers: make(map[string]Provider),
	}
}

// Register adds p, replacing any provider with the same name.
func (r *Registry) Register(p Provider) error {
	if p == nil {
		return fmt.Errorf("cannot register nil provider")
	}
	if p.Name() == "" {
		return fmt.Errorf("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[p.Name()] = p
	return nil
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
	}
	return p, nil
}

// Names returns the registered provider names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

const maxRevengeContext = 10

// BuildRevengeContext formats up to ten mistakes as numbered lines
// "N. <question> (answer: <correct option>)".
func BuildRevengeContext(mistakes []model.MistakeRecord) string {
	if len(mistakes) > maxRevengeContext {
		mistakes = mistakes[:maxRevengeContext]
	}
	lines := make([]string, len(mistakes))
	for i, m := range mistakes {
		lines[i] = fmt.Sprintf("%d. %s (answer: %s)", i+1, m.Question, m.AsQuestion().CorrectOption())
	}
	return strings.Join(lines, "\n")
}

// validate checks the shape of generated questions.
func validate(qs []model.Question) error {
	for i, q := range qs {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d has no text", i+1)
		}
		if len(q.Options) != 4 {
			return fmt.Errorf("question %d has %d options", i+1, len(q.Options))
		}
		if q.CorrectIndex < 0 || q.CorrectIndex >= len(q.Options) {
			return fmt.Errorf("question %d has correct index %d", i+1, q.CorrectIndex)
		}
	}
	return nil
}
