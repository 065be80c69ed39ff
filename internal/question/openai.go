package question

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	"quizforge/internal/model"
)

// OpenAIConfig configures the generative provider.
type OpenAIConfig struct {
	APIKey     string
	Model      string
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// OpenAIProvider generates questions with a chat completion that must answer
// with a JSON array of questions. Requests are never retried.
type OpenAIProvider struct {
	client  openai.Client
	model   string
	timeout time.Duration
}

// NewOpenAIProvider creates a generative provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, option.WithHTTPClient(cfg.HTTPClient))
	}
	if cfg.Model == "" {
		cfg.Model = "gpt-4o-mini"
	}
	return &OpenAIProvider{
		client:  openai.NewClient(opts...),
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}
}

// Name implements Provider.
func (p *OpenAIProvider) Name() string {
	return "openai"
}

const systemPrompt = `You write multiple-choice quiz questions. Reply with only a JSON array. ` +
	`Each element is {"question": string, "options": [4 strings], "correctIndex": 0-3, "explanation": string}.`

// Generate implements Provider. Transport errors, malformed output and short
// output are reported as ErrProviderFailure.
func (p *OpenAIProvider) Generate(ctx context.Context, subject model.Subject, cfg Config) ([]model.Question, error) {
	if cfg.QuestionCount <= 0 {
		return nil, ErrEmptyQuestionSet
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(p.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt(subject, cfg)),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: empty completion", ErrProviderFailure)
	}

	qs, err := parseQuestions(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderFailure, err)
	}
	if len(qs) < cfg.QuestionCount {
		return nil, fmt.Errorf("%w: got %d questions, want %d", ErrProviderFailure, len(qs), cfg.QuestionCount)
	}

	log.Debug().
		Str("subject_id", subject.ID).
		Str("topic", cfg.Topic).
		Int("count", cfg.QuestionCount).
		Dur("took", time.Since(start)).
		Msg("Questions generated")
	return qs[:cfg.QuestionCount], nil
}

func userPrompt(subject model.Subject, cfg Config) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s", subject.Name)
	if subject.Description != "" {
		fmt.Fprintf(&b, " (%s)", subject.Description)
	}
	fmt.Fprintf(&b, "\nWrite exactly %d questions.", cfg.QuestionCount)

	switch {
	case cfg.Topic == TopicRevenge && cfg.ContextData != "":
		b.WriteString("\nThe player previously missed these questions:\n")
		b.WriteString(cfg.ContextData)
		b.WriteString("\nWrite one new question per listed item, in the same order, on the same concept. Do not repeat them verbatim.")
	case cfg.Topic != "":
		fmt.Fprintf(&b, "\nTopic: %s", cfg.Topic)
	}
	if cfg.IsExam {
		b.WriteString("\nThis is a timed exam; make the questions challenging.")
	}
	return b.String()
}

// parseQuestions extracts the JSON array from the reply, tolerating code fences
// and surrounding prose.
func parseQuestions(content string) ([]model.Question, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, fmt.Errorf("no JSON array in reply")
	}

	var qs []model.Question
	if err := json.Unmarshal([]byte(content[start:end+1]), &qs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	if err := validate(qs); err != nil {
		return nil, err
	}
	return qs, nil
}
