// Package session runs one quiz and applies its side effects to the engine:
// stats, daily tasks, achievements, the mistake ledger and the coin payout.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"quizforge/internal/catalog"
	"quizforge/internal/model"
	"quizforge/internal/question"
	"quizforge/internal/service"
)

// Session errors.
var (
	ErrTerminal           = errors.New("quiz could not be loaded")
	ErrNotActive          = errors.New("quiz is not active")
	ErrInvalidQuestion    = errors.New("no such question")
	ErrInvalidChoice      = errors.New("no such option")
	ErrAlreadyAnswered    = errors.New("question already answered")
	ErrNoMistakesToAvenge = errors.New("mistake ledger is empty")
)

// Mode selects how a quiz is built and scored.
type Mode string

const (
	ModePractice Mode = "practice"
	ModeExam     Mode = "exam"
	ModeRevenge  Mode = "revenge"
)

// State is the session lifecycle.
type State int

const (
	StateIdle State = iota
	StateLoading
	StateActive
	StateSubmitted
	StateFailed
	StateLeft
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateActive:
		return "active"
	case StateSubmitted:
		return "submitted"
	case StateFailed:
		return "failed"
	case StateLeft:
		return "left"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// DefaultTick is the exam countdown granularity.
const DefaultTick = time.Second

const maxRevengeQuestions = 10

// Options configure a session.
type Options struct {
	Subject         model.Subject
	Mode            Mode
	Topic           string
	QuestionCount   int
	CoinsPerCorrect int64
	ExamDuration    time.Duration
	Tick            time.Duration
}

// AnswerResult reports the effect of one answer.
type AnswerResult struct {
	Correct  bool           `json:"correct"`
	Streak   int            `json:"streak"`
	Question model.Question `json:"question"`
	Cleared  bool           `json:"cleared"`
	Unlocked []string       `json:"unlocked,omitempty"`
}

// Result is the outcome of a submitted quiz.
type Result struct {
	Correct  int   `json:"correct"`
	Answered int   `json:"answered"`
	Total    int   `json:"total"`
	Payout   int64 `json:"payout"`
	Bonus    int64 `json:"bonus"`
	Balance  int64 `json:"balance"`
	TimedOut bool  `json:"timedOut"`
}

// Session is a single quiz run for one user.
type Session struct {
	engine   *service.Engine
	provider question.Provider
	userID   string
	opts     Options

	mu        sync.Mutex
	state     State
	loadErr   error
	questions []model.Question
	answers   []int
	sources   []model.MistakeRecord
	streak    int
	correct   int
	result    *Result
	remaining time.Duration
	cancel    context.CancelFunc
	done      chan struct{}
}

// New creates an idle session.
func New(engine *service.Engine, provider question.Provider, userID string, opts Options) *Session {
	if opts.Tick <= 0 {
		opts.Tick = DefaultTick
	}
	if opts.QuestionCount <= 0 {
		opts.QuestionCount = 5
	}
	if opts.Mode == "" {
		opts.Mode = ModePractice
	}
	return &Session{
		engine:   engine,
		provider: provider,
		userID:   userID,
		opts:     opts,
		done:     make(chan struct{}),
	}
}

// Start loads the questions. It runs once; a failed load leaves the session
// terminal and every later call returns ErrTerminal.
func (s *Session) Start(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateIdle:
		s.state = StateLoading
	case StateFailed:
		err := s.loadErr
		s.mu.Unlock()
		return fmt.Errorf("%w: %w", ErrTerminal, err)
	default:
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	qs, sources, err := s.load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateFailed
		s.loadErr = err
		log.Warn().Err(err).Str("user_id", s.userID).Str("mode", string(s.opts.Mode)).Msg("Quiz load failed")
		return fmt.Errorf("%w: %w", ErrTerminal, err)
	}
	if s.state == StateLeft {
		return ErrNotActive
	}

	s.questions = qs
	s.sources = sources
	s.answers = lo.Times(len(qs), func(int) int { return -1 })
	s.state = StateActive
	if s.opts.Mode == ModeExam && s.opts.ExamDuration > 0 {
		s.startTimer(context.WithoutCancel(ctx))
	}
	return nil
}

func (s *Session) load(ctx context.Context) ([]model.Question, []model.MistakeRecord, error) {
	cfg := question.Config{
		QuestionCount: s.opts.QuestionCount,
		Topic:         s.opts.Topic,
		IsExam:        s.opts.Mode == ModeExam,
	}

	var sources []model.MistakeRecord
	if s.opts.Mode == ModeRevenge {
		mistakes, err := s.engine.Mistakes.List(ctx, s.userID)
		if err != nil {
			return nil, nil, err
		}
		if len(mistakes) == 0 {
			return nil, nil, ErrNoMistakesToAvenge
		}
		sources = mistakes[:min(len(mistakes), maxRevengeQuestions)]
		cfg.Topic = question.TopicRevenge
		cfg.ContextData = question.BuildRevengeContext(sources)
		cfg.Mistakes = sources
		cfg.QuestionCount = len(sources)
	}

	qs, err := s.provider.Generate(ctx, s.opts.Subject, cfg)
	if err != nil {
		return nil, nil, err
	}
	if len(qs) == 0 {
		return nil, nil, question.ErrEmptyQuestionSet
	}
	return qs, sources, nil
}

// Answer records choice for question i and applies its side effects.
func (s *Session) Answer(ctx context.Context, i, choice int) (*AnswerResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.activeLocked(); err != nil {
		return nil, err
	}
	if i < 0 || i >= len(s.questions) {
		return nil, ErrInvalidQuestion
	}
	if s.answers[i] >= 0 {
		return nil, ErrAlreadyAnswered
	}
	q := s.questions[i]
	if choice < 0 || choice >= len(q.Options) {
		return nil, ErrInvalidChoice
	}

	s.answers[i] = choice
	res := &AnswerResult{Correct: choice == q.CorrectIndex, Question: q}
	if res.Correct {
		s.correct++
		s.streak++
	} else {
		s.streak = 0
	}
	res.Streak = s.streak

	_, unlocked, err := s.engine.Stats.RecordAnswer(ctx, s.userID, res.Correct, s.streak)
	if err != nil {
		return nil, err
	}
	res.Unlocked = unlocked

	if !res.Correct {
		if _, err := s.engine.Mistakes.Record(ctx, s.userID, s.opts.Subject.ID, q); err != nil {
			return nil, err
		}
		return res, nil
	}

	if _, err := s.engine.Tasks.UpdateProgress(ctx, s.userID, model.TaskCorrect, 1, false); err != nil {
		return nil, err
	}
	if _, err := s.engine.Tasks.UpdateProgress(ctx, s.userID, model.TaskStreak, s.streak, false); err != nil {
		return nil, err
	}
	if s.opts.Mode == ModeRevenge && i < len(s.sources) {
		cleared, err := s.engine.ClearMistake(ctx, s.userID, s.sources[i].Question)
		if err != nil {
			return nil, err
		}
		res.Cleared = cleared
	}
	return res, nil
}

// ToggleMistake flags or unflags question i in the ledger and reports whether
// it is flagged afterwards. Unflagging counts as clearing a mistake.
func (s *Session) ToggleMistake(ctx context.Context, i int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateActive && s.state != StateSubmitted {
		return false, s.activeLocked()
	}
	if i < 0 || i >= len(s.questions) {
		return false, ErrInvalidQuestion
	}
	return s.engine.ToggleMistake(ctx, s.userID, s.opts.Subject.ID, s.questions[i])
}

// Submit scores the quiz and pays out. A second call returns the first result.
func (s *Session) Submit(ctx context.Context) (*Result, error) {
	return s.submit(ctx, false)
}

func (s *Session) submit(ctx context.Context, timedOut bool) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.result != nil {
		return s.result, nil
	}
	if err := s.activeLocked(); err != nil {
		return nil, err
	}

	res, err := s.settleLocked(ctx)
	if err != nil {
		return nil, err
	}
	res.TimedOut = timedOut

	s.result = res
	s.state = StateSubmitted
	s.stopTimerLocked()
	close(s.done)

	log.Info().
		Str("user_id", s.userID).
		Str("mode", string(s.opts.Mode)).
		Int("correct", res.Correct).
		Int("total", res.Total).
		Int64("payout", res.Payout).
		Bool("timed_out", timedOut).
		Msg("Quiz submitted")
	return res, nil
}

func (s *Session) settleLocked(ctx context.Context) (*Result, error) {
	res := &Result{
		Correct:  s.correct,
		Answered: lo.CountBy(s.answers, func(a int) bool { return a >= 0 }),
		Total:    len(s.questions),
	}

	base := int64(s.correct) * s.opts.CoinsPerCorrect
	bonus, err := s.equippedBonus(ctx)
	if err != nil {
		return nil, err
	}
	res.Bonus = base * bonus / 100
	res.Payout = base + res.Bonus

	if res.Payout > 0 {
		res.Balance, err = s.engine.Progression.AddCoins(ctx, s.userID, res.Payout)
	} else {
		res.Balance, err = s.engine.Progression.Coins(ctx, s.userID)
	}
	if err != nil {
		return nil, err
	}

	if _, err := s.engine.Tasks.UpdateProgress(ctx, s.userID, model.TaskQuiz, 1, false); err != nil {
		return nil, err
	}
	if s.opts.Mode == ModeExam {
		if _, err := s.engine.Tasks.UpdateProgress(ctx, s.userID, model.TaskScholar, 1, false); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// equippedBonus returns the bonus percent of the equipped artifact, or 0 when
// nothing is equipped or the equipped id is not owned.
func (s *Session) equippedBonus(ctx context.Context) (int64, error) {
	equipped, err := s.engine.Progression.Equipped(ctx, s.userID)
	if err != nil || equipped == nil {
		return 0, err
	}
	inv, err := s.engine.Progression.Inventory(ctx, s.userID)
	if err != nil {
		return 0, err
	}
	if !lo.Contains(inv, *equipped) {
		return 0, nil
	}
	art, ok := catalog.Artifact(*equipped)
	if !ok {
		return 0, nil
	}
	return int64(art.Bonus), nil
}

// Leave abandons the quiz and stops the countdown. A submitted quiz is unaffected.
func (s *Session) Leave() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopTimerLocked()
	switch s.state {
	case StateIdle, StateLoading, StateActive:
		s.state = StateLeft
	}
}

func (s *Session) activeLocked() error {
	switch s.state {
	case StateActive:
		return nil
	case StateFailed:
		return ErrTerminal
	}
	return ErrNotActive
}

// State returns the lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Questions returns the loaded questions.
func (s *Session) Questions() []model.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Question(nil), s.questions...)
}

// Result returns the submitted result, or nil.
func (s *Session) Result() *Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// Done is closed once the quiz is submitted.
func (s *Session) Done() <-chan struct{} {
	return s.done
}
