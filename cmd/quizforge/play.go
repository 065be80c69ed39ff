package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"quizforge/internal/model"
	"quizforge/internal/question"
	"quizforge/internal/session"
)

func (c *cli) playCmd() *cobra.Command {
	var (
		subjectID string
		mode      string
		topic     string
		count     int
		provider  string
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz on the terminal",
		Long: "Answer with a-d. Type m to flag or unflag the current question " +
			"in the mistake ledger, q to submit early.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}

			switch session.Mode(mode) {
			case session.ModePractice, session.ModeExam, session.ModeRevenge:
			default:
				return fmt.Errorf("unknown mode %q", mode)
			}
			subject, ok := question.SubjectByID(subjectID)
			if !ok {
				return fmt.Errorf("unknown subject %q", subjectID)
			}
			if provider == "" {
				provider = c.app.cfg.Provider.Kind
			}
			p, err := c.app.providers.Get(provider)
			if err != nil {
				return err
			}
			if count <= 0 {
				count = c.app.cfg.Session.QuestionCount
			}

			s := session.New(c.app.engine, p, u.ID, session.Options{
				Subject:         subject,
				Mode:            session.Mode(mode),
				Topic:           topic,
				QuestionCount:   count,
				CoinsPerCorrect: c.app.cfg.Game.CoinsPerCorrect,
				ExamDuration:    time.Duration(c.app.cfg.Session.ExamSeconds) * time.Second,
			})
			defer s.Leave()

			if err := s.Start(ctx); err != nil {
				return err
			}
			return runQuiz(cmd, s)
		},
	}
	cmd.Flags().StringVarP(&subjectID, "subject", "s", "science", "subject id (science, history, geography, programming)")
	cmd.Flags().StringVarP(&mode, "mode", "m", string(session.ModePractice), "practice, exam or revenge")
	cmd.Flags().StringVarP(&topic, "topic", "t", "", "topic keywords")
	cmd.Flags().IntVarP(&count, "count", "n", 0, "number of questions")
	cmd.Flags().StringVar(&provider, "provider", "", "question provider (bank, openai)")
	return cmd
}

func runQuiz(cmd *cobra.Command, s *session.Session) error {
	ctx := cmd.Context()
	in := bufio.NewScanner(cmd.InOrStdin())

	questions := s.Questions()
loop:
	for i := 0; i < len(questions); i++ {
		printQuestion(cmd, i, len(questions), questions[i], s.Remaining())

		for {
			if !in.Scan() {
				break loop
			}
			line := strings.ToLower(strings.TrimSpace(in.Text()))
			switch {
			case line == "q":
				break loop
			case line == "m":
				flagged, err := s.ToggleMistake(ctx, i)
				if err != nil {
					return err
				}
				printf(cmd, "Flagged: %v\n", flagged)
				continue
			case len(line) == 1 && line[0] >= 'a' && line[0] <= 'd':
			default:
				printf(cmd, "Answer with a, b, c or d\n")
				continue
			}

			res, err := s.Answer(ctx, i, int(line[0]-'a'))
			if errors.Is(err, session.ErrNotActive) {
				printf(cmd, "Time is up!\n")
				break loop
			}
			if err != nil {
				return err
			}
			if res.Correct {
				printf(cmd, "Correct! Streak %d\n", res.Streak)
			} else {
				printf(cmd, "Wrong. Answer: %s\n", res.Question.CorrectOption())
			}
			if res.Question.Explanation != "" {
				printf(cmd, "  %s\n", res.Question.Explanation)
			}
			if res.Cleared {
				printf(cmd, "Mistake cleared!\n")
			}
			for _, id := range res.Unlocked {
				printf(cmd, "Achievement unlocked: %s\n", id)
			}
			break
		}
	}

	result, err := s.Submit(ctx)
	if err != nil {
		return err
	}
	printf(cmd, "\n%d/%d correct. Earned %d coins", result.Correct, result.Total, result.Payout)
	if result.Bonus > 0 {
		printf(cmd, " (%d artifact bonus)", result.Bonus)
	}
	printf(cmd, ". Coins: %d\n", result.Balance)
	return nil
}

func printQuestion(cmd *cobra.Command, i, total int, q model.Question, remaining time.Duration) {
	printf(cmd, "\nQuestion %d/%d", i+1, total)
	if remaining > 0 {
		printf(cmd, " (%s left)", remaining.Round(time.Second))
	}
	printf(cmd, "\n%s\n", q.Question)
	for j, opt := range q.Options {
		printf(cmd, "  %c) %s\n", 'a'+j, opt)
	}
}
