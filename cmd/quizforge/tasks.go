package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"quizforge/internal/model"
)

func printTasks(cmd *cobra.Command, tasks []model.DailyTask) {
	tw := newTable(cmd.OutOrStdout())
	for _, t := range tasks {
		status := checkbox(t.Done())
		if t.Claimed {
			status = "[claimed]"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d/%d\t%d coins\t%s\n", status, t.ID, t.Title, t.Current, t.Target, t.Reward, t.Difficulty)
	}
	tw.Flush()
}

func (c *cli) tasksCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Show today's tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			tasks, err := c.app.engine.Tasks.GetTasks(ctx, u.ID)
			if err != nil {
				return err
			}
			printTasks(cmd, tasks)
			return nil
		},
	}
}

func (c *cli) claimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <task-id>",
		Short: "Claim a completed task's reward",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			reward, total, err := c.app.engine.Tasks.ClaimReward(ctx, u.ID, args[0])
			if err != nil {
				return err
			}
			if reward == 0 {
				printf(cmd, "Nothing to claim for %q\n", args[0])
				return nil
			}
			printf(cmd, "Claimed %d coins. Coins: %d\n", reward, total)
			return nil
		},
	}
}

func (c *cli) achievementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "List achievements",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			list, err := c.app.engine.Achievements.List(ctx, u.ID)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			for _, a := range list {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s >= %d\n", checkbox(a.Unlocked), a.Title, a.Description, a.ConditionType, a.TargetValue)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) mistakesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mistakes",
		Short: "Show the mistake ledger",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			list, err := c.app.engine.Mistakes.List(ctx, u.ID)
			if err != nil {
				return err
			}
			if len(list) == 0 {
				printf(cmd, "No mistakes recorded\n")
				return nil
			}
			for i, m := range list {
				printf(cmd, "%d. [%s] %s\n   answer: %s\n", i+1, m.SubjectID, m.Question, m.AsQuestion().CorrectOption())
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "clear <question text>",
		Short: "Mark a mistake as mastered",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			cleared, err := c.app.engine.ClearMistake(ctx, u.ID, args[0])
			if err != nil {
				return err
			}
			if !cleared {
				return fmt.Errorf("no mistake with text %q", args[0])
			}
			printf(cmd, "Cleared\n")
			return nil
		},
	})
	return cmd
}
