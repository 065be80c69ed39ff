package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *cli) registerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "register <username>",
		Short: "Register a new player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := c.app.engine.Users.Register(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd, "Registered %s (id %s)\n", u.Username, u.ID)
			return nil
		},
	}
}

func (c *cli) loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <username>",
		Short: "Look up a player and start today's tasks",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := c.app.engine.Users.Login(ctx, args[0])
			if err != nil {
				return err
			}
			tasks, err := c.app.engine.Tasks.GetTasks(ctx, u.ID)
			if err != nil {
				return err
			}
			coins, err := c.app.engine.Progression.Coins(ctx, u.ID)
			if err != nil {
				return err
			}
			printf(cmd, "Welcome back, %s. Coins: %d\n", u.Username, coins)
			printTasks(cmd, tasks)
			return nil
		},
	}
}

func (c *cli) coinsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "coins",
		Short: "Show the coin balance",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			coins, err := c.app.engine.Progression.Coins(ctx, u.ID)
			if err != nil {
				return err
			}
			printf(cmd, "%d\n", coins)
			return nil
		},
	}
}

func (c *cli) topCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "top",
		Short: "Show the richest players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := c.app.engine.Ranking.TopByCoins(cmd.Context(), limit)
			if err != nil {
				return err
			}
			tw := newTable(cmd.OutOrStdout())
			for i, e := range entries {
				fmt.Fprintf(tw, "%d.\t%s\t%d\n", i+1, e.User.Username, e.Coins)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of players to show")
	return cmd
}
