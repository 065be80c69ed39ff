package main

import (
	"errors"
	"fmt"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"quizforge/internal/catalog"
	"quizforge/internal/service"
)

func (c *cli) drawCmd() *cobra.Command {
	var times int
	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Spend coins on artifact draws",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			for i := 0; i < max(times, 1); i++ {
				res, err := c.app.engine.Gacha.Draw(ctx, u.ID)
				if errors.Is(err, service.ErrInsufficientCoins) {
					printf(cmd, "Not enough coins (a draw costs %d)\n", c.app.engine.Gacha.Cost())
					return nil
				}
				if err != nil {
					return err
				}
				tag := "duplicate"
				if res.New {
					tag = "new!"
				}
				printf(cmd, "[%s] %s (+%d%%) %s. Coins left: %d\n",
					res.Artifact.Rarity, res.Artifact.Name, res.Artifact.Bonus, tag, res.Coins)
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&times, "times", "n", 1, "number of draws")
	return cmd
}

func (c *cli) inventoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inventory",
		Short: "List the artifact catalog and what you own",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			inv, err := c.app.engine.Progression.Inventory(ctx, u.ID)
			if err != nil {
				return err
			}
			equipped, err := c.app.engine.Progression.Equipped(ctx, u.ID)
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			for _, a := range catalog.Artifacts() {
				mark := checkbox(lo.Contains(inv, a.ID))
				if equipped != nil && *equipped == a.ID {
					mark += " equipped"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t+%d%%\t%s\n", mark, a.ID, a.Rarity, a.Bonus, a.Name)
			}
			return tw.Flush()
		},
	}
}

func (c *cli) equipCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "equip <artifact-id|none>",
		Short: "Equip an owned artifact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			if args[0] == "none" {
				return c.app.engine.Progression.SetEquipped(ctx, u.ID, nil)
			}

			inv, err := c.app.engine.Progression.Inventory(ctx, u.ID)
			if err != nil {
				return err
			}
			if !lo.Contains(inv, args[0]) {
				return fmt.Errorf("you do not own %q", args[0])
			}
			id := args[0]
			if err := c.app.engine.Progression.SetEquipped(ctx, u.ID, &id); err != nil {
				return err
			}
			printf(cmd, "Equipped %s\n", id)
			return nil
		},
	}
}
