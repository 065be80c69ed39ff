package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

type cli struct {
	configPath string
	username   string
	app        *app
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "quizforge",
		Short:         "Quiz game progression engine",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd.Context(), c.configPath)
			if err != nil {
				return err
			}
			c.app = a
			return nil
		},
		PersistentPostRunE: func(*cobra.Command, []string) error {
			if c.app == nil {
				return nil
			}
			return c.app.Close()
		},
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", "config", "directory containing config.yaml")
	root.PersistentFlags().StringVarP(&c.username, "user", "u", "", "player username")

	root.AddCommand(
		c.registerCmd(),
		c.loginCmd(),
		c.coinsCmd(),
		c.topCmd(),
		c.drawCmd(),
		c.inventoryCmd(),
		c.equipCmd(),
		c.tasksCmd(),
		c.claimCmd(),
		c.achievementsCmd(),
		c.mistakesCmd(),
		c.exportCmd(),
		c.importCmd(),
		c.playCmd(),
	)
	return root
}

func newTable(w io.Writer) *tabwriter.Writer {
	return tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
}

func checkbox(b bool) string {
	if b {
		return "[x]"
	}
	return "[ ]"
}

func printf(cmd *cobra.Command, format string, args ...any) {
	fmt.Fprintf(cmd.OutOrStdout(), format, args...)
}
