package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

func (c *cli) exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a save file for the player",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) (err error) {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}
			bundle, err := c.app.engine.Transfer.Export(ctx, u.ID)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(bundle, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode save file: %w", err)
			}

			if output == "" || output == "-" {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return err
			}
			if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write save file: %w", err)
			}
			printf(cmd, "Exported %d fields to %s\n", len(bundle.Fields), output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "-", "save file path, - for stdout")
	return cmd
}

func (c *cli) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file|->",
		Short: "Restore a save file into the player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			u, err := c.app.user(ctx, c.username)
			if err != nil {
				return err
			}

			var data []byte
			if args[0] == "-" {
				data, err = io.ReadAll(cmd.InOrStdin())
			} else {
				data, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("failed to read save file: %w", err)
			}

			if err := c.app.engine.Transfer.Import(ctx, u.ID, data); err != nil {
				return err
			}
			printf(cmd, "Save restored\n")
			return nil
		},
	}
}
