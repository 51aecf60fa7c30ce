package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mmynk/roomledger/internal/storage/sqlite"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.load()
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0755); err != nil {
				return fmt.Errorf("create database directory: %w", err)
			}
			if err := sqlite.Migrate(cfg.Database.Path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Schema is up to date: %s\n", cfg.Database.Path)
			return nil
		},
	}
}
