package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"maldash/adapters/db/postgres"
	"maldash/internal/config"
)

var (
	ingestName  string
	ingestNotes string
)

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>",
	Short: "Load a surveillance Excel/CSV file into the database",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if cfg.Database.URL == "" {
			return fmt.Errorf("ingest requires DATABASE_URL to be set")
		}

		store, err := postgres.Connect(cmd.Context(), cfg.Database.URL)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Migrate(cmd.Context()); err != nil {
			return err
		}
		return ingestFile(cmd.Context(), store, args[0], ingestName, ingestNotes)
	},
}

func init() {
	ingestCmd.Flags().StringVar(&ingestName, "name", "", "dataset name (defaults to the file name)")
	ingestCmd.Flags().StringVar(&ingestNotes, "notes", "", "markdown methodology notes file")
}
