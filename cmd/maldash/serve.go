package main

import (
	"context"
	"log"
	"os"

	"github.com/spf13/cobra"

	"maldash/adapters/db/postgres"
	"maldash/adapters/excel"
	"maldash/internal/config"
	"maldash/internal/testkit"
	"maldash/ports"
	"maldash/ui"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the dashboard JSON API",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		if cfg.Data.SourceFile != "" {
			if err := ingestFile(cmd.Context(), store, cfg.Data.SourceFile, "", cfg.Data.NotesFile); err != nil {
				return err
			}
		}

		if cfg.Profiling.Enabled {
			go ui.StartProfiler(cfg.Profiling.Port)
		}

		server, err := ui.NewServer(ui.Config{
			GinMode:       cfg.Server.GinMode,
			Store:         store,
			CacheSize:     cfg.Analysis.CacheSize,
			MatrixWorkers: cfg.Analysis.MatrixWorkers,
		})
		if err != nil {
			return err
		}
		return server.Start(cfg.Server.Port)
	},
}

// openStore picks the dataset store: Postgres when DATABASE_URL is set,
// otherwise an in-memory store pre-loaded with the synthetic demo dataset.
func openStore(ctx context.Context, cfg *config.Config) (ports.DatasetStorePort, error) {
	if cfg.Database.URL != "" {
		store, err := postgres.Connect(ctx, cfg.Database.URL)
		if err != nil {
			return nil, err
		}
		if err := store.Migrate(ctx); err != nil {
			return nil, err
		}
		log.Println("[Main] Using Postgres dataset store")
		return store, nil
	}

	kit, err := testkit.NewTestKit()
	if err != nil {
		return nil, err
	}
	log.Println("[Main] DATABASE_URL not set, using in-memory demo store")
	return kit.Store(), nil
}

// ingestFile reads a surveillance file into the store. An optional notes
// file replaces the dataset description with methodology markdown.
func ingestFile(ctx context.Context, store ports.DatasetStorePort, path, name, notesPath string) error {
	ds, err := excel.NewDataReader(path).ReadDataset()
	if err != nil {
		return err
	}
	if name != "" {
		ds.Name = name
	}
	if notesPath != "" {
		notes, err := os.ReadFile(notesPath)
		if err != nil {
			return err
		}
		ds.Description = string(notes)
	}
	if err := store.Save(ctx, ds); err != nil {
		return err
	}
	log.Printf("[Main] Ingested dataset %s (%s)", ds.Name, ds.ID)
	return nil
}
