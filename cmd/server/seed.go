package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mmynk/tabledine/internal/config"
	"github.com/mmynk/tabledine/internal/storage/sqlite"
	"github.com/mmynk/tabledine/pkg/logging"
)

func newSeedCmd(loadConfig func() (*config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load a YAML menu file into the database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.MenuFile == "" {
				return fmt.Errorf("a menu file is required (--menu or menu_file)")
			}
			logging.Setup(cfg.LogLevel)

			store, err := sqlite.New(cfg.DBPath)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer store.Close()

			return seedMenu(cmd.Context(), store, cfg.MenuFile)
		},
	}
	return cmd
}
