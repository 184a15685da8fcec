package main

import (
	"alcyxob/gymbuddy/internal/config"
	"alcyxob/gymbuddy/internal/logging"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	configPath string
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "gymbuddy",
	Short: "Workout generator and partner progress service",
	Long: `Gymbuddy generates workouts from an exercise catalog, tracks sets and
weekly progress, and lets workout partners compare their weeks.

  $ gymbuddy serve                                  # Start the HTTP API
  $ gymbuddy seed-catalog --source configs/catalog.yaml
  $ gymbuddy seed-catalog --source s3://bucket/catalog.yaml

Configuration is read from config.yaml in --config, a .env file, and
environment variables such as DATABASE_DRIVER or SERVER_ADDRESS.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		logging.Setup(cfg.Log)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".", "directory containing config.yaml")
	rootCmd.AddCommand(serveCmd, seedCatalogCmd)
}
