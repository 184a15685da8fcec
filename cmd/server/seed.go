package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var seedSource string

var seedCatalogCmd = &cobra.Command{
	Use:   "seed-catalog",
	Short: "Load the exercise catalog into the database",
	Long: `Reads a YAML document listing available exercises and upserts it into
the catalog. The source is a local path or an s3://bucket/key URI.

  $ gymbuddy seed-catalog --source configs/catalog.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		source := seedSource
		if source == "" {
			source = cfg.Catalog.SeedSource
		}
		if source == "" {
			return errors.New("no catalog source, set --source or catalog.seed_source")
		}

		ctx := cmd.Context()
		store, closeStore, err := openStore(ctx, cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		opener, err := newOpener(ctx, cfg.S3)
		if err != nil {
			return err
		}
		return seedCatalog(ctx, store, opener, source)
	},
}

func init() {
	seedCatalogCmd.Flags().StringVar(&seedSource, "source", "", "file path or s3://bucket/key (defaults to catalog.seed_source)")
}
