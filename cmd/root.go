package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/geoforge/housefinder/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "housefinder",
	Short: "Collect residential building addresses from OpenStreetMap",
	Long:  "Queries the Overpass API for residential buildings with postal addresses inside city bounding boxes and appends deduplicated records to a pipe-delimited log.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
