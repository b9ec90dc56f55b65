package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/geoforge/housefinder/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show how many addresses the log currently holds",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Read-only: this must never touch (or truncate) the log itself.
		path := filepath.Join(cfg.Store.Dir, cfg.Store.File)
		totals := store.ReadTotals(path)

		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Stored addresses: %d\nLog file: %s\n", totals.Total, abs)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
}
