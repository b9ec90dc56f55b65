package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var (
	fetchCountry string
	fetchCity    string
	fetchCount   int
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Collect addresses for one city without the menu",
	Example: `  housefinder fetch --country germany --city berlin --count 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if fetchCount < 1 || fetchCount > maxCount {
			return eris.Errorf("count must be between 1 and %d, got %d", maxCount, fetchCount)
		}

		env, err := initEnv(cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.collector.Collect(ctx, fetchCountry, fetchCity, fetchCount)
		if err != nil {
			return err
		}

		fmt.Printf("Saved %d of %d candidates for %s, %s\n",
			res.Accepted, res.Candidates, res.City, res.Country)
		fmt.Printf("Requests: %d (errors: %d)\n", res.Requests, res.Errors)
		printTotals(cmd.OutOrStdout(), env.store)
		return nil
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchCountry, "country", "", "country key (see 'housefinder countries')")
	fetchCmd.Flags().StringVar(&fetchCity, "city", "", "city key")
	fetchCmd.Flags().IntVar(&fetchCount, "count", defaultCount, "number of addresses to collect (1-100)")
	_ = fetchCmd.MarkFlagRequired("country")
	_ = fetchCmd.MarkFlagRequired("city")
	rootCmd.AddCommand(fetchCmd)
}
