package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the supported countries and cities",
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := loadCatalog(cfg)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, ck := range catalog.CountryKeys() {
			country, _ := catalog.Country(ck)
			fmt.Fprintf(out, "%s (%s)\n", country.Name, ck)
			for _, yk := range catalog.CityKeys(ck) {
				city := country.Cities[yk]
				fmt.Fprintf(out, "    %-12s %s\n", yk, city.Name)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(countriesCmd)
}
