package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/geoforge/housefinder/internal/store"
)

const (
	defaultCount = 10
	maxCount     = 100

	farewell = "Goodbye!"
)

var huntCmd = &cobra.Command{
	Use:   "hunt",
	Short: "Interactively search for residential buildings city by city",
	Long:  "Two-level menu: pick a country, pick a city, choose how many addresses to collect. Type 'stats' for totals, 'back' to change country, '0' or 'exit' to leave.",
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := initEnv(cfg)
		if err != nil {
			return err
		}
		defer env.Close()

		// Stdin reads don't unblock on signals, so an interrupt anywhere
		// in the menu ends the process here with a clean farewell. The
		// watcher gets its own channel: a normal menu exit closes it
		// during cleanup instead of waking it.
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer func() {
			signal.Stop(sigCh)
			close(sigCh)
		}()
		watchSignals(sigCh, os.Stdout, os.Exit)

		menu := &huntMenu{
			env: env,
			in:  bufio.NewScanner(os.Stdin),
			out: os.Stdout,
		}
		return menu.run(cmd.Context())
	},
}

// watchSignals ends the process with a farewell once an interrupt arrives.
// A closed channel means the menu already returned normally; the watcher
// then exits silently so the farewell is printed exactly once.
func watchSignals(sigCh <-chan os.Signal, out io.Writer, exit func(int)) {
	go func() {
		if _, ok := <-sigCh; !ok {
			return
		}
		fmt.Fprintf(out, "\n%s\n", farewell)
		exit(0)
	}()
}

func init() {
	rootCmd.AddCommand(huntCmd)
}

type huntMenu struct {
	env *appEnv
	in  *bufio.Scanner
	out io.Writer
}

func (m *huntMenu) run(ctx context.Context) error {
	currentCountry := ""

	for {
		if currentCountry == "" {
			m.printCountries()
			choice, ok := m.prompt("Select a country: ")
			if !ok || isExit(choice) {
				fmt.Fprintf(m.out, "\n%s\n", farewell)
				return nil
			}
			if choice == "stats" {
				m.printStats()
				continue
			}
			keys := m.env.catalog.CountryKeys()
			if idx, ok := pickIndex(choice, len(keys)); ok {
				currentCountry = keys[idx]
				continue
			}
			fmt.Fprintln(m.out, "Invalid choice, try again.")
			continue
		}

		m.printCities(currentCountry)
		choice, ok := m.prompt("Select a city: ")
		if !ok {
			fmt.Fprintf(m.out, "\n%s\n", farewell)
			return nil
		}
		if isBack(choice) {
			currentCountry = ""
			continue
		}
		keys := m.env.catalog.CityKeys(currentCountry)
		idx, ok := pickIndex(choice, len(keys))
		if !ok {
			fmt.Fprintln(m.out, "Invalid choice, try again.")
			continue
		}

		raw, ok := m.prompt(fmt.Sprintf("How many addresses? [%d]: ", defaultCount))
		if !ok {
			fmt.Fprintf(m.out, "\n%s\n", farewell)
			return nil
		}
		count := parseCount(raw)

		m.collect(ctx, currentCountry, keys[idx], count)
	}
}

func (m *huntMenu) collect(ctx context.Context, countryKey, cityKey string, count int) {
	res, err := m.env.collector.Collect(ctx, countryKey, cityKey, count)
	if err != nil {
		fmt.Fprintf(m.out, "Search failed: %v\n", err)
		return
	}

	if res.Accepted == 0 {
		fmt.Fprintf(m.out, "\nNo new residential buildings found in %s. Try another city or a larger count.\n", res.City)
	} else {
		fmt.Fprintf(m.out, "\nSaved %d of %d candidates for %s, %s\n",
			res.Accepted, res.Candidates, res.City, res.Country)
	}
	fmt.Fprintf(m.out, "Requests so far: %d (errors: %d)\n", res.Requests, res.Errors)
}

func (m *huntMenu) printCountries() {
	fmt.Fprintf(m.out, "\nAvailable countries:\n")
	for i, key := range m.env.catalog.CountryKeys() {
		country, _ := m.env.catalog.Country(key)
		fmt.Fprintf(m.out, "%2d. %s (%d cities)\n", i+1, country.Name, len(country.Cities))
	}
	fmt.Fprintln(m.out, "\n 0. Exit | stats - show totals")
}

func (m *huntMenu) printCities(countryKey string) {
	country, ok := m.env.catalog.Country(countryKey)
	if !ok {
		return
	}
	fmt.Fprintf(m.out, "\nCities in %s:\n", country.Name)
	for i, key := range m.env.catalog.CityKeys(countryKey) {
		fmt.Fprintf(m.out, "%2d. %s\n", i+1, country.Cities[key].Name)
	}
	fmt.Fprintln(m.out, "\n 0. Back | back - choose another country")
}

func (m *huntMenu) printStats() {
	printTotals(m.out, m.env.store)
}

func printTotals(out io.Writer, s *store.Store) {
	totals := s.Stats()
	path, err := filepath.Abs(s.Path())
	if err != nil {
		path = s.Path()
	}
	fmt.Fprintf(out, "\nStored addresses: %d\nLog file: %s\n", totals.Total, path)
}

// prompt reads one trimmed, lowercased line; ok is false on EOF.
func (m *huntMenu) prompt(label string) (string, bool) {
	fmt.Fprintf(m.out, "\n%s", label)
	if !m.in.Scan() {
		return "", false
	}
	return strings.ToLower(strings.TrimSpace(m.in.Text())), true
}

func isExit(choice string) bool {
	switch choice {
	case "0", "exit", "quit", "q":
		return true
	}
	return false
}

func isBack(choice string) bool {
	return choice == "0" || choice == "back"
}

// pickIndex converts a 1-based numeric menu choice into a 0-based index.
func pickIndex(choice string, n int) (int, bool) {
	v, err := strconv.Atoi(choice)
	if err != nil || v < 1 || v > n {
		return 0, false
	}
	return v - 1, true
}

// parseCount interprets the count prompt answer: empty or unparsable input
// and anything outside 1..100 falls back to the default of 10.
func parseCount(raw string) int {
	if raw == "" {
		return defaultCount
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1 || v > maxCount {
		return defaultCount
	}
	return v
}
