// Package collector drives one building search: resolve a city, query
// Overpass for candidates, and persist a sample of them.
package collector

import (
	"context"
	"math/rand"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/geoforge/housefinder/internal/regions"
	"github.com/geoforge/housefinder/internal/store"
	"github.com/geoforge/housefinder/pkg/overpass"
)

// Collector owns the query client, the record store, and the region catalog.
type Collector struct {
	client  overpass.Client
	store   *store.Store
	catalog *regions.Catalog
}

// Result summarizes one collection run.
type Result struct {
	RunID      string `json:"run_id"`
	Country    string `json:"country"`
	City       string `json:"city"`
	Accepted   int    `json:"accepted"`
	Candidates int    `json:"candidates"`

	// Cumulative client counters after the run.
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// New creates a Collector.
func New(client overpass.Client, s *store.Store, catalog *regions.Catalog) *Collector {
	return &Collector{client: client, store: s, catalog: catalog}
}

// Collect fetches up to 2×count candidate buildings for the given city,
// shuffles them, and stores them one at a time until count are accepted or
// the candidates run out. An empty search result is a normal outcome, not
// an error; the error return covers unknown regions and invalid counts.
func (c *Collector) Collect(ctx context.Context, countryKey, cityKey string, count int) (Result, error) {
	country, city, err := c.catalog.Resolve(countryKey, cityKey)
	if err != nil {
		return Result{}, err
	}
	if count < 1 {
		return Result{}, eris.Errorf("collector: count must be positive, got %d", count)
	}

	runID := uuid.NewString()
	log := zap.L().With(
		zap.String("run_id", runID),
		zap.String("country", country.Name),
		zap.String("city", city.Name),
	)
	log.Info("collection started", zap.Int("count", count))

	// Over-fetch so duplicates and rejects don't starve the run.
	candidates, err := c.client.FetchResidentialBuildings(ctx, city.Box, count*2)
	if err != nil {
		return Result{}, eris.Wrap(err, "collector: fetch candidates")
	}

	rand.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	accepted := 0
	for _, b := range candidates {
		if accepted >= count {
			break
		}
		if ctx.Err() != nil {
			break
		}
		if c.store.Add(country.Name, city.Name, b) {
			accepted++
		}
	}

	stats := c.client.Stats()
	result := Result{
		RunID:      runID,
		Country:    country.Name,
		City:       city.Name,
		Accepted:   accepted,
		Candidates: len(candidates),
		Requests:   stats.Requests,
		Errors:     stats.Errors,
	}
	log.Info("collection finished",
		zap.Int("accepted", result.Accepted),
		zap.Int("candidates", result.Candidates),
		zap.Int64("requests", result.Requests),
		zap.Int64("errors", result.Errors),
	)
	return result, nil
}

// Stats exposes the store's totals for reporting callers.
func (c *Collector) Stats() store.Totals {
	return c.store.Stats()
}

// LogPath returns the location of the record log.
func (c *Collector) LogPath() string {
	return c.store.Path()
}
