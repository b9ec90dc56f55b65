package main

import (
	"net/http"
	"time"

	"github.com/rotisserie/eris"

	"github.com/geoforge/housefinder/internal/collector"
	"github.com/geoforge/housefinder/internal/config"
	"github.com/geoforge/housefinder/internal/regions"
	"github.com/geoforge/housefinder/internal/resilience"
	"github.com/geoforge/housefinder/internal/store"
	"github.com/geoforge/housefinder/pkg/overpass"
)

// appEnv bundles the wired application components for a command.
type appEnv struct {
	collector *collector.Collector
	catalog   *regions.Catalog
	store     *store.Store
}

func (e *appEnv) Close() {
	_ = e.store.Close()
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// loadCatalog returns the region catalog, preferring the configured
// override file over the built-in table.
func loadCatalog(cfg *config.Config) (*regions.Catalog, error) {
	if cfg.Regions.File == "" {
		return regions.Default(), nil
	}
	catalog, err := regions.LoadFile(cfg.Regions.File)
	if err != nil {
		return nil, eris.Wrap(err, "load region catalog")
	}
	return catalog, nil
}

// initEnv wires the catalog, store, and Overpass client. Failing to open
// the store is the one startup condition that aborts the whole command.
func initEnv(cfg *config.Config) (*appEnv, error) {
	catalog, err := loadCatalog(cfg)
	if err != nil {
		return nil, err
	}

	s, err := store.Open(cfg.Store.Dir, cfg.Store.File, cfg.Store.Append)
	if err != nil {
		return nil, eris.Wrap(err, "open record store")
	}

	client := overpass.NewClient(
		overpass.WithBaseURL(cfg.Overpass.URL),
		overpass.WithUserAgent(cfg.Overpass.UserAgent),
		overpass.WithRateLimit(cfg.Overpass.RateLimitRPS),
		overpass.WithHTTPClient(newHTTPClient(cfg.Overpass.Timeout())),
		overpass.WithRetry(resilience.RetryConfig{
			MaxAttempts:   cfg.Overpass.MaxRetries,
			RateLimitWait: cfg.Overpass.RateLimitWait(),
			TransientWait: cfg.Overpass.TransientWait(),
		}),
	)

	return &appEnv{
		collector: collector.New(client, s, catalog),
		catalog:   catalog,
		store:     s,
	}, nil
}
