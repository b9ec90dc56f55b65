// Package overpass queries the OpenStreetMap Overpass API for residential
// buildings with postal addresses. The public instances are shared,
// rate-limited infrastructure: the client paces its own requests, retries
// with linear courtesy waits, and degrades every network-layer failure into
// an empty result so callers can treat "nothing found" and "service
// unavailable" the same way.
package overpass

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/geoforge/housefinder/internal/model"
	"github.com/geoforge/housefinder/internal/resilience"
)

// DefaultURL is the main public Overpass instance.
const DefaultURL = "https://overpass-api.de/api/interpreter"

// Client fetches residential buildings from an Overpass endpoint.
type Client interface {
	// FetchResidentialBuildings returns up to limit buildings inside box
	// that carry both a house number and a street. Network-layer failures
	// resolve into an empty slice and an incremented error counter, never
	// an error; the error return covers invalid input only.
	FetchResidentialBuildings(ctx context.Context, box model.BoundingBox, limit int) ([]model.Building, error)

	// Stats reports cumulative request and error counts for this client.
	Stats() RequestStats
}

// RequestStats is a snapshot of the client's counters. Requests counts
// individual attempts, including retries; Errors counts fetches that
// exhausted or aborted their retry budget.
type RequestStats struct {
	Requests int64 `json:"requests"`
	Errors   int64 `json:"errors"`
}

// Option configures the client.
type Option func(*client)

// WithBaseURL points the client at a different Overpass instance.
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom HTTP client. Its timeout is the per-request
// network deadline.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRetry overrides the retry configuration.
func WithRetry(cfg resilience.RetryConfig) Option {
	return func(c *client) {
		c.retry = cfg
	}
}

// WithRateLimit sets the outbound requests-per-second pacing.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithUserAgent sets the User-Agent header. Public Overpass instances ask
// clients to identify themselves.
func WithUserAgent(ua string) Option {
	return func(c *client) {
		c.userAgent = ua
	}
}

type client struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	retry      resilience.RetryConfig
	limiter    *rate.Limiter

	requests atomic.Int64
	errors   atomic.Int64
}

// NewClient creates an Overpass client with the given options. Defaults:
// the main public instance, a 15s request deadline, 2 attempts, and just
// under one request per second.
func NewClient(opts ...Option) Client {
	c := &client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		baseURL:    DefaultURL,
		userAgent:  "housefinder/1.0 (github.com/geoforge/housefinder)",
		retry:      resilience.DefaultRetryConfig(),
		limiter:    rate.NewLimiter(0.9, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.OnRetry == nil {
		c.retry.OnRetry = resilience.RetryLogger("overpass", "fetch_buildings")
	}
	return c
}

func (c *client) FetchResidentialBuildings(ctx context.Context, box model.BoundingBox, limit int) ([]model.Building, error) {
	if err := box.Validate(); err != nil {
		return nil, err
	}
	if limit < 1 {
		return nil, eris.Errorf("overpass: limit must be positive, got %d", limit)
	}

	log := zap.L().With(zap.String("component", "overpass"), zap.String("bbox", box.String()))
	query := buildQuery(box, limit)
	log.Debug("querying overpass", zap.Int("limit", limit))

	resp, err := resilience.DoVal(ctx, c.retry, func(ctx context.Context) (*response, error) {
		return c.post(ctx, query)
	})
	if err != nil {
		c.errors.Add(1)
		log.Warn("overpass fetch failed, returning empty result", zap.Error(err))
		return []model.Building{}, nil
	}

	buildings := parseElements(resp.Elements)
	log.Info("overpass fetch complete",
		zap.Int("elements", len(resp.Elements)),
		zap.Int("buildings", len(buildings)),
	)
	return buildings, nil
}

func (c *client) Stats() RequestStats {
	return RequestStats{
		Requests: c.requests.Load(),
		Errors:   c.errors.Load(),
	}
}

// post performs one request attempt. Classification of the outcome decides
// what the retry loop does with it: RateLimitError and TransientError are
// retried on their respective schedules, anything else aborts.
func (c *client) post(ctx context.Context, query string) (*response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	c.requests.Add(1)

	form := url.Values{"data": {query}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, eris.Wrap(err, "overpass: build request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: request")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &resilience.RateLimitError{StatusCode: resp.StatusCode}
	case resilience.IsTransientHTTPStatus(resp.StatusCode):
		return nil, resilience.NewTransientError(
			eris.Errorf("overpass: http %d", resp.StatusCode), resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, eris.Errorf("overpass: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "overpass: read body")
	}

	var out response
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, eris.Wrap(err, "overpass: decode payload")
	}
	return &out, nil
}
