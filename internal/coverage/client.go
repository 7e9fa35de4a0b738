// Package coverage answers "which candidate sectors have pixel data at this
// sky position". The primary implementation queries the MAST TESScut sector
// service; a file-backed source supports air-gapped runs.
package coverage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sony/gobreaker"

	"tesscross-core/sector"
)

// Config holds the TESScut client settings.
type Config struct {
	BaseURL     string
	Timeout     time.Duration
	CacheTTL    time.Duration
	RateLimitMS int // min milliseconds between upstream requests; 0 disables
	MaxRetries  int
	Logger      *slog.Logger
}

// sectorResponse mirrors the TESScut /sector JSON. Numeric fields arrive
// as zero-padded strings ("0014"); one result row per sector/camera/CCD,
// so the same sector legitimately appears multiple times.
type sectorResponse struct {
	Results []struct {
		SectorName string `json:"sectorName"`
		Sector     string `json:"sector"`
		Camera     string `json:"camera"`
		CCD        string `json:"ccd"`
	} `json:"results"`
}

// Client queries the TESScut sector endpoint with a TTL cache, a minimum
// inter-request spacing, bounded retries and a circuit breaker. It
// implements match.CoverageSource.
type Client struct {
	cfg        Config
	httpClient *http.Client
	cache      *cache.Cache
	breaker    *gobreaker.CircuitBreaker
	log        *slog.Logger

	mu          sync.Mutex
	lastRequest time.Time
}

// NewClient validates cfg and returns a ready client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("coverage: base URL is required")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	c := &Client{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		cache:      cache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		log:        cfg.Logger.With("component", "coverage"),
	}
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tesscut",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.log.Warn("breaker state change", "service", name, "from", from.String(), "to", to.String())
		},
	})
	return c, nil
}

// Sectors returns one hit per sector/camera/CCD row whose sector ID is in
// candidates. The unfiltered upstream answer is cached per position, so a
// rerun with a different candidate set does not hit the service again.
func (c *Client) Sectors(ctx context.Context, ra, dec float64, candidates sector.Set) ([]int, error) {
	key := fmt.Sprintf("%.6f,%.6f", ra, dec)

	if cached, found := c.cache.Get(key); found {
		if all, ok := cached.([]int); ok {
			c.log.Debug("coverage cache hit", "position", key, "hits", len(all))
			return filter(all, candidates), nil
		}
	}

	all, err := c.fetch(ctx, ra, dec)
	if err != nil {
		return nil, err
	}
	c.cache.Set(key, all, cache.DefaultExpiration)
	return filter(all, candidates), nil
}

func filter(all []int, candidates sector.Set) []int {
	var out []int
	for _, id := range all {
		if candidates.Has(id) {
			out = append(out, id)
		}
	}
	return out
}

func (c *Client) fetch(ctx context.Context, ra, dec float64) ([]int, error) {
	reqCtx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	url := fmt.Sprintf("%s/sector?ra=%g&dec=%g", c.cfg.BaseURL, ra, dec)

	res, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequestWithRetry(reqCtx, url)
	})
	if err != nil {
		return nil, err
	}
	return res.([]int), nil
}

func (c *Client) doRequestWithRetry(ctx context.Context, url string) ([]int, error) {
	attempts := c.cfg.MaxRetries + 1
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		hits, retryable, err := c.doRequest(ctx, url)
		if err == nil {
			return hits, nil
		}
		lastErr = err
		if !retryable || ctx.Err() != nil {
			return nil, lastErr
		}
		if attempt < attempts-1 {
			delay := time.Duration(attempt+1) * 500 * time.Millisecond
			c.log.Warn("coverage request failed, retrying",
				"attempt", attempt+1, "delay_ms", delay.Milliseconds(), "error", err.Error())
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

// throttle enforces the minimum spacing between upstream requests.
func (c *Client) throttle() {
	if c.cfg.RateLimitMS <= 0 {
		return
	}
	minGap := time.Duration(c.cfg.RateLimitMS) * time.Millisecond
	c.mu.Lock()
	defer c.mu.Unlock()
	if wait := minGap - time.Since(c.lastRequest); wait > 0 {
		time.Sleep(wait)
	}
	c.lastRequest = time.Now()
}

func (c *Client) doRequest(ctx context.Context, url string) (hits []int, retryable bool, err error) {
	c.throttle()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, fmt.Errorf("coverage request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, true, fmt.Errorf("reading coverage response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("coverage service returned %d", resp.StatusCode)
		// transient server-side failures are worth retrying; client errors are not
		return nil, resp.StatusCode >= 500 || resp.StatusCode == http.StatusTooManyRequests, err
	}

	var parsed sectorResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, false, fmt.Errorf("decoding coverage response: %w", err)
	}

	hits = make([]int, 0, len(parsed.Results))
	for _, r := range parsed.Results {
		id, err := strconv.Atoi(r.Sector)
		if err != nil {
			return nil, false, fmt.Errorf("bad sector value %q in coverage response", r.Sector)
		}
		hits = append(hits, id)
	}
	return hits, false, nil
}
