// Package score fetches voting power from a strategy score API.
package score

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sony/gobreaker"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/govsnap/govsnap/common/types"
	"github.com/govsnap/govsnap/log"
)

// ErrScorerUnavailable wraps every failure to obtain scores.
var ErrScorerUnavailable = errors.New("scorer unavailable")

// Request asks for the score of every address under every strategy.
type Request struct {
	Space      string
	Network    string
	Snapshot   uint64 // 0 is the latest block
	Strategies []types.Strategy
	Addresses  []string
}

type Config struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max-retries"`
	RetryDelay time.Duration `mapstructure:"retry-delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
	// RateLimit is in requests per second, 0 disables limiting.
	RateLimit float64 `mapstructure:"rate-limit"`
	Burst     int     `mapstructure:"burst"`
	CacheSize int     `mapstructure:"cache-size"`
	// BreakerFailures consecutive failures open the circuit for BreakerTimeout.
	BreakerFailures uint32        `mapstructure:"breaker-failures"`
	BreakerTimeout  time.Duration `mapstructure:"breaker-timeout"`
}

func DefaultConfig() Config {
	return Config{
		URL:             "https://score.snapshot.org",
		MaxRetries:      3,
		RetryDelay:      500 * time.Millisecond,
		Timeout:         time.Minute,
		RateLimit:       10,
		Burst:           10,
		CacheSize:       100_000,
		BreakerFailures: 5,
		BreakerTimeout:  30 * time.Second,
	}
}

type clientOpts struct {
	cfg        Config
	httpClient *http.Client
	logger     *zap.Logger
}

type ClientOpt func(*clientOpts)

func WithConfig(cfg Config) ClientOpt {
	return func(o *clientOpts) {
		o.cfg = cfg
	}
}

func WithHTTPClient(client *http.Client) ClientOpt {
	return func(o *clientOpts) {
		o.httpClient = client
	}
}

func WithLogger(logger *zap.Logger) ClientOpt {
	return func(o *clientOpts) {
		o.logger = logger
	}
}

type cacheKey struct {
	space    string
	network  string
	snapshot uint64
	// strategies is the digest of the JSON encoded strategies.
	strategies [32]byte
	address    string
}

// Client implements the scorer against a score API. Scores at a fixed snapshot are cached,
// scores at the latest block never are.
type Client struct {
	baseURL *url.URL
	client  *retryablehttp.Client
	breaker *gobreaker.CircuitBreaker
	limiter *rate.Limiter
	group   singleflight.Group
	cache   *lru.Cache[cacheKey, []float64]
	timeout time.Duration
	logger  *zap.Logger
}

// NewClient returns a client for the score API configured by WithConfig, DefaultConfig
// otherwise.
func NewClient(opts ...ClientOpt) (*Client, error) {
	o := &clientOpts{cfg: DefaultConfig(), logger: zap.NewNop()}
	for _, opt := range opts {
		opt(o)
	}
	cfg := o.cfg

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing address: %w", err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("score address %q has no host", cfg.URL)
	}
	cache, err := lru.New[cacheKey, []float64](max(cfg.CacheSize, 1))
	if err != nil {
		return nil, fmt.Errorf("creating score cache: %w", err)
	}
	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Timeout}
	}

	c := &Client{
		baseURL: u,
		client: &retryablehttp.Client{
			HTTPClient:   httpClient,
			RetryMax:     cfg.MaxRetries,
			RetryWaitMin: cfg.RetryDelay,
			RetryWaitMax: 2 * cfg.RetryDelay,
			Backoff:      retryablehttp.LinearJitterBackoff,
			CheckRetry:   retryablehttp.DefaultRetryPolicy,
		},
		limiter: rate.NewLimiter(limit, max(cfg.Burst, 1)),
		cache:   cache,
		timeout: cfg.Timeout,
		logger:  o.logger,
	}
	log.AttachRetryable(c.client, o.logger)
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "score",
		MaxRequests: 1,
		Timeout:     cfg.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return cfg.BreakerFailures > 0 && counts.ConsecutiveFailures >= cfg.BreakerFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			c.logger.Warn("score circuit breaker state changed",
				zap.String("name", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
	})
	return c, nil
}

// Scores returns one address to score map per strategy, in strategy order. Every requested
// address is present in every map.
func (c *Client) Scores(ctx context.Context, req Request) (types.StrategyScores, error) {
	if len(req.Strategies) == 0 || len(req.Addresses) == 0 {
		return make(types.StrategyScores, len(req.Strategies)), nil
	}
	encoded, err := json.Marshal(req.Strategies)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding strategies: %w", ErrScorerUnavailable, err)
	}
	strategies := blake3.Sum256(encoded)
	key := func(address string) cacheKey {
		return cacheKey{
			space:      req.Space,
			network:    req.Network,
			snapshot:   req.Snapshot,
			strategies: strategies,
			address:    strings.ToLower(address),
		}
	}

	scores := make(map[string][]float64, len(req.Addresses))
	missing := make([]string, 0, len(req.Addresses))
	for _, addr := range req.Addresses {
		if _, ok := scores[strings.ToLower(addr)]; ok {
			continue
		}
		if req.Snapshot != 0 {
			if cached, ok := c.cache.Get(key(addr)); ok {
				cacheLookups.WithLabelValues("hit").Inc()
				scores[strings.ToLower(addr)] = cached
				continue
			}
			cacheLookups.WithLabelValues("miss").Inc()
		}
		scores[strings.ToLower(addr)] = nil
		missing = append(missing, addr)
	}

	if len(missing) > 0 {
		fetchReq := req
		fetchReq.Addresses = missing
		table, err := c.fetchShared(ctx, fetchReq, strategies)
		if err != nil {
			return nil, err
		}
		for _, addr := range missing {
			values := make([]float64, len(req.Strategies))
			for i := range values {
				values[i] = table.Score(i, addr)
			}
			scores[strings.ToLower(addr)] = values
			if req.Snapshot != 0 {
				c.cache.Add(key(addr), values)
			}
		}
	}

	result := make(types.StrategyScores, len(req.Strategies))
	for i := range result {
		result[i] = make(map[string]float64, len(req.Addresses))
		for _, addr := range req.Addresses {
			result[i][addr] = scores[strings.ToLower(addr)][i]
		}
	}
	return result, nil
}

// fetchShared lets concurrent identical requests share one call. The call outlives any single
// caller: it is bounded by the client timeout, and a caller whose context ends stops waiting
// without failing the others.
func (c *Client) fetchShared(ctx context.Context, req Request, strategies [32]byte) (types.StrategyScores, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	}
	addresses := slices.Clone(req.Addresses)
	slices.Sort(addresses)
	h := blake3.New()
	h.WriteString(strings.Join([]string{req.Space, req.Network, strconv.FormatUint(req.Snapshot, 10)}, "|"))
	h.Write(strategies[:])
	h.WriteString(strings.Join(addresses, ","))
	key := string(h.Sum(nil))

	ch := c.group.DoChan(key, func() (any, error) {
		fetchCtx := context.WithoutCancel(ctx)
		if c.timeout > 0 {
			var cancel context.CancelFunc
			fetchCtx, cancel = context.WithTimeout(fetchCtx, c.timeout)
			defer cancel()
		}
		return c.fetch(fetchCtx, req)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			sharedRequests.Inc()
		}
		return res.Val.(types.StrategyScores), nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, ctx.Err())
	}
}

func (c *Client) fetch(ctx context.Context, req Request) (types.StrategyScores, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		requests.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	}
	start := time.Now()
	v, err := c.breaker.Execute(func() (any, error) {
		return c.post(ctx, req)
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		requests.WithLabelValues(outcomeOpen).Inc()
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	case err != nil:
		requests.WithLabelValues(outcomeError).Inc()
		c.logger.Debug("score request failed", zap.String("space", req.Space), zap.Error(err))
		return nil, fmt.Errorf("%w: %w", ErrScorerUnavailable, err)
	}
	requests.WithLabelValues(outcomeOK).Inc()
	requestDuration.Observe(time.Since(start).Seconds())
	return v.(types.StrategyScores), nil
}

type scoreParams struct {
	Space      string           `json:"space"`
	Network    string           `json:"network"`
	Snapshot   any              `json:"snapshot"`
	Strategies []types.Strategy `json:"strategies"`
	Addresses  []string         `json:"addresses"`
}

type scoreResponse struct {
	Result *struct {
		Scores types.StrategyScores `json:"scores"`
	} `json:"result"`
	Error json.RawMessage `json:"error"`
}

func (c *Client) post(ctx context.Context, req Request) (types.StrategyScores, error) {
	params := scoreParams{
		Space:      req.Space,
		Network:    req.Network,
		Snapshot:   "latest",
		Strategies: req.Strategies,
		Addresses:  req.Addresses,
	}
	if req.Snapshot != 0 {
		params.Snapshot = req.Snapshot
	}
	body, err := json.Marshal(map[string]scoreParams{"params": params})
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	httpReq, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath("api", "scores").String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	res, err := c.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("doing request: %w", err)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response body (%w)", err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unrecognized error: status code: %s, body: %s", res.Status, string(data))
	}

	var decoded scoreResponse
	if err := json.Unmarshal(data, &decoded); err != nil {
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	if len(decoded.Error) > 0 && string(decoded.Error) != "null" {
		return nil, fmt.Errorf("score api error: %s", string(decoded.Error))
	}
	if decoded.Result == nil {
		return nil, errors.New("score api returned no result")
	}
	if len(decoded.Result.Scores) != len(req.Strategies) {
		return nil, fmt.Errorf("score api returned %d score sets for %d strategies",
			len(decoded.Result.Scores), len(req.Strategies))
	}
	return decoded.Result.Scores, nil
}
