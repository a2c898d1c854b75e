// Package hub submits signed envelopes to the governance hub.
package hub

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"

	"github.com/govsnap/govsnap/log"
	"github.com/govsnap/govsnap/typeddata"
)

// IdempotencyHeader carries the key identifying one envelope across retries.
const IdempotencyHeader = "X-Idempotency-Key"

// ErrHubRejected is returned when the hub answers with a non-2xx status.
var ErrHubRejected = errors.New("hub rejected message")

// RejectedError holds the hub's answer to a rejected submission. Message is the hub's
// description verbatim.
type RejectedError struct {
	StatusCode int
	Code       string
	Message    string
	Body       []byte
}

func (e *RejectedError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: status %d", ErrHubRejected, e.StatusCode)
	}
	return fmt.Sprintf("%s: status %d: %s", ErrHubRejected, e.StatusCode, e.Message)
}

func (e *RejectedError) Unwrap() error {
	return ErrHubRejected
}

// Relayer is the relayer's countersignature of an accepted message.
type Relayer struct {
	Address string `json:"address"`
	Receipt string `json:"receipt"`
}

// Receipt is returned by the hub for an accepted message.
type Receipt struct {
	ID      string          `json:"id"`
	IPFS    string          `json:"ipfs"`
	Relayer Relayer         `json:"relayer"`
	Raw     json.RawMessage `json:"-"`
}

type Config struct {
	URL        string        `mapstructure:"url"`
	MaxRetries int           `mapstructure:"max-retries"`
	RetryDelay time.Duration `mapstructure:"retry-delay"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func DefaultConfig() Config {
	return Config{
		URL:        "https://seq.snapshot.org",
		MaxRetries: 3,
		RetryDelay: time.Second,
		Timeout:    30 * time.Second,
	}
}

type ClientOpt func(*Client)

func WithConfig(cfg Config) ClientOpt {
	return func(c *Client) {
		c.client.RetryMax = cfg.MaxRetries
		c.client.RetryWaitMin = cfg.RetryDelay
		c.client.RetryWaitMax = 2 * cfg.RetryDelay
		c.client.HTTPClient.Timeout = cfg.Timeout
	}
}

func WithHTTPClient(client *http.Client) ClientOpt {
	return func(c *Client) {
		c.client.HTTPClient = client
	}
}

func WithLogger(logger *zap.Logger) ClientOpt {
	return func(c *Client) {
		c.logger = logger
		log.AttachRetryable(c.client, logger)
	}
}

// Client submits signed envelopes. Transport errors, 429 and 5xx answers are retried, other
// answers are final.
type Client struct {
	baseURL *url.URL
	client  *retryablehttp.Client
	logger  *zap.Logger
}

// NewClient returns a client for the hub at baseURL.
func NewClient(baseURL string, opts ...ClientOpt) (*Client, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing address: %w", err)
	}
	if u.Scheme == "" {
		u.Scheme = "https"
	}
	if u.Host == "" {
		return nil, fmt.Errorf("hub address %q has no host", baseURL)
	}

	cfg := DefaultConfig()
	c := &Client{
		baseURL: u,
		client: &retryablehttp.Client{
			HTTPClient:   &http.Client{Timeout: cfg.Timeout},
			RetryMax:     cfg.MaxRetries,
			RetryWaitMin: cfg.RetryDelay,
			RetryWaitMax: 2 * cfg.RetryDelay,
			Backoff:      retryablehttp.LinearJitterBackoff,
			CheckRetry:   retryablehttp.DefaultRetryPolicy,
			ErrorHandler: lastResponse,
		},
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// lastResponse hands the final answer to the caller once retries are exhausted so its status
// and body are reported.
func lastResponse(resp *http.Response, err error, _ int) (*http.Response, error) {
	if resp != nil {
		return resp, nil
	}
	return nil, err
}

type messageData struct {
	Domain  typeddata.Domain  `json:"domain"`
	Types   typeddata.Types   `json:"types"`
	Message typeddata.Message `json:"message"`
}

type message struct {
	Address string      `json:"address"`
	Sig     string      `json:"sig"`
	Data    messageData `json:"data"`
}

type errorBody struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

// IdempotencyKey identifies an envelope signed by address. The hub accepts a message only
// once per key, so resubmitting after a lost response is harmless.
func IdempotencyKey(address string, env *typeddata.Envelope) string {
	return fmt.Sprintf("%s:%d:%s", strings.ToLower(address), env.Timestamp(), env.PrimaryType)
}

// Submit posts a signed envelope and returns the hub's receipt.
func (c *Client) Submit(ctx context.Context, address, signature string, env *typeddata.Envelope) (*Receipt, error) {
	types := make(typeddata.Types, len(env.Types))
	for name, fields := range env.Types {
		if name == "EIP712Domain" {
			continue
		}
		types[name] = fields
	}
	body, err := json.Marshal(message{
		Address: address,
		Sig:     signature,
		Data: messageData{
			Domain:  env.Domain,
			Types:   types,
			Message: env.Message,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("marshaling request body: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.baseURL.JoinPath("api", "msg").String(), body)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(IdempotencyHeader, IdempotencyKey(address, env))

	start := time.Now()
	res, err := c.client.Do(req)
	if err != nil {
		submissions.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("doing request: %w", err)
	}
	defer res.Body.Close()
	submitDuration.Observe(time.Since(start).Seconds())

	data, err := io.ReadAll(res.Body)
	if err != nil {
		submissions.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("reading response body (%w)", err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		submissions.WithLabelValues(outcomeRejected).Inc()
		c.logger.Debug("hub request failed", zap.String("status", res.Status), zap.String("body", string(data)))
		rejected := &RejectedError{StatusCode: res.StatusCode, Body: data}
		var eb errorBody
		if err := json.Unmarshal(data, &eb); err == nil {
			rejected.Code = eb.Error
			rejected.Message = eb.ErrorDescription
			if rejected.Message == "" {
				rejected.Message = eb.Error
			}
		} else {
			rejected.Message = string(bytes.TrimSpace(data))
		}
		return nil, rejected
	}

	var receipt Receipt
	if err := json.Unmarshal(data, &receipt); err != nil {
		submissions.WithLabelValues(outcomeError).Inc()
		return nil, fmt.Errorf("decoding response body: %w", err)
	}
	receipt.Raw = data
	submissions.WithLabelValues(outcomeAccepted).Inc()
	c.logger.Info("message accepted by hub",
		zap.String("id", receipt.ID),
		zap.String("type", env.PrimaryType),
		zap.String("address", address),
	)
	return &receipt, nil
}
