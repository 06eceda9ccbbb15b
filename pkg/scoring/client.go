package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-riskboard/pkg/form"
)

// DefaultEndpoint is the scoring service address used when none is configured.
const DefaultEndpoint = "http://localhost:8000/score"

// maxResponseBytes caps how much of a response body is read.
const maxResponseBytes = 1 << 20

// Prediction is a successful scoring result. The probability is reported
// exactly as the service returned it.
type Prediction struct {
	Probability float64 `json:"default_probability"`
}

// Scorer is the behaviour sessions depend on.
type Scorer interface {
	Score(ctx context.Context, record form.Record) (Prediction, error)
}

// Option customises a Client.
type Option func(*Client)

// WithEndpoint overrides the scoring URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithHTTPClient swaps the HTTP client used for requests.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.http = client
		}
	}
}

// WithTimeout bounds each request. Zero leaves the transport default.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout >= 0 {
			c.timeout = timeout
		}
	}
}

// WithLogger attaches a zap logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client talks to the scoring endpoint.
type Client struct {
	endpoint string
	http     *http.Client
	timeout  time.Duration
	logger   *zap.Logger
}

var _ Scorer = (*Client)(nil)

// NewClient builds a client with the supplied options.
func NewClient(options ...Option) *Client {
	c := &Client{
		endpoint: DefaultEndpoint,
		http:     http.DefaultClient,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Endpoint returns the configured scoring URL.
func (c *Client) Endpoint() string {
	return c.endpoint
}

type scoreResponse struct {
	DefaultProbability *float64 `json:"default_probability"`
}

// Score sends exactly one request for record.
func (c *Client) Score(ctx context.Context, record form.Record) (Prediction, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	payload, err := json.Marshal(record)
	if err != nil {
		return Prediction{}, malformedError("encode record", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return Prediction{}, transportError(err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("scoring request failed",
			zap.String("endpoint", c.endpoint),
			zap.Error(err),
		)
		return Prediction{}, transportError(err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		c.logger.Warn("scoring endpoint returned error status",
			zap.String("endpoint", c.endpoint),
			zap.Int("status", resp.StatusCode),
		)
		return Prediction{}, statusError(resp.StatusCode, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Prediction{}, transportError(err)
	}
	// Unmarshal rejects trailing data after the object.
	var decoded scoreResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		return Prediction{}, malformedError("decode response", err)
	}
	if decoded.DefaultProbability == nil {
		return Prediction{}, malformedError("default_probability missing", nil)
	}

	c.logger.Debug("scored applicant",
		zap.Float64("default_probability", *decoded.DefaultProbability),
		zap.Duration("elapsed", time.Since(started)),
	)
	return Prediction{Probability: *decoded.DefaultProbability}, nil
}

// KindOf reports the failure kind for err, or "" when err is not a scoring
// error.
func KindOf(err error) Kind {
	var target *Error
	if errors.As(err, &target) {
		return target.Kind
	}
	return ""
}
