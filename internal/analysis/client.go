package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/net/publicsuffix"

	"github.com/josephgoksu/smarttask/internal/task"
)

const (
	DefaultBaseURL  = "http://localhost:8000"
	DefaultEndpoint = "/api/analyze/"
	DefaultTimeout  = 30 * time.Second

	csrfCookieName  = "csrftoken"
	csrfHeader      = "X-CSRFToken"
	requestIDHeader = "X-Request-ID"

	maxErrorBody = 1 << 20
)

// Config configures a Client. Zero values fall back to the defaults above.
type Config struct {
	BaseURL   string
	Endpoint  string
	Timeout   time.Duration
	Retries   int    // extra attempts after a temporary failure; 0 disables retrying
	CSRFToken string // overrides the csrftoken cookie when set

	HTTPClient *http.Client
	Logger     *slog.Logger
}

// Client submits task lists to the scoring service.
type Client struct {
	base     *url.URL
	endpoint *url.URL
	retries  int
	csrf     string
	primed   atomic.Bool // a priming GET got a response; never repeated
	http     *http.Client
	logger   *slog.Logger
}

// New builds a client. The underlying http.Client gets a cookie jar so the service's
// csrftoken cookie is kept between calls.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.Retries < 0 {
		cfg.Retries = 0
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid analysis base URL %q", cfg.BaseURL)
	}
	ref, err := url.Parse(cfg.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid analysis endpoint %q: %w", cfg.Endpoint, err)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: cfg.Timeout}
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
		if err != nil {
			return nil, fmt.Errorf("create cookie jar: %w", err)
		}
		clone := *hc
		clone.Jar = jar
		hc = &clone
	}

	return &Client{
		base:     base,
		endpoint: base.ResolveReference(ref),
		retries:  cfg.Retries,
		csrf:     cfg.CSRFToken,
		http:     hc,
		logger:   cfg.Logger.With("component", "analysis"),
	}, nil
}

// Endpoint returns the full analyze URL.
func (c *Client) Endpoint() string { return c.endpoint.String() }

// Analyze posts tasks and decodes the scored response. Failures are *ServiceError.
func (c *Client) Analyze(ctx context.Context, tasks []task.Task) (*Result, error) {
	if len(tasks) == 0 {
		return nil, ErrNoTasks
	}
	body, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}

	var result *Result
	attempt := 0
	operation := func() error {
		attempt++
		r, err := c.post(ctx, body)
		if err != nil {
			var se *ServiceError
			if errors.As(err, &se) && !se.Temporary() {
				return backoff.Permanent(err)
			}
			if attempt <= c.retries {
				c.logger.Warn("analysis attempt failed, retrying", "attempt", attempt, "error", err)
			}
			return err
		}
		result = r
		return nil
	}

	b := backoff.WithMaxRetries(backoff.NewExponentialBackOff(), uint64(c.retries))
	if err := backoff.Retry(operation, backoff.WithContext(b, ctx)); err != nil {
		var se *ServiceError
		if !errors.As(err, &se) {
			se = &ServiceError{Message: GenericFailureMessage, Err: err}
		}
		c.logger.Error("analysis failed", "status", se.StatusCode, "error", se.Err, "message", se.Message)
		return nil, se
	}
	c.logger.Info("analysis complete", "tasks", len(result.Tasks), "suggested", len(result.SuggestedTasks))
	return result, nil
}

func (c *Client) post(ctx context.Context, body []byte) (*Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return nil, &ServiceError{Message: GenericFailureMessage, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(csrfHeader, c.csrfToken(ctx))
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &ServiceError{Message: GenericFailureMessage, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		se := &ServiceError{
			StatusCode: resp.StatusCode,
			Message:    GenericFailureMessage,
			Err:        fmt.Errorf("analysis service returned %s", resp.Status),
		}
		var eb errorBody
		if json.Unmarshal(raw, &eb) == nil && strings.TrimSpace(eb.Error) != "" {
			se.Message = eb.Error
		}
		return nil, se
	}

	var result Result
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, &ServiceError{StatusCode: resp.StatusCode, Message: GenericFailureMessage, Err: fmt.Errorf("decode response: %w", err)}
	}
	if result.Tasks == nil {
		result.Tasks = []ScoredTask{}
	}
	if result.SuggestedTasks == nil {
		result.SuggestedTasks = []ScoredTask{}
	}
	return &result, nil
}

// csrfToken returns the configured token, else the csrftoken cookie for the base URL.
// When the jar has none yet it is primed once with a GET on the base URL. No token
// yields "".
func (c *Client) csrfToken(ctx context.Context) string {
	if c.csrf != "" {
		return c.csrf
	}
	if v := c.cookie(csrfCookieName); v != "" || c.primed.Load() {
		return v
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base.String(), nil)
	if err != nil {
		return ""
	}
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("could not prime csrf cookie", "error", err)
		return ""
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBody))
	_ = resp.Body.Close()
	c.primed.Store(true)
	return c.cookie(csrfCookieName)
}

func (c *Client) cookie(name string) string {
	for _, ck := range c.http.Jar.Cookies(c.base) {
		if ck.Name == name {
			return ck.Value
		}
	}
	return ""
}
