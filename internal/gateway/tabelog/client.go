package tabelog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/mekedron/tabelog-cli/internal/domain"
)

const (
	defaultBaseURL = "https://tabelog.com"

	// The remote server rejects requests without a browser-like identity.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	defaultHTTPTimeout = 30 * time.Second
)

// HTTPClient is implemented by http.Client.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Endpoints stores upstream endpoint URLs. Base is the scheme://host prefix
// search paths are joined onto; Suggest defaults to Base plus the suggest
// path when left empty.
type Endpoints struct {
	Base    string
	Suggest string
}

// Client queries the public listing pages of the remote site.
type Client struct {
	httpClient     HTTPClient
	endpoints      Endpoints
	userAgent      string
	limiter        *rate.Limiter
	verboseOutput  io.Writer
	verboseOutputM sync.RWMutex
}

// Option applies Client options.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(httpClient HTTPClient) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// WithEndpoints replaces the default endpoint set.
func WithEndpoints(endpoints Endpoints) Option {
	return func(c *Client) {
		c.endpoints = endpoints
	}
}

// WithUserAgent overrides the browser identity header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if strings.TrimSpace(userAgent) != "" {
			c.userAgent = userAgent
		}
	}
}

// WithRequestMinInterval limits request burst by enforcing a minimum delay
// between upstream calls. Zero or negative disables the limiter.
func WithRequestMinInterval(interval time.Duration) Option {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithVerboseOutput enables per-request trace output for upstream HTTP calls.
func WithVerboseOutput(out io.Writer) Option {
	return func(c *Client) {
		c.SetVerboseOutput(out)
	}
}

// NewClient creates a production gateway client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
		endpoints:  Endpoints{Base: defaultBaseURL},
		userAgent:  defaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetVerboseOutput sets the destination for verbose HTTP request trace lines.
func (c *Client) SetVerboseOutput(out io.Writer) {
	c.verboseOutputM.Lock()
	c.verboseOutput = out
	c.verboseOutputM.Unlock()
}

// SearchPage fetches one results page and parses it into listings plus
// pagination metadata.
func (c *Client) SearchPage(ctx context.Context, query domain.Query) (*Page, error) {
	path, params := BuildSearchTarget(query)
	rawURL := strings.TrimRight(c.endpoints.Base, "/") + path
	if len(params) > 0 {
		rawURL = rawURL + "?" + params.Encode()
	}

	body, err := c.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	page := ParsePage(body, query.Page)
	return &page, nil
}

func (c *Client) suggestURL() string {
	if strings.TrimSpace(c.endpoints.Suggest) != "" {
		return c.endpoints.Suggest
	}
	return strings.TrimRight(c.endpoints.Base, "/") + suggestPath
}

// Suggest queries the autocomplete endpoint. Transport faults return an
// error; an empty or malformed payload returns an empty slice.
func (c *Client) Suggest(ctx context.Context, mode domain.SuggestMode, text string) ([]domain.Suggestion, error) {
	params := url.Values{}
	params.Set("mode", string(mode))
	params.Set("q", strings.TrimSpace(text))
	body, err := c.fetch(ctx, c.suggestURL()+"?"+params.Encode())
	if err != nil {
		return nil, err
	}
	return parseSuggestions(body), nil
}

func (c *Client) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "ja,en;q=0.8")

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	startedAt := time.Now()
	c.tracef("[http] -> GET %s", rawURL)

	res, err := c.httpClient.Do(req)
	if err != nil {
		upstreamErr := &UpstreamRequestError{
			Method: http.MethodGet,
			URL:    rawURL,
			Cause:  err,
		}
		c.traceDone(rawURL, 0, 0, startedAt, upstreamErr)
		return "", upstreamErr
	}
	defer func() {
		_ = res.Body.Close()
	}()

	rawBody, err := io.ReadAll(res.Body)
	if err != nil {
		upstreamErr := &UpstreamRequestError{
			Method:     http.MethodGet,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Cause:      fmt.Errorf("read response body: %w", err),
		}
		c.traceDone(rawURL, res.StatusCode, 0, startedAt, upstreamErr)
		return "", upstreamErr
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		upstreamErr := &UpstreamRequestError{
			Method:     http.MethodGet,
			URL:        rawURL,
			StatusCode: res.StatusCode,
			Body:       string(rawBody),
		}
		c.traceDone(rawURL, res.StatusCode, len(rawBody), startedAt, upstreamErr)
		return "", upstreamErr
	}

	c.traceDone(rawURL, res.StatusCode, len(rawBody), startedAt, nil)
	return string(rawBody), nil
}

func (c *Client) traceDone(rawURL string, statusCode int, responseBytes int, startedAt time.Time, reqErr error) {
	duration := time.Since(startedAt).Round(time.Millisecond)
	if reqErr != nil {
		c.tracef("[http] <- GET %s error=%v duration=%s", rawURL, reqErr, duration)
		return
	}
	c.tracef("[http] <- GET %s status=%d duration=%s bytes=%d", rawURL, statusCode, duration, responseBytes)
}

func (c *Client) tracef(format string, args ...any) {
	c.verboseOutputM.RLock()
	out := c.verboseOutput
	c.verboseOutputM.RUnlock()
	if out == nil {
		return
	}
	_, _ = fmt.Fprintf(out, format+"\n", args...)
}
