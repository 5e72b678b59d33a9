package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/einhellcentralasia/public-price-stock/internal/config"
)

const (
	defaultBaseURL = "https://graph.microsoft.com/v1.0"
	graphScope     = "https://graph.microsoft.com/.default"
	loginAuthority = "https://login.microsoftonline.com"

	// maxErrorBody limits how much of a Graph error response ends up in
	// our error messages and logs.
	maxErrorBody = 400
)

// Client talks to Microsoft Graph with app-only credentials. Requests are
// rate limited because Graph throttles workbook calls aggressively.
type Client struct {
	cfg        config.GraphConfig
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes a Client.
type Option func(*Client)

// WithBaseURL overrides the Graph endpoint, used in tests.
func WithBaseURL(baseURL string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithHTTPClient replaces the OAuth2 transport, used in tests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a Graph client using the OAuth2 client-credentials flow
// against the tenant's token endpoint.
func NewClient(cfg config.GraphConfig, opts ...Option) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf("%s/%s/oauth2/v2.0/token", loginAuthority, cfg.TenantID),
		Scopes:       []string{graphScope},
	}

	httpClient := cc.Client(context.Background())
	httpClient.Timeout = cfg.Timeout

	c := &Client{
		cfg:        cfg,
		baseURL:    defaultBaseURL,
		httpClient: httpClient,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// getJSON performs a rate-limited GET and decodes the JSON response.
func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return c.statusError(url, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %w", url, err)
	}
	return nil
}

// get performs a rate-limited GET and returns the raw response. Callers own
// the body.
func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("graph GET %s failed: %w", url, err)
	}
	return resp, nil
}

// statusError turns a non-2xx response into an error carrying a truncated
// body for diagnosis.
func (c *Client) statusError(url string, resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return fmt.Errorf("graph GET %s failed %d: %s", url, resp.StatusCode, string(body))
}

// escapePath percent-encodes a drive path segment by segment, so spaces in
// folder names survive while the separators stay intact.
func escapePath(p string) string {
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}

// cellString normalizes a workbook range cell to a trimmed string. Graph
// returns numbers as JSON numbers; integral values must not grow a decimal
// point on the way through.
func cellString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(value)
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", value))
	}
}
