package theme

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Remote is an optional upstream copy of the theme. Every method is best
// effort: failures are reported as "not live", "absent", or an error for the
// caller to log, never as a panic.
type Remote interface {
	Probe(ctx context.Context) bool
	Fetch(ctx context.Context) (Mapping, bool)
	Push(ctx context.Context, m Mapping) error
}

// ColorsEnvelope is the request body for pushing a theme.
type ColorsEnvelope struct {
	Colors Mapping `json:"colors"`
}

// Compile-time interface guard.
var _ Remote = (*Client)(nil)

// Client talks to another SchoolDesk instance's theme API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	token      string
	logger     *zap.Logger
}

// NewClient creates a Client. baseURL is the API root that serves /health
// and /theme/colors, e.g. "https://central.example.edu/api/v1".
func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		logger:     logger,
	}
}

// Probe reports whether the upstream health endpoint answers 2xx.
func (c *Client) Probe(ctx context.Context) bool {
	if err := c.doJSON(ctx, http.MethodGet, "/health", nil, nil); err != nil {
		c.logger.Debug("theme remote not reachable", zap.String("url", c.baseURL), zap.Error(err))
		remoteErrors.WithLabelValues("probe").Inc()
		return false
	}
	return true
}

// Fetch retrieves the upstream theme. Invalid payloads count as absent.
func (c *Client) Fetch(ctx context.Context) (Mapping, bool) {
	var m Mapping
	if err := c.doJSON(ctx, http.MethodGet, "/theme/colors", nil, &m); err != nil {
		c.logger.Warn("failed to fetch remote theme", zap.Error(err))
		remoteErrors.WithLabelValues("fetch").Inc()
		return nil, false
	}
	if !IsValid(m) {
		c.logger.Warn("remote theme failed validation", zap.Any("problems", Problems(m)))
		remoteErrors.WithLabelValues("fetch").Inc()
		return nil, false
	}
	return m, true
}

// Push uploads m as the upstream theme.
func (c *Client) Push(ctx context.Context, m Mapping) error {
	if err := c.doJSON(ctx, http.MethodPost, "/theme/colors", ColorsEnvelope{Colors: m}, nil); err != nil {
		remoteErrors.WithLabelValues("push").Inc()
		return fmt.Errorf("push theme: %w", err)
	}
	return nil
}

// doJSON performs a request, encoding body and decoding into result when
// either is non-nil. Non-2xx responses are errors.
func (c *Client) doJSON(ctx context.Context, method, path string, body, result any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s %s: HTTP %d: %s", method, path, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
