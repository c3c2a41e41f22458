package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"prize-portal-service/internal/logging"
	"prize-portal-service/internal/metrics"
)

// Config controls how the client reaches the upstream platform API.
type Config struct {
	BaseURL     string
	RefreshPath string
	UserAgent   string
	HTTPClient  *http.Client
	Logger      *zap.Logger
	Recorder    *metrics.Recorder
}

// Client issues requests against the platform API. Credentials travel via
// cookies; a call rejected with 401 triggers exactly one transparent refresh
// followed by a retry.
type Client struct {
	baseURL     string
	refreshPath string
	userAgent   string
	httpClient  Doer
	logger      *zap.Logger
	recorder    *metrics.Recorder
}

// New constructs a client with the provided configuration.
func New(cfg Config) *Client {
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:     normalizeBaseURL(cfg.BaseURL),
		refreshPath: resolveRefreshPath(cfg.RefreshPath),
		userAgent:   userAgent,
		httpClient:  resolveHTTPClient(cfg.HTTPClient),
		logger:      logger,
		recorder:    cfg.Recorder,
	}
}

// Get issues a GET with optional query parameters.
func (c *Client) Get(ctx context.Context, path string, query url.Values) (Envelope, error) {
	return c.do(ctx, http.MethodGet, path, query, nil, true)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPost, path, nil, body, true)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPut, path, nil, body, true)
}

// Patch issues a PATCH with a JSON body.
func (c *Client) Patch(ctx context.Context, path string, body any) (Envelope, error) {
	return c.do(ctx, http.MethodPatch, path, nil, body, true)
}

// Delete issues a DELETE.
func (c *Client) Delete(ctx context.Context, path string) (Envelope, error) {
	return c.do(ctx, http.MethodDelete, path, nil, nil, true)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any, allowRefresh bool) (Envelope, error) {
	req, err := c.buildRequest(ctx, method, path, query, body)
	if err != nil {
		return Envelope{}, err
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	c.recorder.RecordUpstreamCall(method+" "+path, time.Since(start), err)
	if err != nil {
		return Envelope{}, fmt.Errorf("upstream %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized && allowRefresh && path != c.refreshPath {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxErrorBodyBytes))
		if refreshErr := c.refresh(ctx); refreshErr != nil {
			return Envelope{}, refreshErr
		}
		logging.FromContext(ctx, c.logger).Debug("retrying after credential refresh",
			zap.String(logging.FieldMethod, method),
			zap.String(logging.FieldPath, path),
		)
		return c.do(ctx, method, path, query, body, false)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return Envelope{}, fmt.Errorf("upstream %s %s: read body: %w", method, path, err)
	}

	if resp.StatusCode >= http.StatusBadRequest {
		return Envelope{}, parseError(resp.StatusCode, raw)
	}

	return Unwrap(raw), nil
}

func (c *Client) buildRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if len(query) > 0 {
		req.URL.RawQuery = query.Encode()
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) refresh(ctx context.Context) error {
	_, err := c.do(ctx, http.MethodPost, c.refreshPath, nil, nil, false)
	c.recorder.RecordAuthRefresh(err)
	if err != nil {
		logging.FromContext(ctx, c.logger).Warn("credential refresh failed", zap.Error(err))
		return fmt.Errorf("credential refresh: %w", err)
	}
	return nil
}
