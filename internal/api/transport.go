package api

import (
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

const (
	defaultBaseURL     = "https://api.prizeportal.example"
	defaultHTTPTimeout = 10 * time.Second
	defaultRefreshPath = "/auth/refresh"
	defaultUserAgent   = "prize-portal-service"

	maxErrorBodyBytes = 64 << 10
)

// Doer is the minimal HTTP client surface the Client needs.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

func resolveHTTPClient(client *http.Client) *http.Client {
	if client == nil {
		client = &http.Client{Timeout: defaultHTTPTimeout}
	}
	if client.Jar == nil {
		// Credentials travel as cookies; the jar keeps them across calls.
		if jar, err := cookiejar.New(nil); err == nil {
			client.Jar = jar
		}
	}
	return client
}

func normalizeBaseURL(raw string) string {
	if raw == "" {
		raw = defaultBaseURL
	}
	return strings.TrimSuffix(raw, "/")
}

func resolveRefreshPath(raw string) string {
	if raw == "" {
		return defaultRefreshPath
	}
	if !strings.HasPrefix(raw, "/") {
		raw = "/" + raw
	}
	return raw
}
