package provider

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/raykavin/ratebot/pkg/core"
)

const (
	DefaultTimeout   = 10 * time.Second
	defaultUserAgent = "ratebot/1.0"
	maxBodySize      = 1 << 20
)

// Client is a small wrapper around http.Client with bounded timeouts
type Client struct {
	HTTP      *http.Client
	UserAgent string
	Headers   map[string]string
}

// NewClient creates a client whose requests never outlive the given timeout
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	transport := &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           (&net.Dialer{Timeout: 5 * time.Second, KeepAlive: 30 * time.Second}).DialContext,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}

	return &Client{
		HTTP:      &http.Client{Timeout: timeout, Transport: transport},
		UserAgent: defaultUserAgent,
	}
}

// Get issues a single GET and returns the body of a 2xx response
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", core.ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}

	return body, nil
}
