package provider

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	jsoniter "github.com/json-iterator/go"

	"github.com/BeatGlow/inkboard/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// maxBodySize caps every response body.
const maxBodySize = 4 << 20

const userAgent = "inkboard/1.0"

// Endpoints are the base URLs of all sources.
type Endpoints struct {
	Weather       string
	GitHub        string
	GitHubGraphQL string
	VPS           string
	BTC           string
	Douban        string
	Quote         string
	Poetry        string
}

// DefaultEndpoints are the public service URLs.
var DefaultEndpoints = Endpoints{
	Weather:       "https://api.openweathermap.org/data/2.5/weather",
	GitHub:        "https://api.github.com",
	GitHubGraphQL: "https://api.github.com/graphql",
	VPS:           "https://api.64clouds.com/v1/getServiceInfo",
	BTC:           "https://api.coingecko.com/api/v3/simple/price",
	Douban:        "https://m.douban.com/rexxar/api/v2",
	Quote:         "https://v1.hitokoto.cn/",
	Poetry:        "https://v1.jinrishici.com/all.json",
}

// Client fetches dashboard data. It holds no mutable state.
type Client struct {
	cfg       *config.Config
	http      *http.Client
	endpoints Endpoints
	timeout   time.Duration
	logger    *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithEndpoints replaces the service URLs, mostly for tests.
func WithEndpoints(e Endpoints) Option {
	return func(c *Client) { c.endpoints = e }
}

// WithLogger sets the logger used by Collect.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New returns a Client for cfg.
func New(cfg *config.Config, opts ...Option) *Client {
	c := &Client{
		cfg:       cfg,
		http:      http.DefaultClient,
		endpoints: DefaultEndpoints,
		timeout:   cfg.ProviderTimeout,
		logger:    slog.Default(),
	}
	if c.timeout <= 0 {
		c.timeout = 10 * time.Second
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// request performs one bounded HTTP round trip and decodes the JSON answer into out.
func (c *Client) request(ctx context.Context, method, rawURL string, query url.Values, header http.Header, body, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if len(query) > 0 {
		rawURL += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range header {
		req.Header[http.CanonicalHeaderKey(key)] = values
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if len(raw) > maxBodySize {
		return fmt.Errorf("response exceeds %d bytes", maxBodySize)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return newStatusError(resp.StatusCode, raw)
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, rawURL string, query url.Values, header http.Header, out any) error {
	return c.request(ctx, http.MethodGet, rawURL, query, header, nil, out)
}
