package client

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// Client defines the interface for querying the TV catalog API.
//
// Both lookups absorb every failure: errors are reported through the
// diagnostics channel and an empty slice is returned instead.
type Client interface {
	SearchShows(ctx context.Context, term string) []models.Show
	ListEpisodes(ctx context.Context, showID int) []models.Episode

	// Close releases idle connections held by the client.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient       *http.Client
	baseURL          string
	placeholderImage string
	userAgent        string
}

// NewClient creates a new client instance with proxy and throttling configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()

	// Parse timeout duration
	timeout := 30 * time.Second // default
	if cfg.ClientTimeout != "" {
		if parsedTimeout, err := time.ParseDuration(cfg.ClientTimeout); err != nil {
			logger.Warn().Err(err).Str("timeout", cfg.ClientTimeout).Msg("Invalid timeout duration, using default 30s")
		} else {
			timeout = parsedTimeout
		}
	}

	// Clone DefaultTransport to preserve its pooling, HTTP/2 and dial timeouts
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	// Throttle below the catalog's rate limit, then handle gzip, brotli and zstd bodies
	transport := newThrottleTransport(baseTransport, cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	httpClient := &http.Client{
		Timeout:   timeout,
		Transport: newCompressionTransport(transport),
	}

	baseURL := strings.TrimRight(cfg.CatalogBaseURL, "/")
	if baseURL == "" {
		baseURL = config.DefaultCatalogBaseURL
	}
	placeholder := cfg.PlaceholderImageURL
	if placeholder == "" {
		placeholder = config.DefaultPlaceholderImageURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	return &client{
		httpClient:       httpClient,
		baseURL:          baseURL,
		placeholderImage: placeholder,
		userAgent:        userAgent,
	}
}

// Close releases idle keep-alive connections.
func (c *client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
