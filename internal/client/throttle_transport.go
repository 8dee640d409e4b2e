package client

import (
	"fmt"
	"net/http"

	"golang.org/x/time/rate"
)

// throttleTransport paces outgoing requests with a token bucket so the client
// stays under the catalog's published rate limit. It never retries.
type throttleTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

// newThrottleTransport wraps base with a limiter of rps requests per second.
// A non-positive rps disables throttling and returns base unchanged.
func newThrottleTransport(base http.RoundTripper, rps float64, burst int) http.RoundTripper {
	if base == nil {
		base = http.DefaultTransport
	}
	if rps <= 0 {
		return base
	}
	if burst < 1 {
		burst = 1
	}
	return &throttleTransport{
		transport: base,
		limiter:   rate.NewLimiter(rate.Limit(rps), burst),
	}
}

func (t *throttleTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return t.transport.RoundTrip(req)
}
