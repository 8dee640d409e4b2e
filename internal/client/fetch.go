package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
	"golang.org/x/text/transform"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/metrics"
)

// Endpoint labels used for metrics and diagnostics.
const (
	endpointSearch   = "search"
	endpointEpisodes = "episodes"
)

// getJSON performs an HTTP GET against the catalog and decodes the JSON body into out.
// The body must hold exactly one JSON value. A non-nil validate runs on the
// decoded value, and its error counts as a malformed response in the metrics.
func (c *client) getJSON(ctx context.Context, endpoint, rawURL string, out interface{}, validate func() error) (err error) {
	start := time.Now()
	defer func() {
		metrics.CatalogRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		metrics.CatalogRequestsTotal.WithLabelValues(endpoint, outcomeOf(err)).Inc()
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &apperrors.ErrUnexpectedStatus{URL: rawURL, StatusCode: resp.StatusCode}
	}

	body, err := utf8Body(resp)
	if err != nil {
		return &apperrors.ErrMalformedResponse{URL: rawURL, Reason: "unsupported charset", Err: err}
	}

	dec := json.NewDecoder(body)
	if err := dec.Decode(out); err != nil {
		return &apperrors.ErrMalformedResponse{URL: rawURL, Reason: "decode body", Err: err}
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return &apperrors.ErrMalformedResponse{URL: rawURL, Reason: "trailing data after JSON value", Err: err}
	}

	if validate != nil {
		return validate()
	}
	return nil
}

// utf8Body converts the response body to UTF-8 when the Content-Type declares another charset.
func utf8Body(resp *http.Response) (io.Reader, error) {
	_, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		return resp.Body, nil
	}

	label := params["charset"]
	if label == "" || strings.EqualFold(label, "utf-8") || strings.EqualFold(label, "utf8") {
		return resp.Body, nil
	}

	enc, name := charset.Lookup(label)
	if enc == nil {
		return nil, fmt.Errorf("unknown charset %q", label)
	}
	if name == "utf-8" {
		return resp.Body, nil
	}
	return transform.NewReader(resp.Body, enc.NewDecoder()), nil
}

// outcomeOf classifies a request error into a metrics label.
func outcomeOf(err error) string {
	var status *apperrors.ErrUnexpectedStatus
	switch {
	case err == nil:
		return "ok"
	case errors.As(err, &status) && status.StatusCode == http.StatusNotFound:
		return "not_found"
	case errors.As(err, &status):
		return "bad_status"
	case errors.Is(err, &apperrors.ErrMalformedResponse{}):
		return "malformed"
	default:
		return "transport_error"
	}
}
