// Package diagnostics is the operator-visible channel for failures that are
// absorbed instead of being returned to callers. Every captured error is
// logged through the global zerolog logger and, when a Sentry DSN is
// configured, forwarded to Sentry.
package diagnostics

import (
	"context"
	"fmt"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/Belphemur/ShowFinder/internal/config"
)

const flushTimeout = 2 * time.Second

// Init configures the global Sentry client from cfg. It returns a flush
// function that must be called before the process exits. With no DSN
// configured, Sentry stays disabled and flush is a no-op.
func Init(cfg *config.Config, release string) (func(), error) {
	if cfg == nil || cfg.Sentry.DSN == "" {
		return func() {}, nil
	}

	err := sentry.Init(sentry.ClientOptions{
		Dsn:         cfg.Sentry.DSN,
		Environment: cfg.Sentry.Environment,
		Release:     release,
	})
	if err != nil {
		return func() {}, fmt.Errorf("init sentry: %w", err)
	}

	logger := config.GetLogger()
	logger.Info().Str("environment", cfg.Sentry.Environment).Msg("Sentry error reporting enabled")

	return func() { sentry.Flush(flushTimeout) }, nil
}

// Capture records an absorbed error. tags are attached both as log fields and as Sentry tags.
func Capture(ctx context.Context, err error, msg string, tags map[string]string) {
	if err == nil {
		return
	}

	logger := config.GetLogger()
	event := logger.Error().Err(err)
	for k, v := range tags {
		event = event.Str(k, v)
	}
	event.Msg(msg)

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}
	if hub.Client() == nil {
		return
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetTags(tags)
		scope.SetTag("message", msg)
		hub.CaptureException(err)
	})
}
