package session

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/Belphemur/ShowFinder/internal/cache"
	"github.com/Belphemur/ShowFinder/internal/config"
)

const (
	defaultTTL  = 24 * time.Hour
	defaultSize = 1000
)

// NewStore opens the session cache described by cfg.Session.
func NewStore(cfg *config.Config, logger zerolog.Logger) (cache.Cache, error) {
	s := cfg.Session

	ttl := defaultTTL
	if s.TTL != "" {
		parsed, err := time.ParseDuration(s.TTL)
		if err != nil || parsed <= 0 {
			logger.Warn().Str("ttl", s.TTL).Msg("Invalid session TTL, using default")
		} else {
			ttl = parsed
		}
	}
	size := s.Size
	if size <= 0 {
		size = defaultSize
	}
	provider := s.Provider
	if provider == "" {
		provider = "memory"
	}

	store, err := cache.New(provider, cache.ProviderConfig{
		Size:          size,
		TTL:           ttl,
		Logger:        cacheLogger{logger: logger},
		KeyPrefix:     "showfinder:session:",
		RedisAddress:  s.Redis.Address,
		RedisPassword: s.Redis.Password,
		RedisDB:       s.Redis.DB,
		Group:         "sessions",
	})
	if err != nil {
		return nil, fmt.Errorf("open %s session store: %w", provider, err)
	}

	logger.Info().Str("provider", provider).Int("size", size).Dur("ttl", ttl).Msg("Session store ready")
	return store, nil
}

// cacheLogger reports cache failures through zerolog.
type cacheLogger struct {
	logger zerolog.Logger
}

func (l cacheLogger) Error(msg string, err error) {
	l.logger.Error().Err(err).Msg(msg)
}
