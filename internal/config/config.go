package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all catalog requests.
const DefaultUserAgent = "ShowFinder/1.0 (+https://github.com/Belphemur/ShowFinder)"

const (
	// DefaultCatalogBaseURL is the TVmaze API root.
	DefaultCatalogBaseURL = "https://api.tvmaze.com"
	// DefaultPlaceholderImageURL is shown for shows the catalog has no image for.
	DefaultPlaceholderImageURL = "https://tinyurl.com/tv-missing"
)

type Config struct {
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	CatalogBaseURL        string `mapstructure:"catalog_base_url"`
	PlaceholderImageURL   string `mapstructure:"placeholder_image_url"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s", "1m", etc.
	UserAgent             string `mapstructure:"user_agent"`
	RateLimit             struct {
		RequestsPerSecond float64 `mapstructure:"requests_per_second"` // <= 0 disables throttling
		Burst             int     `mapstructure:"burst"`
	} `mapstructure:"rate_limit"`
	Server struct {
		Port    int    `mapstructure:"port"`
		Address string `mapstructure:"address"`
	} `mapstructure:"server"`
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"` // "console" or "json"
	Session   struct {
		Provider   string `mapstructure:"provider"` // "memory" or "redis"
		Size       int    `mapstructure:"size"`     // Maximum number of live sessions
		TTL        string `mapstructure:"ttl"`      // Go duration string like "1h", "24h", etc.
		CookieName string `mapstructure:"cookie_name"`
		Redis      struct {
			Address  string `mapstructure:"address"`
			Password string `mapstructure:"password"`
			DB       int    `mapstructure:"db"`
		} `mapstructure:"redis"`
	} `mapstructure:"session"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"metrics"`
	Health struct {
		Enabled bool `mapstructure:"enabled"`
		Port    int  `mapstructure:"port"`
	} `mapstructure:"health"`
	Sentry struct {
		DSN         string `mapstructure:"dsn"`
		Environment string `mapstructure:"environment"`
	} `mapstructure:"sentry"`
}

var (
	globalConfig *Config
	logger       zerolog.Logger
)

func init() {
	// Initialize zerolog with console writer for human-readable output
	logger = zerolog.New(zerolog.ConsoleWriter{
		Out:     os.Stdout,
		NoColor: false,
	}).With().Timestamp().Logger()

	if err := Init(""); err != nil {
		logger.Fatal().Err(err).Msg("Failed to load config")
	}
}

// Init (re)loads the configuration, optionally from an explicit file, and
// reconfigures the global logger from it.
func Init(configFile string) error {
	config, err := LoadConfig(configFile)
	if err != nil {
		return err
	}

	if strings.EqualFold(config.LogFormat, "json") {
		logger = zerolog.New(os.Stdout).With().Timestamp().Logger()
	}

	// Parse and set log level from config
	level := zerolog.InfoLevel // default
	if config.LogLevel != "" {
		if parsedLevel, err := zerolog.ParseLevel(config.LogLevel); err == nil {
			level = parsedLevel
		} else {
			logger.Warn().Str("invalid_level", config.LogLevel).Msg("Invalid log level, using default 'info'")
		}
	}

	zerolog.SetGlobalLevel(level)
	logger = logger.Level(level)

	logger.Debug().Str("level", level.String()).Str("file", viper.ConfigFileUsed()).Msg("Configuration loaded")
	globalConfig = config
	return nil
}

// LoadConfig reads config.yaml (or configFile when non-empty) and APP_* environment variables.
func LoadConfig(configFile string) (*Config, error) {
	v := viper.New()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Add specific environment variable for log level
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("catalog_base_url", DefaultCatalogBaseURL)
	v.SetDefault("placeholder_image_url", DefaultPlaceholderImageURL)
	v.SetDefault("client_timeout", "30s")
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("rate_limit.requests_per_second", 2.0)
	v.SetDefault("rate_limit.burst", 20)
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.address", "localhost")
	v.SetDefault("log_format", "console")
	v.SetDefault("session.provider", "memory")
	v.SetDefault("session.size", 1000)
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.cookie_name", "showfinder_session")
	v.SetDefault("session.redis.address", "")
	v.SetDefault("session.redis.password", "")
	v.SetDefault("session.redis.db", 0)
	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("health.enabled", false)
	v.SetDefault("health.port", 9091)
	v.SetDefault("sentry.dsn", "")
	v.SetDefault("sentry.environment", "production")
}

func GetConfig() *Config {
	return globalConfig
}

func GetUserAgent() string {
	if globalConfig != nil && globalConfig.UserAgent != "" {
		return globalConfig.UserAgent
	}

	return DefaultUserAgent
}

func GetLogger() zerolog.Logger {
	return logger
}
