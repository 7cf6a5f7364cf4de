// Package config loads runtime settings from the environment and the optional
// YAML file with the package list and table overrides.
package config

import (
	"time"

	"npmfootprint/internal/env"
)

// Settings are the environment-driven runtime options.
type Settings struct {
	DownloadsURL string
	SizeURL      string
	HTTPTimeout  time.Duration
	StatTimeout  time.Duration
	Concurrency  int

	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisReportKey string
	RedisReportTTL time.Duration

	Port       string
	APITimeout time.Duration

	LogLevel string
}

// Defaults of the environment variables.
const (
	DefaultDownloadsURL   = "https://api.npmjs.org/downloads/point"
	DefaultSizeURL        = "https://bundlephobia.com/api/size"
	DefaultHTTPTimeout    = 10 * time.Second
	DefaultStatTimeout    = 15 * time.Second
	DefaultConcurrency    = 8
	DefaultRedisReportKey = "npmfootprint:report:last"
	DefaultRedisReportTTL = 7 * 24 * time.Hour
	DefaultPort           = "8080"
	DefaultAPITimeout     = 30 * time.Second
	DefaultLogLevel       = "info"
)

// FromEnv reads Settings from the environment, falling back to the defaults.
func FromEnv() (Settings, error) {
	s := Settings{
		DownloadsURL:   env.GetEnv("DOWNLOADS_URL", DefaultDownloadsURL),
		SizeURL:        env.GetEnv("SIZE_URL", DefaultSizeURL),
		RedisAddr:      env.GetEnv("REDIS_ADDR", ""),
		RedisPassword:  env.GetEnv("REDIS_PASSWORD", ""),
		RedisReportKey: env.GetEnv("REDIS_REPORT_KEY", DefaultRedisReportKey),
		Port:           env.GetEnv("PORT", DefaultPort),
		LogLevel:       env.GetEnv("LOG_LEVEL", DefaultLogLevel),
	}

	var err error
	if s.HTTPTimeout, err = env.GetDuration("HTTP_TIMEOUT", DefaultHTTPTimeout); err != nil {
		return Settings{}, err
	}
	if s.StatTimeout, err = env.GetDuration("STAT_TIMEOUT", DefaultStatTimeout); err != nil {
		return Settings{}, err
	}
	if s.Concurrency, err = env.GetInt("CONCURRENCY", DefaultConcurrency); err != nil {
		return Settings{}, err
	}
	if s.RedisDB, err = env.GetInt("REDIS_DB", 0); err != nil {
		return Settings{}, err
	}
	if s.RedisReportTTL, err = env.GetDuration("REDIS_REPORT_TTL", DefaultRedisReportTTL); err != nil {
		return Settings{}, err
	}
	if s.APITimeout, err = env.GetDuration("API_TIMEOUT", DefaultAPITimeout); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// RedisEnabled reports whether a redis sink is configured.
func (s Settings) RedisEnabled() bool {
	return s.RedisAddr != ""
}
