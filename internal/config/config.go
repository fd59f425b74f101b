package config

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppPort string `envconfig:"APP_PORT" default:"8080"`

	HemisAPIURL  string        `envconfig:"HEMIS_API_URL" default:"https://student.umft.uz/rest/v1/"`
	HemisAPIKey  string        `envconfig:"HEMIS_API_KEY"`
	HemisTimeout time.Duration `envconfig:"HEMIS_TIMEOUT" default:"10s"`
	UseMockHemis bool          `envconfig:"USE_MOCK_HEMIS" default:"false"`

	RedisAddr     string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD"`

	DatabaseDSN string `envconfig:"DATABASE_DSN" required:"true"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}

	// The real provider cannot list students without a server credential.
	// Mock mode is the only configuration that may run without one.
	if !cfg.UseMockHemis && cfg.HemisAPIKey == "" {
		return Config{}, errors.New("HEMIS_API_KEY must be set unless USE_MOCK_HEMIS=true")
	}

	return cfg, nil
}
