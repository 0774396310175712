package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Environment string
	Server      struct {
		Port string
	}
	Roster struct {
		Path string
	}
	RateLimit struct {
		RPS   float64
		Burst int
	}
}

// LoadConfig reads configuration from environment variables and an optional
// config file in the working directory. Environment variables use the
// BILLING prefix, e.g. BILLING_SERVER_PORT.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BILLING")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("environment", "development")
	v.SetDefault("server.port", "8080")
	v.SetDefault("roster.path", "static/users.json")
	v.SetDefault("ratelimit.rps", 50.0)
	v.SetDefault("ratelimit.burst", 100)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if cfg.RateLimit.RPS <= 0 || cfg.RateLimit.Burst <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got rps=%v burst=%d", cfg.RateLimit.RPS, cfg.RateLimit.Burst)
	}
	return &cfg, nil
}
