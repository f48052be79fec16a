package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port                 int    `envconfig:"PORT" default:"8080"`
	LogLevel             string `envconfig:"LOG_LEVEL" default:"info"`
	DatabaseURL          string `envconfig:"DATABASE_URL" required:"true"`
	GitHubAPIURL         string `envconfig:"GITHUB_API_URL" default:"https://api.github.com"`
	WebhookSecret        string `envconfig:"WEBHOOK_SECRET" default:""`
	MarketplaceToken     string `envconfig:"MARKETPLACE_TOKEN" default:""`
	GitHubTimeoutSeconds int    `envconfig:"GITHUB_TIMEOUT_SECONDS" default:"5"`
	Version              string `envconfig:"VERSION" default:"dev"`
}

// Load reads configuration from environment variables into a Config struct.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// GitHubTimeout returns the outbound GitHub API timeout as a duration.
func (c *Config) GitHubTimeout() time.Duration {
	return time.Duration(c.GitHubTimeoutSeconds) * time.Second
}
