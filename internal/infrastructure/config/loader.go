package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const appDir = "twitch-cli"

type Config struct {
	ConfigPath  string        `env:"TWITCH_CLI_CONFIG"`
	ClientID    string        `env:"TWITCH_CLI_CLIENT_ID, default=e0fm2z7ufk73k2jnkm21y0gp1h9q2o"`
	RedirectURI string        `env:"TWITCH_CLI_REDIRECT_URI, default=https://butt4cak3.github.io/twitch-cli/oauth.html"`
	APIBaseURL  string        `env:"TWITCH_CLI_API_URL, default=https://api.twitch.tv/helix/"`
	Player      string        `env:"TWITCH_CLI_PLAYER, default=streamlink"`
	HTTPTimeout time.Duration `env:"TWITCH_CLI_HTTP_TIMEOUT, default=15s"`
	LogLevel    string        `env:"TWITCH_CLI_LOG_LEVEL, default=warn"`
}

func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("config: env: %w", err)
	}

	if strings.TrimSpace(cfg.ConfigPath) == "" {
		path, err := DefaultConfigPath()
		if err != nil {
			return nil, err
		}
		cfg.ConfigPath = path
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// ApplyFlags lets command-line flags win over the environment: a non-empty
// configPath replaces ConfigPath and verbose forces debug logging.
func (c *Config) ApplyFlags(configPath string, verbose bool) {
	if strings.TrimSpace(configPath) != "" {
		c.ConfigPath = configPath
	}
	if verbose {
		c.LogLevel = "debug"
	}
}

// DefaultConfigPath is <user config dir>/twitch-cli/config.yaml.
func DefaultConfigPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("config: locating user config dir: %w", err)
	}
	return filepath.Join(dir, appDir, "config.yaml"), nil
}

func validate(cfg *Config) error {
	required := []struct {
		name  string
		value string
	}{
		{"TWITCH_CLI_CLIENT_ID", cfg.ClientID},
		{"TWITCH_CLI_REDIRECT_URI", cfg.RedirectURI},
		{"TWITCH_CLI_API_URL", cfg.APIBaseURL},
		{"TWITCH_CLI_PLAYER", cfg.Player},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return fmt.Errorf("%s is required", r.name)
		}
	}

	if cfg.HTTPTimeout <= 0 {
		return fmt.Errorf("TWITCH_CLI_HTTP_TIMEOUT must be positive, got %s", cfg.HTTPTimeout)
	}

	return nil
}
