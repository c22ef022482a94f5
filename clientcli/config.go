package clientcli

import (
	"cmp"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// DefaultEndpoint is the server used when nothing else is configured.
const DefaultEndpoint = "http://localhost:5000"

// Environment variables read by the client.
const (
	EnvEndpoint   = "GALLERY_ENDPOINT"
	EnvBoardID    = "GALLERY_BOARD_ID"
	EnvProfile    = "GALLERY_PROFILE"
	EnvConfigPath = "GALLERY_CONFIG"
)

// Config is the resolved connection for a single server.
// An empty BoardID leaves the choice of board to the server.
type Config struct {
	Endpoint string
	BoardID  string
	Timeout  time.Duration
}

// Validate checks that Endpoint, when set, is an absolute http or https URL.
func (c *Config) Validate() error {
	if c.Endpoint == "" {
		return nil
	}
	u, err := url.Parse(c.Endpoint)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidEndpoint, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: %q must be an http(s) URL", ErrInvalidEndpoint, c.Endpoint)
	}
	return nil
}

// WithDefaults returns a copy with the default endpoint and timeout filled in.
func (c *Config) WithDefaults() *Config {
	cfg := *c
	cfg.Endpoint = cmp.Or(cfg.Endpoint, DefaultEndpoint)
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &cfg
}

// ConfigFromEnv reads GALLERY_ENDPOINT and GALLERY_BOARD_ID.
func ConfigFromEnv() Config {
	return Config{
		Endpoint: os.Getenv(EnvEndpoint),
		BoardID:  os.Getenv(EnvBoardID),
	}
}

// MergeConfig layers configs in order. Set fields of later layers win.
func MergeConfig(layers ...Config) *Config {
	var out Config
	for _, l := range layers {
		out.Endpoint = cmp.Or(l.Endpoint, out.Endpoint)
		out.BoardID = cmp.Or(l.BoardID, out.BoardID)
		if l.Timeout > 0 {
			out.Timeout = l.Timeout
		}
	}
	return &out
}

// DefaultConfigPath is ~/.gallery/config.yaml, or "" without a home directory.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".gallery", "config.yaml")
}
