package config_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poeticgallery/gallery"
	"github.com/poeticgallery/gallery/config"
	galleryhttp "github.com/poeticgallery/gallery/http"
)

// clearEnv keeps the host environment out of the loaded config.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv("PORT", "")
	t.Setenv("GALLERY_SERVER_PORT", "")
	t.Setenv("GALLERY_ENV", "")
}

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, gallery.EnvProduction, cfg.Env)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Empty(t, cfg.Server.Host)
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, ".", cfg.Static.Root)
	assert.Equal(t, "index.html", cfg.Static.Index)
	assert.Equal(t, galleryhttp.DefaultCORSConfig(), cfg.CORS)
	assert.Equal(t, galleryhttp.DefaultCSP, cfg.Security.CSP)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_ConfigFile(t *testing.T) {
	clearEnv(t)

	configPath := writeConfig(t, "gallery.yaml", `
env: development
server:
  host: localhost
  port: 8080
  timezone: UTC
  read_timeout: 5s
static:
  root: ./public
  index: home.html
security:
  csp: "default-src 'none'"
metrics:
  enabled: false
log:
  level: debug
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, gallery.EnvDevelopment, cfg.Env)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "UTC", cfg.Server.Timezone)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "./public", cfg.Static.Root)
	assert.Equal(t, "home.html", cfg.Static.Index)
	assert.Equal(t, "default-src 'none'", cfg.Security.CSP)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ConfigFileMerge(t *testing.T) {
	clearEnv(t)

	basePath := writeConfig(t, "base.yaml", `
server:
  port: 5000
static:
  root: ./site
log:
  level: info
`)
	overridePath := writeConfig(t, "override.yaml", `
server:
  port: 9000
log:
  level: warn
`)

	cfg, err := config.Load([]string{basePath, overridePath}, nil)
	require.NoError(t, err)

	// Overridden values
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)

	// Preserved values from base
	assert.Equal(t, "./site", cfg.Static.Root)
}

func TestLoad_EnvAlias(t *testing.T) {
	clearEnv(t)

	configPath := writeConfig(t, "gallery.yaml", "env: dev\n")

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.Equal(t, gallery.EnvDevelopment, cfg.Env)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "port too high", content: "server:\n  port: 70000\n"},
		{name: "negative port", content: "server:\n  port: -1\n"},
		{name: "unknown env", content: "env: staging\n"},
		{name: "unknown log level", content: "log:\n  level: verbose\n"},
		{name: "empty index", content: "static:\n  index: \"\"\n"},
		{name: "metrics path without slash", content: "metrics:\n  path: metrics\n"},
		{name: "unknown timezone", content: "server:\n  timezone: Mars/Olympus_Mons\n"},
		{name: "invalid host", content: "server:\n  host: \"not a host\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			configPath := writeConfig(t, "gallery.yaml", tt.content)

			_, err := config.Load([]string{configPath}, nil)

			require.Error(t, err)
			assert.Contains(t, err.Error(), "validate config")
		})
	}
}

func TestLoad_WithCORS(t *testing.T) {
	clearEnv(t)

	configPath := writeConfig(t, "gallery.yaml", `
cors:
  enabled: true
  allowed_origins:
    - https://example.com
    - https://app.example.com
  allowed_methods:
    - GET
  allowed_headers:
    - Content-Type
  max_age: 600
`)

	cfg, err := config.Load([]string{configPath}, nil)
	require.NoError(t, err)

	assert.True(t, cfg.CORS.Enabled)
	assert.Equal(t, []string{"https://example.com", "https://app.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, []string{"GET"}, cfg.CORS.AllowedMethods)
	assert.Equal(t, []string{"Content-Type"}, cfg.CORS.AllowedHeaders)
	assert.Equal(t, 600, cfg.CORS.MaxAge)
}

func TestLoad_EnvironmentVariables(t *testing.T) {
	clearEnv(t)
	t.Setenv("GALLERY_SERVER_PORT", "9090")
	t.Setenv("GALLERY_ENV", "development")
	t.Setenv("GALLERY_STATIC_ROOT", "/srv/gallery")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, gallery.EnvDevelopment, cfg.Env)
	assert.Equal(t, "/srv/gallery", cfg.Static.Root)
}

func TestLoad_PortEnvironmentVariable(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "8123")

	cfg, err := config.Load(nil, nil)
	require.NoError(t, err)

	assert.Equal(t, 8123, cfg.Server.Port)
}

func TestLoad_Flags(t *testing.T) {
	clearEnv(t)
	t.Setenv("GALLERY_SERVER_PORT", "9090")

	flags := pflag.NewFlagSet("serve", pflag.ContinueOnError)
	flags.Int("port", 5000, "")
	flags.Bool("dev", false, "")
	flags.String("static-root", ".", "")
	flags.String("index", "index.html", "")
	require.NoError(t, flags.Parse([]string{"--port", "7000", "--dev", "--static-root", "./www"}))

	cfg, err := config.Load(nil, flags)
	require.NoError(t, err)

	// Flags beat environment
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, gallery.EnvDevelopment, cfg.Env)
	assert.Equal(t, "./www", cfg.Static.Root)
	// Unchanged flags do not override defaults
	assert.Equal(t, "index.html", cfg.Static.Index)
}

func TestConfig_ListenAddr(t *testing.T) {
	tests := []struct {
		name string
		env  gallery.Env
		host string
		want string
	}{
		{name: "production default", env: gallery.EnvProduction, want: "0.0.0.0:5000"},
		{name: "development default", env: gallery.EnvDevelopment, want: "127.0.0.1:5000"},
		{name: "explicit host wins", env: gallery.EnvDevelopment, host: "0.0.0.0", want: "0.0.0.0:5000"},
		{name: "ipv6 host", env: gallery.EnvProduction, host: "::1", want: "[::1]:5000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Env: tt.env}
			cfg.Server.Host = tt.host
			cfg.Server.Port = 5000

			assert.Equal(t, tt.want, cfg.ListenAddr())
		})
	}
}

func TestConfig_Location(t *testing.T) {
	cfg := &config.Config{}

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	cfg.Server.Timezone = "UTC"
	loc, err = cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestFromContext_Missing(t *testing.T) {
	_, err := config.FromContext(context.Background())

	assert.Error(t, err)
}
