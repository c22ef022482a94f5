package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/poeticgallery/gallery"
	galleryhttp "github.com/poeticgallery/gallery/http"
)

// configKey is the context key for storing the loaded configuration.
type configKey struct{}

// WithContext returns a new context with the config stored.
func WithContext(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, configKey{}, cfg)
}

// FromContext retrieves the config from context.
// Returns an error if config is not found.
func FromContext(ctx context.Context) (*Config, error) {
	cfg, ok := ctx.Value(configKey{}).(*Config)
	if !ok || cfg == nil {
		return nil, errors.New("config not found in context")
	}
	return cfg, nil
}

// Config is the root configuration struct for the gallery server.
type Config struct {
	Env      gallery.Env            `mapstructure:"env" yaml:"env"`
	Server   ServerConfig           `mapstructure:"server" yaml:"server"`
	Static   StaticConfig           `mapstructure:"static" yaml:"static"`
	CORS     galleryhttp.CORSConfig `mapstructure:"cors" yaml:"cors"`
	Security SecurityConfig         `mapstructure:"security" yaml:"security"`
	Metrics  MetricsConfig          `mapstructure:"metrics" yaml:"metrics"`
	Log      LogConfig              `mapstructure:"log" yaml:"log"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string        `mapstructure:"host" yaml:"host" validate:"omitempty,hostname|ip"`
	Port         int           `mapstructure:"port" yaml:"port" validate:"required,min=1,max=65535"`
	Timezone     string        `mapstructure:"timezone" yaml:"timezone"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" yaml:"read_timeout" validate:"min=0"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" yaml:"write_timeout" validate:"min=0"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout" yaml:"idle_timeout" validate:"min=0"`
}

// StaticConfig holds the static asset root configuration.
type StaticConfig struct {
	Root  string `mapstructure:"root" yaml:"root" validate:"required"`
	Index string `mapstructure:"index" yaml:"index" validate:"required"`
}

// SecurityConfig holds response header configuration.
type SecurityConfig struct {
	CSP string `mapstructure:"csp" yaml:"csp" validate:"required"`
}

// MetricsConfig holds Prometheus endpoint configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Path    string `mapstructure:"path" yaml:"path" validate:"required,startswith=/"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
}

// ListenAddr returns the host:port the server binds to. An explicit host wins;
// otherwise development binds loopback only and production binds all interfaces.
func (c *Config) ListenAddr() string {
	host := c.Server.Host
	if host == "" {
		if c.Env.IsDevelopment() {
			host = "127.0.0.1"
		} else {
			host = "0.0.0.0"
		}
	}
	return net.JoinHostPort(host, strconv.Itoa(c.Server.Port))
}

// Location resolves server.timezone. Empty means the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Server.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Server.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Server.Timezone, err)
	}
	return loc, nil
}

// flagToViperKey maps CLI flag names to viper configuration keys.
var flagToViperKey = map[string]string{
	"host":        "server.host",
	"port":        "server.port",
	"timezone":    "server.timezone",
	"static-root": "static.root",
	"index":       "static.index",
	"log-level":   "log.level",
}

// bindFlags binds CLI flags to viper keys with custom name mapping.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		viperKey := f.Name
		if mapped, ok := flagToViperKey[viperKey]; ok {
			viperKey = mapped
		}

		// Only bind if the flag was explicitly set
		if f.Changed {
			_ = v.BindPFlag(viperKey, f)
		}
	})

	// --dev is a shortcut for env=development
	if f := flags.Lookup("dev"); f != nil && f.Changed && f.Value.String() == "true" {
		v.Set("env", string(gallery.EnvDevelopment))
	}
}

// setDefaults configures default values on the viper instance.
func setDefaults(v *viper.Viper) {
	v.SetDefault("env", string(gallery.EnvProduction))

	v.SetDefault("server.host", "")
	v.SetDefault("server.port", 5000)
	v.SetDefault("server.timezone", "")
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)

	v.SetDefault("static.root", ".")
	v.SetDefault("static.index", "index.html")

	cors := galleryhttp.DefaultCORSConfig()
	v.SetDefault("cors.enabled", cors.Enabled)
	v.SetDefault("cors.allowed_origins", cors.AllowedOrigins)
	v.SetDefault("cors.allowed_methods", cors.AllowedMethods)
	v.SetDefault("cors.allowed_headers", cors.AllowedHeaders)
	v.SetDefault("cors.max_age", cors.MaxAge)

	v.SetDefault("security.csp", galleryhttp.DefaultCSP)

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")

	// Resolved from env in Load when left empty.
	v.SetDefault("log.level", "")
}

// Load reads configuration and returns a validated Config struct.
// Order of precedence (highest to lowest): flags > env > config files > defaults
//
// Parameters:
//   - configFiles: list of config file paths (later files override earlier ones)
//   - flags: cobra flag set for flag binding (can be nil)
func Load(configFiles []string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Read config files
	if len(configFiles) > 0 {
		v.SetConfigFile(configFiles[0])
		if err := v.ReadInConfig(); err != nil {
			slog.Warn("error reading config file", "file", configFiles[0], "err", err)
		}

		for _, cf := range configFiles[1:] {
			v.SetConfigFile(cf)
			if err := v.MergeInConfig(); err != nil {
				slog.Warn("error merging config file", "file", cf, "err", err)
			}
		}
	} else {
		v.SetConfigName("gallery")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		if err := v.ReadInConfig(); err != nil {
			var configNotFound viper.ConfigFileNotFoundError
			if !errors.As(err, &configNotFound) {
				slog.Warn("error reading config file", "err", err)
			}
		}
	}

	// 3. Bind environment variables. PORT is honored for platform deploys.
	v.SetEnvPrefix("GALLERY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "GALLERY_SERVER_PORT", "PORT")

	// 4. Bind flags (if provided)
	if flags != nil {
		bindFlags(v, flags)
	}

	// 5. Unmarshal into Config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	env, err := gallery.ParseEnv(string(cfg.Env))
	if err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	cfg.Env = env

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
		if env.IsDevelopment() {
			cfg.Log.Level = "debug"
		}
	}

	// 6. Validate using go-playground/validator
	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}
