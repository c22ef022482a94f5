// Package config provides configuration loading and validation for the gallery server.
//
// The package handles YAML configuration files, environment variables, and CLI flags
// with automatic merging and validation using go-playground/validator.
//
// # Configuration Precedence
//
// Values are loaded in this order (later sources override earlier ones):
//
//  1. Default values
//  2. Configuration file(s) - multiple files merged left-to-right
//  3. Environment variables (GALLERY_ prefix, plus PORT)
//  4. CLI flags
//
// # Usage
//
//	cfg, err := config.Load([]string{"gallery.yaml"}, cmd.Flags())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx = config.WithContext(ctx, cfg)
//	cfg, err = config.FromContext(ctx)
//
// # Environment Variables
//
// All config keys map to environment variables with GALLERY_ prefix:
//   - server.port → GALLERY_SERVER_PORT (PORT is also accepted)
//   - static.root → GALLERY_STATIC_ROOT
//   - env → GALLERY_ENV
//
// # Example Configuration
//
//	env: production          # or development (dev/prod aliases accepted)
//	server:
//	  host: ""               # empty: 127.0.0.1 in development, 0.0.0.0 otherwise
//	  port: 5000
//	  timezone: ""           # zone for the theme hour, empty for local time
//	  read_timeout: 15s
//	  write_timeout: 30s
//	  idle_timeout: 60s
//	static:
//	  root: .
//	  index: index.html
//	cors:
//	  enabled: true
//	  allowed_origins: ["http://localhost:*", "http://127.0.0.1:*", "https://*.github.io"]
//	  allowed_methods: [GET, POST, OPTIONS]
//	  allowed_headers: [Content-Type, X-Requested-With]
//	  max_age: 300
//	security:
//	  csp: "default-src 'self'; ..."
//	metrics:
//	  enabled: true
//	  path: /metrics
//	log:
//	  level: info
package config
