// Package http provides the HTTP server for the gallery.
//
// It serves a small JSON API under /api and the static gallery front end
// from every other path.
//
// # Routes
//
//	GET  /api/health            liveness and version
//	POST /api/pinterest/images  placeholder images for a board
//	GET  /api/system/theme      dark/light suggestion from the server hour
//	GET  /                      the index file
//	GET  /*                     any file under the static root
//
// # Errors
//
// Every error is a JSON object with a single "error" field:
//
//	400 {"error":"Invalid board ID"}
//	404 {"error":"Resource not found"}
//	405 {"error":"Method not allowed"}
//	500 {"error":"Internal server error"}
//
// Internal error details are logged, never returned.
//
// # Middleware
//
// SecurityHeaders sets nosniff, frame denial, XSS protection, HSTS and the
// Content-Security-Policy on all responses. CORS is applied only to /api routes.
// RequestLogger assigns an X-Request-ID, and Recoverer converts panics into 500s.
// Optional Prometheus metrics are recorded per chi route pattern.
//
// # Usage
//
//	handlerCfg := http.HandlerConfig{
//	    CORS:        http.DefaultCORSConfig(),
//	    Logger:      logger,
//	    Metrics:     http.NewMetrics(),
//	    MetricsPath: "/metrics",
//	}
//	handler := http.NewHandler(&handlerCfg, service)
//	http.ListenAndServe(":5000", handler.Router())
package http
