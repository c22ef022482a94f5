package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/poeticgallery/gallery"
)

type Service interface {
	Health(ctx context.Context) gallery.HealthStatus
	BoardImages(ctx context.Context, req gallery.ImagesRequest) (gallery.BoardImages, error)
	Theme(ctx context.Context) gallery.ThemeSuggestion
	Asset(ctx context.Context, path string) (gallery.Asset, io.ReadSeekCloser, error)
}

// CORSConfig controls the CORS policy applied to /api routes.
type CORSConfig struct {
	Enabled        bool     `mapstructure:"enabled" yaml:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age" yaml:"max_age"`
}

// DefaultCORSConfig returns the policy used when none is configured.
func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"http://localhost:*", "http://127.0.0.1:*", "https://*.github.io"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}
}

type HandlerConfig struct {
	CORS        CORSConfig
	CSP         string       // Content-Security-Policy value (default: DefaultCSP)
	Logger      *slog.Logger // default: slog.Default()
	Metrics     *Metrics     // nil disables request metrics
	MetricsPath string       // route for the metrics endpoint, empty to not expose it
}

// Handler provides the HTTP surface of the gallery: the JSON API and static assets.
type Handler struct {
	config  HandlerConfig
	service Service
	logger  *slog.Logger
}

// NewHandler creates a new Handler with the given configuration and service.
func NewHandler(config *HandlerConfig, service Service) *Handler {
	h := &Handler{
		config:  *config,
		service: service,
		logger:  config.Logger,
	}
	if h.logger == nil {
		h.logger = slog.Default()
	}
	if h.config.CSP == "" {
		h.config.CSP = DefaultCSP
	}
	return h
}

// Router returns an http.Handler with every gallery route configured.
// Security headers are set on all responses. CORS applies to /api only.
// Unknown paths and unsupported methods get JSON errors.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(SecurityHeaders(h.config.CSP))
	r.Use(RequestLogger(h.logger))
	if h.config.Metrics != nil {
		r.Use(h.config.Metrics.Middleware)
	}
	r.Use(Recoverer(h.logger))
	r.Use(middleware.GetHead)

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleMethodNotAllowed)

	r.Route("/api", func(r chi.Router) {
		if h.config.CORS.Enabled {
			r.Use(cors.Handler(cors.Options{
				AllowedOrigins: h.config.CORS.AllowedOrigins,
				AllowedMethods: h.config.CORS.AllowedMethods,
				AllowedHeaders: h.config.CORS.AllowedHeaders,
				MaxAge:         h.config.CORS.MaxAge,
			}))
		}
		r.Get("/health", h.handleHealth)
		r.Post("/pinterest/images", h.handleImages)
		r.Get("/system/theme", h.handleTheme)
	})

	if h.config.Metrics != nil && h.config.MetricsPath != "" {
		r.Method(http.MethodGet, h.config.MetricsPath, h.config.Metrics.Handler())
	}

	r.Get("/", h.handleAsset)
	r.Get("/*", h.handleAsset)

	return r
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, http.StatusOK, h.service.Health(r.Context()))
}

func (h *Handler) handleImages(w http.ResponseWriter, r *http.Request) {
	req, err := DecodeImagesRequest(r.Header.Get("Content-Type"), http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	result, err := h.service.BoardImages(r.Context(), req)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}

	_ = WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) handleTheme(w http.ResponseWriter, r *http.Request) {
	_ = WriteJSON(w, http.StatusOK, h.service.Theme(r.Context()))
}

func (h *Handler) handleAsset(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")

	asset, content, err := h.service.Asset(r.Context(), path)
	if err != nil {
		HandleError(w, h.logger, err)
		return
	}
	defer func() { _ = content.Close() }()

	w.Header().Set("Content-Type", asset.ContentType)

	http.ServeContent(w, r, asset.Path, asset.ModTime, content)
}
