package main

import (
	"io"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/lmittmann/tint"

	"github.com/poeticgallery/gallery"
)

// newLogger builds the process logger: colored tint output in development,
// JSON with a UTC "ts" key otherwise. The standard log package is routed through it.
func newLogger(w io.Writer, env gallery.Env, levelStr string) *slog.Logger {
	isDev := env.IsDevelopment()

	if levelStr == "" {
		if isDev {
			levelStr = "debug"
		} else {
			levelStr = "info"
		}
	}
	level := parseLevel(levelStr)

	var h slog.Handler
	if isDev {
		h = tint.NewHandler(w, &tint.Options{
			Level:      level,
			AddSource:  true,
			TimeFormat: "15:04:05.000",
		})
	} else {
		h = slog.NewJSONHandler(w, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
				if a.Key == slog.TimeKey && len(groups) == 0 {
					return slog.String("ts", a.Value.Time().UTC().Format(time.RFC3339Nano))
				}
				return a
			},
		})
	}

	logger := slog.New(h)

	log.SetFlags(0)
	log.SetOutput(slog.NewLogLogger(h, slog.LevelInfo).Writer())

	return logger
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
