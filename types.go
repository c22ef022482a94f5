package gallery

import (
	"fmt"
	"time"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// DefaultBoardID is used when an images request carries no board_id.
const DefaultBoardID = "470072049909241031"

// ThemeNote accompanies every theme suggestion.
const ThemeNote = "Client should use prefers-color-scheme media query"

type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ImagesRequest is the body of POST /api/pinterest/images.
// A nil BoardID means the field was absent.
type ImagesRequest struct {
	BoardID *string `json:"board_id"`
}

type BoardImages struct {
	Images  []string `json:"images"`
	BoardID string   `json:"board_id"`
	Count   int      `json:"count"`
}

type ThemeSuggestion struct {
	Theme Theme  `json:"theme"`
	Hour  int    `json:"hour"`
	Note  string `json:"note"`
}

type Theme string

const (
	ThemeDark  Theme = "dark"
	ThemeLight Theme = "light"
)

func (t Theme) IsValid() bool {
	switch t {
	case ThemeDark, ThemeLight:
		return true
	default:
		return false
	}
}

// ThemeForHour returns ThemeDark for hours in [20,24) and [0,6), ThemeLight otherwise.
func ThemeForHour(hour int) Theme {
	if hour >= 20 || hour < 6 {
		return ThemeDark
	}
	return ThemeLight
}

// Asset describes a static file opened for serving.
type Asset struct {
	Path        string
	ContentType string
	Size        int64
	ModTime     time.Time
}

// AssetEntry is a static file found while walking the static root.
type AssetEntry struct {
	Path        string `json:"path" yaml:"path"`
	Size        int64  `json:"size" yaml:"size"`
	ETag        string `json:"etag" yaml:"etag"`
	ContentType string `json:"content_type" yaml:"content_type"`
}

type Env string

const (
	EnvDevelopment Env = "development"
	EnvProduction  Env = "production"
)

func (e Env) IsValid() bool {
	switch e {
	case EnvDevelopment, EnvProduction:
		return true
	default:
		return false
	}
}

func (e Env) IsDevelopment() bool {
	return e == EnvDevelopment
}

func ParseEnv(s string) (Env, error) {
	switch s {
	case "dev":
		return EnvDevelopment, nil
	case "prod":
		return EnvProduction, nil
	}
	env := Env(s)
	if !env.IsValid() {
		return "", fmt.Errorf("invalid env: %s (valid envs: development, production)", s)
	}
	return env, nil
}
