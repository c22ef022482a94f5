package http

import (
	"fmt"

	"github.com/poeticgallery/gallery"
)

// Request body errors. Both answer 500, the same as any failed body parse.
var (
	ErrMalformedBody  = fmt.Errorf("malformed request body: %w", gallery.ErrInternal)
	ErrNotJSONRequest = fmt.Errorf("request body is not JSON: %w", gallery.ErrInternal)
)
