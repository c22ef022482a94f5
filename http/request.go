package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"strings"

	"github.com/poeticgallery/gallery"
)

const maxBodyBytes = 1 << 20

// IsJSONContentType reports whether contentType is application/json or an
// application/*+json type.
func IsJSONContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json" ||
		(strings.HasPrefix(mediaType, "application/") && strings.HasSuffix(mediaType, "+json"))
}

// DecodeImagesRequest reads the body of an images request.
//
// The body must be a single JSON object sent with a JSON content type.
// A missing board_id key leaves BoardID nil. An empty-like board_id
// (null, false, 0, [] or {}) becomes an empty ID, which validation rejects.
// Any other non-string board_id is ErrMalformedBody.
func DecodeImagesRequest(contentType string, r io.Reader) (gallery.ImagesRequest, error) {
	if !IsJSONContentType(contentType) {
		return gallery.ImagesRequest{}, fmt.Errorf("%w: content type %q", ErrNotJSONRequest, contentType)
	}

	dec := json.NewDecoder(r)

	var fields map[string]json.RawMessage
	if err := dec.Decode(&fields); err != nil {
		return gallery.ImagesRequest{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}
	if fields == nil {
		return gallery.ImagesRequest{}, fmt.Errorf("%w: body is null", ErrMalformedBody)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return gallery.ImagesRequest{}, fmt.Errorf("%w: data after the JSON object", ErrMalformedBody)
	}

	raw, ok := fields["board_id"]
	if !ok {
		return gallery.ImagesRequest{}, nil
	}

	boardID, err := boardIDValue(raw)
	if err != nil {
		return gallery.ImagesRequest{}, fmt.Errorf("%w: board_id: %w", ErrMalformedBody, err)
	}

	return gallery.ImagesRequest{BoardID: &boardID}, nil
}

func boardIDValue(raw json.RawMessage) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return "", err
	}

	empty := false
	switch v := v.(type) {
	case string:
		return v, nil
	case nil:
		empty = true
	case bool:
		empty = !v
	case json.Number:
		f, err := v.Float64()
		empty = err == nil && f == 0
	case []any:
		empty = len(v) == 0
	case map[string]any:
		empty = len(v) == 0
	}

	if !empty {
		return "", fmt.Errorf("unsupported value %s", raw)
	}
	return "", nil
}
