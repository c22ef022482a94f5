package http_test

import (
	"strings"
	"testing"

	"github.com/poeticgallery/gallery"
	galleryhttp "github.com/poeticgallery/gallery/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeImagesRequest(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantNil   bool
		wantID    string
		wantError bool
	}{
		{name: "board id present", body: `{"board_id":"123"}`, wantID: "123"},
		{name: "empty object", body: `{}`, wantNil: true},
		{name: "other keys ignored", body: `{"foo":"bar"}`, wantNil: true},
		{name: "empty board id", body: `{"board_id":""}`, wantID: ""},
		{name: "null board id", body: `{"board_id":null}`, wantID: ""},
		{name: "zero board id", body: `{"board_id":0}`, wantID: ""},
		{name: "negative zero board id", body: `{"board_id":-0.0}`, wantID: ""},
		{name: "false board id", body: `{"board_id":false}`, wantID: ""},
		{name: "empty list board id", body: `{"board_id":[]}`, wantID: ""},
		{name: "empty object board id", body: `{"board_id":{}}`, wantID: ""},
		{name: "trailing whitespace", body: "{\"board_id\":\"7\"}\n  ", wantID: "7"},
		{name: "numeric board id", body: `{"board_id":123}`, wantError: true},
		{name: "true board id", body: `{"board_id":true}`, wantError: true},
		{name: "list board id", body: `{"board_id":["1"]}`, wantError: true},
		{name: "trailing text", body: `{"board_id":"1"} trailing`, wantError: true},
		{name: "two objects", body: `{}{}`, wantError: true},
		{name: "array body", body: `[1,2]`, wantError: true},
		{name: "null body", body: `null`, wantError: true},
		{name: "string body", body: `"123"`, wantError: true},
		{name: "empty body", body: ``, wantError: true},
		{name: "truncated json", body: `{"board_id":`, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := galleryhttp.DecodeImagesRequest("application/json", strings.NewReader(tt.body))

			if tt.wantError {
				assert.ErrorIs(t, err, galleryhttp.ErrMalformedBody)
				assert.ErrorIs(t, err, gallery.ErrInternal)
				return
			}

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, req.BoardID)
				return
			}
			require.NotNil(t, req.BoardID)
			assert.Equal(t, tt.wantID, *req.BoardID)
		})
	}
}

func TestDecodeImagesRequest_ContentType(t *testing.T) {
	for _, ct := range []string{"", "text/plain", "application/x-www-form-urlencoded", "multipart/form-data; boundary=x", "application/json-ish"} {
		t.Run("rejects "+ct, func(t *testing.T) {
			_, err := galleryhttp.DecodeImagesRequest(ct, strings.NewReader(`{"board_id":"1"}`))

			assert.ErrorIs(t, err, galleryhttp.ErrNotJSONRequest)
			assert.ErrorIs(t, err, gallery.ErrInternal)
		})
	}

	for _, ct := range []string{"application/json", "application/json; charset=utf-8", "Application/JSON", "application/vnd.api+json"} {
		t.Run("accepts "+ct, func(t *testing.T) {
			req, err := galleryhttp.DecodeImagesRequest(ct, strings.NewReader(`{"board_id":"1"}`))

			require.NoError(t, err)
			require.NotNil(t, req.BoardID)
			assert.Equal(t, "1", *req.BoardID)
		})
	}
}
