package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/poeticgallery/gallery"
)

// Client-facing error messages. No internal detail is ever sent to clients.
const (
	MsgInvalidBoardID   = "Invalid board ID"
	MsgNotFound         = "Resource not found"
	MsgMethodNotAllowed = "Method not allowed"
	MsgInternal         = "Internal server error"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type.
// Known internal failures are logged as warnings, anything unrecognised as an error.
func HandleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	if logger == nil {
		logger = slog.Default()
	}

	if errors.Is(err, gallery.ErrInvalidBoardID) {
		logger.Debug("invalid request", "error", err)
		WriteError(w, http.StatusBadRequest, MsgInvalidBoardID)
		return
	}

	if errors.Is(err, gallery.ErrNotFound) {
		logger.Debug("not found", "error", err)
		WriteError(w, http.StatusNotFound, MsgNotFound)
		return
	}

	if errors.Is(err, gallery.ErrInternal) {
		logger.Warn("request failed", "error", err)
		WriteError(w, http.StatusInternalServerError, MsgInternal)
		return
	}

	logger.Error("unexpected error", "error", err)
	WriteError(w, http.StatusInternalServerError, MsgInternal)
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
