package clientcli

// HealthResult is the response of GET /api/health.
type HealthResult struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ImagesResult is the response of POST /api/pinterest/images.
type ImagesResult struct {
	Images  []string `json:"images"`
	BoardID string   `json:"board_id"`
	Count   int      `json:"count"`
}

// ThemeResult is the response of GET /api/system/theme.
type ThemeResult struct {
	Theme string `json:"theme"`
	Hour  int    `json:"hour"`
	Note  string `json:"note"`
}

// imagesRequest is the body sent to the images endpoint.
// An empty BoardID is omitted so the server applies its default board.
type imagesRequest struct {
	BoardID string `json:"board_id,omitempty"`
}

// serverError mirrors the JSON error body returned by the server.
type serverError struct {
	Error string `json:"error"`
}
