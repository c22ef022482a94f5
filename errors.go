package gallery

import "errors"

var (
	// ErrNotFound is returned when a route or static asset does not exist
	ErrNotFound = errors.New("not found")
	// ErrInternal marks a known failure that is answered with a bare 500
	ErrInternal = errors.New("internal error")
	// ErrInvalidBoardID is returned when a board ID is empty or not all decimal digits
	ErrInvalidBoardID = errors.New("invalid board id")
)
