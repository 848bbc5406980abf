package pagination

import (
	"errors"
	"fmt"
)

// ErrPageOutOfRange is wrapped by every PageRangeError.
var ErrPageOutOfRange = errors.New("page number out of range")

// PageRangeError is returned when a caller asks for a page outside
// [1, TotalPages]. It indicates a caller defect and is never clamped.
type PageRangeError struct {
	Page       int
	TotalPages int
}

// Error implements the error interface.
func (e *PageRangeError) Error() string {
	if e.Page < 1 {
		return fmt.Sprintf("page %d below 1: %v", e.Page, ErrPageOutOfRange)
	}
	return fmt.Sprintf("page %d outside [1, %d]: %v", e.Page, e.TotalPages, ErrPageOutOfRange)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *PageRangeError) Unwrap() error {
	return ErrPageOutOfRange
}
