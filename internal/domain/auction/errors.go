package auction

import "errors"

var (
	// ErrInvalidBid is returned when a listing carries a negative bid amount
	ErrInvalidBid = errors.New("invalid bid amount")

	// ErrInvalidSortMode is returned when a sort mode is not one of the known orderings
	ErrInvalidSortMode = errors.New("invalid sort mode")
)
