package auction

import "fmt"

// SortMode selects the ordering applied after filtering
type SortMode string

const (
	// SortPriceAscending orders by starting bid, lowest first
	SortPriceAscending SortMode = "price-ascending"

	// SortPriceDescending orders by starting bid, highest first
	SortPriceDescending SortMode = "price-descending"

	// SortSoonestEnding orders by end time, earliest first
	SortSoonestEnding SortMode = "soonest-ending"
)

// SortModes lists every supported ordering, in menu order
func SortModes() []SortMode {
	return []SortMode{SortPriceAscending, SortPriceDescending, SortSoonestEnding}
}

// ParseSortMode converts a string into a SortMode.
// An unrecognized value is an error; no default ordering is guessed.
func ParseSortMode(s string) (SortMode, error) {
	mode := SortMode(s)
	if !mode.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSortMode, s)
	}
	return mode, nil
}

// IsValid reports whether the mode is one of the supported orderings
func (m SortMode) IsValid() bool {
	switch m {
	case SortPriceAscending, SortPriceDescending, SortSoonestEnding:
		return true
	}
	return false
}

func (m SortMode) String() string {
	return string(m)
}
