package auction

import (
	"fmt"
	"sort"
	"strings"
)

// SearchCriteria holds the auction-search part of a query configuration
type SearchCriteria struct {
	Keyword    string
	BuyNowOnly bool
	SortMode   SortMode
}

// FilterAndSort applies the keyword and buy-now predicates to a listing set and
// orders the remainder.
//
// Rules:
//  1. Keep listings whose item name contains Keyword, case-insensitively (empty keeps all)
//  2. Keep listings whose buy-now flag equals BuyNowOnly
//  3. Order by SortMode; the sort is stable so ties keep their page order
//
// The input slice is not modified.
func FilterAndSort(listings []*Listing, criteria SearchCriteria) ([]*Listing, error) {
	if !criteria.SortMode.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortMode, criteria.SortMode)
	}

	keyword := strings.ToLower(criteria.Keyword)
	filtered := make([]*Listing, 0, len(listings))
	for _, l := range listings {
		if l == nil {
			continue
		}
		if keyword != "" && !strings.Contains(strings.ToLower(l.ItemName()), keyword) {
			continue
		}
		if l.IsBuyNow() != criteria.BuyNowOnly {
			continue
		}
		filtered = append(filtered, l)
	}

	switch criteria.SortMode {
	case SortPriceAscending:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].StartingBid() < filtered[j].StartingBid()
		})
	case SortPriceDescending:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].StartingBid() > filtered[j].StartingBid()
		})
	case SortSoonestEnding:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].endTimeKey() < filtered[j].endTimeKey()
		})
	}

	return filtered, nil
}
