package auction

import (
	"time"
)

// Listing is a single auction-house record as fetched from a provider page.
//
// Immutability: all fields are private with read-only getters; a Listing is
// created per page and discarded once the query's ranked output is produced.
type Listing struct {
	uuid        string
	itemName    string
	lore        string
	sellerID    string
	startingBid int64
	highestBid  int64
	endTime     time.Time
	buyNow      bool
}

// NewListing creates a listing with validation.
//
// Returns error if:
//   - startingBid or highestBid is negative
func NewListing(
	uuid string,
	itemName string,
	lore string,
	sellerID string,
	startingBid int64,
	highestBid int64,
	endTime time.Time,
	buyNow bool,
) (*Listing, error) {
	if startingBid < 0 || highestBid < 0 {
		return nil, ErrInvalidBid
	}

	return &Listing{
		uuid:        uuid,
		itemName:    itemName,
		lore:        lore,
		sellerID:    sellerID,
		startingBid: startingBid,
		highestBid:  highestBid,
		endTime:     endTime.UTC(),
		buyNow:      buyNow,
	}, nil
}

// UUID returns the auction identifier
func (l *Listing) UUID() string {
	return l.uuid
}

// ItemName returns the item display name
func (l *Listing) ItemName() string {
	return l.itemName
}

// Lore returns the raw lore text, formatting markers included
func (l *Listing) Lore() string {
	return l.lore
}

// SellerID returns the auctioneer identifier
func (l *Listing) SellerID() string {
	return l.sellerID
}

// StartingBid returns the opening (or BIN) price
func (l *Listing) StartingBid() int64 {
	return l.startingBid
}

// HighestBid returns the current highest bid amount
func (l *Listing) HighestBid() int64 {
	return l.highestBid
}

// EndTime returns when the auction ends (UTC)
func (l *Listing) EndTime() time.Time {
	return l.endTime
}

// IsBuyNow returns true for buy-it-now listings
func (l *Listing) IsBuyNow() bool {
	return l.buyNow
}

// endTimeKey is the ordering key for soonest-ending sorts; a missing end time sorts as epoch 0.
func (l *Listing) endTimeKey() int64 {
	if l.endTime.IsZero() {
		return 0
	}
	return l.endTime.UnixMilli()
}
