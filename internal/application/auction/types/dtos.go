package types

// ListingDTO is a display-ready auction listing
type ListingDTO struct {
	UUID               string `json:"uuid"`
	ItemName           string `json:"item_name"`
	Lore               string `json:"lore"`
	SellerID           string `json:"seller_id"`
	StartingBid        int64  `json:"starting_bid"`
	HighestBid         int64  `json:"highest_bid"`
	StartingBidDisplay string `json:"starting_bid_display"`
	HighestBidDisplay  string `json:"highest_bid_display"`
	EndTime            string `json:"end_time"`
	TimeLeft           string `json:"time_left"`
	BuyNow             bool   `json:"buy_now"`
}
