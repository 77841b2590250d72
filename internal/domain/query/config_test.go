package query_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
	"github.com/Zackmartin238/HyFlipper/internal/domain/query"
	"github.com/Zackmartin238/HyFlipper/internal/domain/shared"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       query.Config
		wantField string
	}{
		{
			name: "auction search with sort mode",
			cfg:  query.Config{Mode: query.ModeAuctionSearch, Keyword: "Hyperion", SortMode: auction.SortPriceAscending},
		},
		{
			name: "profit ranking ignores sort mode",
			cfg:  query.Config{Mode: query.ModeProfitRanking},
		},
		{
			name: "supply ranking with limit",
			cfg:  query.Config{Mode: query.ModeSupplyRanking, Limit: 10, MinRealMargin: 1_000},
		},
		{
			name:      "unknown mode",
			cfg:       query.Config{Mode: "bazaar"},
			wantField: "mode",
		},
		{
			name:      "auction search without sort mode",
			cfg:       query.Config{Mode: query.ModeAuctionSearch},
			wantField: "sort_mode",
		},
		{
			name:      "negative limit",
			cfg:       query.Config{Mode: query.ModeSupplyRanking, Limit: -1},
			wantField: "limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			var validationErr *shared.ValidationError
			if assert.ErrorAs(t, err, &validationErr) {
				assert.Equal(t, tt.wantField, validationErr.Field)
			}
		})
	}
}

func TestConfig_SearchCriteria(t *testing.T) {
	cfg := query.Config{
		Mode:       query.ModeAuctionSearch,
		Keyword:    "dragon",
		BuyNowOnly: true,
		SortMode:   auction.SortSoonestEnding,
	}

	criteria := cfg.SearchCriteria()

	assert.Equal(t, auction.SearchCriteria{Keyword: "dragon", BuyNowOnly: true, SortMode: auction.SortSoonestEnding}, criteria)
}
