package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zackmartin238/HyFlipper/internal/domain/catalog"
)

func TestIncreaseRarity(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"COMMON", "UNCOMMON"},
		{"UNCOMMON", "RARE"},
		{"RARE", "EPIC"},
		{"EPIC", "LEGENDARY"},
		{"LEGENDARY", "MYTHIC"},
		{"MYTHIC", "DIVINE"},
		{"DIVINE", "SPECIAL"},
		{"SPECIAL", "VERY SPECIAL"},
		{"VERY SPECIAL", "VERY SPECIAL"},
		{"ULTIMATE", "ULTIMATE"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, catalog.IncreaseRarity(tt.input))
		})
	}
}

func TestRarity_Rank(t *testing.T) {
	assert.Equal(t, 0, catalog.RarityCommon.Rank())
	assert.Equal(t, 8, catalog.RarityVerySpecial.Rank())
	assert.Equal(t, -1, catalog.Rarity("common").Rank())
	assert.Less(t, catalog.RarityEpic.Rank(), catalog.RarityEpic.Next().Rank())
}
