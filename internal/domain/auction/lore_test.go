package auction_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
)

func TestCleanLore(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"strips color codes", "§6Legendary §lSword", "Legendary Sword"},
		{"keeps line breaks", "§7Damage: §c+260\n§7Strength: §c+150", "Damage: +260\nStrength: +150"},
		{"clean text unchanged", "Plain lore", "Plain lore"},
		{"empty", "", ""},
		{"trailing marker dropped", "Ends with §", "Ends with "},
		{"marker eats next rune only", "§§a", "a"},
		{"escape before multibyte rune", "§✪Stars", "Stars"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, auction.CleanLore(tt.input))
		})
	}
}

func TestCleanLore_IsIdempotent(t *testing.T) {
	once := auction.CleanLore("§5§oA §dmythic §5item")
	assert.Equal(t, once, auction.CleanLore(once))
}
