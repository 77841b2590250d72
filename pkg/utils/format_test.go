package utils_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Zackmartin238/HyFlipper/pkg/utils"
)

func TestFormatCoins(t *testing.T) {
	assert.Equal(t, "1,000,000", utils.FormatCoins(1_000_000))
	assert.Equal(t, "999", utils.FormatCoins(999))
	assert.Equal(t, "0", utils.FormatCoins(0))
}

func TestFormatRoundedCoins_RoundsHalfToEven(t *testing.T) {
	assert.Equal(t, "2", utils.FormatRoundedCoins(2.5))
	assert.Equal(t, "4", utils.FormatRoundedCoins(3.5))
	assert.Equal(t, "1,234,568", utils.FormatRoundedCoins(1_234_567.6))
	assert.Equal(t, "-1,500", utils.FormatRoundedCoins(-1_500))
}

func TestFormatMagnitude(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{1_500_000_000, "1.5b"},
		{2_340_000, "2.3m"},
		{750_000, "750k"},
		{1_000, "1k"},
		{999, "999"},
		{12.5, "12.5"},
		{-5_000_000, "-5000000"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, utils.FormatMagnitude(tt.value), "value %v", tt.value)
	}
}

func TestFormatTimestamp_UsesUTC(t *testing.T) {
	local := time.Date(2024, 3, 10, 8, 30, 0, 0, time.FixedZone("UTC+2", 2*3600))

	assert.Equal(t, "2024-03-10 06:30:00", utils.FormatTimestamp(local))
}

func TestFormatTimeLeft(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		left     time.Duration
		expected string
	}{
		{"all components", 7*24*time.Hour + 2*24*time.Hour + 3*time.Hour + 4*time.Minute + 5*time.Second, "1w, 2d, 3h, 4m, 5s"},
		{"zero components omitted", time.Hour + 5*time.Second, "1h, 5s"},
		{"seconds always shown", 2 * time.Minute, "2m, 0s"},
		{"ending now", 0, "0s"},
		{"sub-second truncates", 900 * time.Millisecond, "0s"},
		{"past end time", -time.Second, "-1w, 6d, 23h, 59m, 59s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, utils.FormatTimeLeft(now.Add(tt.left), now))
		})
	}
}

func TestFloorDivMod(t *testing.T) {
	q, r := utils.FloorDivMod(7, 3)
	assert.Equal(t, [2]int64{2, 1}, [2]int64{q, r})

	q, r = utils.FloorDivMod(-7, 3)
	assert.Equal(t, [2]int64{-3, 2}, [2]int64{q, r})

	q, r = utils.FloorDivMod(-6, 3)
	assert.Equal(t, [2]int64{-2, 0}, [2]int64{q, r})
}

func TestGenerateRunID(t *testing.T) {
	id := utils.GenerateRunID("supply-ranking")
	other := utils.GenerateRunID("supply-ranking")

	assert.True(t, strings.HasPrefix(id, "supply-ranking-"))
	assert.Len(t, strings.TrimPrefix(id, "supply-ranking-"), 8)
	assert.NotEqual(t, id, other)
	assert.True(t, strings.HasPrefix(utils.GenerateRunID(""), "query-"))
}
