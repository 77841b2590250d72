package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
)

// TimestampLayout is the human-readable UTC layout used for auction end times
const TimestampLayout = "2006-01-02 15:04:05"

// FormatCoins renders a whole coin amount with thousands separators ("1,000,000")
func FormatCoins(amount int64) string {
	return humanize.Comma(amount)
}

// FormatRoundedCoins rounds a price to a whole number (half to even) and
// renders it with thousands separators
func FormatRoundedCoins(amount float64) string {
	return humanize.Comma(int64(math.RoundToEven(amount)))
}

// FormatMagnitude abbreviates large amounts for ranked tables:
//
//	>= 1e9  "1.5b"
//	>= 1e6  "2.3m"
//	>= 1e3  "750k"
//	else    the raw number
//
// Presentation only; never use the result as a sort key.
func FormatMagnitude(value float64) string {
	switch {
	case value >= 1e9:
		return fmt.Sprintf("%.1fb", value/1e9)
	case value >= 1e6:
		return fmt.Sprintf("%.1fm", value/1e6)
	case value >= 1e3:
		return fmt.Sprintf("%.0fk", value/1e3)
	default:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
}

// FormatTimestamp renders an instant as "2006-01-02 15:04:05" in UTC
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// FormatTimeLeft breaks the time from now until end into weeks, days, hours,
// minutes and seconds ("1w, 2d, 3h, 4m, 5s"). Zero components are omitted,
// except seconds which are always shown. Past end times produce a negative
// week/day component with non-negative clock parts.
//
// The result depends on now and must be computed fresh at render time.
func FormatTimeLeft(end, now time.Time) string {
	totalSeconds, _ := FloorDivMod(end.Sub(now).Nanoseconds(), int64(time.Second))

	days, secs := FloorDivMod(totalSeconds, 86400)
	weeks, days := FloorDivMod(days, 7)
	hours, secs := FloorDivMod(secs, 3600)
	minutes, secs := FloorDivMod(secs, 60)

	parts := make([]string, 0, 5)
	if weeks != 0 {
		parts = append(parts, fmt.Sprintf("%dw", weeks))
	}
	if days != 0 {
		parts = append(parts, fmt.Sprintf("%dd", days))
	}
	if hours != 0 {
		parts = append(parts, fmt.Sprintf("%dh", hours))
	}
	if minutes != 0 {
		parts = append(parts, fmt.Sprintf("%dm", minutes))
	}
	parts = append(parts, fmt.Sprintf("%ds", secs))

	return strings.Join(parts, ", ")
}
