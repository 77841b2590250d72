package helpers

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/Zackmartin238/HyFlipper/internal/domain/auction"
)

// FixedTime is the reference "now" used across tests
var FixedTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// ListingFixture describes a listing with only the fields a test cares about
type ListingFixture struct {
	UUID        string
	ItemName    string
	Lore        string
	StartingBid int64
	HighestBid  int64
	EndTime     time.Time
	BuyNow      bool
}

// NewListing builds a valid listing or fails the test
func NewListing(t testing.TB, f ListingFixture) *auction.Listing {
	t.Helper()

	if f.UUID == "" {
		f.UUID = fmt.Sprintf("auction-%s-%d", f.ItemName, f.StartingBid)
	}
	if f.EndTime.IsZero() {
		f.EndTime = FixedTime.Add(time.Hour)
	}

	listing, err := auction.NewListing(f.UUID, f.ItemName, f.Lore, "seller-1", f.StartingBid, f.HighestBid, f.EndTime, f.BuyNow)
	if err != nil {
		t.Fatalf("invalid listing fixture %+v: %v", f, err)
	}
	return listing
}

// LogEntry is one captured log call
type LogEntry struct {
	Level    string
	Message  string
	Metadata map[string]interface{}
}

// CapturingLogger records every log call for assertions
type CapturingLogger struct {
	mu      sync.Mutex
	entries []LogEntry
}

// NewCapturingLogger creates an empty capturing logger
func NewCapturingLogger() *CapturingLogger {
	return &CapturingLogger{}
}

func (l *CapturingLogger) Log(level, message string, metadata map[string]interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, LogEntry{Level: level, Message: message, Metadata: metadata})
}

// Entries returns a copy of the captured entries
func (l *CapturingLogger) Entries() []LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]LogEntry(nil), l.entries...)
}

// HasLevel reports whether any entry was logged at level
func (l *CapturingLogger) HasLevel(level string) bool {
	for _, e := range l.Entries() {
		if e.Level == level {
			return true
		}
	}
	return false
}
