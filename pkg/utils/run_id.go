package utils

import (
	"strings"

	"github.com/google/uuid"
)

// GenerateRunID creates a short, human-readable id for a query invocation.
// Format: {mode}-{8charHexUUID}
//
// Example:
//   - Input: mode="supply-ranking"
//   - Output: "supply-ranking-a3f8e2b1"
func GenerateRunID(mode string) string {
	if mode == "" {
		mode = "query"
	}
	return mode + "-" + generateShortUUID()
}

// generateShortUUID creates an 8-character hex string from a UUID.
func generateShortUUID() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:8]
}
