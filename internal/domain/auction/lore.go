package auction

import "strings"

// formattingMarker starts a two-character color/style escape in item lore
const formattingMarker = '§'

// CleanLore strips every formatting escape from lore text. An escape is the
// marker rune plus the rune after it; both are dropped without interpretation.
// Cleaning clean text is a no-op.
func CleanLore(lore string) string {
	if !strings.ContainsRune(lore, formattingMarker) {
		return lore
	}

	var b strings.Builder
	b.Grow(len(lore))

	skipNext := false
	for _, r := range lore {
		if skipNext {
			skipNext = false
			continue
		}
		if r == formattingMarker {
			skipNext = true
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
