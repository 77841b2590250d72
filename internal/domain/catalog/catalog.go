package catalog

// UnknownItemName is shown when a tag is missing from the item catalog
const UnknownItemName = "Unknown Item"

// Entry is one item of the catalog feed
type Entry struct {
	Tag  string
	Name string
}

// Catalog is a read-only tag → display name lookup table built from the item feed.
// It is never mutated after construction.
type Catalog struct {
	names map[string]string
}

// NewCatalog indexes entries by tag. On duplicate tags the first entry wins.
func NewCatalog(entries []Entry) *Catalog {
	names := make(map[string]string, len(entries))
	for _, e := range entries {
		if e.Tag == "" {
			continue
		}
		if _, exists := names[e.Tag]; exists {
			continue
		}
		names[e.Tag] = e.Name
	}
	return &Catalog{names: names}
}

// Lookup returns the display name for a tag and whether the tag is known
func (c *Catalog) Lookup(tag string) (string, bool) {
	if c == nil {
		return "", false
	}
	name, ok := c.names[tag]
	return name, ok
}

// DisplayName resolves a tag, falling back to UnknownItemName.
// A missing tag is not an error.
func (c *Catalog) DisplayName(tag string) string {
	if name, ok := c.Lookup(tag); ok {
		return name
	}
	return UnknownItemName
}

// Len returns the number of distinct tags
func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.names)
}
