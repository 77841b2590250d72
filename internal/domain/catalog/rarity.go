package catalog

// Rarity is an item tier
type Rarity string

const (
	RarityCommon      Rarity = "COMMON"
	RarityUncommon    Rarity = "UNCOMMON"
	RarityRare        Rarity = "RARE"
	RarityEpic        Rarity = "EPIC"
	RarityLegendary   Rarity = "LEGENDARY"
	RarityMythic      Rarity = "MYTHIC"
	RarityDivine      Rarity = "DIVINE"
	RaritySpecial     Rarity = "SPECIAL"
	RarityVerySpecial Rarity = "VERY SPECIAL"
)

// rarityProgression is the fixed total order of tiers, lowest first
var rarityProgression = []Rarity{
	RarityCommon,
	RarityUncommon,
	RarityRare,
	RarityEpic,
	RarityLegendary,
	RarityMythic,
	RarityDivine,
	RaritySpecial,
	RarityVerySpecial,
}

// Next returns the tier one above r. The top tier and unrecognized
// values are returned unchanged.
func (r Rarity) Next() Rarity {
	for i, tier := range rarityProgression[:len(rarityProgression)-1] {
		if tier == r {
			return rarityProgression[i+1]
		}
	}
	return r
}

// Rank returns the position of r in the progression, or -1 if unknown
func (r Rarity) Rank() int {
	for i, tier := range rarityProgression {
		if tier == r {
			return i
		}
	}
	return -1
}

// IncreaseRarity is the string form of Rarity.Next
func IncreaseRarity(rarity string) string {
	return string(Rarity(rarity).Next())
}
