package optimizer

import "strings"

// specialtyKeywords lists ingredient keywords that are typically only
// stocked (or are substantially better) at ethnic or specialty stores.
// Data-driven on purpose: extending coverage to a new cuisine means adding
// rows, not code.
var specialtyKeywords = []string{
	// Japanese
	"dashi", "miso", "okonomiyaki", "mirin", "sake", "nori", "wasabi",
	"kombu", "bonito", "katsuobushi", "panko", "shiso",
	// broader East/Southeast Asian
	"soy sauce", "rice vinegar", "fish sauce", "oyster sauce", "hoisin",
	"gochujang", "kimchi", "sambal", "sriracha", "tamarind", "lemongrass",
	"galangal", "shaoxing", "five spice", "black bean sauce",
	// specialty sauces and condiments
	"okonomiyaki sauce", "teriyaki", "ponzu", "yuzu", "furikake",
}

// IsSpecialtyIngredient reports whether an ingredient should prefer an
// ethnic/specialty store when the primary store has no priced option.
func IsSpecialtyIngredient(name string) bool {
	n := strings.ToLower(name)
	for _, kw := range specialtyKeywords {
		if strings.Contains(n, kw) {
			return true
		}
	}
	return false
}
