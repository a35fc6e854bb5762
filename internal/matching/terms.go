package matching

import (
	"strings"

	"github.com/plateful/pricing-service/internal/types"
)

// prepWords are preparation descriptors that appear on recipe lines but
// hurt catalog search recall ("finely chopped yellow onion" -> "yellow onion").
var prepWords = map[string]bool{
	"chopped": true, "diced": true, "minced": true, "sliced": true,
	"shredded": true, "grated": true, "crushed": true, "finely": true,
	"coarsely": true, "thinly": true, "roughly": true, "freshly": true,
	"peeled": true, "pitted": true, "halved": true, "cubed": true,
	"softened": true, "melted": true, "beaten": true, "divided": true,
	"optional": true, "taste": true,
}

// BuildSearchTerms produces the ordered search phrasings for an ingredient:
// the cleaned name first, then a generalized form with preparation words
// stripped, then a category-specific variant. The caller issues them in
// order and stops once it has collected enough candidates.
func BuildSearchTerms(ing types.Ingredient) []string {
	name := strings.ToLower(strings.TrimSpace(ing.Name))
	// Recipe lines often carry trailing clauses: "scallions, thinly sliced".
	if idx := strings.Index(name, ","); idx > 0 {
		name = name[:idx]
	}

	var kept []string
	for _, w := range strings.Fields(name) {
		if prepWords[w] {
			continue
		}
		kept = append(kept, w)
	}
	generalized := strings.Join(kept, " ")

	if generalized == "" {
		generalized = name
	}

	terms := []string{name}
	if generalized != name {
		terms = append(terms, generalized)
	}
	if ClassifyCategory(name) == CategoryProduce && !strings.HasPrefix(generalized, "fresh ") {
		terms = append(terms, "fresh "+generalized)
	}
	return dedupeStrings(terms)
}

func dedupeStrings(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
