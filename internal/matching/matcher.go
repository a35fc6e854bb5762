package matching

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/types"
	"github.com/plateful/pricing-service/internal/units"
)

// Weights configures how the individual signals combine into one score.
// They must sum to at most 1 so the combined score stays inside [0,1]
// before penalties.
type Weights struct {
	Title        float64
	Category     float64
	Size         float64
	Availability float64
	Promo        float64
}

// DefaultWeights returns the production signal weights.
func DefaultWeights() Weights {
	return Weights{
		Title:        0.45,
		Category:     0.25,
		Size:         0.15,
		Availability: 0.10,
		Promo:        0.05,
	}
}

// PenaltyRule is a named correction for a known false-positive collision:
// a product whose title overlaps an ingredient heavily but belongs to the
// wrong department. The rule fires when the candidate's category or title
// contains a trigger keyword while the ingredient's expected category is
// one of the protected ones.
type PenaltyRule struct {
	Reason          string     // stable identifier surfaced in explanations
	TriggerKeywords []string   // candidate title/category keywords that qualify
	ProtectedHints  []Category // ingredient categories the rule protects
	Penalty         float64    // subtracted from the combined score
}

// penaltyRules is the table of known collisions. The canned-soup rule is
// the canonical example: "tomato soup" shares its dominant token with a
// fresh "tomato" request yet is never what the recipe wants.
var penaltyRules = []PenaltyRule{
	{
		Reason:          "canned-soup-collision",
		TriggerKeywords: []string{"soup", "bisque", "chowder"},
		ProtectedHints:  []Category{CategoryProduce, CategoryMeat, CategorySeafood},
		Penalty:         0.35,
	},
	{
		Reason:          "juice-for-fruit-collision",
		TriggerKeywords: []string{"juice", "drink", "cocktail"},
		ProtectedHints:  []Category{CategoryProduce},
		Penalty:         0.30,
	},
	{
		Reason:          "seasoning-for-meat-collision",
		TriggerKeywords: []string{"seasoning", "rub", "bouillon", "flavored"},
		ProtectedHints:  []Category{CategoryMeat, CategorySeafood},
		Penalty:         0.25,
	},
	{
		Reason:          "baby-food-collision",
		TriggerKeywords: []string{"baby food", "puree pouch"},
		ProtectedHints:  []Category{CategoryProduce},
		Penalty:         0.30,
	},
}

// ScoredCandidate is a raw product plus its match signals. The individual
// signals are retained so the UI can explain why a product ranked where it
// did; Score is the weighted combination clamped to [0,1].
type ScoredCandidate struct {
	Product         catalog.Product
	Score           float64
	TitleSimilarity float64
	SizeProximity   float64
	CategoryMatched bool
	Availability    float64
	PromoBonus      float64
	PenaltyReasons  []string
	MatchedTokens   []string
}

// Matcher scores and ranks catalog candidates for an ingredient.
type Matcher struct {
	weights Weights
	logger  zerolog.Logger
}

// NewMatcher creates a matcher with the given signal weights.
func NewMatcher(weights Weights) *Matcher {
	return &Matcher{
		weights: weights,
		logger:  log.With().Str("component", "matcher").Logger(),
	}
}

// Score computes the match signals for one candidate against an ingredient.
// Pure function: no signal fetches data, and a missing field degrades its
// signal to neutral instead of failing.
func (m *Matcher) Score(ing types.Ingredient, p catalog.Product, hint Category) ScoredCandidate {
	sc := ScoredCandidate{Product: p}

	sc.TitleSimilarity, sc.MatchedTokens = titleSimilarity(ing.Name, p.Description)
	sc.CategoryMatched = categoryMatches(hint, p.Categories)
	sc.SizeProximity = sizeProximity(ing, p.SizeText)
	sc.Availability = availabilitySignal(p.Stock())
	if p.IsPromo {
		sc.PromoBonus = 1
	}

	categorySignal := 0.5 // neutral when the hint is unknown or tags are absent
	if hint != CategoryUnknown && len(p.Categories) > 0 {
		if sc.CategoryMatched {
			categorySignal = 1
		} else {
			categorySignal = 0
		}
	}

	score := m.weights.Title*sc.TitleSimilarity +
		m.weights.Category*categorySignal +
		m.weights.Size*sc.SizeProximity +
		m.weights.Availability*sc.Availability +
		m.weights.Promo*sc.PromoBonus

	for _, rule := range penaltyRules {
		if rule.applies(hint, sc.CategoryMatched, p) {
			score -= rule.Penalty
			sc.PenaltyReasons = append(sc.PenaltyReasons, rule.Reason)
		}
	}

	sc.Score = clamp01(score)
	return sc
}

// applies reports whether a penalty rule fires for a candidate. Both
// conditions are required: the ingredient's department must be protected
// and mismatched, and a qualifying keyword must appear on the candidate.
func (r PenaltyRule) applies(hint Category, categoryMatched bool, p catalog.Product) bool {
	protected := false
	for _, h := range r.ProtectedHints {
		if h == hint {
			protected = true
			break
		}
	}
	if !protected || categoryMatched {
		return false
	}

	haystack := strings.ToLower(p.Description + " " + strings.Join(p.Categories, " "))
	for _, kw := range r.TriggerKeywords {
		if strings.Contains(haystack, kw) {
			return true
		}
	}
	return false
}

// Rank deduplicates candidates by product key, scores them, and orders by
// score descending with price ascending as the tie-breaker. The full
// ranked list is returned; callers typically surface the top three as
// alternatives.
func (m *Matcher) Rank(ing types.Ingredient, candidates []catalog.Product, hint Category) []ScoredCandidate {
	seen := make(map[string]bool, len(candidates))
	scored := make([]ScoredCandidate, 0, len(candidates))
	for _, p := range candidates {
		key := p.Key()
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		scored = append(scored, m.Score(ing, p, hint))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Product.EffectivePrice() < scored[j].Product.EffectivePrice()
	})
	return scored
}

// titleSimilarity measures token overlap between the ingredient name and
// the product title. Coverage of the ingredient's own tokens dominates:
// a product that mentions every requested word is a strong match even if
// its title carries extra detail.
func titleSimilarity(ingredientName, productTitle string) (float64, []string) {
	ingTokens := Tokenize(ingredientName)
	prodTokens := Tokenize(productTitle)
	if len(ingTokens) == 0 || len(prodTokens) == 0 {
		return 0, nil
	}

	ingMatched, matched := tokenOverlap(ingTokens, prodTokens)
	ingCoverage := float64(ingMatched) / float64(len(ingTokens))

	prodMatched, _ := tokenOverlap(prodTokens, ingTokens)
	prodCoverage := float64(prodMatched) / float64(len(prodTokens))

	return clamp01(0.75*ingCoverage + 0.25*prodCoverage), matched
}

// sizeProximity compares the ingredient's required quantity with the
// product's package size after converting to a shared base. Packages close
// to the requirement score 1; wildly over- or under-sized packages decay
// toward 0. Unparseable or incomparable sizes return a neutral 0.5 so the
// signal is skipped rather than punished.
func sizeProximity(ing types.Ingredient, sizeText string) float64 {
	pack, ok := units.ParsePackSize(sizeText)
	if !ok {
		return 0.5
	}
	ingUnit, ok := units.Normalize(ing.Unit)
	if !ok {
		return 0.5
	}

	var need, have float64
	switch {
	case pack.Unit == units.Each && ingUnit == units.Each:
		need, have = ing.Amount, pack.Quantity
	default:
		var okNeed, okHave bool
		need, okNeed = units.Convert(ing.Amount, ingUnit, units.Gram)
		have, okHave = units.Convert(pack.Quantity, pack.Unit, units.Gram)
		if !okNeed || !okHave {
			return 0.5
		}
	}
	if need <= 0 || have <= 0 {
		return 0.5
	}

	ratio := need / have
	if ratio > 1 {
		ratio = 1 / ratio
	}
	return clamp01(ratio)
}

// availabilitySignal weights stock status. Out-of-stock items are heavily
// down-weighted but never excluded so the user can still pick them.
func availabilitySignal(level catalog.StockLevel) float64 {
	switch level {
	case catalog.StockInStock:
		return 1
	case catalog.StockLowStock:
		return 0.6
	case catalog.StockOutOfStock:
		return 0.1
	default:
		return 0.7
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
