package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/types"
)

func TestScoreBounds(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	ing := types.Ingredient{Name: "tomato", Amount: 2, Unit: "lb"}

	products := []catalog.Product{
		{ID: "1", Description: "Fresh Tomato", Categories: []string{"Produce"}, SizeText: "1 lb", RegularPrice: 1.99, StockLevel: catalog.StockInStock},
		{ID: "2", Description: "Campbell's Condensed Tomato Soup", Categories: []string{"Canned Goods"}, SizeText: "10.75 oz", RegularPrice: 1.29},
		{ID: "3", Description: ""},
		{ID: "4", Description: "Tomato", IsPromo: true, PromoPrice: 0.99, RegularPrice: 1.49},
	}

	for _, p := range products {
		sc := m.Score(ing, p, CategoryProduce)
		assert.GreaterOrEqual(t, sc.Score, 0.0)
		assert.LessOrEqual(t, sc.Score, 1.0)
	}
}

func TestSoupPenaltyRanksFreshProduceFirst(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	ing := types.Ingredient{Name: "tomato", Amount: 1, Unit: "lb"}

	fresh := catalog.Product{
		ID:           "fresh-1",
		Description:  "Fresh Tomato, 1 lb",
		Categories:   []string{"Produce"},
		SizeText:     "1 lb",
		RegularPrice: 1.99,
		StockLevel:   catalog.StockInStock,
	}
	soup := catalog.Product{
		ID:           "soup-1",
		Description:  "Campbell's Condensed Tomato Soup",
		Categories:   []string{"Canned & Packaged", "Soup"},
		SizeText:     "10.75 oz",
		RegularPrice: 1.29,
		StockLevel:   catalog.StockInStock,
	}

	ranked := m.Rank(ing, []catalog.Product{soup, fresh}, CategoryProduce)
	require.Len(t, ranked, 2)
	assert.Equal(t, "fresh-1", ranked[0].Product.ID)
	assert.Equal(t, "soup-1", ranked[1].Product.ID)
	assert.Contains(t, ranked[1].PenaltyReasons, "canned-soup-collision")
	assert.Empty(t, ranked[0].PenaltyReasons)
}

func TestPenaltySkippedWhenCategoryMatches(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	// A soup request should not penalize soup products.
	ing := types.Ingredient{Name: "chicken broth", Amount: 4, Unit: "cup"}

	broth := catalog.Product{
		ID:           "broth-1",
		Description:  "Chicken Broth Soup Base",
		Categories:   []string{"Pantry", "Canned Goods"},
		RegularPrice: 2.49,
	}

	sc := m.Score(ing, broth, ClassifyCategory(ing.Name))
	assert.Empty(t, sc.PenaltyReasons)
}

func TestRankDeduplicatesByKey(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	ing := types.Ingredient{Name: "garlic", Amount: 1, Unit: "each"}

	p := catalog.Product{ID: "dup-1", Description: "Fresh Garlic", RegularPrice: 0.79}
	ranked := m.Rank(ing, []catalog.Product{p, p, p}, CategoryProduce)
	assert.Len(t, ranked, 1)
}

func TestRankTieBreaksOnPrice(t *testing.T) {
	m := NewMatcher(DefaultWeights())
	ing := types.Ingredient{Name: "flour", Amount: 2, Unit: "cup"}

	// Identical signals except price.
	cheap := catalog.Product{ID: "a", Description: "All Purpose Flour", RegularPrice: 2.49}
	pricey := catalog.Product{ID: "b", Description: "All Purpose Flour", RegularPrice: 4.99}

	ranked := m.Rank(ing, []catalog.Product{pricey, cheap}, CategoryPantry)
	require.Len(t, ranked, 2)
	assert.Equal(t, "a", ranked[0].Product.ID)
}

func TestSizeProximity(t *testing.T) {
	tests := []struct {
		name     string
		ing      types.Ingredient
		sizeText string
		expected float64
	}{
		{"exact match", types.Ingredient{Name: "butter", Amount: 1, Unit: "lb"}, "1 lb", 1.0},
		{"double size", types.Ingredient{Name: "butter", Amount: 1, Unit: "lb"}, "2 lb", 0.5},
		{"unparseable neutral", types.Ingredient{Name: "butter", Amount: 1, Unit: "lb"}, "family size", 0.5},
		{"unknown unit neutral", types.Ingredient{Name: "butter", Amount: 1, Unit: "pat"}, "1 lb", 0.5},
		{"count vs count", types.Ingredient{Name: "eggs", Amount: 12, Unit: "each"}, "12 ct", 1.0},
		{"count vs weight neutral", types.Ingredient{Name: "eggs", Amount: 12, Unit: "each"}, "1 lb", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, sizeProximity(tt.ing, tt.sizeText), 0.01)
		})
	}
}

func TestAvailabilitySignal(t *testing.T) {
	assert.Equal(t, 1.0, availabilitySignal(catalog.StockInStock))
	assert.Equal(t, 0.6, availabilitySignal(catalog.StockLowStock))
	assert.Equal(t, 0.1, availabilitySignal(catalog.StockOutOfStock))
	assert.Equal(t, 0.7, availabilitySignal(catalog.StockUnknown))
}

func TestTitleSimilarityCoverage(t *testing.T) {
	full, matched := titleSimilarity("chicken breast", "Boneless Skinless Chicken Breast")
	partial, _ := titleSimilarity("chicken breast", "Chicken Thighs")
	none, _ := titleSimilarity("chicken breast", "Orange Juice")

	assert.Greater(t, full, partial)
	assert.Greater(t, partial, none)
	assert.Contains(t, matched, "chicken")
	assert.Contains(t, matched, "breast")
}
