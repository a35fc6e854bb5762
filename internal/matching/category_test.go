package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/plateful/pricing-service/internal/types"
)

func TestClassifyCategory(t *testing.T) {
	tests := []struct {
		name     string
		expected Category
	}{
		{"roma tomato", CategoryProduce},
		{"yellow onion", CategoryProduce},
		{"whole milk", CategoryDairy},
		{"boneless chicken thighs", CategoryMeat},
		{"atlantic salmon fillet", CategorySeafood},
		{"sourdough bread", CategoryBakery},
		{"all purpose flour", CategoryPantry},
		{"frozen peas", CategoryFrozen},
		{"orange juice", CategoryBeverage},
		{"chicken broth", CategoryPantry},
		{"tomato sauce", CategoryPantry},
		{"xanthan gum", CategoryUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyCategory(tt.name))
		})
	}
}

func TestCategoryMatches(t *testing.T) {
	assert.True(t, categoryMatches(CategoryProduce, []string{"Fresh Fruits & Vegetables"}))
	assert.True(t, categoryMatches(CategoryDairy, []string{"Dairy & Eggs"}))
	assert.False(t, categoryMatches(CategoryProduce, []string{"Canned Goods"}))
	assert.False(t, categoryMatches(CategoryUnknown, []string{"Produce"}))
	assert.False(t, categoryMatches(CategoryProduce, nil))
}

func TestBuildSearchTerms(t *testing.T) {
	tests := []struct {
		name     string
		ing      types.Ingredient
		expected []string
	}{
		{
			name:     "plain name",
			ing:      types.Ingredient{Name: "milk", Amount: 1, Unit: "cup"},
			expected: []string{"milk"},
		},
		{
			name:     "prep words stripped",
			ing:      types.Ingredient{Name: "finely chopped yellow onion", Amount: 1, Unit: "each"},
			expected: []string{"finely chopped yellow onion", "yellow onion", "fresh yellow onion"},
		},
		{
			name:     "trailing clause truncated",
			ing:      types.Ingredient{Name: "scallions, thinly sliced", Amount: 3, Unit: "each"},
			expected: []string{"scallions", "fresh scallions"},
		},
		{
			name:     "produce gets fresh variant",
			ing:      types.Ingredient{Name: "tomato", Amount: 2, Unit: "each"},
			expected: []string{"tomato", "fresh tomato"},
		},
		{
			name:     "already fresh not doubled",
			ing:      types.Ingredient{Name: "fresh basil", Amount: 1, Unit: "each"},
			expected: []string{"fresh basil"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildSearchTerms(tt.ing))
		})
	}
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"tomato", "soup"}, Tokenize("Tomato Soup, 10.75 oz can"))
	assert.Equal(t, []string{"jalapeno"}, Tokenize("Jalapeño"))
	assert.Empty(t, Tokenize("12 oz"))
	assert.Empty(t, Tokenize(""))
}

func TestFoldDiacritics(t *testing.T) {
	assert.Equal(t, "jalapeno", FoldDiacritics("jalapeño"))
	assert.Equal(t, "creme fraiche", FoldDiacritics("crème fraîche"))
	assert.Equal(t, "plain", FoldDiacritics("plain"))
}

func TestLevenshtein(t *testing.T) {
	assert.Equal(t, 0, levenshtein("tomato", "tomato"))
	assert.Equal(t, 1, levenshtein("tomato", "tomatos"))
	assert.Equal(t, 3, levenshtein("kitten", "sitting"))
	assert.Equal(t, 5, levenshtein("", "apple"))
}

func TestFuzzyMatch(t *testing.T) {
	assert.True(t, fuzzyMatch("tomato", "tomatos", 1))
	assert.True(t, fuzzyMatch("anything", "anything", 1))
	// Short tokens never fuzzy match to avoid rice/ride style collisions.
	assert.False(t, fuzzyMatch("rice", "ride", 1))
	assert.False(t, fuzzyMatch("tomato", "potato", 1))
}
