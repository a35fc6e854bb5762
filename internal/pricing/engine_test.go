package pricing

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/types"
)

// mockProductSource is a mock implementation of ProductSource for testing.
type mockProductSource struct {
	mu          sync.Mutex
	products    map[string][]catalog.Product // search term substring -> products
	byID        map[string]catalog.Product
	searchCalls int
	searchErr   error
}

func newMockProductSource() *mockProductSource {
	return &mockProductSource{
		products: make(map[string][]catalog.Product),
		byID:     make(map[string]catalog.Product),
	}
}

func (m *mockProductSource) add(term string, products ...catalog.Product) {
	m.products[term] = append(m.products[term], products...)
	for _, p := range products {
		m.byID[p.ID] = p
	}
}

func (m *mockProductSource) SearchProducts(ctx context.Context, term, locationID string, limit int) ([]catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.searchCalls++
	if m.searchErr != nil {
		return nil, m.searchErr
	}
	for key, products := range m.products {
		if strings.Contains(term, key) {
			return products, nil
		}
	}
	return nil, nil
}

func (m *mockProductSource) GetProduct(ctx context.Context, productID, locationID string) (*catalog.Product, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.byID[productID]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func newTestEngine(source ProductSource) *Engine {
	return NewEngine(source, Defaults(), NewMetricsRecorder())
}

func TestPriceIngredients(t *testing.T) {
	source := newMockProductSource()
	source.add("milk", catalog.Product{
		ID: "milk-1", Description: "Whole Milk", SizeText: "128 fl oz",
		RegularPrice: 3.49, Categories: []string{"Dairy"}, StockLevel: catalog.StockInStock,
	})
	source.add("bread", catalog.Product{
		ID: "bread-1", Description: "Sourdough Bread", SizeText: "1 ct",
		RegularPrice: 4.29, Categories: []string{"Bakery"}, StockLevel: catalog.StockInStock,
	})

	engine := newTestEngine(source)
	req := Request{
		Ingredients: []types.Ingredient{
			{Name: "milk", Amount: 2, Unit: "cup"},
			{Name: "bread", Amount: 1, Unit: "each"},
		},
		Servings: 4,
	}

	result, err := engine.PriceIngredients(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Items, 2)

	assert.Equal(t, "milk-1", result.Items[0].ProductID)
	assert.Equal(t, "bread-1", result.Items[1].ProductID)
	assert.Zero(t, result.UnpricedCount)
	assert.InDelta(t, 3.49+4.29, result.TotalCost, 0.001)
	assert.InDelta(t, (3.49+4.29)/4, result.CostPerServing, 0.01)
}

func TestPriceIngredientsUnpricedKept(t *testing.T) {
	source := newMockProductSource()
	// No products at all for this ingredient.
	engine := newTestEngine(source)

	req := Request{
		Ingredients: []types.Ingredient{{Name: "saffron", Amount: 1, Unit: "tsp"}},
		Servings:    2,
	}

	result, err := engine.PriceIngredients(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)

	assert.True(t, result.Items[0].Unpriced)
	assert.Equal(t, "saffron", result.Items[0].Ingredient.Name)
	assert.Zero(t, result.Items[0].EstimatedCost)
	assert.Equal(t, 1, result.UnpricedCount)
	assert.Zero(t, result.TotalCost)
}

func TestPriceIngredientsPreferredProduct(t *testing.T) {
	source := newMockProductSource()
	pinned := catalog.Product{
		ID: "fancy-1", Description: "Organic Whole Milk", SizeText: "1 gal",
		RegularPrice: 6.99, StockLevel: catalog.StockInStock,
	}
	source.add("milk",
		catalog.Product{ID: "milk-1", Description: "Whole Milk", SizeText: "1 gal", RegularPrice: 3.49},
		pinned,
	)

	engine := newTestEngine(source)
	req := Request{
		Ingredients:       []types.Ingredient{{Name: "milk", Amount: 1, Unit: "cup"}},
		Servings:          4,
		PreferredProducts: map[string]string{"milk": "fancy-1"},
	}

	result, err := engine.PriceIngredients(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "fancy-1", result.Items[0].ProductID)
	assert.Equal(t, 1.0, result.Items[0].MatchScore)
}

func TestPriceIngredientsValidation(t *testing.T) {
	engine := newTestEngine(newMockProductSource())

	_, err := engine.PriceIngredients(context.Background(), Request{Servings: 4})
	require.Error(t, err)
	var invalid ErrInvalidRequest
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "ingredients", invalid.Field)

	_, err = engine.PriceIngredients(context.Background(), Request{
		Ingredients: []types.Ingredient{{Name: "milk", Amount: 1}},
		Servings:    0,
	})
	require.Error(t, err)
}

func TestPriceIngredientsSearchErrorPropagates(t *testing.T) {
	source := newMockProductSource()
	source.searchErr = errors.New("catalog unavailable")

	engine := newTestEngine(source)
	req := Request{
		Ingredients: []types.Ingredient{{Name: "milk", Amount: 1, Unit: "cup"}},
		Servings:    2,
	}

	_, err := engine.PriceIngredients(context.Background(), req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "catalog unavailable")
}

func TestCollectCandidatesDedupes(t *testing.T) {
	source := newMockProductSource()
	p := catalog.Product{ID: "onion-1", Description: "Yellow Onion", RegularPrice: 0.89}
	// The same product comes back for both the raw and the "fresh" phrasing.
	source.add("onion", p)

	engine := newTestEngine(source)
	candidates, err := engine.collectCandidates(context.Background(), types.Ingredient{Name: "onion", Amount: 1, Unit: "each"}, "")
	require.NoError(t, err)
	assert.Len(t, candidates, 1)
}

func TestCollectCandidatesSaturation(t *testing.T) {
	source := newMockProductSource()
	var many []catalog.Product
	for i := 0; i < 30; i++ {
		many = append(many, catalog.Product{
			ID:          "p-" + strings.Repeat("x", i+1),
			Description: "Tomato Variant", RegularPrice: 1,
		})
	}
	source.add("tomato", many...)

	engine := newTestEngine(source)
	candidates, err := engine.collectCandidates(context.Background(), types.Ingredient{Name: "tomato", Amount: 1, Unit: "each"}, "")
	require.NoError(t, err)

	// One term already saturates the pool, so later phrasings are skipped.
	assert.GreaterOrEqual(t, len(candidates), engine.config.CandidateSaturation)
	source.mu.Lock()
	defer source.mu.Unlock()
	assert.Equal(t, 1, source.searchCalls)
}

func TestRoundCents(t *testing.T) {
	assert.Equal(t, 1.23, roundCents(1.2349))
	assert.Equal(t, 1.24, roundCents(1.236))
	assert.Equal(t, 0.0, roundCents(0))
}
