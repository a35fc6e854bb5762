package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/types"
)

func TestEstimateUnpriced(t *testing.T) {
	e := NewEstimator()
	ing := types.Ingredient{Name: "saffron", Amount: 1, Unit: "tsp"}

	est := e.Estimate(ing, catalog.Product{Description: "Saffron Threads"}, 4)
	assert.True(t, est.Unpriced)
	assert.Zero(t, est.EstimatedCost)
	assert.Zero(t, est.PackagesNeeded)
}

func TestEstimateWeightPath(t *testing.T) {
	e := NewEstimator()
	tests := []struct {
		name          string
		ing           types.Ingredient
		product       catalog.Product
		packages      int
		estimatedCost float64
	}{
		{
			name:          "exact fit",
			ing:           types.Ingredient{Name: "ground beef", Amount: 1, Unit: "lb"},
			product:       catalog.Product{Description: "Ground Beef", SizeText: "1 lb", RegularPrice: 5.99},
			packages:      1,
			estimatedCost: 5.99,
		},
		{
			name:          "needs two packages",
			ing:           types.Ingredient{Name: "ground beef", Amount: 1.5, Unit: "lb"},
			product:       catalog.Product{Description: "Ground Beef", SizeText: "1 lb", RegularPrice: 5.99},
			packages:      2,
			estimatedCost: 11.98,
		},
		{
			name:          "small amount still buys one",
			ing:           types.Ingredient{Name: "butter", Amount: 2, Unit: "oz"},
			product:       catalog.Product{Description: "Butter", SizeText: "1 lb", RegularPrice: 4.49},
			packages:      1,
			estimatedCost: 4.49,
		},
		{
			name:          "promo price wins",
			ing:           types.Ingredient{Name: "bacon", Amount: 12, Unit: "oz"},
			product:       catalog.Product{Description: "Bacon", SizeText: "12 oz", RegularPrice: 6.99, PromoPrice: 4.99, IsPromo: true},
			packages:      1,
			estimatedCost: 4.99,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est := e.Estimate(tt.ing, tt.product, 4)
			require.False(t, est.Unpriced)
			assert.Equal(t, tt.packages, est.PackagesNeeded)
			assert.InDelta(t, tt.estimatedCost, est.EstimatedCost, 0.001)
		})
	}
}

func TestEstimateVolumePath(t *testing.T) {
	e := NewEstimator()
	ing := types.Ingredient{Name: "chicken broth", Amount: 4, Unit: "cup"}
	p := catalog.Product{Description: "Chicken Broth", SizeText: "32 fl oz", RegularPrice: 2.49}

	// 4 cups = 960 ml, 32 fl oz = 946.35 ml: just over one carton.
	est := e.Estimate(ing, p, 4)
	require.False(t, est.Unpriced)
	assert.Equal(t, 2, est.PackagesNeeded)
	assert.InDelta(t, 4.98, est.EstimatedCost, 0.001)
}

func TestEstimateCountPath(t *testing.T) {
	e := NewEstimator()
	ing := types.Ingredient{Name: "eggs", Amount: 3, Unit: "each"}
	p := catalog.Product{Description: "Large Eggs", SizeText: "12 ct", RegularPrice: 3.29}

	est := e.Estimate(ing, p, 4)
	require.False(t, est.Unpriced)
	assert.Equal(t, 1, est.PackagesNeeded)
	assert.InDelta(t, 3.29, est.EstimatedCost, 0.001)
	assert.Equal(t, "12 ct", est.PackageSizeLabel)
}

func TestEstimateMultiServeCorrection(t *testing.T) {
	e := NewEstimator()
	p := catalog.Product{Description: "Frozen Pie Crust", SizeText: "1 ct", RegularPrice: 3.49}

	// Amount recorded as the serving count: one crust serves the whole pie.
	ing := types.Ingredient{Name: "pie crust", Amount: 8, Unit: "each"}
	est := e.Estimate(ing, p, 8)
	assert.Equal(t, 1, est.PackagesNeeded)
	assert.InDelta(t, 3.49, est.EstimatedCost, 0.001)

	// Amount differing from servings is a genuine quantity.
	ing = types.Ingredient{Name: "pie crust", Amount: 2, Unit: "each"}
	est = e.Estimate(ing, p, 8)
	assert.Equal(t, 2, est.PackagesNeeded)
	assert.InDelta(t, 6.98, est.EstimatedCost, 0.001)

	// Non multi-serve items never get the correction.
	ing = types.Ingredient{Name: "apples", Amount: 8, Unit: "each"}
	est = e.Estimate(ing, p, 8)
	assert.Equal(t, 8, est.PackagesNeeded)
}

func TestEstimateFlatFallback(t *testing.T) {
	e := NewEstimator()
	ing := types.Ingredient{Name: "avocado", Amount: 3, Unit: "each"}
	p := catalog.Product{Description: "Hass Avocado", SizeText: "", RegularPrice: 1.25}

	est := e.Estimate(ing, p, 4)
	require.False(t, est.Unpriced)
	assert.Equal(t, 3, est.PackagesNeeded)
	assert.InDelta(t, 3.75, est.EstimatedCost, 0.001)
	assert.Equal(t, "each", est.PackageSizeLabel)
}

func TestEstimateCostMonotonicInAmount(t *testing.T) {
	e := NewEstimator()
	p := catalog.Product{Description: "Flour", SizeText: "2 lb", RegularPrice: 3.19}

	prev := 0.0
	for _, amount := range []float64{0.5, 1, 2, 3.5, 5, 8} {
		ing := types.Ingredient{Name: "flour", Amount: amount, Unit: "lb"}
		est := e.Estimate(ing, p, 4)
		require.GreaterOrEqual(t, est.PackagesNeeded, 1)
		assert.GreaterOrEqual(t, est.EstimatedCost, prev)
		prev = est.EstimatedCost
	}
}

func TestIsMultiServe(t *testing.T) {
	assert.True(t, isMultiServe("pie crust"))
	assert.True(t, isMultiServe("Frozen Pie Shells"))
	assert.True(t, isMultiServe("pizza dough"))
	assert.True(t, isMultiServe("tart shell"))
	assert.False(t, isMultiServe("apple pie filling"))
	assert.False(t, isMultiServe("bread"))
}
