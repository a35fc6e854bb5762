// Package costing translates a matched product's package size into a
// purchase quantity and total cost for an ingredient requirement.
package costing

import (
	"math"
	"regexp"
	"strings"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/types"
	"github.com/plateful/pricing-service/internal/units"
)

// CostEstimate is the purchase translation for one ingredient and one
// product. Unpriced marks products with a zero/unknown price: the estimate
// is returned explicitly instead of being dropped so the UI can flag the
// line for manual review.
type CostEstimate struct {
	UnitPrice        float64 // price per gram/ml/piece depending on the path taken
	EstimatedCost    float64
	PackagesNeeded   int
	PackageSizeLabel string
	Unpriced         bool
}

// multiServePatterns identify whole items that serve several people from a
// single package. Recipes frequently record these with amount equal to the
// serving count ("8 pie crust" for an 8-serving pie), which is a data-entry
// quirk, not a request for eight crusts. Kept as a table so new item kinds
// are an entry, not a new branch.
var multiServePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\bpie\s*(crust|shell)s?\b`),
	regexp.MustCompile(`\bpizza\s*(crust|dough)s?\b`),
	regexp.MustCompile(`\b(tart|quiche)\s*shells?\b`),
}

// isMultiServe reports whether an ingredient name looks like a
// multi-serving whole item.
func isMultiServe(name string) bool {
	n := strings.ToLower(name)
	for _, re := range multiServePatterns {
		if re.MatchString(n) {
			return true
		}
	}
	return false
}

// Estimator computes purchase quantities and costs.
type Estimator struct{}

// NewEstimator creates a cost estimator.
func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate computes how many packages of the product must be bought to
// satisfy the ingredient, and what that costs. The decision order is:
// unpriced product, weight-convertible, volume-convertible, count-based
// package, then flat per-unit fallback. Whenever the price is positive the
// result satisfies PackagesNeeded >= 1, and cost is non-decreasing in the
// required amount for a fixed package.
func (e *Estimator) Estimate(ing types.Ingredient, p catalog.Product, servings int) CostEstimate {
	price := p.EffectivePrice()
	if price <= 0 {
		return CostEstimate{Unpriced: true}
	}

	ingUnit, _ := units.Normalize(ing.Unit)

	if pack, ok := units.ParsePackSize(p.SizeText); ok {
		// Weight path first: "oz" on either side reads as weight here.
		ingGrams, okIng := units.ToGrams(ing.Amount, ingUnit)
		packGrams, okPack := units.ToGrams(pack.Quantity, pack.Unit)
		if okIng && okPack && packGrams > 0 {
			packages := ceilAtLeastOne(ingGrams / packGrams)
			return CostEstimate{
				UnitPrice:        price / packGrams,
				EstimatedCost:    float64(packages) * price,
				PackagesNeeded:   packages,
				PackageSizeLabel: pack.Label(),
			}
		}

		// Volume path: here ambiguous "oz" reads as fluid ounce.
		ingMl, okIng := units.ToMilliliters(ing.Amount, ingUnit)
		packMl, okPack := units.ToMilliliters(pack.Quantity, pack.Unit)
		if okIng && okPack && packMl > 0 {
			packages := ceilAtLeastOne(ingMl / packMl)
			return CostEstimate{
				UnitPrice:        price / packMl,
				EstimatedCost:    float64(packages) * price,
				PackagesNeeded:   packages,
				PackageSizeLabel: pack.Label(),
			}
		}

		if pack.Unit == units.Each {
			return e.estimateByCount(ing, pack, price, servings)
		}
	}

	// No parseable package size: sold individually.
	packages := ceilAtLeastOne(ing.Amount)
	return CostEstimate{
		UnitPrice:        price,
		EstimatedCost:    float64(packages) * price,
		PackagesNeeded:   packages,
		PackageSizeLabel: "each",
	}
}

// estimateByCount handles count-based packages ("1 ct", "6 ct"). The
// multi-serve correction applies when the ingredient is a known
// multi-serving item and the requested amount equals the recipe's serving
// count: the amount was almost certainly entered as servings, so one
// package suffices.
func (e *Estimator) estimateByCount(ing types.Ingredient, pack units.PackSize, price float64, servings int) CostEstimate {
	requiredPieces := ceilAtLeastOne(ing.Amount)
	if isMultiServe(ing.Name) && servings > 0 && requiredPieces == servings {
		requiredPieces = 1
	}

	perPack := ceilAtLeastOne(pack.Quantity)
	packages := ceilAtLeastOne(float64(requiredPieces) / float64(perPack))
	return CostEstimate{
		UnitPrice:        price / float64(perPack),
		EstimatedCost:    float64(packages) * price,
		PackagesNeeded:   packages,
		PackageSizeLabel: pack.Label(),
	}
}

// ceilAtLeastOne rounds up and clamps to a minimum of one package.
func ceilAtLeastOne(x float64) int {
	n := int(math.Ceil(x))
	if n < 1 {
		return 1
	}
	return n
}
