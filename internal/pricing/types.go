// Package pricing orchestrates the per-ingredient pipeline: candidate
// search against the product catalog, match ranking, and cost estimation,
// aggregated into a priced ingredient list.
package pricing

import (
	"context"
	"fmt"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/matching"
	"github.com/plateful/pricing-service/internal/types"
)

// Request prices a list of ingredients for a recipe.
type Request struct {
	Ingredients []types.Ingredient `json:"ingredients"`
	Servings    int                `json:"servings"`
	LocationID  string             `json:"locationId,omitempty"`
	// PreferredProducts pins a catalog product ID per ingredient name,
	// skipping search and ranking for that ingredient.
	PreferredProducts map[string]string `json:"preferredProducts,omitempty"`
}

// Validate checks the structural invariants of a pricing request.
func (r Request) Validate(maxIngredients int) error {
	if len(r.Ingredients) == 0 {
		return ErrInvalidRequest{Field: "ingredients", Reason: "must have at least one ingredient"}
	}
	if len(r.Ingredients) > maxIngredients {
		return ErrInvalidRequest{Field: "ingredients", Reason: "exceeds maximum allowed"}
	}
	if r.Servings < 1 {
		return ErrInvalidRequest{Field: "servings", Reason: "must be at least 1"}
	}
	for _, ing := range r.Ingredients {
		if err := ing.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// IngredientPrice is the priced outcome for one ingredient. Unpriced lines
// are kept in the result with a zero cost so callers see exactly which
// ingredients need manual attention.
type IngredientPrice struct {
	Ingredient     types.Ingredient          `json:"ingredient"`
	ProductID      string                    `json:"productId,omitempty"`
	ProductName    string                    `json:"productName,omitempty"`
	Brand          string                    `json:"brand,omitempty"`
	PackageSize    string                    `json:"packageSize,omitempty"`
	PackagePrice   float64                   `json:"packagePrice"`
	PackagesNeeded int                       `json:"packagesNeeded"`
	EstimatedCost  float64                   `json:"estimatedCost"`
	OnPromo        bool                      `json:"onPromo,omitempty"`
	ImageURL       string                    `json:"imageUrl,omitempty"`
	MatchScore     float64                   `json:"matchScore"`
	Unpriced       bool                      `json:"unpriced,omitempty"`
	Alternatives   []matching.ScoredCandidate `json:"alternatives,omitempty"`
}

// Result aggregates per-ingredient prices for a request.
type Result struct {
	Items          []IngredientPrice `json:"items"`
	TotalCost      float64           `json:"totalCost"`
	CostPerServing float64           `json:"costPerServing"`
	UnpricedCount  int               `json:"unpricedCount"`
}

// ProductSource supplies catalog candidates. The engine depends on this
// interface rather than the concrete HTTP client so tests can substitute
// a fixture source.
type ProductSource interface {
	SearchProducts(ctx context.Context, term, locationID string, limit int) ([]catalog.Product, error)
	GetProduct(ctx context.Context, productID, locationID string) (*catalog.Product, error)
}

// ErrInvalidRequest is returned when a pricing request is malformed.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
