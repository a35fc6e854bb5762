// Package types holds the shared domain types that flow between the
// matching, costing, and optimization packages.
package types

import "fmt"

// Ingredient is a single recipe line: a free-text name, a positive amount,
// and a free-text unit. Immutable input to the pricing engine.
type Ingredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// Validate checks the structural invariants of an ingredient.
func (i Ingredient) Validate() error {
	if i.Name == "" {
		return ErrInvalidIngredient{Field: "name", Reason: "cannot be empty"}
	}
	if i.Amount <= 0 {
		return ErrInvalidIngredient{Field: "amount", Reason: "must be positive"}
	}
	return nil
}

// ErrInvalidIngredient is returned when an ingredient fails validation.
type ErrInvalidIngredient struct {
	Field  string
	Reason string
}

func (e ErrInvalidIngredient) Error() string {
	return fmt.Sprintf("ingredient %s: %s", e.Field, e.Reason)
}
