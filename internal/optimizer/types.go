// Package optimizer assigns priced ingredients across physical stores to
// minimize the number of stops a shopper makes while respecting
// specialty-ingredient availability.
package optimizer

import "fmt"

// StoreType classifies a store for assignment decisions.
type StoreType string

const (
	StoreMainstream StoreType = "mainstream"
	StoreEthnic     StoreType = "ethnic"
	StoreSpecialty  StoreType = "specialty"
)

// StoreInfo describes a physical store in the static catalog.
type StoreInfo struct {
	Name            string    `json:"name"`
	Type            StoreType `json:"type"`
	Address         string    `json:"address"`
	ShoppingMinutes int       `json:"shoppingMinutes"` // average time for one visit
	Specialties     []string  `json:"specialties"`
}

// PricedOption is one store-tagged pricing record for an ingredient,
// produced by the pricing step and consumed here. Optional fields default
// to their zero values; confidence scoring counts how many are present.
type PricedOption struct {
	Ingredient   string  `json:"ingredient"`
	StoreName    string  `json:"storeName"`
	StoreType    string  `json:"storeType,omitempty"`
	StoreAddress string  `json:"storeAddress,omitempty"`
	PackagePrice float64 `json:"packagePrice"`
	PortionCost  float64 `json:"portionCost,omitempty"`
	ProductName  string  `json:"productName,omitempty"`
	PackageSize  string  `json:"packageSize,omitempty"`
	SourceURL    string  `json:"sourceUrl,omitempty"`
}

// Confidence buckets an assignment by how complete its pricing data was.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// StoreAssignment records where one ingredient should be bought, plus up
// to three alternative stores for user override.
type StoreAssignment struct {
	Ingredient   string            `json:"ingredient"`
	Store        string            `json:"assignedStore"`
	StoreType    string            `json:"storeType"`
	StoreAddress string            `json:"storeAddress"`
	PackagePrice float64           `json:"packagePrice"`
	PortionCost  float64           `json:"portionCost"`
	ProductName  string            `json:"productName"`
	PackageSize  string            `json:"packageSize"`
	Confidence   Confidence        `json:"confidence"`
	Alternatives []StoreAssignment `json:"alternatives,omitempty"`
}

// ShoppingPlan is the full assignment across stores. Every ingredient with
// pricing data maps to exactly one store in Distribution.
type ShoppingPlan struct {
	PrimaryStore      StoreInfo                  `json:"primaryStore"`
	SecondaryStores   []StoreInfo                `json:"secondaryStores"`
	Distribution      map[string]StoreAssignment `json:"ingredientDistribution"`
	EfficiencyPercent int                        `json:"efficiency"`
	TotalStores       int                        `json:"totalStores"`
	EstimatedMinutes  int                        `json:"estimatedTime"`
	TotalCost         float64                    `json:"totalCost"`
}

// Strategy is a fixed advisory shopping strategy for UI guidance. These
// are illustrative defaults, not values computed from the optimizer's own
// output.
type Strategy struct {
	Name            string `json:"strategy"`
	Description     string `json:"description"`
	EstimatedTime   int    `json:"estimatedTime"`
	EstimatedStores int    `json:"estimatedStores"`
	Efficiency      int    `json:"efficiency"`
}

// ErrInvalidRequest is returned when the optimization input is malformed.
type ErrInvalidRequest struct {
	Field  string
	Reason string
}

func (e ErrInvalidRequest) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
