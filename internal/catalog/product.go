// Package catalog models products returned by the external grocery catalog
// and provides the HTTP client that fetches them. The catalog is a
// collaborator: everything here is transport and normalization, the
// matching and costing logic lives elsewhere.
package catalog

import (
	"strings"
)

// StockLevel is the normalized availability of a product at a store.
type StockLevel string

const (
	StockInStock    StockLevel = "in_stock"
	StockLowStock   StockLevel = "low_stock"
	StockOutOfStock StockLevel = "out_of_stock"
	StockUnknown    StockLevel = "unknown"
)

// Product is a raw candidate from the catalog search API. Every field the
// engine reads has a defined zero-value fallback, because the upstream API
// omits fields freely:
//
//	Brand        "" - unbranded
//	RegularPrice 0  - unpriced, costing returns an explicit unpriced estimate
//	PromoPrice   0  - no promotion (only meaningful when IsPromo is true)
//	SizeText     "" - unparseable, costing falls back to flat per-unit
//	Categories   nil - category signal skipped
//	ImageURL     "" - no image
//	StockLevel   "" - treated as StockUnknown
type Product struct {
	ID           string     `json:"productId"`
	UPC          string     `json:"upc,omitempty"`
	Description  string     `json:"description"`
	Brand        string     `json:"brand,omitempty"`
	RegularPrice float64    `json:"regularPrice"`
	PromoPrice   float64    `json:"promoPrice,omitempty"`
	IsPromo      bool       `json:"isPromo,omitempty"`
	SizeText     string     `json:"size,omitempty"`
	Categories   []string   `json:"categories,omitempty"`
	ImageURL     string     `json:"imageUrl,omitempty"`
	StockLevel   StockLevel `json:"stockLevel,omitempty"`
	LocationID   string     `json:"locationId,omitempty"`
}

// Key returns a stable identifier for deduplication across search terms.
func (p Product) Key() string {
	if p.ID != "" {
		return p.ID
	}
	if p.UPC != "" {
		return p.UPC
	}
	return strings.ToLower(p.Description)
}

// EffectivePrice returns the promo price when a promotion applies,
// otherwise the regular price.
func (p Product) EffectivePrice() float64 {
	if p.IsPromo && p.PromoPrice > 0 && p.PromoPrice < p.RegularPrice {
		return p.PromoPrice
	}
	return p.RegularPrice
}

// Stock returns the stock level with the unknown fallback applied.
func (p Product) Stock() StockLevel {
	if p.StockLevel == "" {
		return StockUnknown
	}
	return p.StockLevel
}

// NormalizeStockLevel maps the free-text inventory field of the upstream
// API onto the StockLevel enum.
func NormalizeStockLevel(level string) StockLevel {
	if level == "" {
		return StockUnknown
	}
	s := strings.ToLower(level)
	switch {
	// "unavailable" contains "available", so the negative cases go first.
	case strings.Contains(s, "out"), strings.Contains(s, "unavailable"):
		return StockOutOfStock
	case strings.Contains(s, "low"), strings.Contains(s, "limited"), strings.Contains(s, "temporarily"):
		return StockLowStock
	case strings.Contains(s, "in stock"), strings.Contains(s, "high"), strings.Contains(s, "available"):
		return StockInStock
	default:
		return StockUnknown
	}
}
