package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductKey(t *testing.T) {
	assert.Equal(t, "id-1", Product{ID: "id-1", UPC: "123", Description: "Milk"}.Key())
	assert.Equal(t, "123", Product{UPC: "123", Description: "Milk"}.Key())
	assert.Equal(t, "whole milk", Product{Description: "Whole Milk"}.Key())
	assert.Equal(t, "", Product{}.Key())
}

func TestEffectivePrice(t *testing.T) {
	tests := []struct {
		name     string
		product  Product
		expected float64
	}{
		{"regular only", Product{RegularPrice: 3.49}, 3.49},
		{"promo applies", Product{RegularPrice: 3.49, PromoPrice: 2.99, IsPromo: true}, 2.99},
		{"promo flag without price", Product{RegularPrice: 3.49, IsPromo: true}, 3.49},
		{"promo price without flag", Product{RegularPrice: 3.49, PromoPrice: 2.99}, 3.49},
		{"promo above regular ignored", Product{RegularPrice: 3.49, PromoPrice: 3.99, IsPromo: true}, 3.49},
		{"unpriced", Product{}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.product.EffectivePrice())
		})
	}
}

func TestNormalizeStockLevel(t *testing.T) {
	tests := []struct {
		raw      string
		expected StockLevel
	}{
		{"HIGH", StockInStock},
		{"In Stock", StockInStock},
		{"available", StockInStock},
		{"LOW", StockLowStock},
		{"Limited availability", StockLowStock},
		{"TEMPORARILY_OUT_OF_STOCK", StockOutOfStock},
		{"out of stock", StockOutOfStock},
		{"Currently Unavailable", StockOutOfStock},
		{"", StockUnknown},
		{"???", StockUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeStockLevel(tt.raw))
		})
	}
}

func TestStockFallback(t *testing.T) {
	assert.Equal(t, StockUnknown, Product{}.Stock())
	assert.Equal(t, StockInStock, Product{StockLevel: StockInStock}.Stock())
}
