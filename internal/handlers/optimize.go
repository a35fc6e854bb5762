package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pricing-service/internal/optimizer"
	"github.com/plateful/pricing-service/internal/types"
)

// PricedOptionDTO is one store-tagged price for an ingredient
type PricedOptionDTO struct {
	Ingredient   string  `json:"ingredient" binding:"required"`
	StoreName    string  `json:"storeName" binding:"required"`
	StoreType    string  `json:"storeType,omitempty"`
	StoreAddress string  `json:"storeAddress,omitempty"`
	PackagePrice float64 `json:"packagePrice"`
	PortionCost  float64 `json:"portionCost,omitempty"`
	ProductName  string  `json:"productName,omitempty"`
	PackageSize  string  `json:"packageSize,omitempty"`
	SourceURL    string  `json:"sourceUrl,omitempty"`
}

// OptimizeStoresRequest represents the store optimization request
type OptimizeStoresRequest struct {
	Ingredients    []IngredientDTO   `json:"ingredients" binding:"required,min=1,max=100"`
	PreferredStore string            `json:"preferredStore" binding:"required"`
	Options        []PricedOptionDTO `json:"pricingOptions"`
}

// OptimizeStores handles shopping plan generation
// POST /internal/pricing/optimize-stores
func OptimizeStores(c *gin.Context) {
	var req OptimizeStoresRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if storeOptimizer == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Optimizer not initialized"})
		return
	}

	options := make([]optimizer.PricedOption, len(req.Options))
	for i, opt := range req.Options {
		options[i] = optimizer.PricedOption{
			Ingredient:   opt.Ingredient,
			StoreName:    opt.StoreName,
			StoreType:    opt.StoreType,
			StoreAddress: opt.StoreAddress,
			PackagePrice: opt.PackagePrice,
			PortionCost:  opt.PortionCost,
			ProductName:  opt.ProductName,
			PackageSize:  opt.PackageSize,
			SourceURL:    opt.SourceURL,
		}
	}

	plan, err := storeOptimizer.Optimize(c.Request.Context(), toIngredients(req.Ingredients), req.PreferredStore, options)
	if err != nil {
		var invalid optimizer.ErrInvalidRequest
		var invalidIng types.ErrInvalidIngredient
		if errors.As(err, &invalid) || errors.As(err, &invalidIng) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"plan":       plan,
		"strategies": optimizer.DefaultStrategies(),
	})
}
