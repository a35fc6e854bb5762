package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pricing-service/internal/pricing"
	"github.com/plateful/pricing-service/internal/types"
)

// IngredientDTO represents one ingredient on the wire
type IngredientDTO struct {
	Name   string  `json:"name" binding:"required"`
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Unit   string  `json:"unit"`
}

// PriceIngredientsRequest represents the ingredient pricing request
type PriceIngredientsRequest struct {
	Ingredients       []IngredientDTO   `json:"ingredients" binding:"required,min=1,max=100"`
	Servings          int               `json:"servings" binding:"required,min=1"`
	LocationID        string            `json:"locationId,omitempty"`
	PreferredProducts map[string]string `json:"preferredProducts,omitempty"`
}

// PriceIngredients handles ingredient list pricing
// POST /internal/pricing/ingredients
func PriceIngredients(c *gin.Context) {
	var req PriceIngredientsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if pricingEngine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Pricing engine not initialized"})
		return
	}

	engineReq := pricing.Request{
		Ingredients:       toIngredients(req.Ingredients),
		Servings:          req.Servings,
		LocationID:        locationOrDefault(req.LocationID),
		PreferredProducts: req.PreferredProducts,
	}

	result, err := pricingEngine.PriceIngredients(c.Request.Context(), engineReq)
	if err != nil {
		var invalid pricing.ErrInvalidRequest
		var invalidIng types.ErrInvalidIngredient
		if errors.As(err, &invalid) || errors.As(err, &invalidIng) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result)
}

func toIngredients(dtos []IngredientDTO) []types.Ingredient {
	ingredients := make([]types.Ingredient, len(dtos))
	for i, dto := range dtos {
		ingredients[i] = types.Ingredient{
			Name:   dto.Name,
			Amount: dto.Amount,
			Unit:   dto.Unit,
		}
	}
	return ingredients
}

func locationOrDefault(locationID string) string {
	if locationID != "" {
		return locationID
	}
	return defaultLocation
}
