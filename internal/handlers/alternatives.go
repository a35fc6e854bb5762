package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/plateful/pricing-service/internal/matching"
	"github.com/plateful/pricing-service/internal/types"
)

// AlternativesRequest asks for ranked catalog candidates for one ingredient
type AlternativesRequest struct {
	Ingredient IngredientDTO `json:"ingredient" binding:"required"`
	LocationID string        `json:"locationId,omitempty"`
	Limit      int           `json:"limit,omitempty" binding:"omitempty,min=1,max=50"`
}

// CandidateDTO is one ranked product with its match signals
type CandidateDTO struct {
	ProductID       string   `json:"productId"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand,omitempty"`
	Price           float64  `json:"price"`
	OnPromo         bool     `json:"onPromo,omitempty"`
	Size            string   `json:"size,omitempty"`
	ImageURL        string   `json:"imageUrl,omitempty"`
	Score           float64  `json:"score"`
	TitleSimilarity float64  `json:"titleSimilarity"`
	SizeProximity   float64  `json:"sizeProximity"`
	CategoryMatched bool     `json:"categoryMatched"`
	PenaltyReasons  []string `json:"penaltyReasons,omitempty"`
}

// GetAlternatives handles alternative product lookup
// POST /internal/pricing/alternatives
func GetAlternatives(c *gin.Context) {
	var req AlternativesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if pricingEngine == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Pricing engine not initialized"})
		return
	}

	ing := types.Ingredient{
		Name:   req.Ingredient.Name,
		Amount: req.Ingredient.Amount,
		Unit:   req.Ingredient.Unit,
	}

	ranked, err := pricingEngine.Alternatives(c.Request.Context(), ing, locationOrDefault(req.LocationID))
	if err != nil {
		var invalid types.ErrInvalidIngredient
		if errors.As(err, &invalid) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	limit := req.Limit
	if limit == 0 {
		limit = 10
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": toCandidates(ranked),
		"total":      len(ranked),
	})
}

func toCandidates(ranked []matching.ScoredCandidate) []CandidateDTO {
	candidates := make([]CandidateDTO, len(ranked))
	for i, sc := range ranked {
		candidates[i] = CandidateDTO{
			ProductID:       sc.Product.ID,
			Name:            sc.Product.Description,
			Brand:           sc.Product.Brand,
			Price:           sc.Product.EffectivePrice(),
			OnPromo:         sc.Product.IsPromo && sc.Product.PromoPrice > 0,
			Size:            sc.Product.SizeText,
			ImageURL:        sc.Product.ImageURL,
			Score:           sc.Score,
			TitleSimilarity: sc.TitleSimilarity,
			SizeProximity:   sc.SizeProximity,
			CategoryMatched: sc.CategoryMatched,
			PenaltyReasons:  sc.PenaltyReasons,
		}
	}
	return candidates
}
