package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// HealthResponse represents the health check response
type HealthResponse struct {
	Status  string `json:"status"`
	Engine  string `json:"engine"`
	Catalog string `json:"catalog"`
}

// HealthCheck handles the health check endpoint
func HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status: "ok",
	}

	if pricingEngine != nil {
		response.Engine = "ready"
	} else {
		response.Engine = "not configured"
	}
	if storeCatalog != nil {
		response.Catalog = "ready"
	} else {
		response.Catalog = "not configured"
	}

	c.JSON(http.StatusOK, response)
}
