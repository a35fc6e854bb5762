// Package handlers exposes the pricing engine and store optimizer over
// HTTP. Handlers convert between wire DTOs and internal types; no engine
// logic lives here.
package handlers

import (
	"github.com/plateful/pricing-service/internal/optimizer"
	"github.com/plateful/pricing-service/internal/pricing"
)

// Global instances (initialized by the application)
var (
	pricingEngine   *pricing.Engine
	storeOptimizer  *optimizer.StoreAssignmentOptimizer
	storeCatalog    optimizer.StoreCatalog
	defaultLocation string
)

// Init wires the handler package to its collaborators.
// This should be called during application startup.
func Init(engine *pricing.Engine, opt *optimizer.StoreAssignmentOptimizer, catalog optimizer.StoreCatalog, defaultLocationID string) {
	pricingEngine = engine
	storeOptimizer = opt
	storeCatalog = catalog
	defaultLocation = defaultLocationID
}
