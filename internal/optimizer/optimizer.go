package optimizer

import (
	"context"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/plateful/pricing-service/internal/types"
)

// StoreAssignmentOptimizer assigns each priced ingredient to a store,
// preferring a single primary store and falling back to specialty stores
// or the lowest price only when the primary has no option.
type StoreAssignmentOptimizer struct {
	catalog StoreCatalog
	config  *Config
	metrics *MetricsRecorder
	logger  zerolog.Logger
}

// New creates a store assignment optimizer.
func New(catalog StoreCatalog, config *Config, metrics *MetricsRecorder) *StoreAssignmentOptimizer {
	return &StoreAssignmentOptimizer{
		catalog: catalog,
		config:  config,
		metrics: metrics,
		logger:  log.With().Str("component", "store_optimizer").Logger(),
	}
}

// Optimize builds a shopping plan for the ingredients given the available
// store-tagged pricing options. With no pricing data at all it returns an
// explicit empty plan: that state means "run the pricing step first", not
// "everything is free".
func (o *StoreAssignmentOptimizer) Optimize(ctx context.Context, ingredients []types.Ingredient, preferredStore string, options []PricedOption) (*ShoppingPlan, error) {
	startTime := time.Now()
	defer func() {
		o.metrics.RecordOptimizationDuration(time.Since(startTime))
	}()

	if len(ingredients) == 0 {
		return nil, ErrInvalidRequest{Field: "ingredients", Reason: "must have at least one ingredient"}
	}
	if len(ingredients) > o.config.MaxIngredients {
		return nil, ErrInvalidRequest{Field: "ingredients", Reason: "exceeds maximum allowed"}
	}
	for _, ing := range ingredients {
		if err := ing.Validate(); err != nil {
			return nil, err
		}
	}

	primary, knownPrimary := o.catalog.Lookup(preferredStore)
	if !knownPrimary {
		primary = StoreInfo{Name: preferredStore, Type: StoreMainstream, ShoppingMinutes: o.config.DefaultShoppingMinutes}
	}

	plan := &ShoppingPlan{
		PrimaryStore:    primary,
		SecondaryStores: []StoreInfo{},
		Distribution:    make(map[string]StoreAssignment),
	}

	if len(options) == 0 {
		o.logger.Warn().Int("ingredients", len(ingredients)).Msg("No pricing data supplied, returning empty plan")
		return plan, nil
	}

	byIngredient := groupByIngredient(options)

	for _, ing := range ingredients {
		ingredientOptions := byIngredient[strings.ToLower(ing.Name)]
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if len(ingredientOptions) == 0 {
			o.logger.Warn().Str("ingredient", ing.Name).Msg("No pricing option for ingredient")
			continue
		}

		best := o.chooseOption(ing.Name, ingredientOptions, preferredStore)
		assignment := o.buildAssignment(ing.Name, best)
		assignment.Alternatives = o.buildAlternatives(ing.Name, ingredientOptions, best.StoreName)
		plan.Distribution[ing.Name] = assignment
	}

	o.aggregate(plan, len(ingredients), preferredStore)

	o.metrics.RecordPlanEfficiency(plan.EfficiencyPercent)
	o.metrics.RecordStoresUsed(plan.TotalStores)

	o.logger.Info().
		Str("primary", preferredStore).
		Int("efficiency", plan.EfficiencyPercent).
		Int("stores", plan.TotalStores).
		Float64("total_cost", plan.TotalCost).
		Msg("Shopping plan built")

	return plan, nil
}

// chooseOption picks the store option for one ingredient: preferred store
// first, then a specialty store for specialty ingredients, then the
// globally lowest price.
func (o *StoreAssignmentOptimizer) chooseOption(ingredient string, opts []PricedOption, preferredStore string) PricedOption {
	for _, opt := range opts {
		if opt.StoreName == preferredStore {
			return opt
		}
	}

	if IsSpecialtyIngredient(ingredient) {
		for _, opt := range opts {
			if info, ok := o.catalog.Lookup(opt.StoreName); ok && (info.Type == StoreEthnic || info.Type == StoreSpecialty) {
				return opt
			}
		}
	}

	best := opts[0]
	for _, opt := range opts[1:] {
		if priceForSorting(opt) < priceForSorting(best) {
			best = opt
		}
	}
	return best
}

// priceForSorting treats a missing price as effectively infinite so priced
// options always win the lowest-price fallback.
func priceForSorting(opt PricedOption) float64 {
	if opt.PackagePrice <= 0 {
		return math.Inf(1)
	}
	return opt.PackagePrice
}

// buildAssignment converts a chosen option into an assignment, preferring
// the catalog's verified address over whatever the pricing source reported.
func (o *StoreAssignmentOptimizer) buildAssignment(ingredient string, opt PricedOption) StoreAssignment {
	address := opt.StoreAddress
	storeType := opt.StoreType
	if info, ok := o.catalog.Lookup(opt.StoreName); ok {
		address = info.Address
		storeType = string(info.Type)
	}
	if storeType == "" {
		storeType = string(StoreMainstream)
	}

	productName := opt.ProductName
	if productName == "" {
		productName = ingredient
	}

	return StoreAssignment{
		Ingredient:   ingredient,
		Store:        opt.StoreName,
		StoreType:    storeType,
		StoreAddress: address,
		PackagePrice: opt.PackagePrice,
		PortionCost:  opt.PortionCost,
		ProductName:  productName,
		PackageSize:  opt.PackageSize,
		Confidence:   scoreConfidence(opt, address),
	}
}

// buildAlternatives returns up to MaxAlternatives assignments at other
// stores, cheapest first.
func (o *StoreAssignmentOptimizer) buildAlternatives(ingredient string, opts []PricedOption, chosenStore string) []StoreAssignment {
	var others []PricedOption
	for _, opt := range opts {
		if opt.StoreName != chosenStore {
			others = append(others, opt)
		}
	}
	sort.SliceStable(others, func(i, j int) bool {
		return priceForSorting(others[i]) < priceForSorting(others[j])
	})
	if len(others) > o.config.MaxAlternatives {
		others = others[:o.config.MaxAlternatives]
	}

	alternatives := make([]StoreAssignment, 0, len(others))
	for _, opt := range others {
		alternatives = append(alternatives, o.buildAssignment(ingredient, opt))
	}
	return alternatives
}

// scoreConfidence buckets data completeness: price, product name, address,
// package size, and a source reference each contribute, weighted by how
// much they matter for trusting the quoted price.
func scoreConfidence(opt PricedOption, address string) Confidence {
	score := 0
	if opt.PackagePrice > 0 {
		score += 3
	}
	if opt.ProductName != "" && !strings.EqualFold(opt.ProductName, "unknown") {
		score += 2
	}
	if address != "" {
		score += 2
	}
	if opt.PackageSize != "" {
		score++
	}
	if opt.SourceURL != "" {
		score++
	}

	switch {
	case score >= 7:
		return ConfidenceHigh
	case score >= 4:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// aggregate fills in the plan-level figures from the distribution.
func (o *StoreAssignmentOptimizer) aggregate(plan *ShoppingPlan, ingredientCount int, preferredStore string) {
	usedStores := make(map[string]bool)
	primaryCount := 0

	for _, assignment := range plan.Distribution {
		usedStores[assignment.Store] = true
		plan.TotalCost += assignment.PackagePrice
		if assignment.Store == preferredStore {
			primaryCount++
		}
	}

	if ingredientCount > 0 {
		plan.EfficiencyPercent = int(math.Round(100 * float64(primaryCount) / float64(ingredientCount)))
	}
	plan.TotalStores = len(usedStores)

	// Store names sorted for deterministic output.
	names := make([]string, 0, len(usedStores))
	for name := range usedStores {
		names = append(names, name)
	}
	sort.Strings(names)

	minutes := 0
	for _, name := range names {
		if info, ok := o.catalog.Lookup(name); ok {
			minutes += info.ShoppingMinutes
		} else {
			minutes += o.config.DefaultShoppingMinutes
		}
		if name != preferredStore {
			plan.SecondaryStores = append(plan.SecondaryStores, o.storeOrDefault(name))
		}
	}
	if plan.TotalStores > 1 {
		minutes += o.config.TravelPenaltyMinutes * (plan.TotalStores - 1)
	}
	plan.EstimatedMinutes = minutes
}

func (o *StoreAssignmentOptimizer) storeOrDefault(name string) StoreInfo {
	if info, ok := o.catalog.Lookup(name); ok {
		return info
	}
	return StoreInfo{Name: name, Type: StoreMainstream, ShoppingMinutes: o.config.DefaultShoppingMinutes}
}

// groupByIngredient indexes pricing options by lowercase ingredient name.
func groupByIngredient(options []PricedOption) map[string][]PricedOption {
	grouped := make(map[string][]PricedOption)
	for _, opt := range options {
		key := strings.ToLower(strings.TrimSpace(opt.Ingredient))
		grouped[key] = append(grouped[key], opt)
	}
	return grouped
}
