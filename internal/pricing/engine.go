package pricing

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/costing"
	"github.com/plateful/pricing-service/internal/matching"
	"github.com/plateful/pricing-service/internal/types"
)

// Engine runs the pricing pipeline for ingredient lists.
type Engine struct {
	source    ProductSource
	matcher   *matching.Matcher
	estimator *costing.Estimator
	config    *Config
	metrics   *MetricsRecorder
	// sem bounds concurrent catalog fan-out across ingredients.
	sem    *semaphore.Weighted
	logger zerolog.Logger
}

// NewEngine creates a pricing engine.
func NewEngine(source ProductSource, config *Config, metrics *MetricsRecorder) *Engine {
	return &Engine{
		source:    source,
		matcher:   matching.NewMatcher(matching.DefaultWeights()),
		estimator: costing.NewEstimator(),
		config:    config,
		metrics:   metrics,
		sem:       semaphore.NewWeighted(int64(config.Concurrency)),
		logger:    log.With().Str("component", "pricing_engine").Logger(),
	}
}

// PriceIngredients prices every ingredient in the request. Ingredients
// that cannot be priced produce zero-cost entries flagged Unpriced; they
// are never dropped and never guessed at.
func (e *Engine) PriceIngredients(ctx context.Context, req Request) (*Result, error) {
	startTime := time.Now()
	defer func() {
		e.metrics.RecordRequestDuration(time.Since(startTime))
	}()

	if err := req.Validate(e.config.MaxIngredients); err != nil {
		return nil, err
	}

	items := make([]IngredientPrice, len(req.Ingredients))
	var wg sync.WaitGroup
	var firstErr error
	var errOnce sync.Once

	for i, ing := range req.Ingredients {
		if err := e.sem.Acquire(ctx, 1); err != nil {
			return nil, err
		}
		wg.Add(1)
		go func(i int, ing types.Ingredient) {
			defer wg.Done()
			defer e.sem.Release(1)

			item, err := e.priceIngredient(ctx, ing, req)
			if err != nil {
				errOnce.Do(func() { firstErr = err })
				return
			}
			items[i] = item
		}(i, ing)
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	result := &Result{Items: items}
	for _, item := range items {
		result.TotalCost += item.EstimatedCost
		if item.Unpriced {
			result.UnpricedCount++
		}
	}
	result.TotalCost = roundCents(result.TotalCost)
	if req.Servings > 0 {
		result.CostPerServing = roundCents(result.TotalCost / float64(req.Servings))
	}

	e.metrics.RecordUnpricedItems(result.UnpricedCount)
	e.logger.Info().
		Int("ingredients", len(req.Ingredients)).
		Int("unpriced", result.UnpricedCount).
		Float64("total_cost", result.TotalCost).
		Dur("duration", time.Since(startTime)).
		Msg("Priced ingredient list")

	return result, nil
}

// priceIngredient runs the full pipeline for one ingredient: either a
// pinned product lookup, or search, rank, and estimate.
func (e *Engine) priceIngredient(ctx context.Context, ing types.Ingredient, req Request) (IngredientPrice, error) {
	if productID, pinned := req.PreferredProducts[ing.Name]; pinned {
		return e.pricePinned(ctx, ing, productID, req)
	}

	candidates, err := e.collectCandidates(ctx, ing, req.LocationID)
	if err != nil {
		return IngredientPrice{}, err
	}

	hint := matching.ClassifyCategory(ing.Name)
	ranked := e.matcher.Rank(ing, candidates, hint)
	e.metrics.RecordCandidateCount(len(candidates))

	if len(ranked) == 0 {
		e.logger.Warn().Str("ingredient", ing.Name).Msg("No catalog candidates")
		return unpricedItem(ing), nil
	}

	top := ranked[0]
	e.metrics.RecordMatchScore(top.Score)

	alternatives := ranked[1:]
	if len(alternatives) > e.config.MaxAlternatives {
		alternatives = alternatives[:e.config.MaxAlternatives]
	}

	item := e.buildItem(ing, top.Product, req.Servings)
	item.MatchScore = top.Score
	item.Alternatives = append([]matching.ScoredCandidate(nil), alternatives...)
	return item, nil
}

// pricePinned prices against a caller-chosen product, bypassing ranking.
func (e *Engine) pricePinned(ctx context.Context, ing types.Ingredient, productID string, req Request) (IngredientPrice, error) {
	p, err := e.source.GetProduct(ctx, productID, req.LocationID)
	if err != nil {
		return IngredientPrice{}, err
	}
	if p == nil {
		e.logger.Warn().Str("ingredient", ing.Name).Str("product_id", productID).Msg("Pinned product not found")
		return unpricedItem(ing), nil
	}
	item := e.buildItem(ing, *p, req.Servings)
	item.MatchScore = 1
	return item, nil
}

// Alternatives returns the full ranked candidate list for one ingredient,
// for callers that let the user pick a substitute product themselves.
func (e *Engine) Alternatives(ctx context.Context, ing types.Ingredient, locationID string) ([]matching.ScoredCandidate, error) {
	if err := ing.Validate(); err != nil {
		return nil, err
	}
	candidates, err := e.collectCandidates(ctx, ing, locationID)
	if err != nil {
		return nil, err
	}
	hint := matching.ClassifyCategory(ing.Name)
	return e.matcher.Rank(ing, candidates, hint), nil
}

// collectCandidates searches the catalog with each generated term until
// the candidate pool saturates. Results are deduped by product key so the
// same item found under two phrasings counts once.
func (e *Engine) collectCandidates(ctx context.Context, ing types.Ingredient, locationID string) ([]catalog.Product, error) {
	seen := make(map[string]bool)
	var candidates []catalog.Product

	for _, term := range matching.BuildSearchTerms(ing) {
		if len(candidates) >= e.config.CandidateSaturation {
			break
		}
		products, err := e.source.SearchProducts(ctx, term, locationID, e.config.SearchLimit)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			key := p.Key()
			if seen[key] {
				continue
			}
			seen[key] = true
			candidates = append(candidates, p)
		}
	}
	return candidates, nil
}

// buildItem turns a product into a priced line via the cost estimator.
func (e *Engine) buildItem(ing types.Ingredient, p catalog.Product, servings int) IngredientPrice {
	est := e.estimator.Estimate(ing, p, servings)
	return IngredientPrice{
		Ingredient:     ing,
		ProductID:      p.ID,
		ProductName:    p.Description,
		Brand:          p.Brand,
		PackageSize:    est.PackageSizeLabel,
		PackagePrice:   p.EffectivePrice(),
		PackagesNeeded: est.PackagesNeeded,
		EstimatedCost:  roundCents(est.EstimatedCost),
		OnPromo:        p.IsPromo && p.PromoPrice > 0,
		ImageURL:       p.ImageURL,
		Unpriced:       est.Unpriced,
	}
}

func unpricedItem(ing types.Ingredient) IngredientPrice {
	return IngredientPrice{Ingredient: ing, Unpriced: true}
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
