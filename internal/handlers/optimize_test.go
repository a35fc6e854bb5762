package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/optimizer"
	"github.com/plateful/pricing-service/internal/pricing"
)

// stubProductSource is a fixed-response ProductSource for handler tests.
type stubProductSource struct {
	products []catalog.Product
}

func (s *stubProductSource) SearchProducts(ctx context.Context, term, locationID string, limit int) ([]catalog.Product, error) {
	return s.products, nil
}

func (s *stubProductSource) GetProduct(ctx context.Context, productID, locationID string) (*catalog.Product, error) {
	for _, p := range s.products {
		if p.ID == productID {
			return &p, nil
		}
	}
	return nil, nil
}

func setupTestHandlers(t *testing.T, products []catalog.Product) *gin.Engine {
	t.Helper()

	engine := pricing.NewEngine(&stubProductSource{products: products}, pricing.Defaults(), pricing.NewMetricsRecorder())
	storeCat := optimizer.DefaultStoreCatalog()
	opt := optimizer.New(storeCat, optimizer.Defaults(), optimizer.NewMetricsRecorder())
	Init(engine, opt, storeCat, "")

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", HealthCheck)
	router.GET("/internal/stores", ListStores)
	router.POST("/internal/pricing/ingredients", PriceIngredients)
	router.POST("/internal/pricing/alternatives", GetAlternatives)
	router.POST("/internal/pricing/optimize-stores", OptimizeStores)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	jsonBody, err := json.Marshal(body)
	require.NoError(t, err)

	req, err := http.NewRequest("POST", path, bytes.NewBuffer(jsonBody))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestPriceIngredientsHappyPath tests the ingredient pricing happy path.
func TestPriceIngredientsHappyPath(t *testing.T) {
	router := setupTestHandlers(t, []catalog.Product{
		{ID: "milk-1", Description: "Whole Milk", SizeText: "128 fl oz", RegularPrice: 3.49, StockLevel: catalog.StockInStock},
	})

	reqBody := PriceIngredientsRequest{
		Ingredients: []IngredientDTO{{Name: "milk", Amount: 2, Unit: "cup"}},
		Servings:    4,
	}

	w := postJSON(t, router, "/internal/pricing/ingredients", reqBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var result pricing.Result
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	require.Len(t, result.Items, 1)
	assert.Equal(t, "milk-1", result.Items[0].ProductID)
	assert.InDelta(t, 3.49, result.TotalCost, 0.001)
}

// TestPriceIngredientsRejectsEmptyList tests request validation.
func TestPriceIngredientsRejectsEmptyList(t *testing.T) {
	router := setupTestHandlers(t, nil)

	w := postJSON(t, router, "/internal/pricing/ingredients", map[string]any{
		"ingredients": []any{},
		"servings":    4,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// TestOptimizeStoresHappyPath tests the shopping plan happy path.
func TestOptimizeStoresHappyPath(t *testing.T) {
	router := setupTestHandlers(t, nil)

	reqBody := OptimizeStoresRequest{
		Ingredients:    []IngredientDTO{{Name: "milk", Amount: 1, Unit: "cup"}},
		PreferredStore: "Pick 'n Save",
		Options: []PricedOptionDTO{
			{Ingredient: "milk", StoreName: "Pick 'n Save", PackagePrice: 3.49, ProductName: "Whole Milk"},
		},
	}

	w := postJSON(t, router, "/internal/pricing/optimize-stores", reqBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Plan       optimizer.ShoppingPlan `json:"plan"`
		Strategies []optimizer.Strategy   `json:"strategies"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 100, resp.Plan.EfficiencyPercent)
	assert.Equal(t, "Pick 'n Save", resp.Plan.Distribution["milk"].Store)
	assert.Len(t, resp.Strategies, 3)
}

// TestOptimizeStoresEmptyPricing tests that missing pricing data yields an
// empty plan, not an error.
func TestOptimizeStoresEmptyPricing(t *testing.T) {
	router := setupTestHandlers(t, nil)

	reqBody := OptimizeStoresRequest{
		Ingredients:    []IngredientDTO{{Name: "milk", Amount: 1, Unit: "cup"}},
		PreferredStore: "Aldi",
	}

	w := postJSON(t, router, "/internal/pricing/optimize-stores", reqBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Plan optimizer.ShoppingPlan `json:"plan"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Plan.Distribution)
	assert.Zero(t, resp.Plan.TotalCost)
}

// TestGetAlternatives tests the alternatives endpoint.
func TestGetAlternatives(t *testing.T) {
	router := setupTestHandlers(t, []catalog.Product{
		{ID: "a", Description: "Fresh Tomato", RegularPrice: 1.99, Categories: []string{"Produce"}},
		{ID: "b", Description: "Tomato Soup", RegularPrice: 1.29, Categories: []string{"Canned Goods"}},
	})

	reqBody := AlternativesRequest{
		Ingredient: IngredientDTO{Name: "tomato", Amount: 1, Unit: "lb"},
	}

	w := postJSON(t, router, "/internal/pricing/alternatives", reqBody)
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Candidates []CandidateDTO `json:"candidates"`
		Total      int            `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Equal(t, 2, resp.Total)
	assert.Equal(t, "a", resp.Candidates[0].ProductID)
}

// TestListStores tests the store catalog endpoint.
func TestListStores(t *testing.T) {
	router := setupTestHandlers(t, nil)

	req, err := http.NewRequest("GET", "/internal/stores", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Stores []optimizer.StoreInfo `json:"stores"`
		Total  int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 6, resp.Total)
}

// TestHealthCheck tests the health endpoint.
func TestHealthCheck(t *testing.T) {
	router := setupTestHandlers(t, nil)

	req, err := http.NewRequest("GET", "/health", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "ready", resp.Engine)
}
