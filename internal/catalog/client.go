package catalog

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// ClientConfig holds the catalog API client configuration.
type ClientConfig struct {
	BaseURL           string
	TokenURL          string
	ClientID          string
	ClientSecret      string
	Scope             string
	RequestTimeout    time.Duration
	RequestsPerSecond float64
	Burst             int
	MaxRetries        int
	InitialBackoff    time.Duration
	MaxBackoff        time.Duration
}

// DefaultClientConfig returns conservative defaults for the catalog client.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Scope:             "product.compact",
		RequestTimeout:    10 * time.Second,
		RequestsPerSecond: 5,
		Burst:             10,
		MaxRetries:        3,
		InitialBackoff:    100 * time.Millisecond,
		MaxBackoff:        5 * time.Second,
	}
}

// Client talks to the external grocery catalog API. It handles OAuth2
// client-credentials tokens, rate limiting, and bounded retries with
// backoff. All engine-facing methods return normalized Product values.
type Client struct {
	httpClient *http.Client
	config     ClientConfig
	limiter    *rate.Limiter
	logger     zerolog.Logger

	tokenMu     sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a catalog client with the given configuration.
func NewClient(config ClientConfig) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: config.RequestTimeout},
		config:     config,
		limiter:    rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:     log.With().Str("component", "catalog_client").Logger(),
	}
}

// tokenResponse is the OAuth2 token endpoint response.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// authenticate fetches a client-credentials token if the cached one is
// missing or about to expire. Tokens refresh one minute early so an
// in-flight request never carries a token that expires mid-request.
func (c *Client) authenticate(ctx context.Context) error {
	c.tokenMu.Lock()
	defer c.tokenMu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry) {
		return nil
	}

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("scope", c.config.Scope)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build token request: %w", err)
	}
	credentials := base64.StdEncoding.EncodeToString([]byte(c.config.ClientID + ":" + c.config.ClientSecret))
	req.Header.Set("Authorization", "Basic "+credentials)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &AuthError{Status: resp.StatusCode, Body: string(body)}
	}

	var tok tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return fmt.Errorf("failed to decode token response: %w", err)
	}

	c.accessToken = tok.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)
	c.logger.Debug().Time("expiry", c.tokenExpiry).Msg("Catalog token refreshed")
	return nil
}

// invalidateToken drops the cached token so the next request re-authenticates.
func (c *Client) invalidateToken() {
	c.tokenMu.Lock()
	c.accessToken = ""
	c.tokenMu.Unlock()
}

// get performs an authenticated GET with rate limiting and retry. A 401
// invalidates the token and retries once with a fresh one.
func (c *Client) get(ctx context.Context, endpoint string, out any) error {
	var lastErr error
	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			backoff := c.backoff(attempt)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limiter: %w", err)
		}
		if err := c.authenticate(ctx); err != nil {
			lastErr = err
			continue
		}

		c.tokenMu.Lock()
		token := c.accessToken
		c.tokenMu.Unlock()

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.config.BaseURL+endpoint, nil)
		if err != nil {
			return fmt.Errorf("failed to build request: %w", err)
		}
		req.Header.Set("Authorization", "Bearer "+token)
		req.Header.Set("Accept", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			lastErr = err
			continue
		}

		switch {
		case resp.StatusCode == http.StatusUnauthorized:
			resp.Body.Close()
			c.invalidateToken()
			lastErr = &RequestError{Endpoint: endpoint, Status: resp.StatusCode}
			continue
		case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
			resp.Body.Close()
			lastErr = &RequestError{Endpoint: endpoint, Status: resp.StatusCode}
			continue
		case resp.StatusCode != http.StatusOK:
			resp.Body.Close()
			return &RequestError{Endpoint: endpoint, Status: resp.StatusCode}
		}

		err = json.NewDecoder(resp.Body).Decode(out)
		resp.Body.Close()
		if err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
		return nil
	}
	return fmt.Errorf("catalog request failed after %d attempts: %w", c.config.MaxRetries+1, lastErr)
}

// backoff computes exponential backoff with jitter for a retry attempt.
func (c *Client) backoff(attempt int) time.Duration {
	d := c.config.InitialBackoff << (attempt - 1)
	if d > c.config.MaxBackoff {
		d = c.config.MaxBackoff
	}
	jitter := time.Duration(rand.Int63n(int64(d)/4 + 1))
	return d + jitter
}

// rawSearchResponse mirrors the upstream product search payload. Only the
// fields the engine consumes are mapped; everything else is dropped.
type rawSearchResponse struct {
	Data []rawProduct `json:"data"`
}

type rawProduct struct {
	ProductID   string   `json:"productId"`
	UPC         string   `json:"upc"`
	Description string   `json:"description"`
	Brand       string   `json:"brand"`
	Categories  []string `json:"categories"`
	Items       []struct {
		Price struct {
			Regular float64 `json:"regular"`
			Promo   float64 `json:"promo"`
		} `json:"price"`
		Size      string `json:"size"`
		Inventory struct {
			StockLevel string `json:"stockLevel"`
		} `json:"inventory"`
	} `json:"items"`
	Images []struct {
		Sizes []struct {
			URL string `json:"url"`
		} `json:"sizes"`
	} `json:"images"`
}

// normalize maps a raw catalog record onto the engine-facing Product,
// applying the documented fallbacks for missing fields.
func (r rawProduct) normalize(locationID string) Product {
	p := Product{
		ID:          r.ProductID,
		UPC:         r.UPC,
		Description: strings.Join(strings.Fields(r.Description), " "),
		Brand:       r.Brand,
		Categories:  r.Categories,
		StockLevel:  StockUnknown,
		LocationID:  locationID,
	}
	if len(r.Items) > 0 {
		item := r.Items[0]
		p.RegularPrice = item.Price.Regular
		p.PromoPrice = item.Price.Promo
		p.IsPromo = item.Price.Promo > 0 && item.Price.Promo < item.Price.Regular
		p.SizeText = item.Size
		p.StockLevel = NormalizeStockLevel(item.Inventory.StockLevel)
	}
	if len(r.Images) > 0 && len(r.Images[0].Sizes) > 0 {
		p.ImageURL = r.Images[0].Sizes[0].URL
	}
	return p
}

// SearchProducts searches the catalog for a term, optionally scoped to a
// store location, and returns normalized candidates.
func (c *Client) SearchProducts(ctx context.Context, term, locationID string, limit int) ([]Product, error) {
	if limit <= 0 {
		limit = 20
	}
	params := url.Values{}
	params.Set("filter.term", term)
	params.Set("filter.limit", strconv.Itoa(limit))
	if locationID != "" {
		params.Set("filter.locationId", locationID)
	}

	var raw rawSearchResponse
	if err := c.get(ctx, "/products?"+params.Encode(), &raw); err != nil {
		return nil, err
	}

	products := make([]Product, 0, len(raw.Data))
	for _, r := range raw.Data {
		products = append(products, r.normalize(locationID))
	}
	return products, nil
}

// GetProduct fetches a single product by its catalog ID.
func (c *Client) GetProduct(ctx context.Context, productID, locationID string) (*Product, error) {
	params := url.Values{}
	params.Set("filter.productId", productID)
	params.Set("filter.limit", "1")
	if locationID != "" {
		params.Set("filter.locationId", locationID)
	}

	var raw rawSearchResponse
	if err := c.get(ctx, "/products?"+params.Encode(), &raw); err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 {
		return nil, nil
	}
	p := raw.Data[0].normalize(locationID)
	return &p, nil
}

// rawLocationResponse mirrors the upstream location lookup payload.
type rawLocationResponse struct {
	Data []struct {
		LocationID string `json:"locationId"`
		Name       string `json:"name"`
	} `json:"data"`
}

// Location identifies a physical store resolved from a zip code.
type Location struct {
	ID   string
	Name string
}

// NearestLocation resolves the closest store location to a zip code.
// Returns nil when the catalog knows no store near the zip.
func (c *Client) NearestLocation(ctx context.Context, zip string) (*Location, error) {
	params := url.Values{}
	params.Set("filter.zipCode.near", zip)
	params.Set("filter.limit", "1")

	var raw rawLocationResponse
	if err := c.get(ctx, "/locations?"+params.Encode(), &raw); err != nil {
		return nil, err
	}
	if len(raw.Data) == 0 {
		return nil, nil
	}
	return &Location{ID: raw.Data[0].LocationID, Name: raw.Data[0].Name}, nil
}

// AuthError is returned when the token endpoint rejects the credentials.
type AuthError struct {
	Status int
	Body   string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("catalog authentication failed: status %d: %s", e.Status, e.Body)
}

// RequestError is returned for non-OK catalog API responses.
type RequestError struct {
	Endpoint string
	Status   int
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("catalog request %s failed: status %d", e.Endpoint, e.Status)
}
