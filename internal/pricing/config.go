package pricing

// Config holds the tunables for the pricing engine.
type Config struct {
	MaxIngredients      int `mapstructure:"max_ingredients"`
	MaxAlternatives     int `mapstructure:"max_alternatives"`
	Concurrency         int `mapstructure:"concurrency"`
	SearchLimit         int `mapstructure:"search_limit"`
	CandidateSaturation int `mapstructure:"candidate_saturation"`
}

// Defaults returns the default pricing engine configuration.
func Defaults() *Config {
	return &Config{
		MaxIngredients:      100,
		MaxAlternatives:     3,
		Concurrency:         8,
		SearchLimit:         10,
		CandidateSaturation: 20,
	}
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if c.MaxIngredients < 1 {
		return ErrInvalidRequest{Field: "max_ingredients", Reason: "must be at least 1"}
	}
	if c.MaxAlternatives < 0 {
		return ErrInvalidRequest{Field: "max_alternatives", Reason: "must be non-negative"}
	}
	if c.Concurrency < 1 {
		return ErrInvalidRequest{Field: "concurrency", Reason: "must be at least 1"}
	}
	if c.SearchLimit < 1 {
		return ErrInvalidRequest{Field: "search_limit", Reason: "must be at least 1"}
	}
	if c.CandidateSaturation < 1 {
		return ErrInvalidRequest{Field: "candidate_saturation", Reason: "must be at least 1"}
	}
	return nil
}
