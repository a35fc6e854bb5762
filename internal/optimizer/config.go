package optimizer

// Config holds the tunables for store assignment.
type Config struct {
	MaxIngredients         int `mapstructure:"max_ingredients"`
	MaxAlternatives        int `mapstructure:"max_alternatives"`
	TravelPenaltyMinutes   int `mapstructure:"travel_penalty_minutes"`
	DefaultShoppingMinutes int `mapstructure:"default_shopping_minutes"`
}

// Defaults returns the default optimizer configuration.
func Defaults() *Config {
	return &Config{
		MaxIngredients:         100,
		MaxAlternatives:        3,
		TravelPenaltyMinutes:   10,
		DefaultShoppingMinutes: 20,
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
	if c.TravelPenaltyMinutes < 0 {
		return ErrInvalidRequest{Field: "travel_penalty_minutes", Reason: "must be non-negative"}
	}
	if c.DefaultShoppingMinutes < 1 {
		return ErrInvalidRequest{Field: "default_shopping_minutes", Reason: "must be at least 1"}
	}
	return nil
}
