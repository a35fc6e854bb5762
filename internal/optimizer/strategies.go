package optimizer

// DefaultStrategies returns the advisory shopping strategies shown to
// users before a plan is computed. The figures are typical values, not
// outputs of the assignment algorithm.
func DefaultStrategies() []Strategy {
	return []Strategy{
		{
			Name:            "One-Store First",
			Description:     "Buy everything possible at your preferred store, visit a specialty store only for items it cannot supply",
			EstimatedTime:   45,
			EstimatedStores: 2,
			Efficiency:      85,
		},
		{
			Name:            "Best Price",
			Description:     "Chase the lowest price for every ingredient regardless of how many stops that takes",
			EstimatedTime:   75,
			EstimatedStores: 4,
			Efficiency:      60,
		},
		{
			Name:            "Convenience",
			Description:     "Single trip to the nearest mainstream store, accepting substitutions for specialty items",
			EstimatedTime:   25,
			EstimatedStores: 1,
			Efficiency:      65,
		},
	}
}
