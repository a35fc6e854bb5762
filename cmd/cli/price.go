package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plateful/pricing-service/internal/catalog"
	"github.com/plateful/pricing-service/internal/pricing"
	"github.com/plateful/pricing-service/internal/types"
)

var (
	priceServings   int
	priceLocationID string
	priceJSONOut    bool
)

// priceCmd represents the price command
var priceCmd = &cobra.Command{
	Use:   "price <ingredients.json>",
	Short: "Price an ingredient list against the grocery catalog",
	Long: `Read an ingredient list from a JSON file and price it against the
grocery catalog. Each ingredient is matched to catalog products, the best
match is cost-estimated, and the per-ingredient and total costs are
printed as a table.

The input file is a JSON array of {"name", "amount", "unit"} objects.`,
	Example: `  pricing-service price ingredients.json
  pricing-service price ingredients.json --servings 4
  pricing-service price ingredients.json --location 02100328 --json`,
	Args: cobra.ExactArgs(1),
	RunE: runPrice,
}

func init() {
	rootCmd.AddCommand(priceCmd)

	priceCmd.Flags().IntVar(&priceServings, "servings", 4, "Number of servings the recipe makes")
	priceCmd.Flags().StringVar(&priceLocationID, "location", "", "Catalog location ID (defaults to configured location)")
	priceCmd.Flags().BoolVar(&priceJSONOut, "json", false, "Print the raw result as JSON")
}

func runPrice(cmd *cobra.Command, args []string) error {
	ingredients, err := readIngredients(args[0])
	if err != nil {
		return err
	}

	client := catalog.NewClient(cfg.CatalogClientConfig())
	engine := pricing.NewEngine(client, &cfg.Pricing, pricing.NewMetricsRecorder())

	locationID := priceLocationID
	if locationID == "" {
		locationID = cfg.Catalog.DefaultLocationID
	}

	req := pricing.Request{
		Ingredients: ingredients,
		Servings:    priceServings,
		LocationID:  locationID,
	}

	result, err := engine.PriceIngredients(context.Background(), req)
	if err != nil {
		return fmt.Errorf("pricing failed: %w", err)
	}

	if priceJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	printPricingTable(result)
	return nil
}

func readIngredients(path string) ([]types.Ingredient, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var ingredients []types.Ingredient
	if err := json.Unmarshal(data, &ingredients); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return ingredients, nil
}

func printPricingTable(result *pricing.Result) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tPRODUCT\tSIZE\tPACKAGES\tPRICE\tCOST")
	for _, item := range result.Items {
		if item.Unpriced {
			fmt.Fprintf(w, "%s\t%s\t\t\t\tunpriced\n", item.Ingredient.Name, item.ProductName)
			continue
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t$%.2f\t$%.2f\n",
			item.Ingredient.Name,
			item.ProductName,
			item.PackageSize,
			item.PackagesNeeded,
			item.PackagePrice,
			item.EstimatedCost,
		)
	}
	w.Flush()

	fmt.Printf("\nTotal: $%.2f ($%.2f per serving, %d unpriced)\n",
		result.TotalCost, result.CostPerServing, result.UnpricedCount)
}
