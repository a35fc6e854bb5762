package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/xuri/excelize/v2"

	"github.com/plateful/pricing-service/internal/optimizer"
	"github.com/plateful/pricing-service/internal/types"
)

var (
	planPreferredStore string
	planXLSXOut        string
	planJSONOut        bool
)

// planCmd represents the plan command
var planCmd = &cobra.Command{
	Use:   "plan <pricing.json>",
	Short: "Build a shopping plan from store-tagged pricing data",
	Long: `Read store-tagged pricing options from a JSON file and assign each
ingredient to a store. Ingredients go to the preferred store when it has
them, specialty ingredients fall back to specialty stores, and everything
else goes to the cheapest option.

The input file is a JSON object with "ingredients" (array of {"name",
"amount", "unit"}) and "options" (array of store-tagged prices).`,
	Example: `  pricing-service plan pricing.json --store "Pick 'n Save"
  pricing-service plan pricing.json --store Aldi --xlsx plan.xlsx`,
	Args: cobra.ExactArgs(1),
	RunE: runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)

	planCmd.Flags().StringVar(&planPreferredStore, "store", "Pick 'n Save", "Preferred primary store")
	planCmd.Flags().StringVar(&planXLSXOut, "xlsx", "", "Export the plan to an xlsx file")
	planCmd.Flags().BoolVar(&planJSONOut, "json", false, "Print the raw plan as JSON")
}

// planInput is the JSON file format for the plan command.
type planInput struct {
	Ingredients []types.Ingredient      `json:"ingredients"`
	Options     []optimizer.PricedOption `json:"options"`
}

func runPlan(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", args[0], err)
	}
	var input planInput
	if err := json.Unmarshal(data, &input); err != nil {
		return fmt.Errorf("failed to parse %s: %w", args[0], err)
	}

	optimizerCfg := optimizer.Defaults()
	if cfg != nil {
		optimizerCfg = &cfg.Optimizer
	}
	opt := optimizer.New(optimizer.DefaultStoreCatalog(), optimizerCfg, optimizer.NewMetricsRecorder())

	plan, err := opt.Optimize(context.Background(), input.Ingredients, planPreferredStore, input.Options)
	if err != nil {
		return fmt.Errorf("planning failed: %w", err)
	}

	if planJSONOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(plan)
	}

	printPlanTable(plan)

	if planXLSXOut != "" {
		if err := exportPlanXLSX(plan, planXLSXOut); err != nil {
			return fmt.Errorf("xlsx export failed: %w", err)
		}
		logger.Info().Str("file", planXLSXOut).Msg("Plan exported")
	}
	return nil
}

func sortedAssignments(plan *optimizer.ShoppingPlan) []optimizer.StoreAssignment {
	assignments := make([]optimizer.StoreAssignment, 0, len(plan.Distribution))
	for _, a := range plan.Distribution {
		assignments = append(assignments, a)
	}
	sort.Slice(assignments, func(i, j int) bool {
		if assignments[i].Store != assignments[j].Store {
			return assignments[i].Store < assignments[j].Store
		}
		return assignments[i].Ingredient < assignments[j].Ingredient
	})
	return assignments
}

func printPlanTable(plan *optimizer.ShoppingPlan) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INGREDIENT\tSTORE\tPRODUCT\tPRICE\tCONFIDENCE")
	for _, a := range sortedAssignments(plan) {
		fmt.Fprintf(w, "%s\t%s\t%s\t$%.2f\t%s\n",
			a.Ingredient, a.Store, a.ProductName, a.PackagePrice, a.Confidence)
	}
	w.Flush()

	fmt.Printf("\nPrimary store: %s (%d%% of ingredients)\n", plan.PrimaryStore.Name, plan.EfficiencyPercent)
	fmt.Printf("Stores: %d, estimated time: %d min, total: $%.2f\n",
		plan.TotalStores, plan.EstimatedMinutes, plan.TotalCost)
}

func exportPlanXLSX(plan *optimizer.ShoppingPlan, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Shopping Plan"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	headers := []string{"Ingredient", "Store", "Store Address", "Product", "Package Size", "Price", "Confidence"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for row, a := range sortedAssignments(plan) {
		values := []any{a.Ingredient, a.Store, a.StoreAddress, a.ProductName, a.PackageSize, a.PackagePrice, string(a.Confidence)}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}

	summaryRow := len(plan.Distribution) + 3
	cell, err := excelize.CoordinatesToCellName(1, summaryRow)
	if err != nil {
		return err
	}
	summary := fmt.Sprintf("Total: $%.2f across %d stores, ~%d min",
		plan.TotalCost, plan.TotalStores, plan.EstimatedMinutes)
	if err := f.SetCellValue(sheet, cell, summary); err != nil {
		return err
	}

	return f.SaveAs(path)
}
