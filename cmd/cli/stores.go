package main

import (
	"fmt"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/plateful/pricing-service/internal/optimizer"
)

// storesCmd represents the stores command
var storesCmd = &cobra.Command{
	Use:   "stores",
	Short: "List the known store catalog",
	Long: `List the stores the optimizer can assign ingredients to, with their
type, address, and average visit time.`,
	Args: cobra.NoArgs,
	RunE: runStores,
}

func init() {
	rootCmd.AddCommand(storesCmd)
}

func runStores(cmd *cobra.Command, args []string) error {
	catalog := optimizer.DefaultStoreCatalog()

	names := catalog.Names()
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tTYPE\tMINUTES\tADDRESS\tSPECIALTIES")
	for _, name := range names {
		info, _ := catalog.Lookup(name)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			info.Name, info.Type, info.ShoppingMinutes, info.Address, strings.Join(info.Specialties, ", "))
	}
	return w.Flush()
}
