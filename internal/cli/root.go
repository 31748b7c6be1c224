package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "lunchline",
	Short: "Restaurant order management service",
	Long: `lunchline runs the order-management backend for a restaurant:
cashier-side order placement with atomic stock decrement, kitchen list
and kanban projections, and order lifecycle events.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./config.yaml)")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
