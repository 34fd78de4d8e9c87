package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tmd",
	Short: "Backend for the time-use and travel survey analytics dashboard",
	Long: `tmd serves chart-ready aggregations over time-use/travel survey datasets:
between-year time series, cross-segment comparisons and single-year trip and
day-pattern distributions, each with sample-size bookkeeping.`,
}

// Execute is the entry point called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
