package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tomnetutc/tmd-sub000/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the option catalog's attribute groups and options",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("Catalog version %s\n", catalog.Version())

		for _, group := range catalog.Groups() {
			fmt.Printf("\n%s (%s)\n", group.Name, group.ID)
			for _, option := range group.Options {
				fmt.Printf(
					"  %-24s %s (%s == %s)\n",
					option.Value, option.Label, option.ColumnID, option.MatchValue,
				)
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
