package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var latestCmd = &cobra.Command{
	Use:     "latest [series-id]",
	Short:   "Show the most recent observation for one series",
	Example: `  bls-assistant latest LNS14000000`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		provider := newProvider()

		point, err := provider.LatestValue(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if point == nil {
			fmt.Printf("No recent observations for %s.\n", args[0])
			return nil
		}

		fmt.Printf("%s: %s (%s %s)\n", args[0], point.Value, point.PeriodName, point.Year)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(latestCmd)
}
