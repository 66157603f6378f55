package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/RakeemRanger/bls-data-assistant/internal/normalize"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

var (
	seriesStart   string
	seriesEnd     string
	seriesCatalog bool
	seriesOutput  string
	seriesFormat  string
)

var seriesCmd = &cobra.Command{
	Use:   "series [series-id ...]",
	Short: "Fetch series observations directly, bypassing the language model",
	Example: `  bls-assistant series LNS14000000 --start 2020 --end 2024
  bls-assistant series CUUR0000SA0 CES0000000001 --output data.xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, end := seriesStart, seriesEnd
		if end == "" {
			end = strconv.Itoa(time.Now().Year())
		}
		if start == "" {
			endYear, err := strconv.Atoi(end)
			if err != nil {
				return fmt.Errorf("invalid end year %q", end)
			}
			start = strconv.Itoa(endYear - 5)
		}

		provider := newProvider()
		resp, err := provider.GetSeriesData(cmd.Context(), bls.SeriesRequest{
			SeriesIDs: args,
			StartYear: start,
			EndYear:   end,
			Catalog:   seriesCatalog,
		})
		if err != nil {
			return err
		}

		table := normalize.Table(resp)
		if table.Empty() {
			fmt.Println("No observations returned.")
			return nil
		}

		printTable(table, table.Len())

		if s, ok := table.Summarize(); ok {
			fmt.Printf("\n%s\n", s)
		}

		if seriesOutput != "" {
			if err := saveTable(seriesOutput, seriesFormat, table); err != nil {
				return err
			}
			fmt.Printf("\nSaved %d rows to %s\n", table.Len(), seriesOutput)
		}

		return nil
	},
}

func init() {
	seriesCmd.Flags().StringVar(&seriesStart, "start", "", "start year (default: end year - 5)")
	seriesCmd.Flags().StringVar(&seriesEnd, "end", "", "end year (default: current year)")
	seriesCmd.Flags().BoolVar(&seriesCatalog, "catalog", false, "request catalog metadata")
	seriesCmd.Flags().StringVarP(&seriesOutput, "output", "o", "", "save the table to a file")
	seriesCmd.Flags().StringVar(&seriesFormat, "format", "", "export format: csv or xlsx (default inferred from extension)")
	rootCmd.AddCommand(seriesCmd)
}
