package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/RakeemRanger/bls-data-assistant/internal/export"
	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

var (
	askOutput string
	askFormat string
	askRows   int
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask a one-shot question about labor statistics",
	Example: `  bls-assistant ask "What's the unemployment rate in 2023?"
  bls-assistant ask "CPI trends over the last 5 years" --output cpi.csv
  bls-assistant ask "employment growth 2020 to 2024" --output jobs.xlsx --format xlsx`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.Join(args, " ")

		p := newPipeline()
		result, _ := p.ProcessQuery(cmd.Context(), question, nil)

		fmt.Println(result.Message)

		if !result.Data.Empty() {
			fmt.Println()
			printTable(result.Data, askRows)
		}

		if askOutput != "" {
			if err := saveTable(askOutput, askFormat, result.Data); err != nil {
				return err
			}
			fmt.Printf("\nSaved %d rows to %s\n", result.Data.Len(), askOutput)
		}

		return nil
	},
}

// saveTable writes the table in the requested format, inferring it from
// the file extension when the flag is empty.
func saveTable(path, format string, table *model.ObservationTable) error {
	if format == "" {
		if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
			format = "xlsx"
		} else {
			format = "csv"
		}
	}
	switch format {
	case "xlsx":
		return export.SaveXLSX(path, table)
	case "csv":
		return export.SaveCSV(path, table)
	default:
		return fmt.Errorf("unknown export format %q (want csv or xlsx)", format)
	}
}

// printTable renders up to n rows as aligned text.
func printTable(table *model.ObservationTable, n int) {
	rows := table.Head(n)
	fmt.Printf("%-16s %-5s %-7s %-12s %10s\n", "SERIES", "YEAR", "PERIOD", "NAME", "VALUE")
	for _, r := range rows {
		fmt.Printf("%-16s %-5d %-7s %-12s %10s\n", r.SeriesID, r.Year, r.Period, r.PeriodName, r.Value)
	}
	if table.Len() > len(rows) {
		fmt.Printf("... and %d more rows\n", table.Len()-len(rows))
	}
}

func init() {
	askCmd.Flags().StringVarP(&askOutput, "output", "o", "", "save the retrieved table to a file")
	askCmd.Flags().StringVar(&askFormat, "format", "", "export format: csv or xlsx (default inferred from extension)")
	askCmd.Flags().IntVar(&askRows, "rows", 10, "rows to print to the terminal")
	rootCmd.AddCommand(askCmd)
}
