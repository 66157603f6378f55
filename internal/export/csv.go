// Package export writes observation tables to CSV and XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

var header = []string{"Series ID", "Year", "Period", "Period Name", "Value", "Footnotes"}

// WriteCSV writes the table to w with a header row, preserving table order.
func WriteCSV(w io.Writer, table *model.ObservationTable) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(header); err != nil {
		return eris.Wrap(err, "export: write csv header")
	}

	if table != nil {
		for _, row := range table.Rows {
			record := []string{
				row.SeriesID,
				strconv.Itoa(row.Year),
				row.Period,
				row.PeriodName,
				row.Value,
				row.Footnotes,
			}
			if err := cw.Write(record); err != nil {
				return eris.Wrap(err, "export: write csv row")
			}
		}
	}

	cw.Flush()
	return eris.Wrap(cw.Error(), "export: flush csv")
}

// SaveCSV writes the table to a CSV file at path.
func SaveCSV(path string, table *model.ObservationTable) error {
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrap(err, "export: create csv file")
	}
	defer f.Close()

	return WriteCSV(f, table)
}
