package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

// SaveXLSX writes the table to an XLSX workbook at path with one
// "Observations" sheet, preserving table order.
func SaveXLSX(path string, table *model.ObservationTable) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Observations")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	headerRow := sheet.AddRow()
	for _, h := range header {
		headerRow.AddCell().SetString(h)
	}

	if table != nil {
		for _, row := range table.Rows {
			r := sheet.AddRow()
			r.AddCell().SetString(row.SeriesID)
			r.AddCell().SetInt(row.Year)
			r.AddCell().SetString(row.Period)
			r.AddCell().SetString(row.PeriodName)
			r.AddCell().SetString(row.Value)
			r.AddCell().SetString(row.Footnotes)
		}
	}

	if err := file.Save(path); err != nil {
		return eris.Wrap(err, "export: save workbook")
	}
	return nil
}
