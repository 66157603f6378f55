// Package normalize flattens raw provider responses into observation tables.
package normalize

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

// Table flattens a raw provider response into a sorted observation table.
// It returns nil when the response is nil or carries no series: a missing
// or structurally empty result is a recoverable "no data" signal, not an
// error, since intent extraction may have guessed series identifiers that
// returned nothing. The output is deterministic and idempotent: the same
// input always yields an identical row order.
func Table(resp *bls.SeriesResponse) *model.ObservationTable {
	if resp == nil || len(resp.Results.Series) == 0 {
		return nil
	}

	table := &model.ObservationTable{}
	for _, series := range resp.Results.Series {
		for _, point := range series.Data {
			year, err := strconv.Atoi(point.Year)
			if err != nil {
				zap.L().Debug("normalize: skipping point with unparseable year",
					zap.String("series_id", series.SeriesID),
					zap.String("year", point.Year),
				)
				continue
			}
			table.Rows = append(table.Rows, model.Observation{
				SeriesID:   series.SeriesID,
				Year:       year,
				Period:     point.Period,
				PeriodName: point.PeriodName,
				Value:      point.Value,
				Footnotes:  joinFootnotes(point.Footnotes),
			})
		}
	}

	table.Sort()
	return table
}

func joinFootnotes(notes []bls.Footnote) string {
	var texts []string
	for _, n := range notes {
		if n.Text != "" {
			texts = append(texts, n.Text)
		}
	}
	return strings.Join(texts, ", ")
}
