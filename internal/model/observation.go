package model

import (
	"sort"
	"strconv"
)

// Observation is one (year, period) data point for a series. Value is kept
// string-encoded as the provider returns it; numeric use parses on demand.
type Observation struct {
	SeriesID   string `json:"series_id"`
	Year       int    `json:"year"`
	Period     string `json:"period"`
	PeriodName string `json:"period_name"`
	Value      string `json:"value"`
	Footnotes  string `json:"footnotes,omitempty"`
}

// ObservationTable is an ordered sequence of observations, most recent
// first. An empty table is a valid state distinct from an absent (nil) one.
type ObservationTable struct {
	Rows []Observation `json:"rows"`
}

// Len returns the number of rows. Safe on a nil table.
func (t *ObservationTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Empty reports whether the table is nil or has no rows.
func (t *ObservationTable) Empty() bool {
	return t.Len() == 0
}

// Sort orders rows by year descending, then period code descending.
// Period codes are fixed-width ("M01".."M12", "Q01".."Q04"), so a
// lexicographic comparison orders them correctly. The sort is stable, so
// re-sorting an already-sorted table yields an identical row order.
func (t *ObservationTable) Sort() {
	if t == nil {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		a, b := t.Rows[i], t.Rows[j]
		if a.Year != b.Year {
			return a.Year > b.Year
		}
		return a.Period > b.Period
	})
}

// Head returns up to n rows from the top of the table (the most recent
// observations once sorted).
func (t *ObservationTable) Head(n int) []Observation {
	if t == nil || n <= 0 {
		return nil
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}
	return t.Rows[:n]
}

// Values parses every row value as float64, skipping rows that do not
// parse (BLS uses placeholders like "-" for missing points).
func (t *ObservationTable) Values() []float64 {
	if t == nil {
		return nil
	}
	out := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, err := strconv.ParseFloat(row.Value, 64); err == nil {
			out = append(out, v)
		}
	}
	return out
}
