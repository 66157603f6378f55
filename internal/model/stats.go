package model

import (
	"fmt"
	"math"
	"strconv"
)

// Summary holds descriptive statistics over a table's numeric values.
// Latest and Earliest follow table order (most recent row first).
type Summary struct {
	Count    int     `json:"count"`
	Latest   float64 `json:"latest"`
	Earliest float64 `json:"earliest"`
	Mean     float64 `json:"mean"`
	StdDev   float64 `json:"std_dev"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
}

// Summarize computes summary statistics over the table's parseable values.
// The second return is false when the table carries no numeric values.
func (t *ObservationTable) Summarize() (Summary, bool) {
	values := t.Values()
	if len(values) == 0 {
		return Summary{}, false
	}

	s := Summary{
		Count:    len(values),
		Latest:   values[0],
		Earliest: values[len(values)-1],
		Min:      values[0],
		Max:      values[0],
	}

	var sum float64
	for _, v := range values {
		sum += v
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}
	s.Mean = sum / float64(len(values))

	var sq float64
	for _, v := range values {
		d := v - s.Mean
		sq += d * d
	}
	if len(values) > 1 {
		s.StdDev = math.Sqrt(sq / float64(len(values)-1))
	}

	return s, true
}

// FormatValue renders a string-encoded number with fixed decimal places,
// passing the input through unchanged when it does not parse.
func FormatValue(value string, decimals int) string {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// String renders the summary as a short human-readable block.
func (s Summary) String() string {
	return fmt.Sprintf("latest=%.2f mean=%.2f min=%.2f max=%.2f n=%d",
		s.Latest, s.Mean, s.Min, s.Max, s.Count)
}
