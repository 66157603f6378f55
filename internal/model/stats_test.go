package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	table := &ObservationTable{Rows: []Observation{
		{Value: "3.7"},
		{Value: "3.5"},
		{Value: "3.4"},
	}}

	s, ok := table.Summarize()
	require.True(t, ok)

	assert.Equal(t, 3, s.Count)
	assert.InDelta(t, 3.7, s.Latest, 1e-9)
	assert.InDelta(t, 3.4, s.Earliest, 1e-9)
	assert.InDelta(t, 3.5333, s.Mean, 1e-3)
	assert.InDelta(t, 3.4, s.Min, 1e-9)
	assert.InDelta(t, 3.7, s.Max, 1e-9)
	assert.Greater(t, s.StdDev, 0.0)
}

func TestSummarize_NoNumericValues(t *testing.T) {
	table := &ObservationTable{Rows: []Observation{{Value: "-"}}}

	_, ok := table.Summarize()
	assert.False(t, ok)

	var nilTable *ObservationTable
	_, ok = nilTable.Summarize()
	assert.False(t, ok)
}

func TestSummarize_SingleValue(t *testing.T) {
	table := &ObservationTable{Rows: []Observation{{Value: "4.1"}}}

	s, ok := table.Summarize()
	require.True(t, ok)
	assert.Zero(t, s.StdDev)
	assert.Equal(t, s.Latest, s.Earliest)
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "3.70", FormatValue("3.7", 2))
	assert.Equal(t, "not a number", FormatValue("not a number", 2))
}
