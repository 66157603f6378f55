// Package catalog maps query keywords to well-known BLS series identifiers.
// It is the single canonical table shared by keyword lookup and fallback
// intent extraction.
package catalog

import (
	"strings"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

// Entry binds one keyword to a data type and the series it names.
type Entry struct {
	Keyword   string
	DataType  model.DataType
	SeriesIDs []string
}

// entries is ordered: matching scans it top to bottom and the first hit
// wins. "unemployment" must precede "employment" so the longer keyword is
// not shadowed by its substring.
var entries = []Entry{
	{"unemployment", model.DataTypeUnemployment, []string{"LNS14000000", "LNS14000006"}},
	{"jobless", model.DataTypeUnemployment, []string{"LNS14000000"}},
	{"cpi", model.DataTypeCPI, []string{"CUUR0000SA0", "CUSR0000SA0"}},
	{"consumer price", model.DataTypeCPI, []string{"CUUR0000SA0"}},
	{"inflation", model.DataTypeCPI, []string{"CUUR0000SA0"}},
	{"nonfarm", model.DataTypeEmployment, []string{"CES0000000001"}},
	{"employment", model.DataTypeEmployment, []string{"CES0000000001", "LNS12000000"}},
	{"jobs", model.DataTypeEmployment, []string{"CES0000000001"}},
	{"hourly earnings", model.DataTypeWages, []string{"CES0500000003"}},
	{"wage", model.DataTypeWages, []string{"CES0500000003", "CES0500000008"}},
	{"earnings", model.DataTypeWages, []string{"CES0500000003"}},
	{"labor force", model.DataTypeLaborForce, []string{"LNS12300000", "LNS11300000"}},
	{"participation", model.DataTypeLaborForce, []string{"LNS12300000"}},
}

// Series identifiers surfaced to the language model as reference material.
const (
	SeriesUnemploymentRate   = "LNS14000000"
	SeriesCPIU               = "CUUR0000SA0"
	SeriesNonfarmEmployment  = "CES0000000001"
	SeriesLaborParticipation = "LNS12300000"
	SeriesHourlyEarnings     = "CES0500000003"
)

// Lookup returns the series identifiers for the first entry whose keyword
// occurs in the given text, matched case-insensitively. It returns nil when
// nothing matches and never fails.
func Lookup(text string) []string {
	if e, ok := match(text); ok {
		out := make([]string, len(e.SeriesIDs))
		copy(out, e.SeriesIDs)
		return out
	}
	return nil
}

// Match scans the text for the first keyword entry and returns its data
// type and series identifiers. ok is false when no keyword occurs.
func Match(text string) (model.DataType, []string, bool) {
	if e, ok := match(text); ok {
		out := make([]string, len(e.SeriesIDs))
		copy(out, e.SeriesIDs)
		return e.DataType, out, true
	}
	return model.DataTypeGeneral, nil, false
}

func match(text string) (Entry, bool) {
	lower := strings.ToLower(text)
	for _, e := range entries {
		if strings.Contains(lower, e.Keyword) {
			return e, true
		}
	}
	return Entry{}, false
}

// Reference renders the well-known series as a prompt-ready block.
func Reference() string {
	var b strings.Builder
	b.WriteString("- " + SeriesUnemploymentRate + ": Unemployment Rate (National)\n")
	b.WriteString("- " + SeriesCPIU + ": Consumer Price Index (CPI-U)\n")
	b.WriteString("- " + SeriesNonfarmEmployment + ": Total Nonfarm Employment\n")
	b.WriteString("- " + SeriesLaborParticipation + ": Labor Force Participation Rate\n")
	b.WriteString("- " + SeriesHourlyEarnings + ": Average Hourly Earnings")
	return b.String()
}
