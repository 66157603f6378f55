package intent

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/RakeemRanger/bls-data-assistant/internal/catalog"
	"github.com/RakeemRanger/bls-data-assistant/internal/model"
)

// yearPattern matches four-digit years 19xx/20xx as whole tokens.
var yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

// reportKeywords flag queries that want analysis rather than a single number.
var reportKeywords = []string{"report", "analysis", "trend"}

// Fallback extracts an intent deterministically from the query text. It is
// used when model output cannot be parsed and is the sole path when no
// model is configured. It is total: every query yields a usable intent.
func Fallback(query string, currentYear int) model.Intent {
	dataType, seriesIDs, _ := catalog.Match(query)
	startYear, endYear := yearRange(query, currentYear)

	lower := strings.ToLower(query)
	needsReport := false
	for _, kw := range reportKeywords {
		if strings.Contains(lower, kw) {
			needsReport = true
			break
		}
	}

	return model.Intent{
		DataType:    dataType,
		SeriesIDs:   seriesIDs,
		StartYear:   startYear,
		EndYear:     endYear,
		NeedsReport: needsReport,
	}
}

// yearRange scans for explicit years. Two or more found: (min, max). One
// found: that year through the current year. None: the last five years.
func yearRange(query string, currentYear int) (string, string) {
	years := yearPattern.FindAllString(query, -1)

	switch {
	case len(years) >= 2:
		minYear, maxYear := years[0], years[0]
		for _, y := range years[1:] {
			if y < minYear {
				minYear = y
			}
			if y > maxYear {
				maxYear = y
			}
		}
		return minYear, maxYear
	case len(years) == 1:
		return years[0], strconv.Itoa(currentYear)
	default:
		return strconv.Itoa(currentYear - 5), strconv.Itoa(currentYear)
	}
}
