package bls

import (
	"strconv"
)

// MaxSeriesPerRequest is the hard cap the public API enforces on the
// number of series in one request.
const MaxSeriesPerRequest = 50

// SeriesRequest describes one timeseries data request. Years are the
// four-digit strings the wire format uses.
type SeriesRequest struct {
	SeriesIDs []string
	StartYear string
	EndYear   string
	Catalog   bool
}

// Validate checks the request shape before any network call.
func (r SeriesRequest) Validate() error {
	if len(r.SeriesIDs) == 0 {
		return &ValidationError{Reason: "at least one series ID is required"}
	}
	if len(r.SeriesIDs) > MaxSeriesPerRequest {
		return &ValidationError{Reason: "maximum " + strconv.Itoa(MaxSeriesPerRequest) + " series IDs allowed per request"}
	}
	for _, id := range r.SeriesIDs {
		if id == "" {
			return &ValidationError{Reason: "series IDs must be non-empty"}
		}
	}

	start, err := strconv.Atoi(r.StartYear)
	if err != nil {
		return &ValidationError{Reason: "start year " + strconv.Quote(r.StartYear) + " is not a valid year"}
	}
	end, err := strconv.Atoi(r.EndYear)
	if err != nil {
		return &ValidationError{Reason: "end year " + strconv.Quote(r.EndYear) + " is not a valid year"}
	}
	if start > end {
		return &ValidationError{Reason: "start year must be <= end year"}
	}

	return nil
}

// payload is the wire shape of POST /timeseries/data/.
type payload struct {
	SeriesID        []string `json:"seriesid"`
	StartYear       string   `json:"startyear"`
	EndYear         string   `json:"endyear"`
	Catalog         bool     `json:"catalog"`
	RegistrationKey string   `json:"registrationkey,omitempty"`
}

// SeriesResponse is the provider's top-level response envelope.
type SeriesResponse struct {
	Status       string   `json:"status"`
	ResponseTime int      `json:"responseTime"`
	Message      []string `json:"message"`
	Results      Results  `json:"Results"`
}

// StatusSucceeded is the success marker the provider sets on valid responses.
const StatusSucceeded = "REQUEST_SUCCEEDED"

// Results holds the series list.
type Results struct {
	Series []Series `json:"series"`
}

// Series is one timeseries with its data points, most recent first.
type Series struct {
	SeriesID string      `json:"seriesID"`
	Data     []DataPoint `json:"data"`
}

// DataPoint is one raw observation as the provider encodes it.
type DataPoint struct {
	Year       string     `json:"year"`
	Period     string     `json:"period"`
	PeriodName string     `json:"periodName"`
	Value      string     `json:"value"`
	Footnotes  []Footnote `json:"footnotes"`
}

// Footnote annotates a data point.
type Footnote struct {
	Code string `json:"code"`
	Text string `json:"text"`
}
