package model

// DataType categorizes what kind of labor statistic a query is about.
type DataType string

const (
	DataTypeUnemployment DataType = "unemployment"
	DataTypeCPI          DataType = "cpi"
	DataTypeEmployment   DataType = "employment"
	DataTypeWages        DataType = "wages"
	DataTypeLaborForce   DataType = "labor_force"
	DataTypeGeneral      DataType = "general"
)

// AllDataTypes returns every recognized data type.
func AllDataTypes() []DataType {
	return []DataType{
		DataTypeUnemployment,
		DataTypeCPI,
		DataTypeEmployment,
		DataTypeWages,
		DataTypeLaborForce,
		DataTypeGeneral,
	}
}

// ParseDataType maps a raw string to a DataType, defaulting to general
// for anything unrecognized.
func ParseDataType(s string) DataType {
	dt := DataType(s)
	for _, t := range AllDataTypes() {
		if t == dt {
			return dt
		}
	}
	return DataTypeGeneral
}

// Intent is the structured interpretation of a free-text query. It is
// produced once per query by the extractor and immutable afterward.
type Intent struct {
	DataType    DataType `json:"data_type"`
	SeriesIDs   []string `json:"series_ids"`
	StartYear   string   `json:"start_year"`
	EndYear     string   `json:"end_year"`
	NeedsReport bool     `json:"needs_report"`
}

// Fetchable reports whether the intent carries enough information to issue
// a provider request: at least one series ID and both year bounds.
func (i Intent) Fetchable() bool {
	return len(i.SeriesIDs) > 0 && i.StartYear != "" && i.EndYear != ""
}
