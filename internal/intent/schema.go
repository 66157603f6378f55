package intent

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/xeipuuv/gojsonschema"
)

// intentSchema describes the JSON object the model is instructed to emit.
// Years are accepted as strings or integers; the decoder normalizes them.
const intentSchema = `{
	"type": "object",
	"required": ["data_type", "series_ids"],
	"properties": {
		"data_type":    {"type": "string"},
		"series_ids":   {"type": "array", "items": {"type": "string"}},
		"start_year":   {"type": ["string", "integer"]},
		"end_year":     {"type": ["string", "integer"]},
		"needs_report": {"type": "boolean"}
	}
}`

var schemaLoader = gojsonschema.NewStringLoader(intentSchema)

// validateSchema checks a candidate JSON document against the intent
// schema before decoding, so structurally wrong model output routes to the
// keyword fallback instead of producing a half-filled intent.
func validateSchema(doc string) error {
	result, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewStringLoader(doc))
	if err != nil {
		return eris.Wrap(err, "intent: schema validation")
	}
	if !result.Valid() {
		var reasons []string
		for _, e := range result.Errors() {
			reasons = append(reasons, e.String())
		}
		return eris.Errorf("intent: model output fails schema: %s", strings.Join(reasons, "; "))
	}
	return nil
}
