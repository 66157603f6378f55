// Package intent turns free-text queries into structured intents, using a
// language-model call with a deterministic keyword fallback.
package intent

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/RakeemRanger/bls-data-assistant/internal/catalog"
	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/anthropic"
)

const systemPrompt = "You are a helpful assistant specialized in analyzing Bureau of Labor Statistics (BLS) data. " +
	"You help users understand employment, unemployment, CPI, wages, and other economic indicators. " +
	"When users ask questions, you extract the relevant series IDs, date ranges, and provide insights. " +
	"You format responses clearly and explain economic concepts when needed."

const promptTemplate = `Analyze this query about BLS (Bureau of Labor Statistics) data and extract:
1. The type of data requested (unemployment, cpi, employment, wages, labor_force, or general)
2. Relevant BLS series IDs (if identifiable)
3. Date range (start_year and end_year)
4. Whether a report is requested

Common BLS Series IDs:
%s

Query: "%s"

Respond in JSON format with keys: data_type, series_ids (list), start_year, end_year, needs_report (boolean).
If date range not specified, use the last 5 years (start_year: %d, end_year: %d).
If series IDs cannot be determined, return empty list.

JSON:`

// jsonPattern pulls the first brace-delimited object out of model output.
// It does not balance nested braces; the prompt asks for a flat object and
// the fallback absorbs anything that fails to parse.
var jsonPattern = regexp.MustCompile(`(?s)\{[^}]+\}`)

const (
	extractMaxTokens   = 1000
	extractTemperature = 0.3
)

// Extractor converts queries into intents. A nil client makes the fallback
// path the sole extraction path, so the system degrades to deterministic
// behavior when no model is configured.
type Extractor struct {
	client anthropic.Client
	model  string
	now    func() time.Time
}

// New creates an extractor. client may be nil.
func New(client anthropic.Client, modelID string) *Extractor {
	return &Extractor{client: client, model: modelID, now: time.Now}
}

// WithNowFunc overrides the clock, for tests.
func (e *Extractor) WithNowFunc(now func() time.Time) *Extractor {
	e.now = now
	return e
}

// Extract produces an intent for the query. It never fails outward: any
// model or parse failure falls back to deterministic keyword extraction.
// The returned transcript carries the prompt and model reply appended to
// the one passed in; on the fallback path it is returned unchanged.
func (e *Extractor) Extract(ctx context.Context, query string, transcript model.Transcript) (model.Intent, model.Transcript) {
	currentYear := e.now().Year()

	if e.client == nil {
		return Fallback(query, currentYear), transcript
	}

	prompt := fmt.Sprintf(promptTemplate, catalog.Reference(), query, currentYear-5, currentYear)
	next := transcript.Append(model.RoleUser, prompt)

	temp := extractTemperature
	resp, err := e.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       e.model,
		MaxTokens:   extractMaxTokens,
		System:      systemPrompt,
		Messages:    toMessages(next),
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("intent: model call failed, using keyword fallback", zap.Error(err))
		return Fallback(query, currentYear), transcript
	}

	text := resp.Text()
	next = next.Append(model.RoleAssistant, text)

	parsed, err := parseIntent(text, currentYear)
	if err != nil {
		zap.L().Warn("intent: could not parse model output, using keyword fallback", zap.Error(err))
		return Fallback(query, currentYear), next
	}

	zap.L().Info("intent extracted",
		zap.String("data_type", string(parsed.DataType)),
		zap.Strings("series_ids", parsed.SeriesIDs),
		zap.String("start_year", parsed.StartYear),
		zap.String("end_year", parsed.EndYear),
		zap.Bool("needs_report", parsed.NeedsReport),
	)
	return parsed, next
}

// parseIntent extracts the first JSON object from model output, validates
// it against the intent schema, and decodes it.
func parseIntent(text string, currentYear int) (model.Intent, error) {
	raw := jsonPattern.FindString(text)
	if raw == "" {
		return model.Intent{}, eris.New("intent: no JSON object in model output")
	}

	if err := validateSchema(raw); err != nil {
		return model.Intent{}, err
	}

	var p intentPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return model.Intent{}, eris.Wrap(err, "intent: decode JSON")
	}

	out := model.Intent{
		DataType:    model.ParseDataType(p.DataType),
		SeriesIDs:   p.SeriesIDs,
		StartYear:   string(p.StartYear),
		EndYear:     string(p.EndYear),
		NeedsReport: p.NeedsReport,
	}
	if out.StartYear == "" {
		out.StartYear = fmt.Sprintf("%d", currentYear-5)
	}
	if out.EndYear == "" {
		out.EndYear = fmt.Sprintf("%d", currentYear)
	}
	return out, nil
}

// intentPayload is the wire shape the model is asked to produce.
type intentPayload struct {
	DataType    string    `json:"data_type"`
	SeriesIDs   []string  `json:"series_ids"`
	StartYear   yearValue `json:"start_year"`
	EndYear     yearValue `json:"end_year"`
	NeedsReport bool      `json:"needs_report"`
}

// yearValue tolerates the model returning years as numbers or strings.
type yearValue string

func (y *yearValue) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*y = yearValue(s)
		return nil
	}
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		*y = yearValue(fmt.Sprintf("%d", n))
		return nil
	}
	return eris.Errorf("intent: year value %s is neither string nor integer", string(data))
}

func toMessages(t model.Transcript) []anthropic.Message {
	out := make([]anthropic.Message, len(t))
	for i, turn := range t {
		out[i] = anthropic.Message{Role: turn.Role, Content: turn.Content}
	}
	return out
}
