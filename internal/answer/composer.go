// Package answer composes conversational responses grounded in retrieved
// observations.
package answer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/pkg/anthropic"
)

const systemPrompt = "You are a helpful assistant specialized in analyzing Bureau of Labor Statistics (BLS) data. " +
	"You help users understand employment, unemployment, CPI, wages, and other economic indicators. " +
	"You format responses clearly and explain economic concepts when needed."

const sampleRows = 10

const instructions = `Based on the above information, provide a helpful, conversational response to the user's query.
If data was retrieved:
1. Summarize the key findings
2. Highlight important trends or values
3. Provide context about what the numbers mean
4. If requested, offer analysis or insights

If no data was retrieved:
1. Explain what information you need
2. Suggest how the user can rephrase their question
3. Provide examples of what data is available

Keep the response concise but informative. Use markdown formatting for better readability.`

// exampleCategories seeds rephrasing suggestions when nothing was retrieved.
var exampleCategories = []string{
	"unemployment rates",
	"Consumer Price Index (CPI) and inflation",
	"nonfarm employment",
	"average hourly earnings",
	"labor force participation",
}

var englishPrinter = message.NewPrinter(language.English)

// Composer turns a query, its intent, and the retrieved table into a
// natural-language answer. A nil client yields deterministic answers.
type Composer struct {
	client      anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// New creates a composer. client may be nil.
func New(client anthropic.Client, modelID string, maxTokens int64, temperature float64) *Composer {
	return &Composer{
		client:      client,
		model:       modelID,
		maxTokens:   maxTokens,
		temperature: temperature,
	}
}

// Compose renders the answer. It never fails outward: a model failure
// degrades to a templated answer that still reports the computed statistics
// when data exists. The returned transcript has the prompt and reply
// appended; on the degraded path the prompt turn is not recorded.
func (c *Composer) Compose(ctx context.Context, query string, intent model.Intent, table *model.ObservationTable, transcript model.Transcript) (string, model.Transcript) {
	prompt := contextBlock(query, intent, table) + "\n\n" + instructions

	if c.client == nil {
		return degradedAnswer(intent, table), transcript
	}

	next := transcript.Append(model.RoleUser, prompt)
	temp := c.temperature
	resp, err := c.client.CreateMessage(ctx, anthropic.MessageRequest{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		System:      systemPrompt,
		Messages:    toMessages(next),
		Temperature: &temp,
	})
	if err != nil {
		zap.L().Warn("answer: model call failed, degrading to templated answer", zap.Error(err))
		return degradedAnswer(intent, table), transcript
	}

	text := resp.Text()
	return text, next.Append(model.RoleAssistant, text)
}

// contextBlock builds the grounding context handed to the model.
func contextBlock(query string, intent model.Intent, table *model.ObservationTable) string {
	var b strings.Builder

	fmt.Fprintf(&b, "User Query: %s\n\n", query)
	b.WriteString("Extracted Intent:\n")
	fmt.Fprintf(&b, "- Data Type: %s\n", intent.DataType)
	fmt.Fprintf(&b, "- Series IDs: %s\n", strings.Join(intent.SeriesIDs, ", "))
	fmt.Fprintf(&b, "- Date Range: %s to %s\n", orNA(intent.StartYear), orNA(intent.EndYear))

	if table.Empty() {
		b.WriteString("\nNo data was retrieved. The series IDs may not have been identified or there was an error.")
		return b.String()
	}

	englishPrinter.Fprintf(&b, "\nData Retrieved: %d data points\n", table.Len())

	b.WriteString("\nSample Data (most recent first):\n")
	for _, row := range table.Head(sampleRows) {
		fmt.Fprintf(&b, "%s  %d %s (%s)  value=%s\n",
			row.SeriesID, row.Year, row.Period, row.PeriodName, row.Value)
	}

	if s, ok := table.Summarize(); ok {
		b.WriteString("\nStatistical Summary:\n")
		// Summary.Latest is the first parseable value; the top row may be a
		// placeholder like "-".
		fmt.Fprintf(&b, "- Latest Value: %.2f\n", s.Latest)
		fmt.Fprintf(&b, "- Average: %.2f\n", s.Mean)
		fmt.Fprintf(&b, "- Min: %.2f\n", s.Min)
		fmt.Fprintf(&b, "- Max: %.2f\n", s.Max)
		fmt.Fprintf(&b, "- Std Dev: %.2f\n", s.StdDev)
	}

	return b.String()
}

// degradedAnswer is the deterministic rendering used when no model reply
// is available.
func degradedAnswer(intent model.Intent, table *model.ObservationTable) string {
	if table.Empty() {
		var b strings.Builder
		b.WriteString("I couldn't retrieve any data for that question. ")
		b.WriteString("Try naming the statistic and a year range, for example \"unemployment rate 2020 to 2023\".\n\nI can help with:\n")
		for _, c := range exampleCategories {
			b.WriteString("- " + c + "\n")
		}
		return b.String()
	}

	var b strings.Builder
	englishPrinter.Fprintf(&b, "I retrieved %d data points", table.Len())
	fmt.Fprintf(&b, " for %s between %s and %s.\n\n", intent.DataType, orNA(intent.StartYear), orNA(intent.EndYear))
	if s, ok := table.Summarize(); ok {
		fmt.Fprintf(&b, "- Latest value: %.2f\n", s.Latest)
		fmt.Fprintf(&b, "- Average: %.2f\n- Min: %.2f\n- Max: %.2f\n", s.Mean, s.Min, s.Max)
	}
	b.WriteString("\n(The analysis service is currently unavailable, so this is a raw summary.)")
	return b.String()
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func toMessages(t model.Transcript) []anthropic.Message {
	out := make([]anthropic.Message, len(t))
	for i, turn := range t {
		out[i] = anthropic.Message{Role: turn.Role, Content: turn.Content}
	}
	return out
}
