// Package pipeline orchestrates intent extraction, data retrieval,
// normalization, and answer composition for one query.
package pipeline

import (
	"context"

	"go.uber.org/zap"

	"github.com/RakeemRanger/bls-data-assistant/internal/answer"
	"github.com/RakeemRanger/bls-data-assistant/internal/intent"
	"github.com/RakeemRanger/bls-data-assistant/internal/model"
	"github.com/RakeemRanger/bls-data-assistant/internal/normalize"
	"github.com/RakeemRanger/bls-data-assistant/pkg/bls"
)

const internalErrorMessage = "I encountered an internal error processing your request. " +
	"Could you please rephrase your question?"

// Pipeline owns the single round-trip contract the UI consumes. One query
// flows Idle → IntentExtracted → DataFetched (or DataSkipped) → Answered;
// extraction and composition are total, provider failures are degraded to
// the no-data path, and nothing escapes ProcessQuery.
type Pipeline struct {
	extractor *intent.Extractor
	composer  *answer.Composer
	provider  bls.Client
	maxSeries int
}

// New creates a pipeline. maxSeries clamps how many guessed series IDs a
// single provider request may carry; values outside (0, MaxSeriesPerRequest]
// fall back to the provider cap.
func New(extractor *intent.Extractor, composer *answer.Composer, provider bls.Client, maxSeries int) *Pipeline {
	if maxSeries <= 0 || maxSeries > bls.MaxSeriesPerRequest {
		maxSeries = bls.MaxSeriesPerRequest
	}
	return &Pipeline{
		extractor: extractor,
		composer:  composer,
		provider:  provider,
		maxSeries: maxSeries,
	}
}

// ProcessQuery answers one query. It always returns a QueryResult — every
// component failure, including programming errors, is converted into a
// result whose message explains the problem. The returned transcript
// carries the turns exchanged with the model appended to the one passed in.
func (p *Pipeline) ProcessQuery(ctx context.Context, query string, transcript model.Transcript) (result model.QueryResult, out model.Transcript) {
	out = transcript
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("pipeline: recovered from panic",
				zap.Any("panic", r),
				zap.String("query", query),
			)
			result = model.QueryResult{Message: internalErrorMessage}
			out = transcript
		}
	}()

	log := zap.L().With(zap.String("query", query))
	log.Info("pipeline: processing query")

	// Extraction is total; it falls back internally rather than failing.
	extracted, out := p.extractor.Extract(ctx, query, out)

	// Fetch only when the intent names series and both year bounds;
	// otherwise skip straight to composition with no table.
	var table *model.ObservationTable
	if extracted.Fetchable() {
		table = p.fetch(ctx, extracted, log)
	} else {
		log.Info("pipeline: skipping data fetch",
			zap.Int("series_ids", len(extracted.SeriesIDs)),
			zap.String("start_year", extracted.StartYear),
			zap.String("end_year", extracted.EndYear),
		)
	}

	message, out := p.composer.Compose(ctx, query, extracted, table, out)

	log.Info("pipeline: query answered",
		zap.Int("rows", table.Len()),
		zap.String("data_type", string(extracted.DataType)),
	)

	return model.QueryResult{
		Message: message,
		Data:    table,
		Intent:  &extracted,
	}, out
}

// fetch retrieves and normalizes observations for the intent. Provider
// errors — validation of guessed IDs included — degrade to a nil table; the
// composer explains missing data to the user.
func (p *Pipeline) fetch(ctx context.Context, in model.Intent, log *zap.Logger) *model.ObservationTable {
	ids := in.SeriesIDs
	if len(ids) > p.maxSeries {
		log.Warn("pipeline: clamping oversized series list",
			zap.Int("requested", len(ids)),
			zap.Int("max", p.maxSeries),
		)
		ids = ids[:p.maxSeries]
	}

	resp, err := p.provider.GetSeriesData(ctx, bls.SeriesRequest{
		SeriesIDs: ids,
		StartYear: in.StartYear,
		EndYear:   in.EndYear,
	})
	if err != nil {
		log.Warn("pipeline: data fetch failed, answering without data", zap.Error(err))
		return nil
	}

	return normalize.Table(resp)
}
