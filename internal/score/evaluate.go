// Package score aggregates per-field precision, recall and F1 of predicted
// templates against gold templates.
package score

import (
	"context"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"muceval/internal/match"
	"muceval/internal/record"
)

// Normalizer canonicalizes raw field values.
type Normalizer interface {
	Normalize(raw string) string
}

// Matcher judges a normalized prediction against a set of gold values.
type Matcher interface {
	Match(predicted string, gold match.ValueSet) match.Outcome
}

// Evaluator scores prediction collections against gold collections.
type Evaluator struct {
	normalizer Normalizer
	matcher    Matcher
	workers    int
	logger     *slog.Logger
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithWorkers scores documents on up to n goroutines. Results do not depend
// on n.
func WithWorkers(n int) Option {
	return func(e *Evaluator) {
		e.workers = n
	}
}

// WithLogger sets the operational logger.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Evaluator) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEvaluator builds an Evaluator.
func NewEvaluator(normalizer Normalizer, matcher Matcher, opts ...Option) *Evaluator {
	e := &Evaluator{
		normalizer: normalizer,
		matcher:    matcher,
		workers:    1,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// EvaluateRecords indexes raw records and evaluates them. Duplicate
// predictions resolve last-wins.
func (e *Evaluator) EvaluateRecords(ctx context.Context, gold, predictions []record.Record) (Result, error) {
	predIndex, err := record.IndexPredictions(predictions, record.DuplicateLastWins)
	if err != nil {
		return Result{}, err
	}
	return e.Evaluate(ctx, record.IndexGold(gold), predIndex)
}

// documentOutcome is the contribution of one gold document.
type documentOutcome struct {
	counts      []Counts
	diagnostics []Diagnostic
}

// Evaluate scores every gold document in natural id order against its
// prediction, if any.
func (e *Evaluator) Evaluate(ctx context.Context, gold *record.GoldIndex, predictions *record.PredictionIndex) (Result, error) {
	fields := gold.Fields()
	docIDs := gold.DocIDs()
	outcomes := make([]documentOutcome, len(docIDs))

	if e.workers <= 1 {
		for i, docID := range docIDs {
			if err := ctx.Err(); err != nil {
				return Result{}, err
			}
			outcomes[i] = e.scoreDocument(docID, fields, gold, predictions)
		}
	} else {
		group, groupCtx := errgroup.WithContext(ctx)
		group.SetLimit(e.workers)
		for i, docID := range docIDs {
			group.Go(func() error {
				if err := groupCtx.Err(); err != nil {
					return err
				}
				outcomes[i] = e.scoreDocument(docID, fields, gold, predictions)
				return nil
			})
		}
		if err := group.Wait(); err != nil {
			return Result{}, err
		}
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
	}

	totals := make([]Counts, len(fields))
	result := Result{Documents: len(docIDs)}
	for _, outcome := range outcomes {
		for i := range fields {
			totals[i] = totals[i].Add(outcome.counts[i])
		}
		result.Diagnostics = append(result.Diagnostics, outcome.diagnostics...)
	}
	for _, docID := range predictions.DocIDs() {
		if _, ok := gold.Templates(docID); !ok {
			result.Diagnostics = append(result.Diagnostics, Diagnostic{
				Kind:  DiagnosticUnmatchedDocument,
				DocID: docID,
			})
		}
	}

	var overall Counts
	result.Fields = make([]FieldMetrics, 0, len(fields))
	for i, field := range fields {
		result.Fields = append(result.Fields, Metrics(field, totals[i]))
		overall = overall.Add(totals[i])
	}
	result.Total = Metrics("", overall)

	e.logger.Debug("evaluation complete",
		"documents", result.Documents,
		"fields", len(fields),
		"diagnostics", len(result.Diagnostics),
		"workers", e.workers,
	)
	return result, nil
}

func (e *Evaluator) scoreDocument(docID string, fields []string, gold *record.GoldIndex, predictions *record.PredictionIndex) documentOutcome {
	templates, _ := gold.Templates(docID)
	prediction, _ := predictions.Lookup(docID)
	outcome := documentOutcome{counts: make([]Counts, len(fields))}

	for i, field := range fields {
		goldSet := match.NewValueSet()
		for _, template := range templates {
			goldSet.Add(e.normalizer.Normalize(template.Value(field)))
		}
		predicted := e.normalizer.Normalize(prediction.Value(field))

		if len(goldSet) > 0 {
			outcome.counts[i].Gold++
		}
		if predicted == "" {
			if len(goldSet) > 0 {
				outcome.diagnostics = append(outcome.diagnostics, Diagnostic{
					Kind:  DiagnosticMissing,
					DocID: docID,
					Field: field,
					Gold:  goldSet.Sorted(),
				})
			}
			continue
		}

		outcome.counts[i].Predicted++
		verdict := e.matcher.Match(predicted, goldSet)
		if verdict.Matched {
			outcome.counts[i].Correct++
			continue
		}
		outcome.diagnostics = append(outcome.diagnostics, Diagnostic{
			Kind:       DiagnosticMismatch,
			DocID:      docID,
			Field:      field,
			Predicted:  predicted,
			Gold:       goldSet.Sorted(),
			Similarity: verdict.Score,
		})
	}
	e.logger.Debug("scored document", "doc_id", docID, "templates", len(templates))
	return outcome
}
