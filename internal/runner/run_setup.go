package runner

import (
	"fmt"
	"log/slog"
	"time"

	"muceval/internal/config"
	"muceval/internal/match"
	"muceval/internal/normalize"
	"muceval/internal/record"
	"muceval/internal/score"
)

// components are the scoring pieces a config selects.
type components struct {
	normalizer *normalize.Normalizer
	evaluator  *score.Evaluator
	policy     record.DuplicatePolicy
	settings   SettingsInfo
}

// NewNormalizer builds the normalizer a config selects. A non-nil parser
// overrides scoring.date_mode.
func NewNormalizer(cfg config.Config, parser normalize.DateParser, now time.Time) (*normalize.Normalizer, normalize.Synonyms, error) {
	synonyms, err := cfg.SynonymTable()
	if err != nil {
		return nil, nil, fmt.Errorf("load synonyms: %w", err)
	}
	if parser == nil {
		mode, err := normalize.ParseDateMode(cfg.Scoring.DateMode)
		if err != nil {
			return nil, nil, err
		}
		parser = normalize.NewDateParser(mode, now)
	}
	n := normalize.New(
		normalize.WithSynonyms(synonyms),
		normalize.WithDateParser(parser),
		normalize.WithCache(),
	)
	return n, synonyms, nil
}

func buildComponents(cfg config.Config, deps RunDependencies, now time.Time, logger *slog.Logger) (components, error) {
	normalizer, synonyms, err := NewNormalizer(cfg, deps.DateParser, now)
	if err != nil {
		return components{}, err
	}
	algorithm, err := match.ParseAlgorithm(cfg.Scoring.FuzzyAlgorithm)
	if err != nil {
		return components{}, err
	}
	matcher, err := match.New(match.Options{
		Fuzzy:     cfg.Scoring.Fuzzy,
		Threshold: cfg.Scoring.FuzzyThreshold,
		Algorithm: algorithm,
	})
	if err != nil {
		return components{}, err
	}
	policy, err := record.ParseDuplicatePolicy(cfg.Input.Duplicates)
	if err != nil {
		return components{}, err
	}
	evaluator := score.NewEvaluator(normalizer, matcher,
		score.WithWorkers(cfg.Scoring.Workers),
		score.WithLogger(logger),
	)
	return components{
		normalizer: normalizer,
		evaluator:  evaluator,
		policy:     policy,
		settings: SettingsInfo{
			Fuzzy:          matcher.Fuzzy(),
			FuzzyThreshold: matcher.Threshold(),
			FuzzyAlgorithm: string(algorithm),
			DateMode:       cfg.Scoring.DateMode,
			Duplicates:     string(policy),
			DocIDField:     cfg.Input.DocIDField,
			TemplateField:  cfg.Input.TemplateField,
			Synonyms:       len(synonyms),
			Workers:        cfg.Scoring.Workers,
		},
	}, nil
}
