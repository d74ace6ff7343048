package runner

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"muceval/internal/score"
)

// Results is the persisted outcome of one run.
type Results struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	FinishedAt time.Time    `json:"finished_at"`
	Inputs     InputsInfo   `json:"inputs"`
	Settings   SettingsInfo `json:"settings"`
	Score      score.Result `json:"score"`
}

// InputsInfo records what was scored.
type InputsInfo struct {
	Gold                 string   `json:"gold"`
	Predictions          string   `json:"predictions"`
	GoldRecords          int      `json:"gold_records"`
	GoldDocuments        int      `json:"gold_documents"`
	PredictionRecords    int      `json:"prediction_records"`
	PredictionDocuments  int      `json:"prediction_documents"`
	DuplicatePredictions []string `json:"duplicate_predictions,omitempty"`
}

// SettingsInfo records the scoring settings in effect.
type SettingsInfo struct {
	Fuzzy          bool    `json:"use_fuzzy"`
	FuzzyThreshold float64 `json:"fuzzy_threshold"`
	FuzzyAlgorithm string  `json:"fuzzy_algorithm"`
	DateMode       string  `json:"date_mode"`
	Duplicates     string  `json:"duplicate_predictions"`
	DocIDField     string  `json:"doc_id_field"`
	TemplateField  string  `json:"template_field"`
	Synonyms       int     `json:"synonyms"`
	Workers        int     `json:"workers"`
}

// LoadResults reads a results.json file.
func LoadResults(path string) (Results, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Results{}, fmt.Errorf("read results: %w", err)
	}
	var results Results
	if err := json.Unmarshal(data, &results); err != nil {
		return Results{}, fmt.Errorf("parse results %s: %w", path, err)
	}
	return results, nil
}
