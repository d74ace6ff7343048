package report

import (
	"context"
	"strconv"
	"strings"
	"time"

	"muceval/internal/score"
)

// Meta describes the run a page reports on.
type Meta struct {
	RunID           string
	GoldPath        string
	PredictionsPath string
	GeneratedAt     time.Time
	Settings        []Setting
}

// Setting is one name/value pair shown in the page header.
type Setting struct {
	Name  string
	Value string
}

// RenderHTML renders Page into a string.
func RenderHTML(ctx context.Context, meta Meta, result score.Result) (string, error) {
	var builder strings.Builder
	if err := Page(meta, result).Render(ctx, &builder); err != nil {
		return "", err
	}
	return builder.String(), nil
}

func pageTitle(meta Meta) string {
	if meta.RunID == "" {
		return "muceval report"
	}
	return "muceval report " + meta.RunID
}

// detailItems lists the header rows, skipping empty values.
func detailItems(meta Meta, result score.Result) []Setting {
	var items []Setting
	add := func(name, value string) {
		if value != "" {
			items = append(items, Setting{Name: name, Value: value})
		}
	}
	if !meta.GeneratedAt.IsZero() {
		add("Generated", meta.GeneratedAt.UTC().Format(time.RFC3339))
	}
	add("Gold", meta.GoldPath)
	add("Predictions", meta.PredictionsPath)
	add("Documents", strconv.Itoa(result.Documents))
	for _, setting := range meta.Settings {
		add(setting.Name, setting.Value)
	}
	return items
}

func scoreBand(f1 float64) string {
	switch {
	case f1 >= 0.7:
		return "good"
	case f1 >= 0.4:
		return "fair"
	default:
		return "poor"
	}
}
