package match

import (
	"fmt"
	"strings"

	"github.com/hbollon/go-edlib"
)

// Algorithm names a 0-100 string similarity measure.
type Algorithm string

const (
	// AlgorithmIndel scores 200*LCS/(len(a)+len(b)), the normalized
	// insertion/deletion similarity.
	AlgorithmIndel Algorithm = "indel"
	// AlgorithmLevenshtein scores 100*(1-distance/max(len(a), len(b))).
	AlgorithmLevenshtein Algorithm = "levenshtein"
)

// Similarity scores two strings between 0 and 100.
type Similarity func(a, b string) float64

// ParseAlgorithm validates an algorithm name. Empty selects AlgorithmIndel.
func ParseAlgorithm(value string) (Algorithm, error) {
	switch algorithm := Algorithm(strings.ToLower(strings.TrimSpace(value))); algorithm {
	case "":
		return AlgorithmIndel, nil
	case AlgorithmIndel, AlgorithmLevenshtein:
		return algorithm, nil
	default:
		return "", fmt.Errorf("invalid fuzzy algorithm %q (expected indel|levenshtein)", value)
	}
}

// SimilarityFor returns the scoring function of an algorithm.
func SimilarityFor(algorithm Algorithm) (Similarity, error) {
	switch algorithm {
	case "", AlgorithmIndel:
		return Ratio, nil
	case AlgorithmLevenshtein:
		return LevenshteinRatio, nil
	default:
		return nil, fmt.Errorf("unknown fuzzy algorithm %q", algorithm)
	}
}

// Ratio returns the normalized indel similarity of a and b.
func Ratio(a, b string) float64 {
	if a == b {
		return 100
	}
	total := len([]rune(a)) + len([]rune(b))
	if total == 0 {
		return 100
	}
	common := edlib.LCS(a, b)
	return float64(200*common) / float64(total)
}

// LevenshteinRatio returns the edit-distance similarity of a and b.
func LevenshteinRatio(a, b string) float64 {
	if a == b {
		return 100
	}
	longest := max(len([]rune(a)), len([]rune(b)))
	if longest == 0 {
		return 100
	}
	distance := edlib.LevenshteinDistance(a, b)
	return 100 * (1 - float64(distance)/float64(longest))
}
