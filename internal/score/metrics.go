package score

// Counts are the per-field tallies accumulated over documents.
type Counts struct {
	Gold      int `json:"gold"`
	Predicted int `json:"predicted"`
	Correct   int `json:"correct"`
}

// Add returns the element-wise sum of c and other.
func (c Counts) Add(other Counts) Counts {
	return Counts{
		Gold:      c.Gold + other.Gold,
		Predicted: c.Predicted + other.Predicted,
		Correct:   c.Correct + other.Correct,
	}
}

// FieldMetrics is one row of the score table.
type FieldMetrics struct {
	Field     string  `json:"field"`
	Precision float64 `json:"precision"`
	Recall    float64 `json:"recall"`
	F1        float64 `json:"f1"`
	Counts
}

// Metrics derives precision, recall and F1 from counts. Each ratio is 0 when
// its denominator is 0.
func Metrics(field string, counts Counts) FieldMetrics {
	precision := ratio(counts.Correct, counts.Predicted)
	recall := ratio(counts.Correct, counts.Gold)
	f1 := 0.0
	if precision+recall > 0 {
		f1 = 2 * precision * recall / (precision + recall)
	}
	return FieldMetrics{
		Field:     field,
		Precision: precision,
		Recall:    recall,
		F1:        f1,
		Counts:    counts,
	}
}

func ratio(numerator, denominator int) float64 {
	if denominator == 0 {
		return 0
	}
	return float64(numerator) / float64(denominator)
}
