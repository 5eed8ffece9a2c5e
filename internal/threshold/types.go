package threshold

// #region imports
import (
	"github.com/banyan-grid/siteproof/internal/stage"
)

// #endregion

// #region band

// Band is the learned score range for one construction stage.
type Band struct {
	Stage          stage.Stage `json:"stage"`
	Mean           float64     `json:"mean_similarity"`
	StdDev         float64     `json:"std_dev"`
	RecommendedMin float64     `json:"recommended_min"`
	RecommendedMax float64     `json:"recommended_max"`
	SampleSize     int         `json:"sample_size"`
}

// Contains reports whether score falls inside the recommended range.
func (b Band) Contains(score float64) bool {
	return score >= b.RecommendedMin && score <= b.RecommendedMax
}

// Center returns the midpoint of the recommended range.
func (b Band) Center() float64 {
	return (b.RecommendedMin + b.RecommendedMax) / 2
}

// #endregion

// #region table

// Table maps each stage with enough feedback to its learned band.
// Stages with no samples are absent, never zero-filled.
type Table map[stage.Stage]Band

// Merge overlays next onto prev: stages recomputed in next replace the prior
// band, stages omitted from next retain whatever prev held. The learner omits
// a stage when it has no samples, which callers must read as "no update".
func Merge(prev, next Table) Table {
	merged := make(Table, len(prev)+len(next))
	for s, b := range prev {
		merged[s] = b
	}
	for s, b := range next {
		merged[s] = b
	}
	return merged
}

// #endregion

// #region result

// Result bundles a recomputed table with the count of records the learner
// had to discard.
type Result struct {
	Table   Table
	Skipped int // malformed records excluded from every sample set
}

// #endregion
