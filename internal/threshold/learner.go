package threshold

// #region imports
import (
	"errors"
	"fmt"
	"math"

	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/stage"
	"gonum.org/v1/gonum/stat"
)

// #endregion

// #region errors

// ErrEmptyFeedbackLog signals that no feedback exists yet. Expected on first
// run; callers fall back to the fixed cut-point policy.
var ErrEmptyFeedbackLog = errors.New("threshold: feedback log is empty")

// #endregion

// #region recompute

// Recompute derives a fresh threshold table from the full feedback history.
// For each stage the sample set is the scores of confirmed-correct predictions
// of that stage plus the scores of records corrected to that stage. The band
// is mean ± one population standard deviation (N divisor). Stages with no
// samples are omitted from the table. Malformed records and records with
// non-finite scores are excluded and counted in Result.Skipped.
//
// Recompute is idempotent and never mutates log.
func Recompute(log []feedback.Record) (Result, error) {
	if len(log) == 0 {
		return Result{}, ErrEmptyFeedbackLog
	}

	samples := make(map[stage.Stage][]float64, 3)
	skipped := 0

	for _, rec := range log {
		if rec.Malformed() {
			skipped++
			continue
		}
		if math.IsNaN(rec.Score) || math.IsInf(rec.Score, 0) {
			skipped++
			continue
		}
		target := rec.Predicted
		if !rec.IsCorrect {
			target = rec.Corrected
		}
		samples[target] = append(samples[target], rec.Score)
	}

	table := make(Table, len(samples))
	for _, s := range stage.All() {
		scores := samples[s]
		if len(scores) == 0 {
			continue
		}
		mean := stat.Mean(scores, nil)
		// Population variance: second moment about the mean with nil weights.
		std := math.Sqrt(stat.MomentAbout(2, scores, mean, nil))

		table[s] = Band{
			Stage:          s,
			Mean:           round3(mean),
			StdDev:         round3(std),
			RecommendedMin: round3(mean - std),
			RecommendedMax: round3(mean + std),
			SampleSize:     len(scores),
		}
	}

	return Result{Table: table, Skipped: skipped}, nil
}

// #endregion

// #region validate

// Validate runs sanity checks on a table before it is activated. A band whose
// range is inverted or whose sample count disagrees with its presence is a
// learner bug, not reviewer noise, so activation must refuse it.
func Validate(t Table) error {
	for s, b := range t {
		if b.Stage != s {
			return fmt.Errorf("threshold: band keyed %q carries stage %q", s, b.Stage)
		}
		if !stage.Valid(s) {
			return fmt.Errorf("threshold: unknown stage %q in table", s)
		}
		if b.SampleSize <= 0 {
			return fmt.Errorf("threshold: %s band present with sample size %d", s, b.SampleSize)
		}
		if b.RecommendedMin > b.RecommendedMax {
			return fmt.Errorf("threshold: %s band range inverted [%.3f, %.3f]", s, b.RecommendedMin, b.RecommendedMax)
		}
		if math.IsNaN(b.Mean) || math.IsInf(b.Mean, 0) {
			return fmt.Errorf("threshold: %s band mean is not finite", s)
		}
	}
	return nil
}

// #endregion

// #region helpers

// round3 matches the three-decimal precision the thresholds are persisted and
// displayed with, keeping successive recomputes bit-identical.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

// #endregion
