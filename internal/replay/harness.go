// Package replay re-runs classification over recorded scores without
// touching the stores, so threshold candidates can be evaluated before
// activation.
package replay

// #region imports
import (
	"errors"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/store"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region types
// Diff compares the stored prediction for one image with the replayed one.
type Diff struct {
	ImageID  string
	Score    float64
	Stored   stage.Stage
	Replayed stage.Stage
}

// Changed reports whether the replay moved the image to a different stage.
func (d Diff) Changed() bool {
	return d.Stored != d.Replayed
}

// Result aggregates one replay pass.
type Result struct {
	Diffs   []Diff
	Changed int
	Skipped int // stored scores no longer classifiable
	Counts  map[stage.Stage]int
}

// #endregion types

// #region run
// Run classifies every stored score under the given table and policy,
// entirely in memory.
func Run(cls []store.Classification, table threshold.Table, policy classify.Policy, cp classify.CutPoints) (Result, error) {
	result := Result{Counts: map[stage.Stage]int{}}

	for _, c := range cls {
		replayed, err := classify.Classify(c.Score, table, policy, cp)
		if errors.Is(err, classify.ErrInvalidScore) {
			result.Skipped++
			continue
		}
		if err != nil {
			return Result{}, err
		}

		d := Diff{ImageID: c.ImageID, Score: c.Score, Stored: c.Predicted, Replayed: replayed}
		if d.Changed() {
			result.Changed++
		}
		result.Counts[replayed]++
		result.Diffs = append(result.Diffs, d)
	}
	return result, nil
}

// #endregion run
