package classify

// #region imports
import (
	"errors"
	"fmt"
	"math"

	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region errors

// ErrInvalidScore marks a non-finite score. The offending image is rejected,
// never the whole run.
var ErrInvalidScore = errors.New("classify: score is not finite")

// #endregion

// #region fixed

// Fixed maps a score to a stage using the configured cut-points:
// score > Installation cut → installation, score >= Mounting cut → mounting,
// otherwise foundation. Boundaries are inclusive toward the lower band, with
// the installation boundary strictly exclusive as documented.
func Fixed(score float64, cp CutPoints) (stage.Stage, error) {
	if !finite(score) {
		return "", fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}
	switch {
	case score > cp.Installation:
		return stage.Installation, nil
	case score >= cp.Mounting:
		return stage.Mounting, nil
	default:
		return stage.Foundation, nil
	}
}

// #endregion

// #region learned

// Learned assigns a score to the stage whose learned band contains it.
// A score matching no band, or more than one overlapping band, falls back to
// the nearest band center; an empty table falls back to the fixed cut-points.
// The fallback chain never fails for a finite score.
func Learned(score float64, table threshold.Table, cp CutPoints) (stage.Stage, error) {
	if !finite(score) {
		return "", fmt.Errorf("%w: %v", ErrInvalidScore, score)
	}
	if len(table) == 0 {
		return Fixed(score, cp)
	}

	var matches []stage.Stage
	for _, s := range stage.All() {
		if b, ok := table[s]; ok && b.Contains(score) {
			matches = append(matches, s)
		}
	}
	if len(matches) == 1 {
		return matches[0], nil
	}

	// Ambiguous: zero or multiple bands claim the score. Nearest band center
	// wins; ties resolve toward the higher-maturity stage so monotonicity in
	// the overlap region holds.
	best, ok := nearestCenter(score, table)
	if !ok {
		return Fixed(score, cp)
	}
	return best, nil
}

// nearestCenter returns the stage whose band center is closest to score.
func nearestCenter(score float64, table threshold.Table) (stage.Stage, bool) {
	var best stage.Stage
	bestDist := math.Inf(1)
	found := false
	for _, s := range stage.All() {
		b, ok := table[s]
		if !ok {
			continue
		}
		d := math.Abs(score - b.Center())
		if d < bestDist || (d == bestDist && stage.Less(best, s)) {
			bestDist = d
			best = s
			found = true
		}
	}
	return best, found
}

// #endregion

// #region classify

// Classify dispatches on the configured policy. Same inputs always yield the
// same stage: both policies are pure functions of (score, table, cut-points).
func Classify(score float64, table threshold.Table, policy Policy, cp CutPoints) (stage.Stage, error) {
	switch policy {
	case PolicyLearned:
		return Learned(score, table, cp)
	case PolicyFixed, "":
		return Fixed(score, cp)
	default:
		return "", fmt.Errorf("classify: unknown policy %q", policy)
	}
}

// #endregion

// #region helpers

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// #endregion
