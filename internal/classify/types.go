package classify

// #region policy

// Policy selects how scores map to stages.
type Policy string

const (
	// PolicyFixed uses the configured cut-points. Cold-start default.
	PolicyFixed Policy = "fixed"
	// PolicyLearned uses bands derived from reviewer feedback, with the
	// fixed cut-points as the last-resort fallback.
	PolicyLearned Policy = "learned"
)

// #endregion

// #region cut-points

// CutPoints holds the fixed classification boundaries. Two divergent boundary
// sets exist in the field (0.70 vs 0.80 for installation); the canonical
// values live here as configuration and must never be merged or averaged.
type CutPoints struct {
	Installation float64 // score strictly above → installation
	Mounting     float64 // score at or above → mounting
}

// DefaultCutPoints returns the canonical 0.80 / 0.60 boundaries.
func DefaultCutPoints() CutPoints {
	return CutPoints{
		Installation: 0.80,
		Mounting:     0.60,
	}
}

// #endregion
