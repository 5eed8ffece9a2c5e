package feedback

// #region imports
import (
	"time"

	"github.com/banyan-grid/siteproof/internal/stage"
)

// #endregion

// #region record

// Record is one human verdict on an automated stage prediction.
// Records are append-only: a reviewer who changes their mind appends a new
// record for the same image rather than editing history.
type Record struct {
	ImageID   string
	Predicted stage.Stage
	Score     float64
	IsCorrect bool
	Corrected stage.Stage // required when IsCorrect is false, empty otherwise
	Comment   string
	CreatedAt time.Time
}

// Malformed reports whether the record must be excluded from threshold
// learning: an incorrect verdict with no usable corrected stage. A correction
// that names the predicted stage itself is treated the same way, since it
// carries no signal about where the score actually belongs.
func (r Record) Malformed() bool {
	if r.IsCorrect {
		return false
	}
	return !stage.Valid(r.Corrected) || r.Corrected == r.Predicted
}

// #endregion

// #region stats

// Stats summarizes a feedback log for display.
type Stats struct {
	Total     int
	Correct   int
	Incorrect int
	Malformed int
}

// #endregion
