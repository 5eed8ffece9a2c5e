package store

// #region imports
import (
	"time"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region run

// Run is one monitoring batch over a day folder of images.
type Run struct {
	RunID      string
	DayLabel   string
	Policy     classify.Policy
	StartedAt  time.Time
	FinishedAt time.Time
	Images     int
	Skipped    int // images rejected for non-finite scores
	Anomalies  int // images under the anomaly threshold
}

// #endregion

// #region classification

// Classification is the classifier output for one image within a run.
type Classification struct {
	RunID     string
	ImageID   string
	Score     float64
	Predicted stage.Stage
}

// #endregion

// #region threshold-version

// ThresholdVersion is one node in the append-only threshold version chain.
// Recomputes never overwrite: each produces a new version whose parent is the
// version that was active when it was derived.
type ThresholdVersion struct {
	VersionID string
	ParentID  string
	Table     threshold.Table
	CreatedAt time.Time
}

// #endregion

// #region activation

// Activation records why a threshold version became (or failed to become)
// active, for later audit and replay.
type Activation struct {
	VersionID string
	Trigger   string // "learn" | "rollback" | "bootstrap"
	Decision  string // "activate" | "reject"
	Reason    string
	CreatedAt time.Time
}

// #endregion
