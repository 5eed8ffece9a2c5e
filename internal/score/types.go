package score

// #region imports
import "context"

// #endregion

// #region ref

// Ref identifies one image to be scored. ID is the identifier recorded in
// results (typically the path relative to the day folder); Path locates the
// file on disk for producers that read pixels.
type Ref struct {
	ID   string
	Path string
}

// #endregion

// #region producer

// Producer abstracts how a per-image score is obtained: a remote vision
// service, a local CV heuristic, or a fixture. The classifier never knows
// which; it only sees the scalar.
type Producer interface {
	Produce(ctx context.Context, img Ref) (float64, error)
}

// #endregion

// #region scored

// Scored pairs an image with its produced score.
type Scored struct {
	ImageID string  `json:"image"`
	Score   float64 `json:"score"`
}

// #endregion
