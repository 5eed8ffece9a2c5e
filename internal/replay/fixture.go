package replay

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/store"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region fixture-types

// Fixture is a recorded scenario: scores with their expected stages under a
// pinned threshold table, kept as a regression check for classifier changes.
type Fixture struct {
	Description string          `json:"description"`
	Policy      string          `json:"policy"`
	Thresholds  threshold.Table `json:"thresholds,omitempty"`
	Images      []FixtureImage  `json:"images"`
}

// FixtureImage is one scored image and the stage it must classify to.
type FixtureImage struct {
	ImageID  string      `json:"image"`
	Score    float64     `json:"score"`
	Expected stage.Stage `json:"expected_stage"`
}

// #endregion fixture-types

// #region load
// LoadFixture reads a fixture JSON file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return f, nil
}

// #endregion load

// #region verify
// Mismatch is one fixture image whose replayed stage differs from the
// expected one.
type Mismatch struct {
	ImageID  string
	Score    float64
	Expected stage.Stage
	Got      stage.Stage
}

// Verify replays the fixture and returns every expectation that no longer
// holds. An empty slice means the classifier still matches the recording.
func Verify(f Fixture) ([]Mismatch, error) {
	cls := make([]store.Classification, len(f.Images))
	for i, img := range f.Images {
		cls[i] = store.Classification{ImageID: img.ImageID, Score: img.Score, Predicted: img.Expected}
	}

	result, err := Run(cls, f.Thresholds, classify.Policy(f.Policy), classify.DefaultCutPoints())
	if err != nil {
		return nil, err
	}

	var mismatches []Mismatch
	for _, d := range result.Diffs {
		if d.Changed() {
			mismatches = append(mismatches, Mismatch{
				ImageID:  d.ImageID,
				Score:    d.Score,
				Expected: d.Stored,
				Got:      d.Replayed,
			})
		}
	}
	return mismatches, nil
}

// #endregion verify
