package score

// #region imports
import (
	"context"
	"encoding/json"
	"fmt"
	"os"
)

// #endregion

// #region fixture-producer

// FixtureProducer serves pre-recorded scores from a JSON fixture, standing in
// for detector or embedding-model output during replay and tests.
type FixtureProducer struct {
	scores map[string]float64
}

// LoadFixture reads a JSON array of {image, score} pairs.
func LoadFixture(path string) (*FixtureProducer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read fixture %s: %w", path, err)
	}
	var entries []Scored
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse fixture %s: %w", path, err)
	}
	return NewFixtureProducer(entries), nil
}

// NewFixtureProducer builds a producer from in-memory pairs.
func NewFixtureProducer(entries []Scored) *FixtureProducer {
	scores := make(map[string]float64, len(entries))
	for _, e := range entries {
		scores[e.ImageID] = e.Score
	}
	return &FixtureProducer{scores: scores}
}

// Len returns the number of fixture entries.
func (p *FixtureProducer) Len() int {
	return len(p.scores)
}

// Produce returns the recorded score for img.
func (p *FixtureProducer) Produce(_ context.Context, img Ref) (float64, error) {
	s, ok := p.scores[img.ID]
	if !ok {
		return 0, fmt.Errorf("fixture has no score for %s", img.ID)
	}
	return s, nil
}

// #endregion
