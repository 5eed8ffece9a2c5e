package replay

import (
	"math"
	"testing"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/store"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

func storedClassifications() []store.Classification {
	return []store.Classification{
		{ImageID: "a.jpg", Score: 0.90, Predicted: stage.Installation},
		{ImageID: "b.jpg", Score: 0.70, Predicted: stage.Mounting},
		{ImageID: "c.jpg", Score: 0.40, Predicted: stage.Foundation},
	}
}

func TestRun_NoChangesUnderSamePolicy(t *testing.T) {
	result, err := Run(storedClassifications(), nil, classify.PolicyFixed, classify.DefaultCutPoints())
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed != 0 {
		t.Errorf("changed = %d, want 0", result.Changed)
	}
	if len(result.Diffs) != 3 {
		t.Errorf("diffs = %d", len(result.Diffs))
	}
	if result.Counts[stage.Installation] != 1 || result.Counts[stage.Mounting] != 1 || result.Counts[stage.Foundation] != 1 {
		t.Errorf("counts = %v", result.Counts)
	}
}

func TestRun_LearnedTableMovesImages(t *testing.T) {
	// a tight installation band pulls the 0.70 image up from mounting
	table := threshold.Table{
		stage.Installation: {
			Stage: stage.Installation, Mean: 0.72, StdDev: 0.05,
			RecommendedMin: 0.67, RecommendedMax: 0.77, SampleSize: 8,
		},
	}
	result, err := Run(storedClassifications(), table, classify.PolicyLearned, classify.DefaultCutPoints())
	if err != nil {
		t.Fatal(err)
	}
	if result.Changed == 0 {
		t.Fatal("expected at least one change")
	}
	for _, d := range result.Diffs {
		if d.ImageID == "b.jpg" && d.Replayed != stage.Installation {
			t.Errorf("b.jpg replayed = %s", d.Replayed)
		}
	}
}

func TestRun_SkipsInvalidStoredScores(t *testing.T) {
	cls := []store.Classification{
		{ImageID: "ok.jpg", Score: 0.85, Predicted: stage.Installation},
		{ImageID: "bad.jpg", Score: math.Inf(1), Predicted: stage.Foundation},
	}
	result, err := Run(cls, nil, classify.PolicyFixed, classify.DefaultCutPoints())
	if err != nil {
		t.Fatal(err)
	}
	if result.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", result.Skipped)
	}
	if len(result.Diffs) != 1 {
		t.Errorf("diffs = %d, want 1", len(result.Diffs))
	}
}

func TestRun_UnknownPolicy(t *testing.T) {
	if _, err := Run(storedClassifications(), nil, classify.Policy("vibes"), classify.DefaultCutPoints()); err == nil {
		t.Error("unknown policy must be an error")
	}
}
