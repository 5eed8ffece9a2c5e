package classify

import (
	"errors"
	"math"
	"testing"

	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

func TestFixed_CutPoints(t *testing.T) {
	cp := DefaultCutPoints()
	cases := []struct {
		score float64
		want  stage.Stage
	}{
		{0.85, stage.Installation},
		{0.81, stage.Installation},
		{0.80, stage.Mounting}, // boundary belongs to the lower band
		{0.70, stage.Mounting},
		{0.60, stage.Mounting}, // inclusive-low boundary
		{0.59, stage.Foundation},
		{0.40, stage.Foundation},
		{0.0, stage.Foundation},
	}
	for _, c := range cases {
		got, err := Fixed(c.score, cp)
		if err != nil {
			t.Fatalf("Fixed(%v): %v", c.score, err)
		}
		if got != c.want {
			t.Errorf("Fixed(%v) = %s, want %s", c.score, got, c.want)
		}
	}
}

func TestFixed_BoundaryExactness(t *testing.T) {
	cp := DefaultCutPoints()
	at, _ := Fixed(0.80, cp)
	above, _ := Fixed(math.Nextafter(0.80, 1), cp)
	if at != stage.Mounting {
		t.Errorf("classify(0.80) = %s, want mounting", at)
	}
	if above != stage.Installation {
		t.Errorf("classify(0.80+eps) = %s, want installation", above)
	}
}

func TestFixed_InvalidScore(t *testing.T) {
	cp := DefaultCutPoints()
	for _, bad := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Fixed(bad, cp); !errors.Is(err, ErrInvalidScore) {
			t.Errorf("Fixed(%v): expected ErrInvalidScore, got %v", bad, err)
		}
	}
}

func learnedTable() threshold.Table {
	return threshold.Table{
		stage.Foundation:   {Stage: stage.Foundation, RecommendedMin: 0.35, RecommendedMax: 0.55, SampleSize: 4},
		stage.Mounting:     {Stage: stage.Mounting, RecommendedMin: 0.60, RecommendedMax: 0.78, SampleSize: 5},
		stage.Installation: {Stage: stage.Installation, RecommendedMin: 0.82, RecommendedMax: 0.94, SampleSize: 3},
	}
}

func TestLearned_BandMatch(t *testing.T) {
	cp := DefaultCutPoints()
	got, err := Learned(0.70, learnedTable(), cp)
	if err != nil {
		t.Fatal(err)
	}
	if got != stage.Mounting {
		t.Errorf("Learned(0.70) = %s, want mounting", got)
	}
}

func TestLearned_GapFallsToNearestCenter(t *testing.T) {
	cp := DefaultCutPoints()
	// 0.80 matches no band: mounting tops out at 0.78, installation starts
	// at 0.82. Centers are 0.69 and 0.88, so installation is nearer.
	got, err := Learned(0.80, learnedTable(), cp)
	if err != nil {
		t.Fatal(err)
	}
	if got != stage.Installation {
		t.Errorf("Learned(0.80) = %s, want installation via nearest center", got)
	}
}

func TestLearned_OverlapFallsToNearestCenter(t *testing.T) {
	cp := DefaultCutPoints()
	table := threshold.Table{
		stage.Mounting:     {Stage: stage.Mounting, RecommendedMin: 0.60, RecommendedMax: 0.85, SampleSize: 5},
		stage.Installation: {Stage: stage.Installation, RecommendedMin: 0.80, RecommendedMax: 0.95, SampleSize: 3},
	}
	// 0.84 is inside both bands. Centers: 0.725 and 0.875, installation wins.
	got, err := Learned(0.84, table, cp)
	if err != nil {
		t.Fatal(err)
	}
	if got != stage.Installation {
		t.Errorf("Learned(0.84) = %s, want installation", got)
	}
}

func TestLearned_EmptyTableFallsToFixed(t *testing.T) {
	cp := DefaultCutPoints()
	got, err := Learned(0.85, nil, cp)
	if err != nil {
		t.Fatal(err)
	}
	if got != stage.Installation {
		t.Errorf("Learned(0.85, empty) = %s, want installation via fixed fallback", got)
	}
}

func TestClassify_Deterministic(t *testing.T) {
	cp := DefaultCutPoints()
	table := learnedTable()
	for _, policy := range []Policy{PolicyFixed, PolicyLearned} {
		first, err := Classify(0.73, table, policy, cp)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 10; i++ {
			again, err := Classify(0.73, table, policy, cp)
			if err != nil {
				t.Fatal(err)
			}
			if again != first {
				t.Fatalf("policy %s not deterministic: %s then %s", policy, first, again)
			}
		}
	}
}

func TestClassify_Monotone(t *testing.T) {
	cp := DefaultCutPoints()
	table := learnedTable()
	for _, policy := range []Policy{PolicyFixed, PolicyLearned} {
		prevRank := -1
		for score := 0.0; score <= 1.0; score += 0.005 {
			s, err := Classify(score, table, policy, cp)
			if err != nil {
				t.Fatal(err)
			}
			r := stage.Rank(s)
			if r < prevRank {
				t.Fatalf("policy %s not monotone at score %.3f: rank %d after %d", policy, score, r, prevRank)
			}
			prevRank = r
		}
	}
}

func TestClassify_UnknownPolicy(t *testing.T) {
	if _, err := Classify(0.5, nil, Policy("bayesian"), DefaultCutPoints()); err == nil {
		t.Error("unknown policy must be rejected")
	}
}
