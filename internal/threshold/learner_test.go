package threshold

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/stage"
)

func rec(pred stage.Stage, score float64, correct bool, corrected stage.Stage) feedback.Record {
	return feedback.Record{
		ImageID:   "img",
		Predicted: pred,
		Score:     score,
		IsCorrect: correct,
		Corrected: corrected,
		CreatedAt: time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRecompute_EmptyLog(t *testing.T) {
	_, err := Recompute(nil)
	if !errors.Is(err, ErrEmptyFeedbackLog) {
		t.Fatalf("expected ErrEmptyFeedbackLog, got %v", err)
	}
}

func TestRecompute_SingleConfirmed(t *testing.T) {
	res, err := Recompute([]feedback.Record{
		rec(stage.Mounting, 0.75, true, ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	b, ok := res.Table[stage.Mounting]
	if !ok {
		t.Fatal("expected mounting band")
	}
	if b.Mean != 0.75 || b.StdDev != 0 || b.RecommendedMin != 0.75 || b.RecommendedMax != 0.75 {
		t.Errorf("unexpected band %+v", b)
	}
	if b.SampleSize != 1 {
		t.Errorf("sample size = %d, want 1", b.SampleSize)
	}
	if _, ok := res.Table[stage.Foundation]; ok {
		t.Error("foundation band must be omitted, not zero-filled")
	}
	if _, ok := res.Table[stage.Installation]; ok {
		t.Error("installation band must be omitted, not zero-filled")
	}
}

func TestRecompute_CorrectedScoresJoinTargetStage(t *testing.T) {
	res, err := Recompute([]feedback.Record{
		rec(stage.Foundation, 0.55, false, stage.Mounting),
		rec(stage.Mounting, 0.77, true, ""),
	})
	if err != nil {
		t.Fatal(err)
	}
	b := res.Table[stage.Mounting]
	if b.SampleSize != 2 {
		t.Fatalf("sample size = %d, want 2", b.SampleSize)
	}
	if b.Mean != 0.66 {
		t.Errorf("mean = %v, want 0.66", b.Mean)
	}
	// Population std with N divisor: sqrt(((0.55-0.66)^2 + (0.77-0.66)^2)/2) = 0.11
	if b.StdDev != 0.11 {
		t.Errorf("std = %v, want 0.11", b.StdDev)
	}
}

func TestRecompute_MalformedExcluded(t *testing.T) {
	res, err := Recompute([]feedback.Record{
		rec(stage.Mounting, 0.75, true, ""),
		rec(stage.Foundation, 0.40, false, ""),              // missing correction
		rec(stage.Installation, 0.85, false, stage.Installation), // redundant correction
	})
	if err != nil {
		t.Fatal(err)
	}
	if res.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", res.Skipped)
	}
	for _, s := range stage.All() {
		if s == stage.Mounting {
			continue
		}
		if _, ok := res.Table[s]; ok {
			t.Errorf("%s band derived from malformed records", s)
		}
	}
}

func TestRecompute_Idempotent(t *testing.T) {
	log := []feedback.Record{
		rec(stage.Foundation, 0.41, true, ""),
		rec(stage.Foundation, 0.47, true, ""),
		rec(stage.Mounting, 0.68, true, ""),
		rec(stage.Mounting, 0.74, false, stage.Installation),
		rec(stage.Installation, 0.88, true, ""),
	}
	first, err := Recompute(log)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Recompute(log)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("recompute not idempotent:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestMerge_RetainsPriorBands(t *testing.T) {
	prev := Table{
		stage.Foundation: {Stage: stage.Foundation, Mean: 0.45, RecommendedMin: 0.40, RecommendedMax: 0.50, SampleSize: 3},
		stage.Mounting:   {Stage: stage.Mounting, Mean: 0.70, RecommendedMin: 0.65, RecommendedMax: 0.75, SampleSize: 4},
	}
	next := Table{
		stage.Mounting: {Stage: stage.Mounting, Mean: 0.72, RecommendedMin: 0.66, RecommendedMax: 0.78, SampleSize: 6},
	}
	merged := Merge(prev, next)
	if merged[stage.Mounting].SampleSize != 6 {
		t.Error("recomputed band must replace prior band")
	}
	if merged[stage.Foundation].SampleSize != 3 {
		t.Error("omitted stage must retain prior band")
	}
}

func TestValidate(t *testing.T) {
	good := Table{
		stage.Mounting: {Stage: stage.Mounting, Mean: 0.7, RecommendedMin: 0.6, RecommendedMax: 0.8, SampleSize: 2},
	}
	if err := Validate(good); err != nil {
		t.Errorf("valid table rejected: %v", err)
	}

	inverted := Table{
		stage.Mounting: {Stage: stage.Mounting, Mean: 0.7, RecommendedMin: 0.8, RecommendedMax: 0.6, SampleSize: 2},
	}
	if err := Validate(inverted); err == nil {
		t.Error("inverted range must be rejected")
	}

	empty := Table{
		stage.Mounting: {Stage: stage.Mounting, Mean: 0.7, RecommendedMin: 0.6, RecommendedMax: 0.8},
	}
	if err := Validate(empty); err == nil {
		t.Error("zero sample size must be rejected")
	}

	nan := Table{
		stage.Mounting: {Stage: stage.Mounting, Mean: math.NaN(), RecommendedMin: 0.6, RecommendedMax: 0.8, SampleSize: 1},
	}
	if err := Validate(nan); err == nil {
		t.Error("non-finite mean must be rejected")
	}
}

func TestRecompute_NonFiniteScoresExcluded(t *testing.T) {
	log := []feedback.Record{
		rec(stage.Mounting, 0.70, true, ""),
		rec(stage.Mounting, math.NaN(), true, ""),
		rec(stage.Mounting, math.Inf(1), true, ""),
	}
	result, err := Recompute(log)
	if err != nil {
		t.Fatal(err)
	}
	if result.Skipped != 2 {
		t.Errorf("skipped = %d, want 2", result.Skipped)
	}
	band, ok := result.Table[stage.Mounting]
	if !ok {
		t.Fatal("mounting band missing")
	}
	if band.Mean != 0.70 || band.SampleSize != 1 {
		t.Errorf("band = %+v", band)
	}
}
