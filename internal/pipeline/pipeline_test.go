package pipeline

import (
	"context"
	"database/sql"
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/score"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/store"
)

func newTestRunner(t *testing.T, producer score.Producer, cfg Config) *Runner {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "siteproof.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { db.Close() })
	fl, err := feedback.NewLog(db)
	if err != nil {
		t.Fatal(err)
	}

	return NewRunner(st, fl, producer, cfg)
}

func fixedConfig() Config {
	return Config{
		Policy:           classify.PolicyFixed,
		CutPoints:        classify.DefaultCutPoints(),
		AnomalyThreshold: 0.50,
	}
}

func TestRun_FixedPolicy(t *testing.T) {
	producer := score.NewFixtureProducer([]score.Scored{
		{ImageID: "a.jpg", Score: 0.91},
		{ImageID: "b.jpg", Score: 0.65},
		{ImageID: "c.jpg", Score: 0.30},
	})
	r := newTestRunner(t, producer, fixedConfig())

	refs := []score.Ref{{ID: "a.jpg"}, {ID: "b.jpg"}, {ID: "c.jpg"}}
	sum, err := r.Run(context.Background(), "day12", refs)
	if err != nil {
		t.Fatal(err)
	}

	if sum.Counts[stage.Installation] != 1 || sum.Counts[stage.Mounting] != 1 || sum.Counts[stage.Foundation] != 1 {
		t.Errorf("counts = %v", sum.Counts)
	}
	if len(sum.Anomalies) != 1 || sum.Anomalies[0] != "c.jpg" {
		t.Errorf("anomalies = %v", sum.Anomalies)
	}
	if sum.Skipped != 0 {
		t.Errorf("skipped = %d", sum.Skipped)
	}

	cls, err := r.store.Classifications(sum.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if len(cls) != 3 {
		t.Fatalf("persisted %d classifications", len(cls))
	}

	runs, err := r.store.ListRuns(10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Anomalies != 1 || runs[0].Images != 3 {
		t.Errorf("runs = %+v", runs)
	}
}

func TestRun_SkipsInvalidScores(t *testing.T) {
	producer := score.NewFixtureProducer([]score.Scored{
		{ImageID: "good.jpg", Score: 0.72},
		{ImageID: "bad.jpg", Score: math.NaN()},
	})
	r := newTestRunner(t, producer, fixedConfig())

	sum, err := r.Run(context.Background(), "day1", []score.Ref{{ID: "good.jpg"}, {ID: "bad.jpg"}})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Skipped != 1 {
		t.Errorf("skipped = %d, want 1", sum.Skipped)
	}
	if len(sum.Results) != 1 || sum.Results[0].ImageID != "good.jpg" {
		t.Errorf("results = %+v", sum.Results)
	}
}

func TestRun_LearnedWithoutThresholdsFallsBack(t *testing.T) {
	producer := score.NewFixtureProducer([]score.Scored{{ImageID: "a.jpg", Score: 0.85}})
	cfg := fixedConfig()
	cfg.Policy = classify.PolicyLearned
	r := newTestRunner(t, producer, cfg)

	sum, err := r.Run(context.Background(), "day1", []score.Ref{{ID: "a.jpg"}})
	if err != nil {
		t.Fatal(err)
	}
	if sum.Counts[stage.Installation] != 1 {
		t.Errorf("counts = %v, want installation via fixed fallback", sum.Counts)
	}
}

func TestRun_CancelledContext(t *testing.T) {
	producer := score.NewFixtureProducer([]score.Scored{{ImageID: "a.jpg", Score: 0.85}})
	r := newTestRunner(t, producer, fixedConfig())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Run(ctx, "day1", []score.Ref{{ID: "a.jpg"}}); err == nil {
		t.Error("cancelled context must abort the run")
	}
}

func TestLearn_EmptyLog(t *testing.T) {
	r := newTestRunner(t, score.NewFixtureProducer(nil), fixedConfig())

	out, err := r.Learn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if out.Activated {
		t.Error("empty log must not activate a version")
	}
	if out.Reason == "" {
		t.Error("expected a reason for the no-op")
	}
}

func TestLearn_ActivatesVersion(t *testing.T) {
	r := newTestRunner(t, score.NewFixtureProducer(nil), fixedConfig())

	now := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	recs := []feedback.Record{
		{ImageID: "a.jpg", Predicted: stage.Mounting, Score: 0.55, IsCorrect: false, Corrected: stage.Foundation, CreatedAt: now},
		{ImageID: "b.jpg", Predicted: stage.Foundation, Score: 0.77, IsCorrect: true, CreatedAt: now},
		{ImageID: "c.jpg", Predicted: stage.Installation, Score: 0.88, IsCorrect: true, CreatedAt: now},
	}
	if err := r.log.AppendAll(recs); err != nil {
		t.Fatal(err)
	}

	out, err := r.Learn(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !out.Activated {
		t.Fatalf("not activated: %s", out.Reason)
	}

	active, err := r.store.ActiveThresholds()
	if err != nil {
		t.Fatal(err)
	}
	band, ok := active.Table[stage.Foundation]
	if !ok {
		t.Fatal("foundation band missing")
	}
	if band.Mean != 0.66 || band.StdDev != 0.11 || band.SampleSize != 2 {
		t.Errorf("foundation band = %+v", band)
	}
	if _, ok := active.Table[stage.Mounting]; ok {
		t.Error("mounting had no samples and must be absent")
	}
}

func TestLearn_SecondRecomputeChainsVersions(t *testing.T) {
	r := newTestRunner(t, score.NewFixtureProducer(nil), fixedConfig())
	now := time.Now().UTC()

	if err := r.log.Append(feedback.Record{
		ImageID: "a.jpg", Predicted: stage.Installation, Score: 0.90, IsCorrect: true, CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	first, err := r.Learn(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if err := r.log.Append(feedback.Record{
		ImageID: "b.jpg", Predicted: stage.Mounting, Score: 0.68, IsCorrect: true, CreatedAt: now,
	}); err != nil {
		t.Fatal(err)
	}
	second, err := r.Learn(context.Background())
	if err != nil {
		t.Fatal(err)
	}

	if second.Version.ParentID != first.Version.VersionID {
		t.Errorf("parent = %q, want %q", second.Version.ParentID, first.Version.VersionID)
	}
	// the installation band from the first recompute survives the merge
	active, err := r.store.ActiveThresholds()
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := active.Table[stage.Installation]; !ok {
		t.Error("installation band lost across recomputes")
	}
	if _, ok := active.Table[stage.Mounting]; !ok {
		t.Error("mounting band missing after second recompute")
	}
}

func TestListDayImages(t *testing.T) {
	site := t.TempDir()
	day := filepath.Join(site, "day4")
	if err := os.MkdirAll(day, 0o755); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"b.jpg", "a.PNG", "notes.txt", "c.jpeg"} {
		if err := os.WriteFile(filepath.Join(day, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	refs, err := ListDayImages(site, "day4")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 3 {
		t.Fatalf("refs = %v", refs)
	}
	if refs[0].ID != "a.PNG" || refs[1].ID != "b.jpg" || refs[2].ID != "c.jpeg" {
		t.Errorf("order = %v", refs)
	}
}

func TestListDayImages_MissingFolder(t *testing.T) {
	if _, err := ListDayImages(t.TempDir(), "day99"); err == nil {
		t.Error("missing day folder must be an error")
	}
}

func TestAcquireLock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "site.lock")

	release, err := AcquireLock(path)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := AcquireLock(path); !errors.Is(err, ErrLocked) {
		t.Errorf("second acquire = %v, want ErrLocked", err)
	}

	if err := release(); err != nil {
		t.Fatal(err)
	}
	release2, err := AcquireLock(path)
	if err != nil {
		t.Fatalf("reacquire after release: %v", err)
	}
	_ = release2()
}
