package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/banyan-grid/siteproof/internal/detect"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

func sampleData() Data {
	return Data{
		Site:        "plant-a",
		DayLabel:    "day12",
		GeneratedAt: time.Date(2026, 8, 27, 9, 30, 0, 0, time.UTC),
		Counts: map[stage.Stage]int{
			stage.Foundation:   2,
			stage.Mounting:     5,
			stage.Installation: 9,
		},
		Skipped:   1,
		Anomalies: []string{"site_044.jpg"},
		Trend: []detect.TrendPoint{
			{Day: "day10", Panels: 120},
			{Day: "day11", Panels: 180},
			{Day: "day12", Panels: 260},
		},
		Thresholds: threshold.Table{
			stage.Installation: {
				Stage: stage.Installation, Mean: 0.85, StdDev: 0.04,
				RecommendedMin: 0.81, RecommendedMax: 0.89, SampleSize: 12,
			},
		},
	}
}

func assertFileNonEmpty(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("missing output: %v", err)
	}
	if info.Size() == 0 {
		t.Fatalf("empty output: %s", path)
	}
}

func TestDominant(t *testing.T) {
	d := sampleData()
	if got := d.Dominant(); got != stage.Installation {
		t.Errorf("dominant = %s", got)
	}

	// ties resolve toward the more mature stage
	d.Counts = map[stage.Stage]int{stage.Foundation: 3, stage.Mounting: 3}
	if got := d.Dominant(); got != stage.Mounting {
		t.Errorf("tie dominant = %s", got)
	}

	d.Counts = nil
	if got := d.Dominant(); got != stage.Foundation {
		t.Errorf("empty dominant = %s", got)
	}
}

func TestTotal(t *testing.T) {
	if got := sampleData().Total(); got != 16 {
		t.Errorf("total = %d", got)
	}
}

func TestStageDistributionChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stages.png")
	if err := StageDistributionChart(sampleData().Counts, path); err != nil {
		t.Fatal(err)
	}
	assertFileNonEmpty(t, path)
}

func TestPanelTrendChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trend.png")
	if err := PanelTrendChart(sampleData().Trend, path); err != nil {
		t.Fatal(err)
	}
	assertFileNonEmpty(t, path)
}

func TestThresholdBandsChart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bands.png")
	if err := ThresholdBandsChart(sampleData().Thresholds, path); err != nil {
		t.Fatal(err)
	}
	assertFileNonEmpty(t, path)
}

func TestWritePDF(t *testing.T) {
	dir := t.TempDir()
	data := sampleData()

	stageChart := filepath.Join(dir, "stages.png")
	if err := StageDistributionChart(data.Counts, stageChart); err != nil {
		t.Fatal(err)
	}

	out := filepath.Join(dir, "report.pdf")
	// trend and band charts intentionally absent
	if err := WritePDF(data, stageChart, "", filepath.Join(dir, "missing.png"), out); err != nil {
		t.Fatal(err)
	}
	assertFileNonEmpty(t, out)
}

func TestWriteHTML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.html")
	if err := WriteHTML(sampleData(), path); err != nil {
		t.Fatal(err)
	}

	body, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Stage Distribution", "installation", "day11"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("html missing %q", want)
		}
	}
}
