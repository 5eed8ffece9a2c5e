package detect

import (
	"os"
	"path/filepath"
	"testing"
)

const dayJSON = `[
  {"class": "solar-pv-panel", "confidence": 0.89, "bbox": [100, 100, 200, 200]},
  {"class": "solar-pv-panel", "confidence": 0.92, "bbox": [250, 150, 350, 250]},
  {"class": "worker", "confidence": 0.77, "bbox": [10, 10, 40, 90]}
]`

func TestLoadFileAndCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "day1_detections.json")
	if err := os.WriteFile(path, []byte(dayJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	dets, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(dets) != 3 {
		t.Fatalf("got %d detections", len(dets))
	}
	if dets[0].BBox[2] != 200 {
		t.Errorf("bbox = %v", dets[0].BBox)
	}
	if n := CountClass(dets, "solar-pv-panel"); n != 2 {
		t.Errorf("panel count = %d, want 2", n)
	}
}

func TestTrend(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"day2_detections.json": `[{"class": "solar-pv-panel", "confidence": 0.9, "bbox": [0,0,1,1]}]`,
		"day1_detections.json": `[]`,
		"notes.txt":            "ignore me",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	trend, err := Trend(dir, "solar-pv-panel")
	if err != nil {
		t.Fatal(err)
	}
	if len(trend) != 2 {
		t.Fatalf("got %d points", len(trend))
	}
	if trend[0].Day != "day1" || trend[0].Panels != 0 {
		t.Errorf("first point = %+v", trend[0])
	}
	if trend[1].Day != "day2" || trend[1].Panels != 1 {
		t.Errorf("second point = %+v", trend[1])
	}
}

func TestLoadFile_Malformed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad_detections.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFile(path); err == nil {
		t.Error("malformed JSON must be an error")
	}
}
