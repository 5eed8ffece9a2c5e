package detect

// #region imports
import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// #endregion

// #region detection

// Detection is one detector hit on an image: class label, confidence, and a
// pixel-space bounding box (x1, y1, x2, y2).
type Detection struct {
	Class      string     `json:"class"`
	Confidence float64    `json:"confidence"`
	BBox       [4]float64 `json:"bbox"`
}

// #endregion

// #region load

// LoadFile reads a per-day detection result file (a JSON array of detections).
func LoadFile(path string) ([]Detection, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read detections %s: %w", path, err)
	}
	var dets []Detection
	if err := json.Unmarshal(data, &dets); err != nil {
		return nil, fmt.Errorf("parse detections %s: %w", path, err)
	}
	return dets, nil
}

// #endregion

// #region count

// CountClass returns how many detections carry the given class label.
func CountClass(dets []Detection, class string) int {
	n := 0
	for _, d := range dets {
		if d.Class == class {
			n++
		}
	}
	return n
}

// #endregion

// #region trend

// TrendPoint is the panel count observed for one monitored day.
type TrendPoint struct {
	Day    string
	Panels int
}

const detectionsSuffix = "_detections.json"

// Trend scans resultsDir for per-day detection files (day label followed by
// "_detections.json") and returns panel counts ordered by day label.
func Trend(resultsDir, panelClass string) ([]TrendPoint, error) {
	entries, err := os.ReadDir(resultsDir)
	if err != nil {
		return nil, fmt.Errorf("read results dir: %w", err)
	}

	var trend []TrendPoint
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, detectionsSuffix) {
			continue
		}
		dets, err := LoadFile(filepath.Join(resultsDir, name))
		if err != nil {
			return nil, err
		}
		trend = append(trend, TrendPoint{
			Day:    strings.TrimSuffix(name, detectionsSuffix),
			Panels: CountClass(dets, panelClass),
		})
	}

	sort.Slice(trend, func(i, j int) bool { return trend[i].Day < trend[j].Day })
	return trend, nil
}

// #endregion
