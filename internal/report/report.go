// Package report renders monitoring results into charts, a PDF for site
// engineers, and an HTML summary page.
package report

// #region imports
import (
	"time"

	"github.com/banyan-grid/siteproof/internal/detect"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region data
// Data is everything a report needs, assembled by the caller from the run
// store and detection exports.
type Data struct {
	Site        string
	DayLabel    string
	GeneratedAt time.Time
	Counts      map[stage.Stage]int
	Skipped     int
	Anomalies   []string
	Trend       []detect.TrendPoint
	Thresholds  threshold.Table
}

// Dominant returns the stage with the highest image count. Ties resolve to
// the more mature stage so partially complete work is not under-reported.
func (d Data) Dominant() stage.Stage {
	best := stage.Foundation
	if d.Total() == 0 {
		return best
	}
	bestCount := -1
	for _, s := range stage.All() {
		if c := d.Counts[s]; c >= bestCount {
			best = s
			bestCount = c
		}
	}
	return best
}

// Total returns the number of classified images.
func (d Data) Total() int {
	n := 0
	for _, c := range d.Counts {
		n += c
	}
	return n
}

// #endregion data

// #region phase-details
// phaseDetails maps each stage to the observations site engineers expect in
// its section of the report.
var phaseDetails = map[stage.Stage][]string{
	stage.Foundation: {
		"- Ground works and pile driving in progress",
		"- Mounting structure delivery should be scheduled",
		"- Survey the grid layout before rack assembly begins",
	},
	stage.Mounting: {
		"- Racking structures are being assembled",
		"- Verify torque and alignment before panel placement",
		"- Stage panel pallets near completed rows",
	},
	stage.Installation: {
		"- Solar panels are being installed on mounting structures",
		"- Electrical connections in progress",
		"- Quality control checks being performed",
	},
}

// #endregion phase-details
