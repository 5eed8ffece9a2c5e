package report

// #region imports
import (
	"fmt"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banyan-grid/siteproof/internal/stage"
)

// #endregion

// #region html
// WriteHTML renders an interactive summary page with the stage distribution
// and the panel trend, for browsing without a PDF viewer.
func WriteHTML(data Data, outPath string) error {
	stageBar := charts.NewBar()
	stageBar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Stage Distribution",
			Subtitle: fmt.Sprintf("%s / %s", data.Site, data.DayLabel),
		}),
	)

	names := make([]string, 0, len(stage.All()))
	values := make([]opts.BarData, 0, len(stage.All()))
	for _, s := range stage.All() {
		names = append(names, string(s))
		values = append(values, opts.BarData{Value: data.Counts[s]})
	}
	stageBar.SetXAxis(names).AddSeries("images", values)

	trendLine := charts.NewLine()
	trendLine.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Panels Detected Over Days"}),
	)
	days := make([]string, 0, len(data.Trend))
	panels := make([]opts.LineData, 0, len(data.Trend))
	for _, tp := range data.Trend {
		days = append(days, tp.Day)
		panels = append(panels, opts.LineData{Value: tp.Panels})
	}
	trendLine.SetXAxis(days).AddSeries("panels", panels)

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create html %s: %w", outPath, err)
	}
	defer f.Close()

	if err := stageBar.Render(f); err != nil {
		return fmt.Errorf("render stage chart: %w", err)
	}
	if len(data.Trend) > 0 {
		if err := trendLine.Render(f); err != nil {
			return fmt.Errorf("render trend chart: %w", err)
		}
	}
	return nil
}

// #endregion html
