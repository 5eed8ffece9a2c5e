package report

// #region imports
import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/banyan-grid/siteproof/internal/detect"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region stage-chart
// StageDistributionChart renders a bar chart of image counts per stage.
func StageDistributionChart(counts map[stage.Stage]int, path string) error {
	p := plot.New()
	p.Title.Text = "Stage Distribution (Current Day)"
	p.X.Label.Text = "Stage"
	p.Y.Label.Text = "Image Count"

	values := make(plotter.Values, 0, len(stage.All()))
	names := make([]string, 0, len(stage.All()))
	for _, s := range stage.All() {
		values = append(values, float64(counts[s]))
		names = append(names, string(s))
	}

	bars, err := plotter.NewBarChart(values, vg.Points(40))
	if err != nil {
		return fmt.Errorf("stage chart: %w", err)
	}
	bars.Color = color.RGBA{R: 0x2b, G: 0x6c, B: 0xb0, A: 0xff}
	p.Add(bars)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save stage chart: %w", err)
	}
	return nil
}

// #endregion stage-chart

// #region trend-chart
// PanelTrendChart renders panel counts over monitored days as a line.
func PanelTrendChart(points []detect.TrendPoint, path string) error {
	p := plot.New()
	p.Title.Text = "Panels Detected Over Days"
	p.X.Label.Text = "Day"
	p.Y.Label.Text = "Panel Count"

	pts := make(plotter.XYs, len(points))
	names := make([]string, len(points))
	for i, tp := range points {
		pts[i] = plotter.XY{X: float64(i), Y: float64(tp.Panels)}
		names[i] = tp.Day
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return fmt.Errorf("trend chart: %w", err)
	}
	line.Width = vg.Points(2)
	line.Color = color.RGBA{R: 0x1f, G: 0x8a, B: 0x3b, A: 0xff}
	p.Add(line)
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save trend chart: %w", err)
	}
	return nil
}

// #endregion trend-chart

// #region band-chart
// ThresholdBandsChart renders each learned band as a vertical segment from
// its recommended minimum to maximum, with the mean marked.
func ThresholdBandsChart(table threshold.Table, path string) error {
	p := plot.New()
	p.Title.Text = "Learned Similarity Bands"
	p.X.Label.Text = "Stage"
	p.Y.Label.Text = "Similarity"
	p.Y.Min, p.Y.Max = 0, 1

	names := make([]string, 0, len(stage.All()))
	means := make(plotter.XYs, 0, len(stage.All()))
	x := 0
	for _, s := range stage.All() {
		band, ok := table[s]
		if !ok {
			continue
		}
		seg := plotter.XYs{
			{X: float64(x), Y: band.RecommendedMin},
			{X: float64(x), Y: band.RecommendedMax},
		}
		line, err := plotter.NewLine(seg)
		if err != nil {
			return fmt.Errorf("band chart: %w", err)
		}
		line.Width = vg.Points(6)
		line.Color = color.RGBA{R: 0xd9, G: 0x7a, B: 0x1f, A: 0xff}
		p.Add(line)

		means = append(means, plotter.XY{X: float64(x), Y: band.Mean})
		names = append(names, string(s))
		x++
	}

	if len(means) > 0 {
		scatter, err := plotter.NewScatter(means)
		if err != nil {
			return fmt.Errorf("band chart: %w", err)
		}
		scatter.Radius = vg.Points(3)
		p.Add(scatter)
	}
	p.NominalX(names...)

	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("save band chart: %w", err)
	}
	return nil
}

// #endregion band-chart
