// Command siteproof runs one monitoring pass over a day of site images and
// optionally renders the progress report.
package main

// #region imports
import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/config"
	"github.com/banyan-grid/siteproof/internal/detect"
	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/pipeline"
	"github.com/banyan-grid/siteproof/internal/report"
	"github.com/banyan-grid/siteproof/internal/score"
	"github.com/banyan-grid/siteproof/internal/store"
)

// #endregion

// #region main
func main() {
	dir := flag.String("dir", ".", "site data directory")
	cfgPath := flag.String("config", "", "path to siteproof.toml (default <dir>/siteproof.toml)")
	day := flag.String("day", "", "day folder to process, e.g. day12")
	scores := flag.String("scores", "", "optional fixture JSON of precomputed scores")
	site := flag.String("site", "plant", "site name for reports")
	genReport := flag.Bool("report", false, "render PDF and HTML report after the run")
	template := flag.String("template", "", "write a review template CSV for this run")
	flag.Parse()

	if *day == "" {
		fmt.Fprintln(os.Stderr, "usage: siteproof --dir site/ --day day12 [--scores scores.json] [--report]")
		os.Exit(2)
	}

	if *cfgPath == "" {
		*cfgPath = filepath.Join(*dir, "siteproof.toml")
	}
	cfg, err := config.Load(*cfgPath, *dir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	if err := run(context.Background(), cfg, *site, *day, *scores, *template, *genReport); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region run
func run(ctx context.Context, cfg config.Config, site, day, scoresPath, templatePath string, genReport bool) error {
	release, err := pipeline.AcquireLock(cfg.Paths.LockFile)
	if err != nil {
		return err
	}
	defer release()

	st, err := store.Open(cfg.Paths.Database)
	if err != nil {
		return err
	}
	defer st.Close()

	db, err := sql.Open("sqlite", cfg.Paths.FeedbackDB)
	if err != nil {
		return fmt.Errorf("open feedback db: %w", err)
	}
	defer db.Close()
	fl, err := feedback.NewLog(db)
	if err != nil {
		return err
	}

	producer, closeProducer, err := buildProducer(cfg, scoresPath)
	if err != nil {
		return err
	}
	defer closeProducer()

	images, err := pipeline.ListDayImages(cfg.Paths.SiteDir, day)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(st, fl, producer, pipeline.Config{
		Policy:           classify.Policy(cfg.Classify.Policy),
		CutPoints:        cfg.CutPoints(),
		AnomalyThreshold: cfg.Classify.AnomalyThreshold,
	})

	summary, err := runner.Run(ctx, day, images)
	if err != nil {
		return err
	}

	fmt.Printf("run %s: %d images", summary.RunID, len(images))
	for s, n := range summary.Counts {
		fmt.Printf("  %s=%d", s, n)
	}
	fmt.Printf("  skipped=%d anomalies=%d\n", summary.Skipped, len(summary.Anomalies))
	for _, id := range summary.Anomalies {
		fmt.Printf("  review: %s\n", id)
	}

	if templatePath != "" {
		if err := writeTemplate(summary, templatePath); err != nil {
			return err
		}
	}
	if !genReport {
		return nil
	}
	return renderReport(cfg, st, site, day, summary)
}

// writeTemplate exports the run's predictions as a review CSV so the site
// supervisor can confirm or correct them.
func writeTemplate(summary pipeline.RunSummary, outPath string) error {
	preds := make([]feedback.Prediction, len(summary.Results))
	for i, c := range summary.Results {
		preds[i] = feedback.Prediction{ImageID: c.ImageID, Predicted: c.Predicted, Score: c.Score}
	}

	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	defer f.Close()
	if err := feedback.WriteTemplate(f, preds); err != nil {
		return err
	}
	fmt.Printf("template: %d rows -> %s\n", len(preds), outPath)
	return nil
}

// buildProducer picks the score source: a fixture file when given, the remote
// vision service when configured, the local edge analyzer otherwise.
func buildProducer(cfg config.Config, scoresPath string) (score.Producer, func(), error) {
	noop := func() {}
	if scoresPath != "" {
		p, err := score.LoadFixture(scoresPath)
		if err != nil {
			return nil, noop, err
		}
		return p, noop, nil
	}
	if cfg.Vision.Enabled {
		c, err := score.NewVisionClient(cfg.Vision.Addr, cfg.APIKey(), cfg.Vision.ReferenceSet)
		if err != nil {
			return nil, noop, err
		}
		return c, func() { c.Close() }, nil
	}
	return score.NewEdgeProducer(score.DefaultEdgeConfig()), noop, nil
}

// #endregion run

// #region report
func renderReport(cfg config.Config, st *store.Store, site, day string, summary pipeline.RunSummary) error {
	if err := os.MkdirAll(cfg.Paths.ReportDir, 0o755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}

	data := report.Data{
		Site:        site,
		DayLabel:    day,
		GeneratedAt: time.Now().UTC(),
		Counts:      summary.Counts,
		Skipped:     summary.Skipped,
		Anomalies:   summary.Anomalies,
	}

	if trend, err := detect.Trend(cfg.Paths.DetectionsDir, cfg.Detect.PanelClass); err == nil {
		data.Trend = trend
	} else {
		log.Printf("[REPORT] no detection trend: %v", err)
	}
	if active, err := st.ActiveThresholds(); err == nil {
		data.Thresholds = active.Table
	}

	stageChart := filepath.Join(cfg.Paths.ReportDir, day+"_stages.png")
	if err := report.StageDistributionChart(data.Counts, stageChart); err != nil {
		return err
	}

	trendChart := ""
	if len(data.Trend) > 0 {
		trendChart = filepath.Join(cfg.Paths.ReportDir, day+"_trend.png")
		if err := report.PanelTrendChart(data.Trend, trendChart); err != nil {
			return err
		}
	}

	bandChart := ""
	if len(data.Thresholds) > 0 {
		bandChart = filepath.Join(cfg.Paths.ReportDir, day+"_bands.png")
		if err := report.ThresholdBandsChart(data.Thresholds, bandChart); err != nil {
			return err
		}
	}

	pdfPath := filepath.Join(cfg.Paths.ReportDir, day+"_report.pdf")
	if err := report.WritePDF(data, stageChart, trendChart, bandChart, pdfPath); err != nil {
		return err
	}
	htmlPath := filepath.Join(cfg.Paths.ReportDir, day+"_summary.html")
	if err := report.WriteHTML(data, htmlPath); err != nil {
		return err
	}

	fmt.Printf("report: %s\n", pdfPath)
	fmt.Printf("summary: %s\n", htmlPath)
	return nil
}

// #endregion report
