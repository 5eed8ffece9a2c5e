package report

// #region imports
import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/go-pdf/fpdf"

	"github.com/banyan-grid/siteproof/internal/stage"
)

// #endregion

// #region pdf
// WritePDF renders the monitoring report. Chart paths may be empty or point
// to missing files; those sections are skipped so a day without detections
// still produces a report.
func WritePDF(data Data, stageChart, trendChart, bandChart, outPath string) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "Solar Plant Construction Progress Report", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 11)
	pdf.CellFormat(0, 7, fmt.Sprintf("Generated: %s", data.GeneratedAt.Format("2006-01-02 15:04")), "", 1, "C", false, 0, "")
	pdf.CellFormat(0, 7, fmt.Sprintf("Site: %s    Day: %s", data.Site, data.DayLabel), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	dominant := data.Dominant()
	pdf.SetFont("Arial", "B", 13)
	pdf.SetFillColor(200, 255, 200)
	pdf.CellFormat(0, 10, fmt.Sprintf("CURRENT STATUS: %s PHASE", strings.ToUpper(string(dominant))), "", 1, "C", true, 0, "")
	pdf.Ln(4)

	writeSummary(pdf, data)
	writeChart(pdf, "Stage Distribution (Current Day)", stageChart)
	writeChart(pdf, "Panels Detected Over Days", trendChart)
	writeThresholds(pdf, data)
	writeChart(pdf, "Learned Similarity Bands", bandChart)
	writePhaseDetails(pdf, dominant)

	if err := pdf.OutputFileAndClose(outPath); err != nil {
		return fmt.Errorf("write pdf %s: %w", outPath, err)
	}
	return nil
}

// #endregion pdf

// #region sections
func writeSummary(pdf *fpdf.Fpdf, data Data) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Executive Summary", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)

	lines := []string{
		fmt.Sprintf("- %d images classified, %d skipped for unusable scores", data.Total(), data.Skipped),
		fmt.Sprintf("- Dominant construction stage: %s", data.Dominant()),
	}
	for _, s := range stage.All() {
		if c := data.Counts[s]; c > 0 {
			lines = append(lines, fmt.Sprintf("- %s: %d images", s, c))
		}
	}
	if n := len(data.Anomalies); n > 0 {
		lines = append(lines, fmt.Sprintf("- %d images flagged for manual review", n))
	}
	for _, line := range lines {
		pdf.MultiCell(0, 6, line, "", "", false)
	}
	pdf.Ln(3)
}

func writeChart(pdf *fpdf.Fpdf, title, path string) {
	if path == "" {
		return
	}
	if _, err := os.Stat(path); err != nil {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "", false, 0, "")
	pdf.ImageOptions(path, 15, pdf.GetY(), 180, 0, true, fpdf.ImageOptions{}, 0, "")
	pdf.Ln(4)
}

func writeThresholds(pdf *fpdf.Fpdf, data Data) {
	if len(data.Thresholds) == 0 {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, "Adaptive Thresholds (Learned from Feedback)", "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, s := range stage.All() {
		band, ok := data.Thresholds[s]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s: mean=%.3f, range=%.3f to %.3f (n=%d)",
			s, band.Mean, band.RecommendedMin, band.RecommendedMax, band.SampleSize)
		pdf.MultiCell(0, 6, line, "", "", false)
	}
	pdf.Ln(3)
}

func writePhaseDetails(pdf *fpdf.Fpdf, dominant stage.Stage) {
	details, ok := phaseDetails[dominant]
	if !ok {
		return
	}
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 8, fmt.Sprintf("%s Phase Details", capitalize(string(dominant))), "", 1, "", false, 0, "")
	pdf.SetFont("Arial", "", 11)
	for _, d := range details {
		pdf.CellFormat(0, 6, d, "", 1, "", false, 0, "")
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// #endregion sections
