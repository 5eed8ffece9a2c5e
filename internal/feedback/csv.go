package feedback

// #region imports
import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/banyan-grid/siteproof/internal/stage"
)

// #endregion

// #region template

// templateHeader is the column layout reviewers see in their spreadsheet.
var templateHeader = []string{"image", "predicted_stage", "similarity", "is_correct", "corrected_stage", "comments"}

// Prediction is one classified image offered for review.
type Prediction struct {
	ImageID   string
	Predicted stage.Stage
	Score     float64
}

// WriteTemplate emits a review CSV with verdict columns left blank for the
// supervisor to fill in.
func WriteTemplate(w io.Writer, preds []Prediction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(templateHeader); err != nil {
		return fmt.Errorf("write template header: %w", err)
	}
	for _, p := range preds {
		row := []string{
			p.ImageID,
			string(p.Predicted),
			strconv.FormatFloat(p.Score, 'f', -1, 64),
			"", "", "",
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write template row for %s: %w", p.ImageID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// #endregion

// #region import

// ImportReport tallies what happened to each row of a reviewed CSV.
type ImportReport struct {
	Accepted int // valid verdicts appended
	Pending  int // is_correct left blank, review not done yet
	Rejected int // malformed rows (bad stage, missing or redundant correction)
}

// ReadReviewed parses a reviewed template. Rows with a blank verdict are
// counted pending and skipped; rows that fail validation are counted rejected
// and skipped. The caller appends the returned records to the log. Importing
// never aborts on a bad row: reviewers work in spreadsheets and one typo must
// not discard a day's review.
func ReadReviewed(r io.Reader, now time.Time) ([]Record, ImportReport, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, ImportReport{}, fmt.Errorf("read header: %w", err)
	}
	col := indexColumns(header)
	for _, name := range templateHeader[:5] {
		if _, ok := col[name]; !ok {
			return nil, ImportReport{}, fmt.Errorf("reviewed CSV missing column %q", name)
		}
	}

	var recs []Record
	var report ImportReport

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, report, fmt.Errorf("read row: %w", err)
		}

		verdict := strings.ToLower(strings.TrimSpace(field(row, col, "is_correct")))
		if verdict == "" {
			report.Pending++
			continue
		}

		rec, ok := parseRow(row, col, verdict, now)
		if !ok {
			report.Rejected++
			continue
		}
		recs = append(recs, rec)
		report.Accepted++
	}
	return recs, report, nil
}

// parseRow validates a single reviewed row.
func parseRow(row []string, col map[string]int, verdict string, now time.Time) (Record, bool) {
	var isCorrect bool
	switch verdict {
	case "yes", "y", "true":
		isCorrect = true
	case "no", "n", "false":
		isCorrect = false
	default:
		return Record{}, false
	}

	predicted, err := stage.Parse(field(row, col, "predicted_stage"))
	if err != nil {
		return Record{}, false
	}
	score, err := strconv.ParseFloat(strings.TrimSpace(field(row, col, "similarity")), 64)
	if err != nil {
		return Record{}, false
	}

	rec := Record{
		ImageID:   strings.TrimSpace(field(row, col, "image")),
		Predicted: predicted,
		Score:     score,
		IsCorrect: isCorrect,
		Comment:   strings.TrimSpace(field(row, col, "comments")),
		CreatedAt: now,
	}
	if rec.ImageID == "" {
		return Record{}, false
	}

	if !isCorrect {
		corrected, err := stage.Parse(field(row, col, "corrected_stage"))
		if err != nil {
			return Record{}, false
		}
		// A "no" verdict that re-asserts the predicted stage contradicts
		// itself; reject at the boundary rather than letting the learner
		// silently skip it later.
		if corrected == predicted {
			return Record{}, false
		}
		rec.Corrected = corrected
	}
	return rec, true
}

// #endregion

// #region helpers

func indexColumns(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return col
}

func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// #endregion
