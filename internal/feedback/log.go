package feedback

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/banyan-grid/siteproof/internal/stage"
)

// #endregion

// #region schema

const feedbackSchema = `
CREATE TABLE IF NOT EXISTS feedback_log (
    id              INTEGER PRIMARY KEY AUTOINCREMENT,
    image_id        TEXT NOT NULL,
    predicted_stage TEXT NOT NULL,
    score           REAL NOT NULL,
    is_correct      INTEGER NOT NULL,
    corrected_stage TEXT,
    comment         TEXT,
    created_at      TEXT NOT NULL
);
`

const feedbackIndex = `
CREATE INDEX IF NOT EXISTS idx_feedback_log_image
ON feedback_log(image_id);
`

// #endregion

// #region log-struct

// Log is the append-only feedback store. Appends go through single INSERT
// statements so concurrent reviewers can never interleave partial writes; no
// update or delete path exists.
type Log struct {
	db *sql.DB
}

// NewLog initializes the feedback_log table and returns a Log.
func NewLog(db *sql.DB) (*Log, error) {
	if _, err := db.Exec(feedbackSchema); err != nil {
		return nil, fmt.Errorf("create feedback_log: %w", err)
	}
	if _, err := db.Exec(feedbackIndex); err != nil {
		return nil, fmt.Errorf("index feedback_log: %w", err)
	}
	return &Log{db: db}, nil
}

// #endregion

// #region append

// Append durably records one verdict. Corrections to earlier verdicts are new
// rows referencing the same image id, never edits.
func (l *Log) Append(rec Record) error {
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}
	correct := 0
	if rec.IsCorrect {
		correct = 1
	}
	_, err := l.db.Exec(
		`INSERT INTO feedback_log
		 (image_id, predicted_stage, score, is_correct, corrected_stage, comment, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.ImageID,
		string(rec.Predicted),
		rec.Score,
		correct,
		nullIfEmpty(string(rec.Corrected)),
		nullIfEmpty(rec.Comment),
		rec.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	return nil
}

// AppendAll appends records inside one transaction. Either every record lands
// or none do.
func (l *Log) AppendAll(recs []Record) error {
	tx, err := l.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, rec := range recs {
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = time.Now().UTC()
		}
		correct := 0
		if rec.IsCorrect {
			correct = 1
		}
		_, err := tx.Exec(
			`INSERT INTO feedback_log
			 (image_id, predicted_stage, score, is_correct, corrected_stage, comment, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			rec.ImageID,
			string(rec.Predicted),
			rec.Score,
			correct,
			nullIfEmpty(string(rec.Corrected)),
			nullIfEmpty(rec.Comment),
			rec.CreatedAt.Format(time.RFC3339Nano),
		)
		if err != nil {
			return fmt.Errorf("append feedback for %s: %w", rec.ImageID, err)
		}
	}
	return tx.Commit()
}

// #endregion

// #region read-all

// ReadAll returns the complete log in append order.
func (l *Log) ReadAll() ([]Record, error) {
	rows, err := l.db.Query(
		`SELECT image_id, predicted_stage, score, is_correct, corrected_stage, comment, created_at
		 FROM feedback_log ORDER BY id ASC`,
	)
	if err != nil {
		return nil, fmt.Errorf("read feedback: %w", err)
	}
	defer rows.Close()

	var recs []Record
	for rows.Next() {
		var rec Record
		var predicted string
		var correct int
		var corrected, comment sql.NullString
		var createdStr string

		if err := rows.Scan(&rec.ImageID, &predicted, &rec.Score, &correct, &corrected, &comment, &createdStr); err != nil {
			return nil, fmt.Errorf("scan feedback row: %w", err)
		}
		rec.Predicted = stage.Stage(predicted)
		rec.IsCorrect = correct != 0
		if corrected.Valid {
			rec.Corrected = stage.Stage(corrected.String)
		}
		if comment.Valid {
			rec.Comment = comment.String
		}
		rec.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// #endregion

// #region stats

// Stats counts verdicts for display by the inspect command.
func (l *Log) Stats() (Stats, error) {
	recs, err := l.ReadAll()
	if err != nil {
		return Stats{}, err
	}
	var s Stats
	s.Total = len(recs)
	for _, rec := range recs {
		switch {
		case rec.IsCorrect:
			s.Correct++
		case rec.Malformed():
			s.Malformed++
			s.Incorrect++
		default:
			s.Incorrect++
		}
	}
	return s, nil
}

// #endregion

// #region helpers

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion
