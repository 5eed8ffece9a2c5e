package store

// #region imports
import (
	"database/sql"
	"fmt"
	"time"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/stage"
	_ "modernc.org/sqlite"
)

// #endregion

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id       TEXT PRIMARY KEY,
	day_label    TEXT NOT NULL,
	policy       TEXT NOT NULL,
	started_at   TEXT NOT NULL,
	finished_at  TEXT,
	images       INTEGER NOT NULL DEFAULT 0,
	skipped      INTEGER NOT NULL DEFAULT 0,
	anomalies    INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS classifications (
	id               INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id           TEXT NOT NULL,
	image_id         TEXT NOT NULL,
	score            REAL NOT NULL,
	predicted_stage  TEXT NOT NULL,
	FOREIGN KEY (run_id) REFERENCES runs(run_id)
);

CREATE TABLE IF NOT EXISTS threshold_versions (
	version_id   TEXT PRIMARY KEY,
	parent_id    TEXT,
	table_json   TEXT NOT NULL,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (parent_id) REFERENCES threshold_versions(version_id)
);

CREATE TABLE IF NOT EXISTS active_thresholds (
	id           INTEGER PRIMARY KEY CHECK (id = 1),
	version_id   TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES threshold_versions(version_id)
);

CREATE TABLE IF NOT EXISTS activation_log (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	version_id   TEXT NOT NULL,
	trigger_type TEXT NOT NULL,
	decision     TEXT NOT NULL,
	reason       TEXT,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (version_id) REFERENCES threshold_versions(version_id)
);
`
// #endregion schema

// #region store-struct
// Store manages runs, classifications, and versioned thresholds in SQLite.
type Store struct {
	db *sql.DB
}
// #endregion store-struct

// #region constructor
// Open opens a SQLite database and runs migrations.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}
// #endregion constructor

// #region close
// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
// #endregion close

// #region db-accessor
// DB returns the underlying *sql.DB for use by other packages (e.g. feedback).
func (s *Store) DB() *sql.DB {
	return s.db
}
// #endregion db-accessor

// #region create-run
// CreateRun inserts a run row at batch start.
func (s *Store) CreateRun(run Run) error {
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, day_label, policy, started_at)
		 VALUES (?, ?, ?, ?)`,
		run.RunID, run.DayLabel, string(run.Policy), run.StartedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun records the outcome counters once a batch completes.
func (s *Store) FinishRun(run Run) error {
	res, err := s.db.Exec(
		`UPDATE runs SET finished_at = ?, images = ?, skipped = ?, anomalies = ?
		 WHERE run_id = ?`,
		run.FinishedAt.Format(time.RFC3339Nano), run.Images, run.Skipped, run.Anomalies, run.RunID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	n, err := res.RowsAffected()
	if err == nil && n == 0 {
		return fmt.Errorf("finish run: run %s not found", run.RunID)
	}
	return err
}
// #endregion create-run

// #region classifications
// SaveClassifications persists a run's per-image results in one transaction.
func (s *Store) SaveClassifications(cls []Classification) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, c := range cls {
		_, err := tx.Exec(
			`INSERT INTO classifications (run_id, image_id, score, predicted_stage)
			 VALUES (?, ?, ?, ?)`,
			c.RunID, c.ImageID, c.Score, string(c.Predicted),
		)
		if err != nil {
			return fmt.Errorf("insert classification %s: %w", c.ImageID, err)
		}
	}
	return tx.Commit()
}

// Classifications returns a run's results in insertion order.
func (s *Store) Classifications(runID string) ([]Classification, error) {
	rows, err := s.db.Query(
		`SELECT run_id, image_id, score, predicted_stage
		 FROM classifications WHERE run_id = ? ORDER BY id ASC`, runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}
	defer rows.Close()

	var cls []Classification
	for rows.Next() {
		var c Classification
		var predicted string
		if err := rows.Scan(&c.RunID, &c.ImageID, &c.Score, &predicted); err != nil {
			return nil, fmt.Errorf("scan classification: %w", err)
		}
		c.Predicted = stage.Stage(predicted)
		cls = append(cls, c)
	}
	return cls, rows.Err()
}
// #endregion classifications

// #region list-runs
// ListRuns returns the most recent runs.
func (s *Store) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT run_id, day_label, policy, started_at, finished_at, images, skipped, anomalies
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var policy, startedStr string
		var finished sql.NullString
		if err := rows.Scan(&r.RunID, &r.DayLabel, &policy, &startedStr, &finished, &r.Images, &r.Skipped, &r.Anomalies); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Policy = classify.Policy(policy)
		r.StartedAt, _ = time.Parse(time.RFC3339Nano, startedStr)
		if finished.Valid {
			r.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished.String)
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
// #endregion list-runs
