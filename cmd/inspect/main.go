// Command inspect examines the run store: recent runs, per-run
// classifications, and the threshold version chain.
package main

// #region imports
import (
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/store"
)

// #endregion

// #region main
func main() {
	dbPath := flag.String("db", "", "path to siteproof.db")
	last := flag.Int("last", 20, "show N most recent entries")
	runID := flag.String("run", "", "show classifications for one run")
	thresholds := flag.Bool("thresholds", false, "show the threshold version chain")
	fbPath := flag.String("feedback-db", "", "also print feedback log statistics from this db")
	jsonOut := flag.Bool("json", false, "output as JSON instead of table")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: inspect --db siteproof.db [--last N] [--run id] [--thresholds] [--feedback-db feedback.db] [--json]")
		os.Exit(2)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	switch {
	case *runID != "":
		err = showRun(st, *runID, *jsonOut)
	case *thresholds:
		err = showThresholds(st, *last, *jsonOut)
	default:
		err = showRuns(st, *last, *jsonOut)
	}
	if err == nil && *fbPath != "" {
		err = showFeedbackStats(*fbPath, *jsonOut)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func showFeedbackStats(fbPath string, jsonOut bool) error {
	db, err := sql.Open("sqlite", fbPath)
	if err != nil {
		return fmt.Errorf("open feedback db: %w", err)
	}
	defer db.Close()

	fl, err := feedback.NewLog(db)
	if err != nil {
		return err
	}
	s, err := fl.Stats()
	if err != nil {
		return err
	}
	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(s)
	}
	fmt.Printf("\nfeedback: %d records (%d correct, %d corrected, %d malformed)\n",
		s.Total, s.Correct, s.Incorrect, s.Malformed)
	return nil
}

// #endregion main

// #region runs
type runRow struct {
	RunID     string `json:"run_id"`
	Day       string `json:"day"`
	Policy    string `json:"policy"`
	Images    int    `json:"images"`
	Skipped   int    `json:"skipped"`
	Anomalies int    `json:"anomalies"`
	StartedAt string `json:"started_at"`
}

func showRuns(st *store.Store, last int, jsonOut bool) error {
	runs, err := st.ListRuns(last)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(os.Stderr, "no runs found")
		return nil
	}

	rows := make([]runRow, len(runs))
	for i, r := range runs {
		rows[i] = runRow{
			RunID:     r.RunID,
			Day:       r.DayLabel,
			Policy:    string(r.Policy),
			Images:    r.Images,
			Skipped:   r.Skipped,
			Anomalies: r.Anomalies,
			StartedAt: r.StartedAt.Format(time.RFC3339),
		}
	}
	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}
	fmt.Printf("%-36s  %-8s  %-7s  %6s  %7s  %9s\n", "RUN", "DAY", "POLICY", "IMAGES", "SKIPPED", "ANOMALIES")
	for _, r := range rows {
		fmt.Printf("%-36s  %-8s  %-7s  %6d  %7d  %9d\n", r.RunID, r.Day, r.Policy, r.Images, r.Skipped, r.Anomalies)
	}
	return nil
}

func showRun(st *store.Store, runID string, jsonOut bool) error {
	cls, err := st.Classifications(runID)
	if err != nil {
		return err
	}
	if len(cls) == 0 {
		fmt.Fprintf(os.Stderr, "no classifications for run %s\n", runID)
		return nil
	}
	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(cls)
	}

	counts := map[stage.Stage]int{}
	for _, c := range cls {
		counts[c.Predicted]++
		fmt.Printf("%-40s  %.3f  %s\n", c.ImageID, c.Score, c.Predicted)
	}
	fmt.Println()
	for _, s := range stage.All() {
		fmt.Printf("%s: %d  ", s, counts[s])
	}
	fmt.Println()
	return nil
}

// #endregion runs

// #region thresholds
type versionRow struct {
	VersionID string `json:"version_id"`
	ParentID  string `json:"parent_id,omitempty"`
	Stages    int    `json:"stages"`
	Active    bool   `json:"active"`
	CreatedAt string `json:"created_at"`
}

func showThresholds(st *store.Store, last int, jsonOut bool) error {
	versions, err := st.ListThresholdVersions(last)
	if err != nil {
		return err
	}
	if len(versions) == 0 {
		fmt.Fprintln(os.Stderr, "no threshold versions found")
		return nil
	}

	activeID := ""
	if active, err := st.ActiveThresholds(); err == nil {
		activeID = active.VersionID
	}

	rows := make([]versionRow, len(versions))
	for i, v := range versions {
		rows[i] = versionRow{
			VersionID: v.VersionID,
			ParentID:  v.ParentID,
			Stages:    len(v.Table),
			Active:    v.VersionID == activeID,
			CreatedAt: v.CreatedAt.Format(time.RFC3339),
		}
	}
	if jsonOut {
		return json.NewEncoder(os.Stdout).Encode(rows)
	}
	for _, r := range rows {
		marker := " "
		if r.Active {
			marker = "*"
		}
		fmt.Printf("%s %-36s  parent=%-36s  stages=%d  %s\n", marker, r.VersionID, r.ParentID, r.Stages, r.CreatedAt)
	}
	return nil
}

// #endregion thresholds
