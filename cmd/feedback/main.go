// Command feedback manages the supervisor review loop: export a review
// template for a run, import the reviewed CSV into the append-only log, and
// show log statistics.
package main

// #region imports
import (
	"database/sql"
	"flag"
	"fmt"
	"os"
	"time"

	_ "modernc.org/sqlite"

	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/store"
)

// #endregion

// #region main
func main() {
	dbPath := flag.String("db", "", "path to siteproof.db (run store)")
	fbPath := flag.String("feedback-db", "", "path to feedback.db")
	template := flag.String("template", "", "write a review template CSV for --run to this path")
	runID := flag.String("run", "", "run id for --template (default: most recent run)")
	importPath := flag.String("import", "", "import a reviewed CSV into the feedback log")
	stats := flag.Bool("stats", false, "print feedback log statistics")
	flag.Parse()

	if *template == "" && *importPath == "" && !*stats {
		fmt.Fprintln(os.Stderr, "usage: feedback --db siteproof.db --feedback-db feedback.db (--template out.csv [--run id] | --import reviewed.csv | --stats)")
		os.Exit(2)
	}

	if err := run(*dbPath, *fbPath, *template, *runID, *importPath, *stats); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(dbPath, fbPath, template, runID, importPath string, stats bool) error {
	if template != "" {
		if dbPath == "" {
			return fmt.Errorf("--template requires --db")
		}
		return writeTemplate(dbPath, runID, template)
	}

	if fbPath == "" {
		return fmt.Errorf("--feedback-db is required")
	}
	db, err := sql.Open("sqlite", fbPath)
	if err != nil {
		return fmt.Errorf("open feedback db: %w", err)
	}
	defer db.Close()
	fl, err := feedback.NewLog(db)
	if err != nil {
		return err
	}

	if importPath != "" {
		return importReviewed(fl, importPath)
	}
	return printStats(fl)
}

// #endregion main

// #region template
func writeTemplate(dbPath, runID, outPath string) error {
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if runID == "" {
		runs, err := st.ListRuns(1)
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no runs recorded yet")
		}
		runID = runs[0].RunID
	}

	cls, err := st.Classifications(runID)
	if err != nil {
		return err
	}
	if len(cls) == 0 {
		return fmt.Errorf("run %s has no classifications", runID)
	}

	preds := make([]feedback.Prediction, len(cls))
	for i, c := range cls {
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
	fmt.Printf("template for run %s: %d rows -> %s\n", runID, len(preds), outPath)
	return nil
}

// #endregion template

// #region import
func importReviewed(fl *feedback.Log, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open reviewed csv: %w", err)
	}
	defer f.Close()

	recs, rep, err := feedback.ReadReviewed(f, time.Now().UTC())
	if err != nil {
		return err
	}
	if err := fl.AppendAll(recs); err != nil {
		return err
	}
	fmt.Printf("imported %d records (%d pending, %d rejected)\n", rep.Accepted, rep.Pending, rep.Rejected)
	return nil
}

func printStats(fl *feedback.Log) error {
	s, err := fl.Stats()
	if err != nil {
		return err
	}
	fmt.Printf("records:   %d\n", s.Total)
	fmt.Printf("correct:   %d\n", s.Correct)
	fmt.Printf("corrected: %d\n", s.Incorrect)
	fmt.Printf("malformed: %d\n", s.Malformed)
	return nil
}

// #endregion import
