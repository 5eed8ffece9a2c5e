// Command learn recomputes the adaptive threshold table from the feedback
// log and activates it when it passes validation. It can also roll the
// active version back to an earlier one.
package main

// #region imports
import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/pipeline"
	"github.com/banyan-grid/siteproof/internal/store"
)

// #endregion

// #region main
func main() {
	dbPath := flag.String("db", "", "path to siteproof.db")
	fbPath := flag.String("feedback-db", "", "path to feedback.db")
	rollback := flag.String("rollback", "", "re-activate this earlier threshold version instead of learning")
	reason := flag.String("reason", "", "reason recorded with --rollback")
	flag.Parse()

	if *dbPath == "" {
		fmt.Fprintln(os.Stderr, "usage: learn --db siteproof.db --feedback-db feedback.db [--rollback version --reason why]")
		os.Exit(2)
	}

	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if *rollback != "" {
		if err := st.RollbackThresholds(*rollback, *reason); err != nil {
			fmt.Fprintf(os.Stderr, "rollback: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("rolled back to version %s\n", *rollback)
		return
	}

	if *fbPath == "" {
		fmt.Fprintln(os.Stderr, "learning requires --feedback-db")
		os.Exit(2)
	}
	if err := learn(st, *fbPath); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func learn(st *store.Store, fbPath string) error {
	db, err := sql.Open("sqlite", fbPath)
	if err != nil {
		return fmt.Errorf("open feedback db: %w", err)
	}
	defer db.Close()
	fl, err := feedback.NewLog(db)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(st, fl, nil, pipeline.Config{})
	out, err := runner.Learn(context.Background())
	if err != nil {
		return err
	}

	switch {
	case out.Version.VersionID == "":
		fmt.Printf("no update: %s\n", out.Reason)
	case out.Activated:
		fmt.Printf("activated version %s (%d stages, %d records skipped)\n",
			out.Version.VersionID, len(out.Version.Table), out.Skipped)
	default:
		fmt.Printf("version %s saved but rejected: %s\n", out.Version.VersionID, out.Reason)
	}
	return nil
}

// #endregion main
