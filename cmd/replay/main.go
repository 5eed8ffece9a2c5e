// Command replay re-runs classification for a recorded run's scores under a
// different threshold version or policy and reports what would change. It
// can also verify a pinned fixture or check the active threshold table
// against a fresh recompute, exiting non-zero on divergence. The stored run
// is never modified.
package main

// #region imports
import (
	"database/sql"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"reflect"

	_ "modernc.org/sqlite"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/replay"
	"github.com/banyan-grid/siteproof/internal/store"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region main
func main() {
	dbPath := flag.String("db", "", "path to siteproof.db")
	runID := flag.String("run", "", "run id to replay")
	versionID := flag.String("version", "", "threshold version to replay under (default: active)")
	policy := flag.String("policy", string(classify.PolicyLearned), "classification policy for the replay")
	verbose := flag.Bool("verbose", false, "print every image, not only the changed ones")
	export := flag.String("export", "", "write the run as a regression fixture to this path instead of diffing")
	fixture := flag.String("fixture", "", "verify a pinned fixture file; exits 1 on mismatch")
	checkFB := flag.String("check", "", "recompute from this feedback db and compare with the active table; exits 1 on divergence")
	flag.Parse()

	if *fixture != "" {
		exitOn(verifyFixture(*fixture))
		return
	}

	if *dbPath == "" {
		usage()
	}
	st, err := store.Open(*dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open db: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	switch {
	case *checkFB != "":
		exitOn(checkThresholds(st, *checkFB))
	case *runID == "":
		usage()
	case *export != "":
		exitOn(exportFixture(st, *runID, *versionID, classify.Policy(*policy), *export))
	default:
		exitOn(run(st, *runID, *versionID, classify.Policy(*policy), *verbose))
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: replay --db siteproof.db --run id [--version id] [--policy fixed|learned] [--verbose] [--export fixture.json]")
	fmt.Fprintln(os.Stderr, "       replay --fixture fixture.json")
	fmt.Fprintln(os.Stderr, "       replay --db siteproof.db --check feedback.db")
	os.Exit(2)
}

func exitOn(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// #endregion main

// #region verify
// errDiverged marks an intentional non-zero exit, not a failure to run.
var errDiverged = errors.New("replay: divergence detected")

func verifyFixture(path string) error {
	f, err := replay.LoadFixture(path)
	if err != nil {
		return err
	}
	mismatches, err := replay.Verify(f)
	if err != nil {
		return err
	}
	if len(mismatches) == 0 {
		fmt.Printf("fixture ok: %d images\n", len(f.Images))
		return nil
	}
	for _, m := range mismatches {
		fmt.Printf("* %-40s  %.3f  expected=%s got=%s\n", m.ImageID, m.Score, m.Expected, m.Got)
	}
	return fmt.Errorf("%w: %d of %d images", errDiverged, len(mismatches), len(f.Images))
}

// checkThresholds re-derives the table from the feedback log the way the
// learn step would and compares it against the active one.
func checkThresholds(st *store.Store, fbPath string) error {
	db, err := sql.Open("sqlite", fbPath)
	if err != nil {
		return fmt.Errorf("open feedback db: %w", err)
	}
	defer db.Close()
	fl, err := feedback.NewLog(db)
	if err != nil {
		return err
	}
	records, err := fl.ReadAll()
	if err != nil {
		return err
	}

	result, err := threshold.Recompute(records)
	if errors.Is(err, threshold.ErrEmptyFeedbackLog) {
		fmt.Println("feedback log empty, nothing to check")
		return nil
	}
	if err != nil {
		return err
	}

	active, err := st.ActiveThresholds()
	if errors.Is(err, store.ErrNoActiveThresholds) {
		return fmt.Errorf("%w: feedback exists but no version is active", errDiverged)
	}
	if err != nil {
		return err
	}

	derived := threshold.Merge(active.Table, result.Table)
	if reflect.DeepEqual(derived, active.Table) {
		fmt.Printf("active version %s matches a fresh recompute (%d stages)\n", active.VersionID, len(active.Table))
		return nil
	}
	return fmt.Errorf("%w: active version %s is stale, rerun learn", errDiverged, active.VersionID)
}

// #endregion verify

func run(st *store.Store, runID, versionID string, policy classify.Policy, verbose bool) error {
	table, err := loadTable(st, versionID)
	if err != nil {
		return err
	}

	cls, err := st.Classifications(runID)
	if err != nil {
		return err
	}
	if len(cls) == 0 {
		return fmt.Errorf("run %s has no classifications", runID)
	}

	result, err := replay.Run(cls, table, policy, classify.DefaultCutPoints())
	if err != nil {
		return err
	}

	for _, d := range result.Diffs {
		if !verbose && !d.Changed() {
			continue
		}
		marker := " "
		if d.Changed() {
			marker = "*"
		}
		fmt.Printf("%s %-40s  %.3f  %s -> %s\n", marker, d.ImageID, d.Score, d.Stored, d.Replayed)
	}
	fmt.Printf("\n%d images, %d would change, %d skipped\n", len(cls), result.Changed, result.Skipped)
	return nil
}

// exportFixture pins a run's stored predictions and the chosen threshold
// table into a fixture file for later regression replay.
func exportFixture(st *store.Store, runID, versionID string, policy classify.Policy, outPath string) error {
	table, err := loadTable(st, versionID)
	if err != nil {
		return err
	}
	cls, err := st.Classifications(runID)
	if err != nil {
		return err
	}
	if len(cls) == 0 {
		return fmt.Errorf("run %s has no classifications", runID)
	}

	f := replay.Fixture{
		Description: fmt.Sprintf("run %s recorded predictions", runID),
		Policy:      string(policy),
		Thresholds:  table,
		Images:      make([]replay.FixtureImage, len(cls)),
	}
	for i, c := range cls {
		f.Images[i] = replay.FixtureImage{ImageID: c.ImageID, Score: c.Score, Expected: c.Predicted}
	}

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	fmt.Printf("fixture: %d images -> %s\n", len(f.Images), outPath)
	return nil
}

// loadTable resolves the threshold table for the replay. An empty store is
// fine: the classifier falls back to fixed cut-points on an empty table.
func loadTable(st *store.Store, versionID string) (threshold.Table, error) {
	if versionID != "" {
		ver, err := st.ThresholdVersion(versionID)
		if err != nil {
			return nil, err
		}
		return ver.Table, nil
	}
	ver, err := st.ActiveThresholds()
	if errors.Is(err, store.ErrNoActiveThresholds) {
		return threshold.Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ver.Table, nil
}

// #endregion main
