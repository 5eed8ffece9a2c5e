// Package pipeline orchestrates one monitoring pass over a day of site
// images: score, classify, flag anomalies, persist, and on demand recompute
// thresholds from reviewed feedback.
package pipeline

// #region imports
import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/banyan-grid/siteproof/internal/classify"
	"github.com/banyan-grid/siteproof/internal/feedback"
	"github.com/banyan-grid/siteproof/internal/score"
	"github.com/banyan-grid/siteproof/internal/stage"
	"github.com/banyan-grid/siteproof/internal/store"
	"github.com/banyan-grid/siteproof/internal/threshold"
)

// #endregion

// #region config
// Config holds the classification parameters for a run.
type Config struct {
	Policy           classify.Policy
	CutPoints        classify.CutPoints
	AnomalyThreshold float64
}

// #endregion config

// #region runner
// Runner wires the score producer, classifier, and store into one pipeline.
type Runner struct {
	store    *store.Store
	log      *feedback.Log
	producer score.Producer
	cfg      Config
}

// NewRunner creates a Runner over an open store and feedback log.
func NewRunner(st *store.Store, fl *feedback.Log, producer score.Producer, cfg Config) *Runner {
	return &Runner{store: st, log: fl, producer: producer, cfg: cfg}
}

// #endregion runner

// #region run-summary
// RunSummary is the outcome of one monitoring pass.
type RunSummary struct {
	RunID     string
	DayLabel  string
	Counts    map[stage.Stage]int
	Skipped   int
	Anomalies []string // image ids under the anomaly threshold
	Results   []store.Classification
}

// #endregion run-summary

// #region run
// Run scores and classifies every image for dayLabel, persisting the run and
// its classifications. Images with non-finite scores are skipped and counted
// rather than failing the batch.
func (r *Runner) Run(ctx context.Context, dayLabel string, images []score.Ref) (RunSummary, error) {
	table, err := r.activeTable()
	if err != nil {
		return RunSummary{}, err
	}

	run := store.Run{
		RunID:     uuid.New().String(),
		DayLabel:  dayLabel,
		Policy:    r.cfg.Policy,
		StartedAt: time.Now().UTC(),
		Images:    len(images),
	}
	if err := r.store.CreateRun(run); err != nil {
		return RunSummary{}, err
	}

	summary := RunSummary{
		RunID:    run.RunID,
		DayLabel: dayLabel,
		Counts:   map[stage.Stage]int{},
	}

	for _, img := range images {
		if err := ctx.Err(); err != nil {
			return RunSummary{}, err
		}

		sc, err := r.producer.Produce(ctx, img)
		if err != nil {
			return RunSummary{}, fmt.Errorf("score %s: %w", img.ID, err)
		}

		predicted, err := classify.Classify(sc, table, r.cfg.Policy, r.cfg.CutPoints)
		if errors.Is(err, classify.ErrInvalidScore) {
			log.Printf("[RUN] %s: invalid score %v, skipping", img.ID, sc)
			summary.Skipped++
			continue
		}
		if err != nil {
			return RunSummary{}, err
		}

		if sc < r.cfg.AnomalyThreshold {
			summary.Anomalies = append(summary.Anomalies, img.ID)
		}
		summary.Counts[predicted]++
		summary.Results = append(summary.Results, store.Classification{
			RunID:     run.RunID,
			ImageID:   img.ID,
			Score:     sc,
			Predicted: predicted,
		})
	}

	if err := r.store.SaveClassifications(summary.Results); err != nil {
		return RunSummary{}, err
	}

	run.FinishedAt = time.Now().UTC()
	run.Skipped = summary.Skipped
	run.Anomalies = len(summary.Anomalies)
	if err := r.store.FinishRun(run); err != nil {
		return RunSummary{}, err
	}

	log.Printf("[RUN] %s day=%s images=%d skipped=%d anomalies=%d",
		run.RunID, dayLabel, len(images), summary.Skipped, len(summary.Anomalies))
	return summary, nil
}

// activeTable loads the active threshold table. Absence is not an error for
// either policy: fixed ignores the table and learned falls back to the fixed
// cut-points on an empty one.
func (r *Runner) activeTable() (threshold.Table, error) {
	ver, err := r.store.ActiveThresholds()
	if errors.Is(err, store.ErrNoActiveThresholds) {
		return threshold.Table{}, nil
	}
	if err != nil {
		return nil, err
	}
	return ver.Table, nil
}

// #endregion run

// #region learn
// LearnOutcome describes the result of one threshold recompute.
type LearnOutcome struct {
	Version   store.ThresholdVersion
	Skipped   int
	Activated bool
	Reason    string
}

// Learn recomputes the threshold table from all reviewed feedback, merges it
// over the currently active table, and activates the merged version if it
// passes validation. An empty feedback log is reported, not fatal.
func (r *Runner) Learn(ctx context.Context) (LearnOutcome, error) {
	if err := ctx.Err(); err != nil {
		return LearnOutcome{}, err
	}

	records, err := r.log.ReadAll()
	if err != nil {
		return LearnOutcome{}, err
	}

	result, err := threshold.Recompute(records)
	if errors.Is(err, threshold.ErrEmptyFeedbackLog) {
		log.Printf("[LEARN] feedback log empty, thresholds unchanged")
		return LearnOutcome{Reason: "feedback log empty"}, nil
	}
	if err != nil {
		return LearnOutcome{}, err
	}

	prev, err := r.activeTable()
	if err != nil {
		return LearnOutcome{}, err
	}
	merged := threshold.Merge(prev, result.Table)

	ver, err := r.store.SaveThresholds(merged)
	if err != nil {
		return LearnOutcome{}, err
	}

	outcome := LearnOutcome{Version: ver, Skipped: result.Skipped}

	if err := threshold.Validate(merged); err != nil {
		outcome.Reason = err.Error()
		if logErr := r.store.LogRejectedThresholds(ver.VersionID, "learn", err.Error()); logErr != nil {
			return LearnOutcome{}, logErr
		}
		log.Printf("[LEARN] version %s rejected: %v", ver.VersionID, err)
		return outcome, nil
	}

	reason := fmt.Sprintf("recomputed from %d records (%d skipped)", len(records), result.Skipped)
	if err := r.store.ActivateThresholds(ver.VersionID, "learn", reason); err != nil {
		return LearnOutcome{}, err
	}
	outcome.Activated = true
	outcome.Reason = reason

	log.Printf("[LEARN] activated version %s: %s", ver.VersionID, reason)
	return outcome, nil
}

// #endregion learn
