package store

// #region imports
import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/banyan-grid/siteproof/internal/threshold"
	"github.com/google/uuid"
)

// #endregion

// #region errors

// ErrNoActiveThresholds signals that no threshold version has been activated
// yet. Expected before the first learn step; callers classify with the fixed
// cut-points.
var ErrNoActiveThresholds = errors.New("store: no active threshold version")

// #endregion

// #region save

// SaveThresholds inserts a new threshold version whose parent is the currently
// active version (empty on bootstrap) and returns it. The version is not
// active until ActivateThresholds commits the pointer.
func (s *Store) SaveThresholds(table threshold.Table) (ThresholdVersion, error) {
	parentID := ""
	if active, err := s.ActiveThresholds(); err == nil {
		parentID = active.VersionID
	} else if !errors.Is(err, ErrNoActiveThresholds) {
		return ThresholdVersion{}, err
	}

	ver := ThresholdVersion{
		VersionID: uuid.New().String(),
		ParentID:  parentID,
		Table:     table,
		CreatedAt: time.Now().UTC(),
	}

	tableJSON, err := json.Marshal(table)
	if err != nil {
		return ThresholdVersion{}, fmt.Errorf("marshal threshold table: %w", err)
	}

	var parentPtr interface{}
	if ver.ParentID != "" {
		parentPtr = ver.ParentID
	}

	_, err = s.db.Exec(
		`INSERT INTO threshold_versions (version_id, parent_id, table_json, created_at)
		 VALUES (?, ?, ?, ?)`,
		ver.VersionID, parentPtr, string(tableJSON), ver.CreatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return ThresholdVersion{}, fmt.Errorf("insert threshold version: %w", err)
	}
	return ver, nil
}

// #endregion

// #region activate

// ActivateThresholds moves the active pointer to versionID and logs why, in
// one transaction.
func (s *Store) ActivateThresholds(versionID, trigger, reason string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow(
		`SELECT COUNT(*) FROM threshold_versions WHERE version_id = ?`, versionID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("check version: %w", err)
	}
	if exists == 0 {
		return fmt.Errorf("threshold version %s not found", versionID)
	}

	_, err = tx.Exec(
		`INSERT INTO active_thresholds (id, version_id) VALUES (1, ?)
		 ON CONFLICT(id) DO UPDATE SET version_id = excluded.version_id`,
		versionID,
	)
	if err != nil {
		return fmt.Errorf("set active: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO activation_log (version_id, trigger_type, decision, reason, created_at)
		 VALUES (?, ?, 'activate', ?, ?)`,
		versionID, trigger, reason, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log activation: %w", err)
	}

	return tx.Commit()
}

// LogRejectedThresholds records a learn step whose output failed validation
// and was never activated.
func (s *Store) LogRejectedThresholds(versionID, trigger, reason string) error {
	_, err := s.db.Exec(
		`INSERT INTO activation_log (version_id, trigger_type, decision, reason, created_at)
		 VALUES (?, ?, 'reject', ?, ?)`,
		versionID, trigger, reason, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("log rejection: %w", err)
	}
	return nil
}

// #endregion

// #region read

// ActiveThresholds returns the currently active threshold version.
func (s *Store) ActiveThresholds() (ThresholdVersion, error) {
	var versionID string
	err := s.db.QueryRow(`SELECT version_id FROM active_thresholds WHERE id = 1`).Scan(&versionID)
	if err == sql.ErrNoRows {
		return ThresholdVersion{}, ErrNoActiveThresholds
	}
	if err != nil {
		return ThresholdVersion{}, fmt.Errorf("get active thresholds: %w", err)
	}
	return s.ThresholdVersion(versionID)
}

// ThresholdVersion retrieves a specific version by ID.
func (s *Store) ThresholdVersion(id string) (ThresholdVersion, error) {
	var ver ThresholdVersion
	var parentID sql.NullString
	var tableJSON, createdStr string

	err := s.db.QueryRow(
		`SELECT version_id, parent_id, table_json, created_at
		 FROM threshold_versions WHERE version_id = ?`, id,
	).Scan(&ver.VersionID, &parentID, &tableJSON, &createdStr)
	if err != nil {
		return ThresholdVersion{}, fmt.Errorf("get threshold version %s: %w", id, err)
	}

	if parentID.Valid {
		ver.ParentID = parentID.String
	}
	if err := json.Unmarshal([]byte(tableJSON), &ver.Table); err != nil {
		return ThresholdVersion{}, fmt.Errorf("unmarshal threshold table: %w", err)
	}
	ver.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return ver, nil
}

// ListThresholdVersions returns the most recent versions, newest first.
func (s *Store) ListThresholdVersions(limit int) ([]ThresholdVersion, error) {
	rows, err := s.db.Query(
		`SELECT version_id, parent_id, table_json, created_at
		 FROM threshold_versions ORDER BY created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list threshold versions: %w", err)
	}
	defer rows.Close()

	var vers []ThresholdVersion
	for rows.Next() {
		var ver ThresholdVersion
		var parentID sql.NullString
		var tableJSON, createdStr string
		if err := rows.Scan(&ver.VersionID, &parentID, &tableJSON, &createdStr); err != nil {
			return nil, fmt.Errorf("scan threshold version: %w", err)
		}
		if parentID.Valid {
			ver.ParentID = parentID.String
		}
		if err := json.Unmarshal([]byte(tableJSON), &ver.Table); err != nil {
			return nil, fmt.Errorf("unmarshal threshold table: %w", err)
		}
		ver.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		vers = append(vers, ver)
	}
	return vers, rows.Err()
}

// #endregion

// #region rollback

// RollbackThresholds re-activates a previous version.
func (s *Store) RollbackThresholds(versionID, reason string) error {
	return s.ActivateThresholds(versionID, "rollback", reason)
}

// #endregion
