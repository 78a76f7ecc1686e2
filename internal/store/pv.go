package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type PlannedValueStore struct {
	db *sqlx.DB
}

// ReplaceForStudy swaps a study's planned-value rows wholesale: delete,
// insert, and stamp the sync history inside one transaction. Safe to retry;
// re-running the same distribution lands on the same rows.
func (ps *PlannedValueStore) ReplaceForStudy(ctx context.Context, studyID uuid.UUID, rows []PlannedValue, syncedAt time.Time) error {
	tx, err := ps.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin planned value transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM planned_values WHERE study_id = $1`, studyID); err != nil {
		return fmt.Errorf("failed to clear planned values for study %s: %w", studyID, err)
	}

	insert := `INSERT INTO planned_values (
		study_id,
		stage_id,
		month_key,
		value,
		inserted_at
	) VALUES (
		:study_id,
		:stage_id,
		:month_key,
		:value,
		:inserted_at
	)`
	for i := range rows {
		rows[i].StudyID = studyID
		rows[i].InsertedAt = syncedAt
		if _, err := tx.NamedExecContext(ctx, insert, rows[i]); err != nil {
			return fmt.Errorf("failed to insert planned value row for stage %s: %w", rows[i].StageID, err)
		}
	}

	history := `INSERT INTO pv_sync_history (study_id, last_synced_at)
	VALUES ($1, $2)
	ON CONFLICT (study_id) DO UPDATE SET last_synced_at = EXCLUDED.last_synced_at`
	if _, err := tx.ExecContext(ctx, history, studyID, syncedAt); err != nil {
		return fmt.Errorf("failed to record sync for study %s: %w", studyID, err)
	}

	return tx.Commit()
}

func (ps *PlannedValueStore) ListByStudy(ctx context.Context, studyID uuid.UUID) ([]PlannedValue, error) {
	var rows []PlannedValue
	query := `SELECT * FROM planned_values WHERE study_id = $1 ORDER BY month_key, stage_id`
	if err := ps.db.SelectContext(ctx, &rows, query, studyID); err != nil {
		return nil, fmt.Errorf("failed to list planned values for study %s: %w", studyID, err)
	}
	return rows, nil
}

// GetLastSync returns the last sync timestamp, or nil when the study was
// never synced.
func (ps *PlannedValueStore) GetLastSync(ctx context.Context, studyID uuid.UUID) (*time.Time, error) {
	var last time.Time
	err := ps.db.GetContext(ctx, &last, `SELECT last_synced_at FROM pv_sync_history WHERE study_id = $1`, studyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get last sync for study %s: %w", studyID, err)
	}
	return &last, nil
}
