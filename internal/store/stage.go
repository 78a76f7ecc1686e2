package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type WorkStageStore struct {
	db *sqlx.DB
}

// ListActive returns the non-deleted work-breakdown stages of a study,
// internal nodes included; leaf detection belongs to the schedule package.
func (ws *WorkStageStore) ListActive(ctx context.Context, studyID uuid.UUID) ([]WorkStage, error) {
	var stages []WorkStage
	query := `SELECT * FROM work_stages WHERE study_id = $1 AND status = $2 ORDER BY inserted_at`
	if err := ws.db.SelectContext(ctx, &stages, query, studyID, StatusActive); err != nil {
		return nil, fmt.Errorf("failed to list stages for study %s: %w", studyID, err)
	}
	return stages, nil
}
