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

type LineItemStore struct {
	db *sqlx.DB
}

// ListActive returns the non-deleted line items of a study. This is the
// only view the recompute engine ever receives.
func (ls *LineItemStore) ListActive(ctx context.Context, studyID uuid.UUID) ([]LineItem, error) {
	var items []LineItem
	query := `SELECT * FROM study_line_items WHERE study_id = $1 AND status = $2 ORDER BY inserted_at`
	if err := ls.db.SelectContext(ctx, &items, query, studyID, StatusActive); err != nil {
		return nil, fmt.Errorf("failed to list line items for study %s: %w", studyID, err)
	}
	return items, nil
}

func (ls *LineItemStore) GetLineItem(ctx context.Context, id uuid.UUID) (*LineItem, error) {
	item := &LineItem{}
	err := ls.db.GetContext(ctx, item, `SELECT * FROM study_line_items WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get line item %s: %w", id, err)
	}
	return item, nil
}

func (ls *LineItemStore) InsertLineItem(ctx context.Context, item *LineItem) error {
	query := `INSERT INTO study_line_items (
		id,
		study_id,
		line_type,
		description,
		amount,
		is_recurring,
		months,
		status,
		inserted_at,
		updated_at
	) VALUES (
		:id,
		:study_id,
		:line_type,
		:description,
		:amount,
		:is_recurring,
		:months,
		:status,
		:inserted_at,
		:updated_at
	)`

	if _, err := ls.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("failed to insert line item for study %s: %w", item.StudyID, err)
	}
	return nil
}

func (ls *LineItemStore) UpdateLineItem(ctx context.Context, item *LineItem) error {
	query := `UPDATE study_line_items SET
		line_type = :line_type,
		description = :description,
		amount = :amount,
		is_recurring = :is_recurring,
		months = :months,
		updated_at = :updated_at
	WHERE id = :id`

	res, err := ls.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("failed to update line item %s: %w", item.ID, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}

// SoftDeleteLineItem marks an item DELETED. Deleted items drop out of every
// sum on the next recompute but stay queryable for audit.
func (ls *LineItemStore) SoftDeleteLineItem(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE study_line_items SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := ls.db.ExecContext(ctx, query, StatusDeleted, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to delete line item %s: %w", id, err)
	}
	if affected, _ := res.RowsAffected(); affected == 0 {
		return ErrNotFound
	}
	return nil
}
