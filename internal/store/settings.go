package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type SettingsStore struct {
	db *sqlx.DB
}

// GetSettings returns the user's saved thresholds, or nil when the user
// never changed the defaults.
func (ss *SettingsStore) GetSettings(ctx context.Context, userID uuid.UUID) (*UserSettings, error) {
	settings := &UserSettings{}
	err := ss.db.GetContext(ctx, settings, `SELECT * FROM user_settings WHERE user_id = $1`, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings for user %s: %w", userID, err)
	}
	return settings, nil
}

func (ss *SettingsStore) UpsertSettings(ctx context.Context, settings *UserSettings) error {
	query := `INSERT INTO user_settings (user_id, roi_viable_threshold, roi_attention_threshold, updated_at)
	VALUES (:user_id, :roi_viable_threshold, :roi_attention_threshold, :updated_at)
	ON CONFLICT (user_id) DO UPDATE SET
		roi_viable_threshold = EXCLUDED.roi_viable_threshold,
		roi_attention_threshold = EXCLUDED.roi_attention_threshold,
		updated_at = EXCLUDED.updated_at`

	if _, err := ss.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("failed to upsert settings for user %s: %w", settings.UserID, err)
	}
	return nil
}
