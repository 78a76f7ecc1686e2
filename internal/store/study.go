package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("store: not found")

type StudyStore struct {
	db *sqlx.DB
}

func (ss *StudyStore) GetStudy(ctx context.Context, id uuid.UUID) (*Study, error) {
	study := &Study{}
	err := ss.db.GetContext(ctx, study, `SELECT * FROM studies WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get study %s: %w", id, err)
	}
	return study, nil
}

// SaveResult upserts the derived cache of one study. The result row is
// always rewritten whole; it is never patched field by field.
func (ss *StudyStore) SaveResult(ctx context.Context, result *StudyResult) error {
	query := `INSERT INTO study_results (
		study_id,
		price_per_m2,
		total_acquisition,
		total_holding,
		total_exit,
		total_construction,
		total_disbursed,
		total_invested_capital,
		sale_net,
		profit,
		roi,
		viability_indicator,
		missing_fields,
		is_official,
		financed_amount,
		first_installment,
		last_installment,
		financing_total_paid,
		total_interest,
		effective_annual_rate,
		down_payment_percent,
		payoff_at_sale,
		computed_at
	) VALUES (
		:study_id,
		:price_per_m2,
		:total_acquisition,
		:total_holding,
		:total_exit,
		:total_construction,
		:total_disbursed,
		:total_invested_capital,
		:sale_net,
		:profit,
		:roi,
		:viability_indicator,
		:missing_fields,
		:is_official,
		:financed_amount,
		:first_installment,
		:last_installment,
		:financing_total_paid,
		:total_interest,
		:effective_annual_rate,
		:down_payment_percent,
		:payoff_at_sale,
		:computed_at
	)
	ON CONFLICT (study_id) DO UPDATE SET
		price_per_m2 = EXCLUDED.price_per_m2,
		total_acquisition = EXCLUDED.total_acquisition,
		total_holding = EXCLUDED.total_holding,
		total_exit = EXCLUDED.total_exit,
		total_construction = EXCLUDED.total_construction,
		total_disbursed = EXCLUDED.total_disbursed,
		total_invested_capital = EXCLUDED.total_invested_capital,
		sale_net = EXCLUDED.sale_net,
		profit = EXCLUDED.profit,
		roi = EXCLUDED.roi,
		viability_indicator = EXCLUDED.viability_indicator,
		missing_fields = EXCLUDED.missing_fields,
		is_official = EXCLUDED.is_official,
		financed_amount = EXCLUDED.financed_amount,
		first_installment = EXCLUDED.first_installment,
		last_installment = EXCLUDED.last_installment,
		financing_total_paid = EXCLUDED.financing_total_paid,
		total_interest = EXCLUDED.total_interest,
		effective_annual_rate = EXCLUDED.effective_annual_rate,
		down_payment_percent = EXCLUDED.down_payment_percent,
		payoff_at_sale = EXCLUDED.payoff_at_sale,
		computed_at = EXCLUDED.computed_at`

	if _, err := ss.db.NamedExecContext(ctx, query, result); err != nil {
		return fmt.Errorf("failed to save result for study %s: %w", result.StudyID, err)
	}
	return nil
}

func (ss *StudyStore) GetResult(ctx context.Context, studyID uuid.UUID) (*StudyResult, error) {
	result := &StudyResult{}
	err := ss.db.GetContext(ctx, result, `SELECT * FROM study_results WHERE study_id = $1`, studyID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get result for study %s: %w", studyID, err)
	}
	return result, nil
}

func (ss *StudyStore) ListPortfolio(ctx context.Context, userID uuid.UUID) ([]PortfolioRow, error) {
	query := `
	SELECT
		s.id AS study_id,
		s.name,
		r.roi,
		r.profit,
		r.total_invested_capital,
		r.viability_indicator
	FROM
		studies s
	JOIN
		study_results r ON r.study_id = s.id
	WHERE
		s.user_id = $1
	ORDER BY
		s.inserted_at`

	var rows []PortfolioRow
	if err := ss.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("failed to list portfolio for user %s: %w", userID, err)
	}
	return rows, nil
}
