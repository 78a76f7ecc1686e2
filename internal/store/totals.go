package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// TotalsStore answers the aggregate totals the recompute engine receives as
// externally supplied inputs: paid provider contracts, the construction
// plan total and paid bills.
type TotalsStore struct {
	db *sqlx.DB
}

func (ts *TotalsStore) sum(ctx context.Context, query string, studyID uuid.UUID, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	queryArgs := append([]interface{}{studyID}, args...)
	if err := ts.db.GetContext(ctx, &total, query, queryArgs...); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (ts *TotalsStore) ProviderContractsPaid(ctx context.Context, studyID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(paid_value), 0) FROM provider_contract_payments WHERE study_id = $1 AND status = $2`
	total, err := ts.sum(ctx, query, studyID, "PAID")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum provider payments for study %s: %w", studyID, err)
	}
	return total, nil
}

func (ts *TotalsStore) ConstructionTotal(ctx context.Context, studyID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(total_value), 0) FROM work_stages WHERE study_id = $1 AND status = $2`
	total, err := ts.sum(ctx, query, studyID, StatusActive)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum construction stages for study %s: %w", studyID, err)
	}
	return total, nil
}

func (ts *TotalsStore) BillsPaid(ctx context.Context, studyID uuid.UUID) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM study_bills WHERE study_id = $1 AND status = $2`
	total, err := ts.sum(ctx, query, studyID, "PAID")
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid bills for study %s: %w", studyID, err)
	}
	return total, nil
}
