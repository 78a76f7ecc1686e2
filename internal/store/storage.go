package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

type Storage struct {
	Studies interface {
		GetStudy(ctx context.Context, id uuid.UUID) (*Study, error)
		SaveResult(ctx context.Context, result *StudyResult) error
		GetResult(ctx context.Context, studyID uuid.UUID) (*StudyResult, error)
		ListPortfolio(ctx context.Context, userID uuid.UUID) ([]PortfolioRow, error)
	}

	LineItems interface {
		ListActive(ctx context.Context, studyID uuid.UUID) ([]LineItem, error)
		GetLineItem(ctx context.Context, id uuid.UUID) (*LineItem, error)
		InsertLineItem(ctx context.Context, item *LineItem) error
		UpdateLineItem(ctx context.Context, item *LineItem) error
		SoftDeleteLineItem(ctx context.Context, id uuid.UUID) error
	}

	Stages interface {
		ListActive(ctx context.Context, studyID uuid.UUID) ([]WorkStage, error)
	}

	PlannedValues interface {
		ReplaceForStudy(ctx context.Context, studyID uuid.UUID, rows []PlannedValue, syncedAt time.Time) error
		ListByStudy(ctx context.Context, studyID uuid.UUID) ([]PlannedValue, error)
		GetLastSync(ctx context.Context, studyID uuid.UUID) (*time.Time, error)
	}

	Settings interface {
		GetSettings(ctx context.Context, userID uuid.UUID) (*UserSettings, error)
		UpsertSettings(ctx context.Context, settings *UserSettings) error
	}

	Totals interface {
		ProviderContractsPaid(ctx context.Context, studyID uuid.UUID) (decimal.Decimal, error)
		ConstructionTotal(ctx context.Context, studyID uuid.UUID) (decimal.Decimal, error)
		BillsPaid(ctx context.Context, studyID uuid.UUID) (decimal.Decimal, error)
	}
}

func NewStorage(db *sqlx.DB) *Storage {
	return &Storage{
		Studies:       &StudyStore{db: db},
		LineItems:     &LineItemStore{db: db},
		Stages:        &WorkStageStore{db: db},
		PlannedValues: &PlannedValueStore{db: db},
		Settings:      &SettingsStore{db: db},
		Totals:        &TotalsStore{db: db},
	}
}
