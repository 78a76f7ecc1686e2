package store

import (
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
)

func TestStudyInputs(t *testing.T) {
	s := Study{
		PurchaseValue:       decimal.RequireFromString("200000"),
		UsableAreaM2:        decimal.RequireFromString("100"),
		FinancingEnabled:    true,
		FinancingSystem:     "SAC",
		DownPayment:         decimal.RequireFromString("40000"),
		FinancingTermMonths: 120,
		MonthlyInterestRate: decimal.RequireFromString("0.8"),
		ITBIMode:            "PERCENT",
		ITBIPercent:         decimal.RequireFromString("3"),
		MonthsToSale:        6,
		IPTUMode:            "ANNUAL",
		SaleValue:           decimal.RequireFromString("260000"),
		BrokerageMode:       "FIXED",
		BrokerageValue:      decimal.RequireFromString("13000"),
	}

	in := s.Inputs()

	if in.FinancingSystem != feasibility.SystemSAC {
		t.Errorf("FinancingSystem = %s, want %s", in.FinancingSystem, feasibility.SystemSAC)
	}
	if in.ITBIMode != feasibility.ModePercent {
		t.Errorf("ITBIMode = %s, want %s", in.ITBIMode, feasibility.ModePercent)
	}
	if in.IPTUMode != feasibility.IPTUAnnual {
		t.Errorf("IPTUMode = %s, want %s", in.IPTUMode, feasibility.IPTUAnnual)
	}
	if in.BrokerageMode != feasibility.ModeFixed {
		t.Errorf("BrokerageMode = %s, want %s", in.BrokerageMode, feasibility.ModeFixed)
	}
	if !in.PurchaseValue.Equal(s.PurchaseValue) || in.FinancingTermMonths != 120 || in.MonthsToSale != 6 {
		t.Errorf("scalar fields not carried over: %+v", in)
	}
}

func TestLineItemEngine(t *testing.T) {
	li := LineItem{
		LineType:    "MONTHLY_COST",
		Amount:      decimal.RequireFromString("450"),
		IsRecurring: true,
		Months:      sql.NullInt32{Int32: 3, Valid: true},
	}

	e := li.Engine()
	if e.Type != feasibility.MonthlyCost || !e.Recurring || e.Months != 3 {
		t.Errorf("Engine() = %+v", e)
	}

	li.Months = sql.NullInt32{}
	if got := li.Engine().Months; got != 0 {
		t.Errorf("null months mapped to %d, want 0", got)
	}
}

func TestNewStudyResult(t *testing.T) {
	studyID := uuid.New()
	computedAt := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)
	res := &feasibility.ComputedResult{
		ROI:                decimal.RequireFromString("55.7895"),
		Profit:             decimal.RequireFromString("159000"),
		ViabilityIndicator: feasibility.Viable,
		MissingFields:      []string{feasibility.FieldSaleValue},
		Financing: feasibility.FinancingSchedule{
			FinancedAmount: decimal.RequireFromString("90000"),
			PayoffAtSale:   decimal.RequireFromString("90000"),
		},
	}

	row := NewStudyResult(studyID, res, computedAt)

	if row.StudyID != studyID {
		t.Errorf("StudyID = %s, want %s", row.StudyID, studyID)
	}
	if row.Viability != "VIABLE" {
		t.Errorf("Viability = %s, want VIABLE", row.Viability)
	}
	if len(row.MissingFields) != 1 || row.MissingFields[0] != feasibility.FieldSaleValue {
		t.Errorf("MissingFields = %v", row.MissingFields)
	}
	if !row.PayoffAtSale.Equal(res.Financing.PayoffAtSale) {
		t.Errorf("PayoffAtSale = %s, want %s", row.PayoffAtSale, res.Financing.PayoffAtSale)
	}
	if !row.ComputedAt.Equal(computedAt) {
		t.Errorf("ComputedAt = %s, want %s", row.ComputedAt, computedAt)
	}
}

func TestUserSettingsThresholds(t *testing.T) {
	us := UserSettings{
		ROIViableThreshold:    decimal.RequireFromString("25"),
		ROIAttentionThreshold: decimal.RequireFromString("8"),
	}
	th := us.Thresholds()
	if !th.ViableROI.Equal(us.ROIViableThreshold) || !th.AttentionROI.Equal(us.ROIAttentionThreshold) {
		t.Errorf("Thresholds() = %+v", th)
	}
}
