package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
	"github.com/paolocjunior/im-vel-gestor-sub001/internal/schedule"
)

const (
	StatusActive  = "ACTIVE"
	StatusDeleted = "DELETED"
)

// Study represents the 'studies' table: the flat record of a study's
// financial parameters as saved by the input screens.
type Study struct {
	ID     uuid.UUID `db:"id" json:"id"`
	UserID uuid.UUID `db:"user_id" json:"user_id"`
	Name   string    `db:"name" json:"name"`

	PurchaseValue    decimal.Decimal `db:"purchase_value" json:"purchase_value"`
	UsableAreaM2     decimal.Decimal `db:"usable_area_m2" json:"usable_area_m2"`
	TotalAreaM2      decimal.Decimal `db:"total_area_m2" json:"total_area_m2"`
	LandAreaM2       decimal.Decimal `db:"land_area_m2" json:"land_area_m2"`
	PricePerM2Manual bool            `db:"price_per_m2_manual" json:"price_per_m2_manual"`
	ManualPricePerM2 decimal.Decimal `db:"manual_price_per_m2" json:"manual_price_per_m2"`

	FinancingEnabled    bool            `db:"financing_enabled" json:"financing_enabled"`
	FinancingSystem     string          `db:"financing_system" json:"financing_system"`
	DownPayment         decimal.Decimal `db:"down_payment" json:"down_payment"`
	FinancingTermMonths int             `db:"financing_term_months" json:"financing_term_months"`
	MonthlyInterestRate decimal.Decimal `db:"monthly_interest_rate" json:"monthly_interest_rate"`

	AcquisitionDownPayment decimal.Decimal `db:"acquisition_down_payment" json:"acquisition_down_payment"`
	ITBIMode               string          `db:"itbi_mode" json:"itbi_mode"`
	ITBIPercent            decimal.Decimal `db:"itbi_percent" json:"itbi_percent"`
	ITBIValue              decimal.Decimal `db:"itbi_value" json:"itbi_value"`
	BankAppraisalFee       decimal.Decimal `db:"bank_appraisal_fee" json:"bank_appraisal_fee"`
	RegistrationFee        decimal.Decimal `db:"registration_fee" json:"registration_fee"`
	DeedFee                decimal.Decimal `db:"deed_fee" json:"deed_fee"`

	MonthsToSale         int             `db:"months_to_sale" json:"months_to_sale"`
	CondoFeeEnabled      bool            `db:"condo_fee_enabled" json:"condo_fee_enabled"`
	CondoFee             decimal.Decimal `db:"condo_fee" json:"condo_fee"`
	IPTUMode             string          `db:"iptu_mode" json:"iptu_mode"`
	IPTUValue            decimal.Decimal `db:"iptu_value" json:"iptu_value"`
	OtherMonthlyExpenses decimal.Decimal `db:"other_monthly_expenses" json:"other_monthly_expenses"`

	SaleValue      decimal.Decimal `db:"sale_value" json:"sale_value"`
	BrokerageMode  string          `db:"brokerage_mode" json:"brokerage_mode"`
	BrokerageValue decimal.Decimal `db:"brokerage_value" json:"brokerage_value"`
	IncomeTax      decimal.Decimal `db:"income_tax" json:"income_tax"`

	InsertedAt time.Time `db:"inserted_at" json:"inserted_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// Inputs maps the persisted row to engine inputs.
func (s *Study) Inputs() feasibility.StudyInputs {
	return feasibility.StudyInputs{
		PurchaseValue:    s.PurchaseValue,
		UsableAreaM2:     s.UsableAreaM2,
		TotalAreaM2:      s.TotalAreaM2,
		LandAreaM2:       s.LandAreaM2,
		PricePerM2Manual: s.PricePerM2Manual,
		ManualPricePerM2: s.ManualPricePerM2,

		FinancingEnabled:    s.FinancingEnabled,
		FinancingSystem:     feasibility.FinancingSystem(s.FinancingSystem),
		DownPayment:         s.DownPayment,
		FinancingTermMonths: s.FinancingTermMonths,
		MonthlyInterestRate: s.MonthlyInterestRate,

		AcquisitionDownPayment: s.AcquisitionDownPayment,
		ITBIMode:               feasibility.ValueMode(s.ITBIMode),
		ITBIPercent:            s.ITBIPercent,
		ITBIValue:              s.ITBIValue,
		BankAppraisalFee:       s.BankAppraisalFee,
		RegistrationFee:        s.RegistrationFee,
		DeedFee:                s.DeedFee,

		MonthsToSale:         s.MonthsToSale,
		CondoFeeEnabled:      s.CondoFeeEnabled,
		CondoFee:             s.CondoFee,
		IPTUMode:             feasibility.IPTUMode(s.IPTUMode),
		IPTUValue:            s.IPTUValue,
		OtherMonthlyExpenses: s.OtherMonthlyExpenses,

		SaleValue:      s.SaleValue,
		BrokerageMode:  feasibility.ValueMode(s.BrokerageMode),
		BrokerageValue: s.BrokerageValue,
		IncomeTax:      s.IncomeTax,
	}
}

// StudyResult represents the 'study_results' table: the derived cache
// rewritten on every recompute.
type StudyResult struct {
	StudyID uuid.UUID `db:"study_id" json:"study_id"`

	PricePerM2        decimal.Decimal `db:"price_per_m2" json:"purchase_price_per_m2"`
	TotalAcquisition  decimal.Decimal `db:"total_acquisition" json:"total_acquisition"`
	TotalHolding      decimal.Decimal `db:"total_holding" json:"total_holding"`
	TotalExit         decimal.Decimal `db:"total_exit" json:"total_exit"`
	TotalConstruction decimal.Decimal `db:"total_construction" json:"total_construction"`
	TotalDisbursed    decimal.Decimal `db:"total_disbursed" json:"total_disbursed"`
	TotalInvested     decimal.Decimal `db:"total_invested_capital" json:"total_invested_capital"`
	SaleNet           decimal.Decimal `db:"sale_net" json:"sale_net"`
	Profit            decimal.Decimal `db:"profit" json:"profit"`
	ROI               decimal.Decimal `db:"roi" json:"roi"`

	Viability     string         `db:"viability_indicator" json:"viability_indicator"`
	MissingFields pq.StringArray `db:"missing_fields" json:"missing_fields"`
	IsOfficial    bool           `db:"is_official" json:"is_official"`

	FinancedAmount      decimal.Decimal `db:"financed_amount" json:"financed_amount"`
	FirstInstallment    decimal.Decimal `db:"first_installment" json:"first_installment"`
	LastInstallment     decimal.Decimal `db:"last_installment" json:"last_installment"`
	FinancingTotalPaid  decimal.Decimal `db:"financing_total_paid" json:"financing_total_paid"`
	TotalInterest       decimal.Decimal `db:"total_interest" json:"total_interest"`
	EffectiveAnnualRate decimal.Decimal `db:"effective_annual_rate" json:"effective_annual_rate"`
	DownPaymentPercent  decimal.Decimal `db:"down_payment_percent" json:"down_payment_percent"`
	PayoffAtSale        decimal.Decimal `db:"payoff_at_sale" json:"payoff_at_sale"`

	ComputedAt time.Time `db:"computed_at" json:"computed_at"`
}

// NewStudyResult flattens an engine result into its persisted shape.
func NewStudyResult(studyID uuid.UUID, res *feasibility.ComputedResult, computedAt time.Time) *StudyResult {
	return &StudyResult{
		StudyID:           studyID,
		PricePerM2:        res.PricePerM2,
		TotalAcquisition:  res.TotalAcquisition,
		TotalHolding:      res.TotalHolding,
		TotalExit:         res.TotalExit,
		TotalConstruction: res.TotalConstruction,
		TotalDisbursed:    res.TotalDisbursed,
		TotalInvested:     res.TotalInvested,
		SaleNet:           res.SaleNet,
		Profit:            res.Profit,
		ROI:               res.ROI,

		Viability:     string(res.ViabilityIndicator),
		MissingFields: pq.StringArray(res.MissingFields),
		IsOfficial:    res.IsOfficial,

		FinancedAmount:      res.Financing.FinancedAmount,
		FirstInstallment:    res.Financing.FirstInstallment,
		LastInstallment:     res.Financing.LastInstallment,
		FinancingTotalPaid:  res.Financing.TotalPaid,
		TotalInterest:       res.Financing.TotalInterest,
		EffectiveAnnualRate: res.Financing.EffectiveAnnualRate,
		DownPaymentPercent:  res.Financing.DownPaymentPercent,
		PayoffAtSale:        res.Financing.PayoffAtSale,

		ComputedAt: computedAt,
	}
}

// LineItem represents the 'study_line_items' table. Rows are soft-deleted
// via status; the engine only ever sees ACTIVE rows.
type LineItem struct {
	ID          uuid.UUID       `db:"id" json:"id"`
	StudyID     uuid.UUID       `db:"study_id" json:"study_id"`
	LineType    string          `db:"line_type" json:"line_type"`
	Description string          `db:"description" json:"description"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	IsRecurring bool            `db:"is_recurring" json:"is_recurring"`
	Months      sql.NullInt32   `db:"months" json:"months"`
	Status      string          `db:"status" json:"status"`
	InsertedAt  time.Time       `db:"inserted_at" json:"inserted_at"`
	UpdatedAt   time.Time       `db:"updated_at" json:"updated_at"`
}

// Engine maps the row to the engine's line-item shape.
func (li *LineItem) Engine() feasibility.LineItem {
	months := 0
	if li.Months.Valid {
		months = int(li.Months.Int32)
	}
	return feasibility.LineItem{
		Type:      feasibility.LineType(li.LineType),
		Amount:    li.Amount,
		Recurring: li.IsRecurring,
		Months:    months,
	}
}

// WorkStage represents the 'work_stages' table: work-breakdown nodes of a
// study's construction plan.
type WorkStage struct {
	ID         uuid.UUID       `db:"id" json:"id"`
	StudyID    uuid.UUID       `db:"study_id" json:"study_id"`
	ParentID   *uuid.UUID      `db:"parent_id" json:"parent_id"`
	Name       string          `db:"name" json:"name"`
	StageType  string          `db:"stage_type" json:"stage_type"`
	StartDate  *time.Time      `db:"start_date" json:"start_date"`
	EndDate    *time.Time      `db:"end_date" json:"end_date"`
	TotalValue decimal.Decimal `db:"total_value" json:"total_value"`
	Status     string          `db:"status" json:"status"`
	InsertedAt time.Time       `db:"inserted_at" json:"inserted_at"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// Schedule maps the row to the distributor's stage shape.
func (ws *WorkStage) Schedule() schedule.Stage {
	return schedule.Stage{
		ID:         ws.ID,
		ParentID:   ws.ParentID,
		StageType:  ws.StageType,
		StartDate:  ws.StartDate,
		EndDate:    ws.EndDate,
		TotalValue: ws.TotalValue,
		UpdatedAt:  ws.UpdatedAt,
	}
}

// PlannedValue represents the 'planned_values' table. Rows for a study are
// replaced wholesale inside one transaction on every sync.
type PlannedValue struct {
	ID         int64           `db:"id" json:"id"`
	StudyID    uuid.UUID       `db:"study_id" json:"study_id"`
	StageID    uuid.UUID       `db:"stage_id" json:"stage_id"`
	MonthKey   string          `db:"month_key" json:"month_key"`
	Value      decimal.Decimal `db:"value" json:"value"`
	InsertedAt time.Time       `db:"inserted_at" json:"inserted_at"`
}

// UserSettings represents the 'user_settings' table: the per-user ROI
// thresholds behind the viability verdict.
type UserSettings struct {
	UserID                uuid.UUID       `db:"user_id" json:"user_id"`
	ROIViableThreshold    decimal.Decimal `db:"roi_viable_threshold" json:"roi_viable_threshold"`
	ROIAttentionThreshold decimal.Decimal `db:"roi_attention_threshold" json:"roi_attention_threshold"`
	UpdatedAt             time.Time       `db:"updated_at" json:"updated_at"`
}

// Thresholds maps the row to the engine's thresholds.
func (us *UserSettings) Thresholds() feasibility.Thresholds {
	return feasibility.Thresholds{
		ViableROI:    us.ROIViableThreshold,
		AttentionROI: us.ROIAttentionThreshold,
	}
}

// PortfolioRow is the per-study projection behind the portfolio summary:
// one row per study joined with its latest computed result.
type PortfolioRow struct {
	StudyID       uuid.UUID       `db:"study_id" json:"study_id"`
	Name          string          `db:"name" json:"name"`
	ROI           decimal.Decimal `db:"roi" json:"roi"`
	Profit        decimal.Decimal `db:"profit" json:"profit"`
	TotalInvested decimal.Decimal `db:"total_invested_capital" json:"total_invested_capital"`
	Viability     string          `db:"viability_indicator" json:"viability_indicator"`
}
