package feasibility

import "github.com/shopspring/decimal"

// FinancingSystem selects the amortization system of a financed purchase.
type FinancingSystem string

const (
	SystemPrice FinancingSystem = "PRICE"
	SystemSAC   FinancingSystem = "SAC"
)

// ValueMode tells whether a cost is entered as a percentage of a base value
// or as a fixed amount. Used by ITBI and brokerage.
type ValueMode string

const (
	ModePercent ValueMode = "PERCENT"
	ModeFixed   ValueMode = "FIXED"
)

// IPTUMode tells whether the IPTU figure was entered as a monthly or annual value.
type IPTUMode string

const (
	IPTUMonthly IPTUMode = "MONTHLY"
	IPTUAnnual  IPTUMode = "ANNUAL"
)

// StudyInputs is the flat record of a study's financial parameters, as entered
// by the user across the acquisition, financing, holding and exit screens.
type StudyInputs struct {
	PurchaseValue    decimal.Decimal
	UsableAreaM2     decimal.Decimal
	TotalAreaM2      decimal.Decimal
	LandAreaM2       decimal.Decimal
	PricePerM2Manual bool
	ManualPricePerM2 decimal.Decimal

	FinancingEnabled    bool
	FinancingSystem     FinancingSystem
	DownPayment         decimal.Decimal
	FinancingTermMonths int
	MonthlyInterestRate decimal.Decimal // percent, 1 = 1% a.m.

	AcquisitionDownPayment decimal.Decimal
	ITBIMode               ValueMode
	ITBIPercent            decimal.Decimal
	ITBIValue              decimal.Decimal
	BankAppraisalFee       decimal.Decimal
	RegistrationFee        decimal.Decimal
	DeedFee                decimal.Decimal

	MonthsToSale         int
	CondoFeeEnabled      bool
	CondoFee             decimal.Decimal
	IPTUMode             IPTUMode
	IPTUValue            decimal.Decimal
	OtherMonthlyExpenses decimal.Decimal

	SaleValue      decimal.Decimal
	BrokerageMode  ValueMode
	BrokerageValue decimal.Decimal // percent of sale or fixed amount, per mode
	IncomeTax      decimal.Decimal
}

// LineType classifies a discretionary cash-flow adjustment.
type LineType string

const (
	AcquisitionCost  LineType = "ACQUISITION_COST"
	MonthlyCost      LineType = "MONTHLY_COST"
	ExitCost         LineType = "EXIT_COST"
	ConstructionCost LineType = "CONSTRUCTION_COST"
)

// LineItem is a discretionary cash-flow adjustment. The loader hands the
// engine only active items; soft-delete filtering happens at the store.
type LineItem struct {
	Type      LineType
	Amount    decimal.Decimal
	Recurring bool
	// Months overrides the recurrence span. Zero means the study's
	// months-to-sale applies.
	Months int
}

// Thresholds are the per-user ROI cutoffs that classify a study's viability.
type Thresholds struct {
	ViableROI    decimal.Decimal // percent
	AttentionROI decimal.Decimal // percent
}

// DefaultThresholds applies when a user never saved settings.
func DefaultThresholds() Thresholds {
	return Thresholds{
		ViableROI:    decimal.NewFromInt(20),
		AttentionROI: decimal.NewFromInt(5),
	}
}

// AuxTotals carries the aggregate totals computed outside the engine: paid
// provider/contractor payments, construction stage totals and paid bills.
type AuxTotals struct {
	ProviderContracts decimal.Decimal
	Construction      decimal.Decimal
	BillsPaid         decimal.Decimal
}

// Viability is the verdict of a study's ROI against the user thresholds.
type Viability string

const (
	Viable    Viability = "VIABLE"
	Attention Viability = "ATTENTION"
	Unviable  Viability = "UNVIABLE"
	Unknown   Viability = "UNKNOWN"
)

// FinancingSchedule summarizes the amortization of the financed portion.
// All-zero when financing is disabled or the financed amount is not positive.
type FinancingSchedule struct {
	FinancedAmount      decimal.Decimal `json:"financed_amount"`
	FirstInstallment    decimal.Decimal `json:"first_installment"`
	LastInstallment     decimal.Decimal `json:"last_installment"`
	TotalPaid           decimal.Decimal `json:"total_paid"`
	TotalInterest       decimal.Decimal `json:"total_interest"`
	EffectiveAnnualRate decimal.Decimal `json:"effective_annual_rate"` // percent
	DownPaymentPercent  decimal.Decimal `json:"down_payment_percent"`
	// PayoffAtSale is the amount owed to the bank when the property sells.
	// Simplified to the full financed principal rather than the amortized
	// remaining balance at the sale month.
	PayoffAtSale decimal.Decimal `json:"payoff_at_sale"`
}

// ComputedResult is the derived cache written back after every save. It is
// never edited independently of its inputs.
type ComputedResult struct {
	PricePerM2 decimal.Decimal   `json:"purchase_price_per_m2"`
	Financing  FinancingSchedule `json:"financing"`

	TotalAcquisition   decimal.Decimal `json:"total_acquisition"`
	TotalHolding       decimal.Decimal `json:"total_holding"`
	TotalExit          decimal.Decimal `json:"total_exit"`
	TotalConstruction  decimal.Decimal `json:"total_construction"`
	TotalDisbursed     decimal.Decimal `json:"total_disbursed"`
	TotalInvested      decimal.Decimal `json:"total_invested_capital"`
	SaleNet            decimal.Decimal `json:"sale_net"`
	Profit             decimal.Decimal `json:"profit"`
	ROI                decimal.Decimal `json:"roi"` // percent
	ViabilityIndicator Viability       `json:"viability_indicator"`
	MissingFields      []string        `json:"missing_fields"`
	IsOfficial         bool            `json:"is_official"`
}
