// Package feasibility implements the recompute engine: the pure financial
// calculation that turns a study's inputs and its line items into derived
// totals, a financing schedule and a viability verdict. The engine reads no
// ambient state and never errors; incomplete inputs surface through
// ComputedResult.MissingFields.
package feasibility

import "github.com/shopspring/decimal"

var (
	one     = decimal.NewFromInt(1)
	two     = decimal.NewFromInt(2)
	twelve  = decimal.NewFromInt(12)
	hundred = decimal.NewFromInt(100)
)

// Options configure the decimal arithmetic of an Engine. They are fixed at
// construction time; there is no package-level mutable precision setting.
type Options struct {
	// MoneyScale is the number of decimal places money values are rounded
	// to at point of storage.
	MoneyScale int32
	// RateScale is the number of decimal places for rates and percentages.
	RateScale int32
	// DivPrecision is the number of decimal digits kept by divisions
	// before the final rounding.
	DivPrecision int32
}

// DefaultOptions returns the production configuration: 2-place money,
// 4-place rates, 20-digit divisions, half-up rounding throughout.
func DefaultOptions() Options {
	return Options{MoneyScale: 2, RateScale: 4, DivPrecision: 20}
}

// Engine performs the recompute. Safe for concurrent use; it holds no
// mutable state.
type Engine struct {
	opts Options
}

func New(opts Options) *Engine {
	if opts.DivPrecision <= 0 {
		opts = DefaultOptions()
	}
	return &Engine{opts: opts}
}

// money rounds a value to the money scale. decimal.Round rounds half away
// from zero, matching the half-up behavior of the stored values.
func (e *Engine) money(d decimal.Decimal) decimal.Decimal {
	return d.Round(e.opts.MoneyScale)
}

func (e *Engine) percent(d decimal.Decimal) decimal.Decimal {
	return d.Round(e.opts.RateScale)
}

// div divides keeping DivPrecision digits. Callers guard against a zero
// divisor; the engine's division-by-zero branches all return zero instead.
func (e *Engine) div(a, b decimal.Decimal) decimal.Decimal {
	return a.DivRound(b, e.opts.DivPrecision)
}

// Recompute derives a ComputedResult from the study inputs, its active line
// items, the user's thresholds and the externally supplied aggregate totals.
// It is deterministic: identical inputs yield identical results.
func (e *Engine) Recompute(in StudyInputs, items []LineItem, th Thresholds, aux AuxTotals) ComputedResult {
	var res ComputedResult

	res.PricePerM2 = e.pricePerM2(in)
	res.Financing = e.CalcFinancing(in)

	months := in.MonthsToSale
	if months < 0 {
		months = 0
	}

	// Acquisition: fixed closing costs plus one-off adjustments.
	acq := in.AcquisitionDownPayment.
		Add(e.itbiValue(in)).
		Add(in.BankAppraisalFee).
		Add(in.RegistrationFee).
		Add(in.DeedFee).
		Add(e.sumItems(items, AcquisitionCost, months))
	res.TotalAcquisition = e.money(acq)

	// Holding: the monthly carrying cost times the holding period, plus
	// monthly adjustments and paid provider contracts.
	monthly := decimal.Zero
	if in.FinancingEnabled {
		monthly = monthly.Add(res.Financing.FirstInstallment)
	}
	if in.CondoFeeEnabled {
		monthly = monthly.Add(in.CondoFee)
	}
	iptu := in.IPTUValue
	if in.IPTUMode == IPTUAnnual {
		iptu = e.div(iptu, twelve)
	}
	monthly = monthly.Add(iptu).Add(in.OtherMonthlyExpenses)
	hold := monthly.Mul(decimal.NewFromInt(int64(months))).
		Add(e.sumItems(items, MonthlyCost, months)).
		Add(aux.ProviderContracts)
	res.TotalHolding = e.money(hold)

	// Exit: brokerage, income tax and the financing payoff.
	exit := e.brokerageValue(in).
		Add(in.IncomeTax).
		Add(res.Financing.PayoffAtSale).
		Add(e.sumItems(items, ExitCost, months))
	res.TotalExit = e.money(exit)

	res.TotalConstruction = e.money(aux.Construction.Add(e.sumItems(items, ConstructionCost, months)))

	res.TotalDisbursed = e.money(res.TotalAcquisition.
		Add(res.TotalHolding).
		Add(res.TotalConstruction).
		Add(aux.BillsPaid))
	res.TotalInvested = e.money(in.PurchaseValue.Add(res.TotalDisbursed))

	res.SaleNet = e.money(in.SaleValue.Sub(res.TotalExit))
	// Profit deliberately does not subtract the purchase value; the purchase
	// is recovered at sale and enters only the invested-capital denominator.
	res.Profit = e.money(in.SaleValue.Sub(res.TotalDisbursed).Sub(res.TotalExit))
	if res.TotalInvested.Sign() > 0 {
		res.ROI = e.percent(e.div(res.Profit, res.TotalInvested).Mul(hundred))
	} else {
		res.ROI = decimal.Zero
	}

	res.MissingFields = MissingFields(in)
	res.IsOfficial = len(res.MissingFields) == 0
	res.ViabilityIndicator = Classify(res.ROI, th, res.IsOfficial)
	return res
}

// pricePerM2 derives the price per square meter. A positive manual value
// wins when the manual flag is set; otherwise the purchase value is divided
// by the first positive area, preferring usable, then total, then land.
func (e *Engine) pricePerM2(in StudyInputs) decimal.Decimal {
	if in.PricePerM2Manual && in.ManualPricePerM2.Sign() > 0 {
		return e.money(in.ManualPricePerM2)
	}
	if in.PurchaseValue.Sign() <= 0 {
		return decimal.Zero
	}
	area := firstPositiveArea(in)
	if area.Sign() <= 0 {
		return decimal.Zero
	}
	return e.money(e.div(in.PurchaseValue, area))
}

func firstPositiveArea(in StudyInputs) decimal.Decimal {
	for _, a := range []decimal.Decimal{in.UsableAreaM2, in.TotalAreaM2, in.LandAreaM2} {
		if a.Sign() > 0 {
			return a
		}
	}
	return decimal.Zero
}

func (e *Engine) itbiValue(in StudyInputs) decimal.Decimal {
	if in.ITBIMode == ModePercent {
		return in.PurchaseValue.Mul(e.div(in.ITBIPercent, hundred))
	}
	return in.ITBIValue
}

func (e *Engine) brokerageValue(in StudyInputs) decimal.Decimal {
	if in.BrokerageMode == ModePercent {
		return in.SaleValue.Mul(e.div(in.BrokerageValue, hundred))
	}
	return in.BrokerageValue
}

// sumItems adds the line items of one type. Recurring items multiply their
// amount by their own month count, falling back to the study's holding
// period; non-recurring items contribute once.
func (e *Engine) sumItems(items []LineItem, t LineType, studyMonths int) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		if it.Type != t {
			continue
		}
		amount := it.Amount
		if it.Recurring {
			m := it.Months
			if m <= 0 {
				m = studyMonths
			}
			amount = amount.Mul(decimal.NewFromInt(int64(m)))
		}
		total = total.Add(amount)
	}
	return total
}
