package feasibility

import "github.com/shopspring/decimal"

// CalcFinancing derives the amortization schedule summary for the financed
// portion of the purchase. Disabled financing, a non-positive financed
// amount, a non-positive term, or a non-positive rate under PRICE all yield
// an all-zero schedule.
func (e *Engine) CalcFinancing(in StudyInputs) FinancingSchedule {
	var s FinancingSchedule
	if !in.FinancingEnabled {
		return s
	}

	financed := in.PurchaseValue.Sub(in.DownPayment)
	if financed.Sign() <= 0 {
		return s
	}

	n := in.FinancingTermMonths
	if n <= 0 {
		return s
	}

	rate := e.div(in.MonthlyInterestRate, hundred)
	if in.FinancingSystem != SystemSAC && rate.Sign() <= 0 {
		// PRICE's installment formula divides by the rate term.
		return s
	}

	s.FinancedAmount = e.money(financed)
	// Payoff at sale is simplified to the full financed principal, not the
	// amortized remaining balance at the sale month.
	s.PayoffAtSale = s.FinancedAmount
	if in.PurchaseValue.Sign() > 0 {
		s.DownPaymentPercent = e.percent(e.div(in.DownPayment, in.PurchaseValue).Mul(hundred))
	}

	onePlusRate := one.Add(rate)
	s.EffectiveAnnualRate = e.percent(onePlusRate.Pow(twelve).Sub(one).Mul(hundred))

	nDec := decimal.NewFromInt(int64(n))
	switch in.FinancingSystem {
	case SystemSAC:
		// Constant amortization, declining interest.
		amort := e.div(financed, nDec)
		s.FirstInstallment = e.money(amort.Add(financed.Mul(rate)))
		s.LastInstallment = e.money(amort.Add(amort.Mul(rate)))
		// Closed form: interest on an arithmetic series of balances.
		interest := e.div(rate.Mul(financed).Mul(nDec.Add(one)), two)
		s.TotalInterest = e.money(interest)
		s.TotalPaid = s.FinancedAmount.Add(s.TotalInterest)
	default:
		// PRICE (French system): level installment.
		// pmt = financed * r / (1 - (1+r)^-n)
		inverse := e.div(one, onePlusRate.Pow(nDec))
		pmt := e.div(financed.Mul(rate), one.Sub(inverse))
		s.FirstInstallment = e.money(pmt)
		s.LastInstallment = s.FirstInstallment
		s.TotalPaid = e.money(pmt.Mul(nDec))
		s.TotalInterest = s.TotalPaid.Sub(s.FinancedAmount)
	}
	return s
}
