package feasibility

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecEqual(t *testing.T, name string, got, want decimal.Decimal) {
	t.Helper()
	if !got.Equal(want) {
		t.Errorf("%s = %s, want %s", name, got, want)
	}
}

func TestCalcFinancingPrice(t *testing.T) {
	e := New(DefaultOptions())
	in := StudyInputs{
		PurchaseValue:       dec("100000"),
		FinancingEnabled:    true,
		FinancingSystem:     SystemPrice,
		DownPayment:         dec("10000"),
		FinancingTermMonths: 12,
		MonthlyInterestRate: dec("1"),
	}

	s := e.CalcFinancing(in)

	assertDecEqual(t, "FinancedAmount", s.FinancedAmount, dec("90000"))
	assertDecEqual(t, "FirstInstallment", s.FirstInstallment, dec("7996.39"))
	assertDecEqual(t, "LastInstallment", s.LastInstallment, dec("7996.39"))
	assertDecEqual(t, "TotalPaid", s.TotalPaid, dec("95956.69"))
	assertDecEqual(t, "TotalInterest", s.TotalInterest, dec("5956.69"))
	assertDecEqual(t, "EffectiveAnnualRate", s.EffectiveAnnualRate, dec("12.6825"))
	assertDecEqual(t, "DownPaymentPercent", s.DownPaymentPercent, dec("10"))
	assertDecEqual(t, "PayoffAtSale", s.PayoffAtSale, dec("90000"))
}

func TestCalcFinancingSAC(t *testing.T) {
	e := New(DefaultOptions())
	in := StudyInputs{
		PurchaseValue:       dec("100000"),
		FinancingEnabled:    true,
		FinancingSystem:     SystemSAC,
		DownPayment:         dec("10000"),
		FinancingTermMonths: 12,
		MonthlyInterestRate: dec("1"),
	}

	s := e.CalcFinancing(in)

	assertDecEqual(t, "FinancedAmount", s.FinancedAmount, dec("90000"))
	assertDecEqual(t, "FirstInstallment", s.FirstInstallment, dec("8400"))
	assertDecEqual(t, "LastInstallment", s.LastInstallment, dec("7575"))
	assertDecEqual(t, "TotalInterest", s.TotalInterest, dec("5850"))
	assertDecEqual(t, "TotalPaid", s.TotalPaid, dec("95850"))
	assertDecEqual(t, "EffectiveAnnualRate", s.EffectiveAnnualRate, dec("12.6825"))
}

func TestCalcFinancingZeroSchedule(t *testing.T) {
	e := New(DefaultOptions())
	base := StudyInputs{
		PurchaseValue:       dec("100000"),
		FinancingEnabled:    true,
		FinancingSystem:     SystemPrice,
		DownPayment:         dec("10000"),
		FinancingTermMonths: 12,
		MonthlyInterestRate: dec("1"),
	}

	cases := []struct {
		name   string
		mutate func(*StudyInputs)
	}{
		{"disabled", func(in *StudyInputs) { in.FinancingEnabled = false }},
		{"down payment covers purchase", func(in *StudyInputs) { in.DownPayment = dec("100000") }},
		{"down payment above purchase", func(in *StudyInputs) { in.DownPayment = dec("120000") }},
		{"zero term", func(in *StudyInputs) { in.FinancingTermMonths = 0 }},
		{"price with zero rate", func(in *StudyInputs) { in.MonthlyInterestRate = decimal.Zero }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := base
			tc.mutate(&in)
			s := e.CalcFinancing(in)
			if !s.FinancedAmount.IsZero() || !s.FirstInstallment.IsZero() || !s.TotalPaid.IsZero() || !s.PayoffAtSale.IsZero() {
				t.Errorf("expected all-zero schedule, got %+v", s)
			}
		})
	}
}

func TestCalcFinancingSACZeroRate(t *testing.T) {
	// SAC has no division by the rate, so a zero rate is a valid input:
	// the loan amortizes interest-free.
	e := New(DefaultOptions())
	in := StudyInputs{
		PurchaseValue:       dec("100000"),
		FinancingEnabled:    true,
		FinancingSystem:     SystemSAC,
		DownPayment:         dec("10000"),
		FinancingTermMonths: 12,
		MonthlyInterestRate: decimal.Zero,
	}

	s := e.CalcFinancing(in)

	assertDecEqual(t, "FirstInstallment", s.FirstInstallment, dec("7500"))
	assertDecEqual(t, "LastInstallment", s.LastInstallment, dec("7500"))
	assertDecEqual(t, "TotalInterest", s.TotalInterest, decimal.Zero)
	assertDecEqual(t, "TotalPaid", s.TotalPaid, dec("90000"))
}
