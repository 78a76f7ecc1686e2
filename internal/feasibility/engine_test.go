package feasibility

import (
	"reflect"
	"testing"

	"github.com/shopspring/decimal"
)

// completeInputs is a fully filled study used by the worked-example tests:
// a R$200k purchase held for six months and sold for R$260k, no financing.
func completeInputs() StudyInputs {
	return StudyInputs{
		PurchaseValue: dec("200000"),
		UsableAreaM2:  dec("100"),

		AcquisitionDownPayment: dec("40000"),
		ITBIMode:               ModePercent,
		ITBIPercent:            dec("3"),
		RegistrationFee:        dec("1500"),
		DeedFee:                dec("2500"),

		MonthsToSale:    6,
		CondoFeeEnabled: true,
		CondoFee:        dec("500"),
		IPTUMode:        IPTUAnnual,
		IPTUValue:       dec("1200"),

		SaleValue:      dec("260000"),
		BrokerageMode:  ModePercent,
		BrokerageValue: dec("5"),
		IncomeTax:      dec("3000"),
	}
}

func TestRecomputeWorkedExample(t *testing.T) {
	e := New(DefaultOptions())
	items := []LineItem{
		{Type: MonthlyCost, Amount: dec("400"), Recurring: true},
		{Type: ConstructionCost, Amount: dec("3000")},
	}
	aux := AuxTotals{
		Construction: dec("25000"),
		BillsPaid:    dec("1000"),
	}

	res := e.Recompute(completeInputs(), items, DefaultThresholds(), aux)

	assertDecEqual(t, "PricePerM2", res.PricePerM2, dec("2000"))
	assertDecEqual(t, "TotalAcquisition", res.TotalAcquisition, dec("50000"))
	assertDecEqual(t, "TotalHolding", res.TotalHolding, dec("6000"))
	assertDecEqual(t, "TotalExit", res.TotalExit, dec("16000"))
	assertDecEqual(t, "TotalConstruction", res.TotalConstruction, dec("28000"))
	assertDecEqual(t, "TotalDisbursed", res.TotalDisbursed, dec("85000"))
	assertDecEqual(t, "TotalInvested", res.TotalInvested, dec("285000"))
	assertDecEqual(t, "SaleNet", res.SaleNet, dec("244000"))
	assertDecEqual(t, "Profit", res.Profit, dec("159000"))
	assertDecEqual(t, "ROI", res.ROI, dec("55.7895"))

	if !res.IsOfficial {
		t.Errorf("IsOfficial = false, want true")
	}
	if len(res.MissingFields) != 0 {
		t.Errorf("MissingFields = %v, want none", res.MissingFields)
	}
	if res.ViabilityIndicator != Viable {
		t.Errorf("ViabilityIndicator = %s, want %s", res.ViabilityIndicator, Viable)
	}
}

func TestRecomputeDeterministic(t *testing.T) {
	e := New(DefaultOptions())
	items := []LineItem{
		{Type: AcquisitionCost, Amount: dec("750.33")},
		{Type: MonthlyCost, Amount: dec("123.45"), Recurring: true, Months: 3},
	}
	aux := AuxTotals{ProviderContracts: dec("1234.56")}

	first := e.Recompute(completeInputs(), items, DefaultThresholds(), aux)
	second := e.Recompute(completeInputs(), items, DefaultThresholds(), aux)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("recompute is not deterministic:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestRecomputeIncompleteIsUnknown(t *testing.T) {
	e := New(DefaultOptions())
	in := completeInputs()
	in.PurchaseValue = decimal.Zero

	res := e.Recompute(in, nil, DefaultThresholds(), AuxTotals{})

	if res.IsOfficial {
		t.Errorf("IsOfficial = true, want false")
	}
	if res.ViabilityIndicator != Unknown {
		t.Errorf("ViabilityIndicator = %s, want %s", res.ViabilityIndicator, Unknown)
	}
	if len(res.MissingFields) == 0 {
		t.Errorf("MissingFields is empty, want at least %q", FieldPurchaseValue)
	}
}

func TestRecomputeZeroInvestedROI(t *testing.T) {
	e := New(DefaultOptions())
	res := e.Recompute(StudyInputs{}, nil, DefaultThresholds(), AuxTotals{})
	assertDecEqual(t, "ROI", res.ROI, decimal.Zero)
}

func TestPricePerM2(t *testing.T) {
	e := New(DefaultOptions())

	cases := []struct {
		name string
		in   StudyInputs
		want decimal.Decimal
	}{
		{
			name: "usable area preferred",
			in:   StudyInputs{PurchaseValue: dec("200000"), UsableAreaM2: dec("100"), TotalAreaM2: dec("130")},
			want: dec("2000"),
		},
		{
			name: "falls back to total area",
			in:   StudyInputs{PurchaseValue: dec("200000"), TotalAreaM2: dec("125")},
			want: dec("1600"),
		},
		{
			name: "falls back to land area",
			in:   StudyInputs{PurchaseValue: dec("200000"), LandAreaM2: dec("500")},
			want: dec("400"),
		},
		{
			name: "manual value wins",
			in:   StudyInputs{PurchaseValue: dec("200000"), UsableAreaM2: dec("100"), PricePerM2Manual: true, ManualPricePerM2: dec("1850.50")},
			want: dec("1850.50"),
		},
		{
			name: "manual flag with zero manual value falls through",
			in:   StudyInputs{PurchaseValue: dec("200000"), UsableAreaM2: dec("100"), PricePerM2Manual: true},
			want: dec("2000"),
		},
		{
			name: "no area",
			in:   StudyInputs{PurchaseValue: dec("200000")},
			want: decimal.Zero,
		},
		{
			name: "no purchase value",
			in:   StudyInputs{UsableAreaM2: dec("100")},
			want: decimal.Zero,
		},
		{
			name: "rounds half up",
			in:   StudyInputs{PurchaseValue: dec("100000"), UsableAreaM2: dec("3")},
			want: dec("33333.33"),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assertDecEqual(t, "pricePerM2", e.pricePerM2(tc.in), tc.want)
		})
	}
}

func TestSumItems(t *testing.T) {
	e := New(DefaultOptions())
	items := []LineItem{
		{Type: MonthlyCost, Amount: dec("100"), Recurring: true},           // falls back to study months
		{Type: MonthlyCost, Amount: dec("50"), Recurring: true, Months: 3}, // own span
		{Type: MonthlyCost, Amount: dec("999")},                            // one-off
		{Type: ExitCost, Amount: dec("5000")},                              // other type, ignored
	}

	got := e.sumItems(items, MonthlyCost, 6)
	assertDecEqual(t, "sumItems", got, dec("1749")) // 100*6 + 50*3 + 999
}

func TestRecomputeNegativeMonthsClamped(t *testing.T) {
	e := New(DefaultOptions())
	in := completeInputs()
	in.MonthsToSale = -2

	res := e.Recompute(in, []LineItem{{Type: MonthlyCost, Amount: dec("400"), Recurring: true}}, DefaultThresholds(), AuxTotals{})

	assertDecEqual(t, "TotalHolding", res.TotalHolding, decimal.Zero)
}
