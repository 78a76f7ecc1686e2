package feasibility

import "github.com/shopspring/decimal"

// Labels reported in missing_fields. These are the product's user-facing
// strings and feed the completeness banner on the study page.
const (
	FieldPurchaseValue   = "Valor de compra"
	FieldArea            = "Área do imóvel"
	FieldMonthsToSale    = "Meses até a venda"
	FieldSaleValue       = "Valor de venda"
	FieldFinancingSystem = "Sistema de financiamento"
	FieldFinancingTerm   = "Prazo do financiamento"
	FieldMonthlyRate     = "Taxa de juros mensal"
)

var minSaleValue = decimal.New(1, -2) // 0.01

// MissingFields lists the business fields a study still needs before its
// result counts as official. Financing fields are only required when
// financing is enabled.
func MissingFields(in StudyInputs) []string {
	var missing []string
	if in.PurchaseValue.Sign() <= 0 {
		missing = append(missing, FieldPurchaseValue)
	}
	if firstPositiveArea(in).Sign() <= 0 {
		missing = append(missing, FieldArea)
	}
	if in.MonthsToSale < 1 {
		missing = append(missing, FieldMonthsToSale)
	}
	if in.SaleValue.LessThan(minSaleValue) {
		missing = append(missing, FieldSaleValue)
	}
	if in.FinancingEnabled {
		if in.FinancingSystem == "" {
			missing = append(missing, FieldFinancingSystem)
		}
		if in.FinancingTermMonths < 1 {
			missing = append(missing, FieldFinancingTerm)
		}
		if in.MonthlyInterestRate.Sign() <= 0 {
			missing = append(missing, FieldMonthlyRate)
		}
	}
	return missing
}

// Classify turns a computed ROI into the viability verdict. An incomplete
// study is always UNKNOWN, whatever its ROI.
func Classify(roi decimal.Decimal, th Thresholds, official bool) Viability {
	if !official {
		return Unknown
	}
	switch {
	case roi.GreaterThanOrEqual(th.ViableROI):
		return Viable
	case roi.LessThan(th.AttentionROI):
		return Attention
	default:
		return Unviable
	}
}
