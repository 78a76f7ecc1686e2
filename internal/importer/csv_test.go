package importer

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
)

// legacyCSV is a Windows-1252 export: "Descrição" is Descri\xE7\xE3o,
// "Não" is N\xE3o, "aquisição" is aquisi\xE7\xE3o.
const legacyCSV = "Tipo;Descri\xE7\xE3o;Valor;Recorrente;Meses\n" +
	"aquisi\xE7\xE3o;Reforma el\xE9trica;1.234,56;N\xE3o;0\n" +
	"Mensal;Seguran\xE7a;R$ 450,00;Sim;3\n" +
	"obra;Funda\xE7\xE3o;10.000,00;N\xE3o;0\n" +
	"desconhecido;Linha inv\xE1lida;10,00;N\xE3o;0\n"

func TestParseLineItems(t *testing.T) {
	result, err := ParseLineItems(strings.NewReader(legacyCSV))
	if err != nil {
		t.Fatalf("ParseLineItems: %v", err)
	}

	if len(result.Items) != 3 {
		t.Fatalf("got %d items, want 3: %+v", len(result.Items), result.Items)
	}
	if len(result.Skipped) != 1 || result.Skipped[0] != "desconhecido" {
		t.Errorf("Skipped = %v, want [desconhecido]", result.Skipped)
	}

	first := result.Items[0]
	if first.Type != feasibility.AcquisitionCost {
		t.Errorf("first item type = %s, want %s", first.Type, feasibility.AcquisitionCost)
	}
	if first.Description != "Reforma elétrica" {
		t.Errorf("first item description = %q, want %q", first.Description, "Reforma elétrica")
	}
	if !first.Amount.Equal(decimal.RequireFromString("1234.56")) {
		t.Errorf("first item amount = %s, want 1234.56", first.Amount)
	}
	if first.Recurring {
		t.Errorf("first item recurring = true, want false")
	}

	second := result.Items[1]
	if second.Type != feasibility.MonthlyCost {
		t.Errorf("second item type = %s, want %s", second.Type, feasibility.MonthlyCost)
	}
	if !second.Amount.Equal(decimal.RequireFromString("450")) {
		t.Errorf("second item amount = %s, want 450", second.Amount)
	}
	if !second.Recurring {
		t.Errorf("second item recurring = false, want true")
	}
	if second.Months != 3 {
		t.Errorf("second item months = %d, want 3", second.Months)
	}

	if result.Items[2].Type != feasibility.ConstructionCost {
		t.Errorf("third item type = %s, want %s", result.Items[2].Type, feasibility.ConstructionCost)
	}
}

func TestParseLineItemsEmptyFile(t *testing.T) {
	_, err := ParseLineItems(strings.NewReader("Tipo;Valor\n"))
	if err == nil {
		t.Errorf("expected error for CSV with no data rows")
	}
}

func TestParseBRL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1.234,56", "1234.56"},
		{"R$ 450,00", "450"},
		{"R$1.000.000,99", "1000000.99"},
		{"10", "10"},
		{"0,01", "0.01"},
		{"", "0"},
		{"   ", "0"},
		{"abc", "0"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got := ParseBRL(tc.in)
			if !got.Equal(decimal.RequireFromString(tc.want)) {
				t.Errorf("ParseBRL(%q) = %s, want %s", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"Sim", "sim", "SIM", "Yes", "1"} {
		if !parseBool(s) {
			t.Errorf("parseBool(%q) = false, want true", s)
		}
	}
	for _, s := range []string{"Não", "Nao", "No", "0", ""} {
		if parseBool(s) {
			t.Errorf("parseBool(%q) = true, want false", s)
		}
	}
}
