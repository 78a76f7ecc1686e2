// Package importer parses legacy line-item CSV exports. The files come from
// spreadsheet-era tooling: Windows-1252 encoded, semicolon-separated,
// Brazilian number formatting ("1.234,56").
package importer

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/paolocjunior/im-vel-gestor-sub001/internal/feasibility"
)

// Expected CSV columns. Headers are matched as exported by the legacy tool.
const (
	colType        = "Tipo"
	colDescription = "Descrição"
	colAmount      = "Valor"
	colRecurring   = "Recorrente"
	colMonths      = "Meses"
)

var lineTypeByLabel = map[string]feasibility.LineType{
	"aquisicao":  feasibility.AcquisitionCost,
	"aquisição":  feasibility.AcquisitionCost,
	"mensal":     feasibility.MonthlyCost,
	"venda":      feasibility.ExitCost,
	"obra":       feasibility.ConstructionCost,
	"construcao": feasibility.ConstructionCost,
	"construção": feasibility.ConstructionCost,
}

// ParsedItem is one successfully converted CSV row.
type ParsedItem struct {
	Type        feasibility.LineType
	Description string
	Amount      decimal.Decimal
	Recurring   bool
	Months      int
}

// Result carries the converted rows plus the labels of rows skipped for an
// unknown line type.
type Result struct {
	Items   []ParsedItem
	Skipped []string
}

// ReadCSV decodes and parses a legacy export stream.
func ReadCSV(r io.Reader) (dataframe.DataFrame, error) {
	// The legacy exports are Windows-1252, not UTF-8.
	decoded := charmap.Windows1252.NewDecoder().Reader(r)
	df := dataframe.ReadCSV(decoded, dataframe.WithDelimiter(';'), dataframe.WithLazyQuotes(true))
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("failed to parse CSV: %w", df.Err)
	}
	if df.Nrow() == 0 {
		return dataframe.DataFrame{}, fmt.Errorf("CSV has no data rows")
	}
	return df, nil
}

// ParseLineItems converts a legacy export into line items, skipping rows
// whose type label is unknown.
func ParseLineItems(r io.Reader) (Result, error) {
	df, err := ReadCSV(r)
	if err != nil {
		return Result{}, err
	}

	var result Result
	for i := 0; i < df.Nrow(); i++ {
		label := getStr(&df, colType, i)
		lineType, ok := lineTypeByLabel[strings.ToLower(strings.TrimSpace(label))]
		if !ok {
			result.Skipped = append(result.Skipped, label)
			continue
		}
		result.Items = append(result.Items, ParsedItem{
			Type:        lineType,
			Description: getStr(&df, colDescription, i),
			Amount:      ParseBRL(getStr(&df, colAmount, i)),
			Recurring:   parseBool(getStr(&df, colRecurring, i)),
			Months:      getInt(&df, colMonths, i),
		})
	}
	return result, nil
}

// ParseBRL parses a Brazilian-formatted number ("1.234,56") into a decimal.
// Unparseable values come back as zero, matching how the legacy tool treated
// blank cells.
func ParseBRL(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.TrimPrefix(s, "R$")
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func parseBool(s string) bool {
	return strings.EqualFold(s, "Sim") || strings.EqualFold(s, "Yes") || s == "1"
}

func containsString(slice []string, s string) bool {
	for _, v := range slice {
		if v == s {
			return true
		}
	}
	return false
}

func getStr(df *dataframe.DataFrame, col string, rowIdx int) string {
	if !containsString(df.Names(), col) {
		return ""
	}
	return df.Col(col).Elem(rowIdx).String()
}

func getInt(df *dataframe.DataFrame, col string, rowIdx int) int {
	if !containsString(df.Names(), col) {
		return 0
	}
	val, err := df.Col(col).Elem(rowIdx).Int()
	if err != nil {
		return 0
	}
	return val
}
