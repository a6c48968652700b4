package kpi

import "github.com/cleared-dev/regnskap/internal/model"

const (
	formatAmount  = "#,##0"
	formatPercent = "0.0%"
	formatRatio   = "0.00"
)

// DefaultDefinitions returns the standard key figures over the lines from
// lines.DefaultDefinitions. Equity and liabilities carry credit (negative)
// balances, hence the unary minus in the balance ratios.
func DefaultDefinitions() []model.KpiDefinition {
	ub := model.FieldClosing
	return []model.KpiDefinition{
		{Name: "Bruttofortjeneste", Expression: "10-20", Field: ub, Format: formatAmount},
		{Name: "Bruttofortjeneste %", Expression: "(10-20)/10", Field: ub, Format: formatPercent},
		{Name: "Driftsmargin", Expression: "80/19", Field: ub, Format: formatPercent},
		{Name: "Resultatmargin", Expression: "280/19", Field: ub, Format: formatPercent},
		{Name: "Lønnskostnad i % av driftsinntekter", Expression: "40/19", Field: ub, Format: formatPercent},
		{Name: "Likviditetsgrad 1", Expression: "660/-810", Field: ub, Format: formatRatio},
		{Name: "Likviditetsgrad 2", Expression: "(660-605)/-810", Field: ub, Format: formatRatio},
		{Name: "Arbeidskapital", Expression: "660+810", Field: ub, Format: formatAmount},
		{Name: "Egenkapitalandel", Expression: "-715/665", Field: ub, Format: formatPercent},
		{Name: "Gjeldsgrad", Expression: "820/715", Field: ub, Format: formatRatio},
		{Name: "Totalkapitalrentabilitet", Expression: "(160+110)/665", Field: ub, Format: formatPercent},
		{Name: "Udisponert resultat", Expression: "280-350", Field: ub, Format: formatAmount},
	}
}
