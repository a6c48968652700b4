package export

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/regnskap/internal/statement"
)

// Sheet names in the exported workbook, in order.
const (
	SheetStatement = "Oppstilling"
	SheetAccounts  = "Detaljer (konto)"
	SheetDetails   = "Detaljlinjer"
	SheetKPI       = "KPI"
	SheetUnmapped  = "Umappet"
)

// WriteXLSX writes res as a workbook with one sheet per table. Cells hold
// plain values; amounts are rounded to two decimals and key figures to four.
func WriteXLSX(w io.Writer, res *statement.Result) error {
	f := excelize.NewFile()
	defer f.Close()

	first := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetName(first, SheetStatement); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	var rows [][]any
	for _, l := range res.Lines {
		rows = append(rows, []any{l.Number, l.Name, string(l.Type), levelCell(l.Level), l.IndentLevel,
			money(l.Amounts.Opening), money(l.Amounts.Movement), money(l.Amounts.Closing), l.Formula})
	}
	if err := writeSheet(f, SheetStatement, statementHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, a := range res.Accounts {
		rows = append(rows, []any{a.Account, a.Name, a.Line,
			money(a.Amounts.Opening), money(a.Amounts.Movement), money(a.Amounts.Closing)})
	}
	if err := writeSheet(f, SheetAccounts, accountHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, d := range res.LineDetails {
		rows = append(rows, []any{d.Number, d.Name, string(d.Type), d.Sign,
			money(d.Amounts.Opening), money(d.Amounts.Movement), money(d.Amounts.Closing)})
	}
	if err := writeSheet(f, SheetDetails, detailHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, k := range res.KPIs {
		rows = append(rows, []any{k.Name, k.Expression, string(k.Field), k.Format,
			k.Value.Round(kpiPlaces).InexactFloat64()})
	}
	if err := writeSheet(f, SheetKPI, kpiHeader, rows); err != nil {
		return err
	}

	rows = rows[:0]
	for _, b := range res.Unmapped {
		rows = append(rows, []any{b.Account, b.Name,
			money(b.Amounts.Opening), money(b.Amounts.Movement), money(b.Amounts.Closing)})
	}
	if err := writeSheet(f, SheetUnmapped, unmappedHeader, rows); err != nil {
		return err
	}

	f.SetActiveSheet(0)
	if err := f.Write(w); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

func writeSheet(f *excelize.File, sheet string, header []string, rows [][]any) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return fmt.Errorf("looking up sheet %q: %w", sheet, err)
	}
	if idx < 0 {
		if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("creating sheet %q: %w", sheet, err)
		}
	}

	head := make([]any, len(header))
	for i, h := range header {
		head[i] = h
	}
	if err := f.SetSheetRow(sheet, cell(1), &head); err != nil {
		return fmt.Errorf("sheet %q: %w", sheet, err)
	}
	for i := range rows {
		if err := f.SetSheetRow(sheet, cell(i+2), &rows[i]); err != nil {
			return fmt.Errorf("sheet %q row %d: %w", sheet, i+2, err)
		}
	}
	return nil
}

// cell returns the first cell of row.
func cell(row int) string {
	return fmt.Sprintf("A%d", row)
}

func money(d decimal.Decimal) float64 {
	return d.Round(amountPlaces).InexactFloat64()
}

func levelCell(level int) any {
	if level < 0 {
		return ""
	}
	return level
}
