// Package export writes statement build results as CSV files and as an
// Excel workbook.
package export

import (
	"fmt"
	"io"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/schema"
	"github.com/cleared-dev/regnskap/internal/statement"
)

const (
	amountPlaces = 2
	kpiPlaces    = 4
)

var (
	statementHeader = []string{"nr", "regnskapslinje", "regnskapstype", "sumnivå", "innrykk", "ib", "endring", "ub", "formel"}
	accountHeader   = []string{"konto", "kontonavn", "regnr", "ib", "endring", "ub"}
	detailHeader    = []string{"nr", "regnskapslinje", "regnskapstype", "fortegn", "ib", "endring", "ub"}
	kpiHeader       = []string{"navn", "uttrykk", "felt", "format", "verdi"}
	unmappedHeader  = []string{"konto", "kontonavn", "ib", "endring", "ub"}
)

func formatAmount(d decimal.Decimal) string {
	return d.StringFixed(amountPlaces)
}

func formatLevel(level int) string {
	if level == model.NoLevel {
		return ""
	}
	return strconv.Itoa(level)
}

func amountCells(a model.Amounts) []string {
	return []string{formatAmount(a.Opening), formatAmount(a.Movement), formatAmount(a.Closing)}
}

func statementRow(l model.StatementLine) []string {
	row := []string{strconv.Itoa(l.Number), l.Name, string(l.Type), formatLevel(l.Level), strconv.Itoa(l.IndentLevel)}
	row = append(row, amountCells(l.Amounts)...)
	return append(row, l.Formula)
}

func accountRow(a statement.AccountDetail) []string {
	row := []string{strconv.Itoa(a.Account), a.Name, strconv.Itoa(a.Line)}
	return append(row, amountCells(a.Amounts)...)
}

func detailRow(d statement.LineDetail) []string {
	row := []string{strconv.Itoa(d.Number), d.Name, string(d.Type), strconv.Itoa(d.Sign)}
	return append(row, amountCells(d.Amounts)...)
}

func kpiRow(k model.KpiResult) []string {
	return []string{k.Name, k.Expression, string(k.Field), k.Format, k.Value.StringFixed(kpiPlaces)}
}

func unmappedRow(b model.Balance) []string {
	row := []string{strconv.Itoa(b.Account), b.Name}
	return append(row, amountCells(b.Amounts)...)
}

func writeCSV[T any](w io.Writer, header []string, items []T, row func(T) []string) error {
	cw := schema.NewWriter(w, schema.Comma)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, item := range items {
		if err := cw.Write(row(item)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteStatementCSV writes the statement lines in ascending order.
func WriteStatementCSV(w io.Writer, lines []model.StatementLine) error {
	return writeCSV(w, statementHeader, lines, statementRow)
}

// WriteAccountsCSV writes the account-level drilldown.
func WriteAccountsCSV(w io.Writer, accounts []statement.AccountDetail) error {
	return writeCSV(w, accountHeader, accounts, accountRow)
}

// WriteLineDetailsCSV writes the signed detail-line values.
func WriteLineDetailsCSV(w io.Writer, details []statement.LineDetail) error {
	return writeCSV(w, detailHeader, details, detailRow)
}

// WriteKPICSV writes evaluated key figures.
func WriteKPICSV(w io.Writer, results []model.KpiResult) error {
	return writeCSV(w, kpiHeader, results, kpiRow)
}

// WriteUnmappedCSV writes the trial balance rows that matched no line.
func WriteUnmappedCSV(w io.Writer, unmapped []model.Balance) error {
	return writeCSV(w, unmappedHeader, unmapped, unmappedRow)
}
