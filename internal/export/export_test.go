package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/cleared-dev/regnskap/internal/model"
	"github.com/cleared-dev/regnskap/internal/statement"
)

func amt(o, m, c string) model.Amounts {
	return model.NewAmounts(
		decimal.RequireFromString(o),
		decimal.RequireFromString(m),
		decimal.RequireFromString(c),
	)
}

func testResult() *statement.Result {
	return &statement.Result{
		BuildID: "test",
		Lines: []model.StatementLine{
			{Number: 10, Name: "Salgsinntekt", Type: model.StatementResult, Level: 1, Amounts: amt("0", "500000", "500000")},
			{Number: 19, Name: "Sum inntekter", Type: model.StatementResult, Level: 2, IsSubtotal: true, IndentLevel: 2, Amounts: amt("0", "500000", "500000")},
			{Number: 80, Name: "Driftsresultat", Type: model.StatementResult, Level: model.NoLevel, Amounts: amt("0", "40000.125", "40000.125"), Formula: "=19-79"},
		},
		Accounts: []statement.AccountDetail{
			{Account: 3000, Name: "Salg", Line: 10, Amounts: amt("0", "-500000", "-500000")},
		},
		LineDetails: []statement.LineDetail{
			{Number: 10, Name: "Salgsinntekt", Type: model.StatementResult, Sign: -1, Amounts: amt("0", "500000", "500000")},
		},
		Unmapped: []model.Balance{
			{Account: 8400, Name: "Gammel konto", Amounts: amt("1.5", "0", "1.5")},
		},
		KPIs: []model.KpiResult{
			{Name: "Driftsmargin", Expression: "80/19", Field: model.FieldClosing, Format: "0.0%", Value: decimal.RequireFromString("0.08000025")},
		},
	}
}

func TestWriteStatementCSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteStatementCSV(&b, testResult().Lines))

	want := "nr;regnskapslinje;regnskapstype;sumnivå;innrykk;ib;endring;ub;formel\n" +
		"10;Salgsinntekt;Resultat;1;0;0.00;500000.00;500000.00;\n" +
		"19;Sum inntekter;Resultat;2;2;0.00;500000.00;500000.00;\n" +
		"80;Driftsresultat;Resultat;;0;0.00;40000.13;40000.13;=19-79\n"
	assert.Equal(t, want, b.String())
}

func TestWriteKPICSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteKPICSV(&b, testResult().KPIs))
	assert.Equal(t, "navn;uttrykk;felt;format;verdi\nDriftsmargin;80/19;UB;0.0%;0.0800\n", b.String())
}

func TestWriteUnmappedCSV(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteUnmappedCSV(&b, testResult().Unmapped))
	assert.Equal(t, "konto;kontonavn;ib;endring;ub\n8400;Gammel konto;1.50;0.00;1.50\n", b.String())
}

func TestWriteUnmappedCSV_Empty(t *testing.T) {
	var b bytes.Buffer
	require.NoError(t, WriteUnmappedCSV(&b, nil))
	assert.Equal(t, "konto;kontonavn;ib;endring;ub\n", b.String())
}

func TestWriteAccountsAndDetailsCSV(t *testing.T) {
	res := testResult()

	var acc bytes.Buffer
	require.NoError(t, WriteAccountsCSV(&acc, res.Accounts))
	assert.Contains(t, acc.String(), "3000;Salg;10;0.00;-500000.00;-500000.00\n")

	var det bytes.Buffer
	require.NoError(t, WriteLineDetailsCSV(&det, res.LineDetails))
	assert.Contains(t, det.String(), "10;Salgsinntekt;Resultat;-1;0.00;500000.00;500000.00\n")
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, testResult()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{SheetStatement, SheetAccounts, SheetDetails, SheetKPI, SheetUnmapped}, f.GetSheetList())

	rows, err := f.GetRows(SheetStatement, excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, "nr", rows[0][0])
	assert.Equal(t, []string{"80", "Driftsresultat", "Resultat", "", "0", "0", "40000.13", "40000.13", "=19-79"}, rows[3])

	v, err := f.GetCellValue(SheetKPI, "E2", excelize.Options{RawCellValue: true})
	require.NoError(t, err)
	assert.Equal(t, "0.08", v)

	v, err = f.GetCellValue(SheetUnmapped, "A2")
	require.NoError(t, err)
	assert.Equal(t, "8400", v)
}

func TestWriteFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ut")
	written, err := WriteFiles(dir, testResult(), []string{"csv", "XLSX"})
	require.NoError(t, err)
	assert.Len(t, written, 6)
	assert.Equal(t, filepath.Join(dir, FileWorkbook), written[5])

	data, err := os.ReadFile(filepath.Join(dir, FileStatement))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "nr;regnskapslinje"))

	_, err = WriteFiles(dir, testResult(), []string{"pdf"})
	assert.ErrorContains(t, err, `unknown output format "pdf"`)
}
