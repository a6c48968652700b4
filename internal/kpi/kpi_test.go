package kpi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cleared-dev/regnskap/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func closing(n int, v string) model.StatementLine {
	return model.StatementLine{Number: n, Amounts: model.Amounts{Closing: d(v)}}
}

func rpnString(tokens []Token) string {
	parts := make([]string, len(tokens))
	for i, t := range tokens {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

func TestTokenize_Lenient(t *testing.T) {
	tokens := Tokenize("#10 - [20] ) abc")
	assert.Equal(t, "10 - 20 )", rpnString(tokens))
}

func TestTokenize_Unary(t *testing.T) {
	assert.Equal(t, "neg 10 / ( neg 20 )", rpnString(Tokenize("-10/(-20)")))
	assert.Equal(t, "10 - neg 20", rpnString(Tokenize("10 - -20")))
}

func TestToRPN(t *testing.T) {
	tests := []struct {
		expr string
		want string
	}{
		{"10+20*30", "10 20 30 * +"},
		{"(10+20)*30", "10 20 + 30 *"},
		{"10-20-30", "10 20 - 30 -"},
		{"10/20/30", "10 20 / 30 /"},
		{"-10*2", "10 neg 2 *"},
		{"660/-810", "660 810 neg /"},
		{"((10)", "10"},
		{"10)+20", "10 20 +"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, rpnString(ToRPN(Tokenize(tt.expr))), "ToRPN(%q)", tt.expr)
	}
}

func TestEvaluateExpression(t *testing.T) {
	lookup := map[int]model.Amounts{
		10: {Closing: d("1000"), Opening: d("800")},
		20: {Closing: d("400")},
		30: {Closing: d("2")},
	}
	tests := []struct {
		expr  string
		field model.Field
		want  string
	}{
		{"10-20", model.FieldClosing, "600"},
		{"(10-20)/10", model.FieldClosing, "0.6"},
		{"10+20*30", model.FieldClosing, "1800"},
		{"10", model.FieldOpening, "800"},
		{"10+999", model.FieldClosing, "1000"},
		{"-20", model.FieldClosing, "-400"},
		{"10/-30", model.FieldClosing, "-500"},
		{"", model.FieldClosing, "0"},
		{"+", model.FieldClosing, "0"},
		{"10*", model.FieldClosing, "0"},
		{"10", model.FieldUnknown, "0"},
	}
	for _, tt := range tests {
		got := EvaluateExpression(tt.expr, tt.field, lookup)
		assert.True(t, d(tt.want).Equal(got), "%q: want %s, got %s", tt.expr, tt.want, got)
	}
}

func TestEvaluate_NearZeroDivisor(t *testing.T) {
	for _, zero := range []string{"0", "0.0000000000001", "-0.0000000000001"} {
		statement := []model.StatementLine{closing(1, "100"), closing(2, zero)}
		defs := []model.KpiDefinition{{Name: "ratio", Expression: "1/2", Field: model.FieldClosing}}

		res := Evaluate(statement, defs)
		require.Len(t, res, 1)
		assert.True(t, res[0].Value.IsZero(), "divisor %s: got %s", zero, res[0].Value)
	}
}

func TestEvaluate_EchoesDefinition(t *testing.T) {
	statement := []model.StatementLine{closing(19, "200"), closing(80, "50")}
	defs := []model.KpiDefinition{{Name: "Driftsmargin", Expression: "80/19", Field: model.FieldClosing, Format: "0.0%"}}

	res := Evaluate(statement, defs)
	require.Len(t, res, 1)
	assert.Equal(t, "Driftsmargin", res[0].Name)
	assert.Equal(t, "80/19", res[0].Expression)
	assert.Equal(t, model.FieldClosing, res[0].Field)
	assert.Equal(t, "0.0%", res[0].Format)
	assert.True(t, d("0.25").Equal(res[0].Value))
}

func TestEvaluate_LastDuplicateWins(t *testing.T) {
	statement := []model.StatementLine{closing(10, "1"), closing(10, "5")}
	res := Evaluate(statement, []model.KpiDefinition{{Name: "x", Expression: "10", Field: model.FieldClosing}})
	assert.True(t, d("5").Equal(res[0].Value))
}

func TestEvaluate_DoesNotModifyInputs(t *testing.T) {
	statement := []model.StatementLine{closing(10, "1")}
	defs := DefaultDefinitions()
	before := len(defs)

	Evaluate(statement, defs)
	assert.Len(t, defs, before)
	assert.True(t, d("1").Equal(statement[0].Amounts.Closing))
}

func TestReadDefinitions(t *testing.T) {
	data := "Navn;Uttrykk;Felt;Format\nDriftsmargin;80/19;UB;0.0%\nIB-sjekk;10;ib;\nUten felt;10;;\n"
	defs, err := ReadDefinitions(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, defs, 3)

	assert.Equal(t, model.FieldClosing, defs[0].Field)
	assert.Equal(t, model.FieldOpening, defs[1].Field)
	assert.Equal(t, model.FieldClosing, defs[2].Field, "blank felt defaults to UB")
}

func TestReadDefinitions_Errors(t *testing.T) {
	_, err := ReadDefinitions(strings.NewReader("navn;felt\nx;UB\n"))
	assert.ErrorContains(t, err, "uttrykk")

	_, err = ReadDefinitions(strings.NewReader("navn;uttrykk;felt\nx;10;saldo\n"))
	assert.ErrorContains(t, err, "row 2")
}

func TestDefaultDefinitionsRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDefinitions(&buf, DefaultDefinitions()))

	got, err := ReadDefinitions(&buf)
	require.NoError(t, err)
	assert.Equal(t, DefaultDefinitions(), got)
}
