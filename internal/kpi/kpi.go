// Package kpi evaluates key figures: arithmetic expressions whose numbers
// are statement line references.
package kpi

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/cleared-dev/regnskap/internal/model"
)

// TokenKind classifies a Token.
type TokenKind int

const (
	TokenLine TokenKind = iota
	TokenOp
	TokenLParen
	TokenRParen
)

// Operators. OpNeg is unary minus.
const (
	OpAdd = '+'
	OpSub = '-'
	OpMul = '*'
	OpDiv = '/'
	OpNeg = '~'
)

// Token is one element of a KPI expression.
type Token struct {
	Kind TokenKind
	Line int  // TokenLine
	Op   byte // TokenOp
}

func (t Token) String() string {
	switch t.Kind {
	case TokenLine:
		return strconv.Itoa(t.Line)
	case TokenOp:
		if t.Op == OpNeg {
			return "neg"
		}
		return string(t.Op)
	case TokenLParen:
		return "("
	default:
		return ")"
	}
}

// divisorEpsilon is the magnitude below which a divisor counts as zero.
var divisorEpsilon = decimal.New(1, -12)

// Tokenize splits expr into line references, operators and parentheses.
// Anything else, whitespace included, is skipped, so "#10 - #20" reads as
// 10 - 20. A minus at the start, after an operator or after "(" is unary.
func Tokenize(expr string) []Token {
	var tokens []Token
	for i := 0; i < len(expr); {
		c := expr[i]
		switch {
		case c >= '0' && c <= '9':
			j := i
			for j < len(expr) && expr[j] >= '0' && expr[j] <= '9' {
				j++
			}
			n, err := strconv.Atoi(expr[i:j])
			if err == nil {
				tokens = append(tokens, Token{Kind: TokenLine, Line: n})
			}
			i = j
			continue
		case c == '-' && unaryPosition(tokens):
			tokens = append(tokens, Token{Kind: TokenOp, Op: OpNeg})
		case c == '+' || c == '-' || c == '*' || c == '/':
			tokens = append(tokens, Token{Kind: TokenOp, Op: c})
		case c == '(':
			tokens = append(tokens, Token{Kind: TokenLParen})
		case c == ')':
			tokens = append(tokens, Token{Kind: TokenRParen})
		}
		i++
	}
	return tokens
}

func unaryPosition(prev []Token) bool {
	if len(prev) == 0 {
		return true
	}
	k := prev[len(prev)-1].Kind
	return k == TokenOp || k == TokenLParen
}

func precedence(op byte) int {
	switch op {
	case OpNeg:
		return 3
	case OpMul, OpDiv:
		return 2
	default:
		return 1
	}
}

// ToRPN reorders tokens into reverse Polish notation (shunting-yard).
// Unbalanced parentheses are dropped rather than reported.
func ToRPN(tokens []Token) []Token {
	var out, stack []Token
	for _, t := range tokens {
		switch t.Kind {
		case TokenLine:
			out = append(out, t)
		case TokenOp:
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if top.Kind != TokenOp {
					break
				}
				// Unary minus is right-associative.
				if t.Op == OpNeg && top.Op == OpNeg {
					break
				}
				if precedence(top.Op) < precedence(t.Op) {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, t)
		case TokenLParen:
			stack = append(stack, t)
		case TokenRParen:
			for len(stack) > 0 && stack[len(stack)-1].Kind != TokenLParen {
				out = append(out, stack[len(stack)-1])
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	for len(stack) > 0 {
		if top := stack[len(stack)-1]; top.Kind == TokenOp {
			out = append(out, top)
		}
		stack = stack[:len(stack)-1]
	}
	return out
}

// EvalRPN evaluates rpn, resolving each line reference through lookup.
// A binary operator short of operands pushes zero, and so does division by
// a divisor within 1e-12 of zero. An empty expression is zero.
func EvalRPN(rpn []Token, lookup func(line int) decimal.Decimal) decimal.Decimal {
	var st []decimal.Decimal
	for _, t := range rpn {
		switch {
		case t.Kind == TokenLine:
			st = append(st, lookup(t.Line))
		case t.Kind == TokenOp && t.Op == OpNeg:
			if len(st) == 0 {
				st = append(st, decimal.Zero)
				continue
			}
			st[len(st)-1] = st[len(st)-1].Neg()
		case t.Kind == TokenOp:
			if len(st) < 2 {
				st = append(st, decimal.Zero)
				continue
			}
			a, b := st[len(st)-2], st[len(st)-1]
			st = st[:len(st)-2]
			st = append(st, apply(t.Op, a, b))
		}
	}
	if len(st) == 0 {
		return decimal.Zero
	}
	return st[len(st)-1]
}

func apply(op byte, a, b decimal.Decimal) decimal.Decimal {
	switch op {
	case OpAdd:
		return a.Add(b)
	case OpSub:
		return a.Sub(b)
	case OpMul:
		return a.Mul(b)
	case OpDiv:
		if b.Abs().LessThan(divisorEpsilon) {
			return decimal.Zero
		}
		return a.Div(b)
	default:
		return decimal.Zero
	}
}

// EvaluateExpression evaluates expr against statement lines using field.
func EvaluateExpression(expr string, field model.Field, lookup map[int]model.Amounts) decimal.Decimal {
	return EvalRPN(ToRPN(Tokenize(expr)), func(line int) decimal.Decimal {
		a, ok := lookup[line]
		if !ok {
			return decimal.Zero
		}
		return a.Field(field)
	})
}

// Evaluate computes every definition against the statement. When a line
// number occurs more than once in statement, the last row wins.
func Evaluate(statement []model.StatementLine, defs []model.KpiDefinition) []model.KpiResult {
	lookup := make(map[int]model.Amounts, len(statement))
	for _, l := range statement {
		lookup[l.Number] = l.Amounts
	}

	out := make([]model.KpiResult, 0, len(defs))
	for _, d := range defs {
		out = append(out, model.KpiResult{
			Name:       d.Name,
			Expression: d.Expression,
			Field:      d.Field,
			Format:     d.Format,
			Value:      EvaluateExpression(d.Expression, d.Field, lookup),
		})
	}
	return out
}
