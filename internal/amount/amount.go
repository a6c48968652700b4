package amount

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

var (
	spaceReplacer = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "\t", "")
	decimalComma  = regexp.MustCompile(`,\d{1,2}$`)
	digitRun      = regexp.MustCompile(`\d+`)
)

// Parse converts an amount in Norwegian or English notation to a decimal.
// "1 234,50", "1.234,50", "1234.50", "-12,5", "12,50-" and "(12,50)" are
// all accepted. A blank string is zero.
func Parse(s string) (decimal.Decimal, error) {
	raw := spaceReplacer.Replace(strings.TrimSpace(s))
	if raw == "" {
		return decimal.Zero, nil
	}

	negative := false
	switch {
	case strings.HasPrefix(raw, "(") && strings.HasSuffix(raw, ")"):
		negative = true
		raw = raw[1 : len(raw)-1]
	case strings.HasSuffix(raw, "-") && len(raw) > 1:
		negative = true
		raw = raw[:len(raw)-1]
	}

	if decimalComma.MatchString(raw) {
		raw = strings.ReplaceAll(raw, ".", "")
		raw = strings.ReplaceAll(raw, ",", ".")
	} else if strings.Contains(raw, ",") && strings.Contains(raw, ".") {
		// 1,234.56
		raw = strings.ReplaceAll(raw, ",", "")
	}

	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	if negative {
		d = d.Neg()
	}
	return d, nil
}

// ParseNumber extracts the first run of digits from s, so "10", "10.0" and
// "nr 10" all give 10. ok is false when s holds no digits.
func ParseNumber(s string) (n int, ok bool) {
	m := digitRun.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ParseAccount parses an account or line number that must be a plain integer,
// tolerating a trailing ".0" left by spreadsheet exports.
func ParseAccount(s string) (int, error) {
	v := strings.TrimSpace(s)
	v = strings.TrimSuffix(v, ".0")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q: %w", s, err)
	}
	return n, nil
}

// ParseBool reads the yes/no spellings used in definition files.
// ok is false for blank or unrecognised input.
func ParseBool(s string) (v bool, ok bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ja", "j", "yes", "y", "true", "sant", "1", "x":
		return true, true
	case "nei", "n", "no", "false", "usant", "0":
		return false, true
	default:
		return false, false
	}
}
