package statement

import (
	"github.com/rs/zerolog"
)

// WarningKind classifies a Warning.
type WarningKind string

const (
	WarnUnmappedAccounts  WarningKind = "unmapped-accounts"
	WarnIntervalOverlap   WarningKind = "interval-overlap"
	WarnDetailLevel       WarningKind = "detail-level"
	WarnEmptyMapping      WarningKind = "empty-mapping"
	WarnFormulaForwardRef WarningKind = "formula-forward-ref"
	WarnFormulaEmpty      WarningKind = "formula-empty"
	WarnUnknownReference  WarningKind = "unknown-reference"
	WarnBalanceMismatch   WarningKind = "balance-mismatch"
	WarnMappedToNonDetail WarningKind = "mapped-to-non-detail"
)

// Warning is a soft problem found during a build. The statement is still
// produced.
type Warning struct {
	Kind     WarningKind
	Message  string
	Lines    []int
	Accounts []int
}

// Diagnostics is returned next to every statement.
type Diagnostics struct {
	DetailLevel    int
	SourceAccounts int
	MappedAccounts int
	Warnings       []Warning
}

// UnmappedCount is the number of distinct source accounts without a line.
func (d Diagnostics) UnmappedCount() int {
	return d.SourceAccounts - d.MappedAccounts
}

// ByKind returns the warnings of one kind.
func (d Diagnostics) ByKind(kind WarningKind) []Warning {
	var out []Warning
	for _, w := range d.Warnings {
		if w.Kind == kind {
			out = append(out, w)
		}
	}
	return out
}

// Has reports whether any warning of kind was recorded.
func (d Diagnostics) Has(kind WarningKind) bool {
	return len(d.ByKind(kind)) > 0
}

func (d *Diagnostics) add(ws ...Warning) {
	d.Warnings = append(d.Warnings, ws...)
}

func (d Diagnostics) log(log zerolog.Logger) {
	for _, w := range d.Warnings {
		ev := log.Warn().Str("kind", string(w.Kind))
		if len(w.Lines) > 0 {
			ev = ev.Ints("lines", w.Lines)
		}
		if len(w.Accounts) > 0 {
			ev = ev.Ints("accounts", w.Accounts)
		}
		ev.Msg(w.Message)
	}
}
