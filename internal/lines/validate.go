package lines

import (
	"fmt"

	"github.com/cleared-dev/regnskap/internal/model"
)

// ValidationError describes a single problem in a definitions table.
type ValidationError struct {
	Rule        int
	Line        int
	Description string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("rule %d [line %d]: %s", e.Rule, e.Line, e.Description)
}

// Validate checks a definitions table. None of the problems stop a build;
// they explain surprising output.
func Validate(defs []model.Line) []ValidationError {
	var errs []ValidationError

	known := make(map[int]bool, len(defs))
	for _, l := range defs {
		// Rule 1: positive, unique line numbers.
		if l.Number <= 0 {
			errs = append(errs, ValidationError{Rule: 1, Line: l.Number, Description: "line number must be positive"})
		} else if known[l.Number] {
			errs = append(errs, ValidationError{Rule: 1, Line: l.Number, Description: "duplicate line number"})
		}
		known[l.Number] = true
	}

	for _, l := range defs {
		// Rule 2: parent pointers reference defined lines.
		for _, p := range l.Parents() {
			if p != 0 && !known[p] {
				errs = append(errs, ValidationError{Rule: 2, Line: l.Number, Description: fmt.Sprintf("parent %d is not defined", p)})
			}
		}

		// Rule 3: a sum line has no parents of its own; only detail lines are summed.
		if l.IsSubtotal && l.Parents() != [4]int{} {
			errs = append(errs, ValidationError{Rule: 3, Line: l.Number, Description: "sum line has parent pointers, which are ignored"})
		}

		// Rule 4: sign only matters on result lines.
		if l.Sign < 0 && l.Type != model.StatementResult {
			errs = append(errs, ValidationError{Rule: 4, Line: l.Number, Description: "negative sign on a non-result line is ignored"})
		}
	}
	return errs
}
