package statement

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrChainCycle is matched by every *ChainCycleError.
	ErrChainCycle = errors.New("cycle in line definitions")
	// ErrMappingIncomplete is matched by every *MappingIncompleteError.
	ErrMappingIncomplete = errors.New("mapping incomplete")
)

// CycleKind tells which reference graph a cycle was found in.
type CycleKind string

const (
	CycleParent  CycleKind = "parent"
	CycleFormula CycleKind = "formula"
)

// ChainCycleError reports line numbers that reference each other in a loop.
// Lines lists the cycle in traversal order, starting from its lowest line.
type ChainCycleError struct {
	Kind  CycleKind
	Lines []int
}

func (e *ChainCycleError) Error() string {
	parts := make([]string, len(e.Lines))
	for i, n := range e.Lines {
		parts[i] = strconv.Itoa(n)
	}
	return fmt.Sprintf("%s cycle between lines %s", e.Kind, strings.Join(parts, " -> "))
}

func (e *ChainCycleError) Unwrap() error { return ErrChainCycle }

// MappingIncompleteError is returned in strict mode when accounts are left
// unmapped.
type MappingIncompleteError struct {
	Accounts []int
}

func (e *MappingIncompleteError) Error() string {
	const show = 10
	parts := make([]string, 0, show)
	for i, a := range e.Accounts {
		if i == show {
			parts = append(parts, "...")
			break
		}
		parts = append(parts, strconv.Itoa(a))
	}
	return fmt.Sprintf("%d unmapped account(s): %s", len(e.Accounts), strings.Join(parts, ", "))
}

func (e *MappingIncompleteError) Unwrap() error { return ErrMappingIncomplete }
