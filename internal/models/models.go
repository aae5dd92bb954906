// Package models provides the data structures used throughout the application.
// Records are passive; cross-table edits go through the reconciler.
package models

import (
	"fmt"
	"strings"
)

// Unassigned is the sentinel keyword, category and sub-category of a
// transaction that no rule has claimed yet.
const Unassigned = "unassigned"

// legacyUnassigned is how older archives spell the sentinel.
const legacyUnassigned = "None"

// NormalizeSentinel maps empty and legacy sentinel spellings to Unassigned.
func NormalizeSentinel(s string) string {
	t := strings.TrimSpace(s)
	if t == "" || t == legacyUnassigned || strings.EqualFold(t, Unassigned) {
		return Unassigned
	}
	return t
}

// NormalizeCategory upper-cases a budget category name.
func NormalizeCategory(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// Kind tags which transaction collection a store holds.
type Kind int

const (
	Ledger Kind = iota
	Imports
	Duplicates
)

func (k Kind) String() string {
	switch k {
	case Ledger:
		return "Ledger"
	case Imports:
		return "Imports"
	case Duplicates:
		return "Duplicates"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ParseKind parses a store name, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "ledger":
		return Ledger, nil
	case "imports", "import":
		return Imports, nil
	case "duplicates", "duplicate":
		return Duplicates, nil
	}
	return 0, fmt.Errorf("unknown transaction store %q", s)
}

// Date is a calendar date without time of day.
type Date struct {
	Year  int
	Month int
	Day   int
}

func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}
