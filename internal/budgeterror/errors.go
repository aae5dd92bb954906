// Package budgeterror defines the error types returned by the budget engine.
package budgeterror

import (
	"errors"
	"fmt"
)

// ValidationError reports a single-field edit that failed a type or range check.
// The field keeps its prior committed value.
type ValidationError struct {
	Table  string
	Column string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s '%s': %s", e.Table, e.Column, e.Value, e.Reason)
}

// ReferentialError reports a reference to a category or keyword that does not
// exist, or a name that would collide with an existing one.
type ReferentialError struct {
	Kind   string // "category" or "keyword"
	Name   string
	Reason string
}

func (e *ReferentialError) Error() string {
	return fmt.Sprintf("%s '%s': %s", e.Kind, e.Name, e.Reason)
}

// ParseError represents an import file that could not be parsed. Nothing from
// the file is merged when it is returned.
type ParseError struct {
	Source string
	Row    int // 1-based line number, 0 when not tied to a row
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Row > 0 && e.Field != "":
		return fmt.Sprintf("%s: row %d: failed to parse %s='%s': %v",
			e.Source, e.Row, e.Field, e.Value, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s: failed to parse %s: %v", e.Source, e.Field, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ConsistencyError signals a violated internal invariant. It indicates a bug,
// not bad input.
type ConsistencyError struct {
	Check  string
	Detail string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("consistency check %s failed: %s", e.Check, e.Detail)
}

// ErrNoUsableRow is wrapped by ParseError when an import file has no row with
// every field populated.
var ErrNoUsableRow = errors.New("no usable header row found")

// IsUserError reports whether err is a recoverable input error
// (ValidationError or ReferentialError).
func IsUserError(err error) bool {
	var ve *ValidationError
	var re *ReferentialError
	return errors.As(err, &ve) || errors.As(err, &re)
}
