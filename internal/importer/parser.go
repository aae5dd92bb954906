// Package importer turns bank export files into transactions, merges them
// into the Imports or Ledger store with duplicate detection, and accepts
// categorized imports into the Ledger.
package importer

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"
)

// Parser reads one bank export and returns unassigned transactions with
// their stable identifiers computed. A parser either returns every record
// of the file or a *budgeterror.ParseError.
type Parser interface {
	Parse(r io.Reader) ([]models.Transaction, error)
}

// Format names a bank export shape.
type Format string

const (
	FormatAuto Format = "auto"
	FormatCSV  Format = "csv"
	FormatOFX  Format = "ofx"
)

// ParseFormat parses a format name, case-insensitively. Empty means auto.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatAuto, nil
	case FormatAuto, FormatCSV, FormatOFX:
		return f, nil
	case "qfx":
		return FormatOFX, nil
	}
	return "", fmt.Errorf("unknown import format: %s", s)
}

// DetectFormat guesses the format of a file from its name, then from its
// first bytes.
func DetectFormat(source string, head []byte) Format {
	switch strings.ToLower(filepath.Ext(source)) {
	case ".ofx", ".qfx":
		return FormatOFX
	case ".csv":
		return FormatCSV
	}
	upper := bytes.ToUpper(head)
	if bytes.Contains(upper, []byte("OFXHEADER")) || bytes.Contains(upper, []byte("<OFX>")) {
		return FormatOFX
	}
	return FormatCSV
}

// GetParser returns the parser for format. source names the input in
// errors; delimiter applies to CSV only.
func GetParser(format Format, source string, delimiter rune) (Parser, error) {
	switch format {
	case FormatCSV:
		return &CSVParser{Source: source, Delimiter: delimiter}, nil
	case FormatOFX:
		return &OFXParser{Source: source}, nil
	default:
		return nil, fmt.Errorf("unknown import format: %s", format)
	}
}

// Parse reads r fully and parses it with the parser for format, detecting
// the format first when it is FormatAuto.
func Parse(r io.Reader, source string, format Format, delimiter rune) ([]models.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &budgeterror.ParseError{Source: source, Err: err}
	}
	if format == FormatAuto || format == "" {
		format = DetectFormat(source, data[:min(len(data), 512)])
	}
	p, err := GetParser(format, source, delimiter)
	if err != nil {
		return nil, err
	}
	return p.Parse(bytes.NewReader(data))
}

var memoPunctuation = regexp.MustCompile(`[-,.*#&'` + regexp.QuoteMeta(models.IDDelimiter) + `]`)

// CleanMemo strips the punctuation bank exports scatter through
// descriptions. The identifier delimiter is always removed.
func CleanMemo(memo string) string {
	return strings.TrimSpace(memoPunctuation.ReplaceAllString(memo, ""))
}

// checkYear rejects dates in or before dateutils.MinYear.
func checkYear(source string, row int, field, value string, date models.Date) error {
	if date.Year <= dateutils.MinYear {
		return &budgeterror.ParseError{Source: source, Row: row, Field: field, Value: value,
			Err: fmt.Errorf("year must be after %d", dateutils.MinYear)}
	}
	return nil
}
