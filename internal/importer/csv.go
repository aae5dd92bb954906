package importer

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-ledger/internal/budgeterror"
	"fjacquet/budget-ledger/internal/currencyutils"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Column names recognized in bank CSV exports.
const (
	ColumnDescription = "Description"
	ColumnAmount      = "Amount"
	ColumnCredit      = "Credit"
	ColumnDebit       = "Debit"
)

// DateColumns are the accepted names of the date column, in order of
// preference.
var DateColumns = []string{"Trans. Date", "Transaction Date", "Date"}

// bankRow is one data row after the detected columns have been renamed to
// these canonical tags.
type bankRow struct {
	Date   string `csv:"_date"`
	Memo   string `csv:"_memo"`
	Amount string `csv:"_amount"`
	Credit string `csv:"_credit"`
	Debit  string `csv:"_debit"`
}

// CSVParser parses delimited bank exports. The header is the first row
// with no empty field; anything above it (account banners, blank lines)
// is skipped.
type CSVParser struct {
	Source    string
	Delimiter rune
}

// columns records where the recognized fields sit in the header.
type columns struct {
	date, memo, amount, credit, debit int
	dateName                          string
}

func (p *CSVParser) Parse(r io.Reader) ([]models.Transaction, error) {
	reader := csv.NewReader(skipBOM(r))
	if p.Delimiter != 0 {
		reader.Comma = p.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var (
		header []string
		rows   [][]string
		lines  []int
	)
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &budgeterror.ParseError{Source: p.Source, Err: err}
		}
		line, _ := reader.FieldPos(0)
		if header == nil {
			if complete(record) {
				header = record
			}
			continue
		}
		if blank(record) {
			continue
		}
		rows = append(rows, record)
		lines = append(lines, line)
	}
	if header == nil {
		return nil, &budgeterror.ParseError{Source: p.Source, Err: budgeterror.ErrNoUsableRow}
	}

	cols, err := p.locate(header)
	if err != nil {
		return nil, err
	}

	decoded, err := decode(cols, len(header), rows)
	if err != nil {
		return nil, &budgeterror.ParseError{Source: p.Source, Err: err}
	}

	txs := make([]models.Transaction, 0, len(decoded))
	for k, row := range decoded {
		tx, err := p.convert(cols, lines[k], row)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (p *CSVParser) locate(header []string) (columns, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(name)
		if _, seen := index[name]; !seen {
			index[name] = i
		}
	}

	cols := columns{date: -1, memo: -1, amount: -1, credit: -1, debit: -1}
	for _, name := range DateColumns {
		if i, ok := index[name]; ok {
			cols.date, cols.dateName = i, name
			break
		}
	}
	if cols.date < 0 {
		return cols, &budgeterror.ParseError{Source: p.Source, Field: "date column",
			Err: fmt.Errorf("expected one of %s", strings.Join(DateColumns, ", "))}
	}

	i, ok := index[ColumnDescription]
	if !ok {
		return cols, &budgeterror.ParseError{Source: p.Source, Field: "description column",
			Err: fmt.Errorf("expected %s", ColumnDescription)}
	}
	cols.memo = i

	credit, hasCredit := index[ColumnCredit]
	debit, hasDebit := index[ColumnDebit]
	amount, hasAmount := index[ColumnAmount]
	switch {
	case hasCredit && hasDebit:
		cols.credit, cols.debit = credit, debit
	case hasAmount:
		cols.amount = amount
	default:
		return cols, &budgeterror.ParseError{Source: p.Source, Field: "amount column",
			Err: fmt.Errorf("expected %s or a %s/%s pair", ColumnAmount, ColumnCredit, ColumnDebit)}
	}
	return cols, nil
}

// decode renames the recognized columns to bankRow's tags and unmarshals
// the rows with gocsv.
func decode(cols columns, width int, rows [][]string) ([]*bankRow, error) {
	header := make([]string, width)
	for i := range header {
		header[i] = fmt.Sprintf("_col%d", i)
	}
	rename := map[int]string{cols.date: "_date", cols.memo: "_memo", cols.amount: "_amount",
		cols.credit: "_credit", cols.debit: "_debit"}
	for i, name := range rename {
		if i >= 0 {
			header[i] = name
		}
	}

	records := make([][]string, 0, len(rows)+1)
	records = append(records, header)
	for _, row := range rows {
		fitted := make([]string, width)
		copy(fitted, row)
		records = append(records, fitted)
	}

	var decoded []*bankRow
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &decoded); err != nil {
		return nil, err
	}
	return decoded, nil
}

func (p *CSVParser) convert(cols columns, line int, row *bankRow) (models.Transaction, error) {
	date, _, err := dateutils.ParseDate(row.Date)
	if err != nil {
		return models.Transaction{}, &budgeterror.ParseError{Source: p.Source, Row: line,
			Field: cols.dateName, Value: row.Date, Err: err}
	}
	if err := checkYear(p.Source, line, cols.dateName, row.Date, date); err != nil {
		return models.Transaction{}, err
	}

	var amount decimal.Decimal
	if cols.amount >= 0 {
		amount, err = p.amount(line, ColumnAmount, row.Amount)
		if err != nil {
			return models.Transaction{}, err
		}
	} else {
		credit, err := p.amount(line, ColumnCredit, row.Credit)
		if err != nil {
			return models.Transaction{}, err
		}
		debit, err := p.amount(line, ColumnDebit, row.Debit)
		if err != nil {
			return models.Transaction{}, err
		}
		amount = credit.Sub(debit)
	}

	return models.NewTransaction(date, CleanMemo(row.Memo), amount), nil
}

func (p *CSVParser) amount(line int, field, value string) (decimal.Decimal, error) {
	amount, err := currencyutils.ParseAmount(value)
	if err != nil {
		return decimal.Zero, &budgeterror.ParseError{Source: p.Source, Row: line,
			Field: field, Value: value, Err: err}
	}
	return amount, nil
}

// byteOrderMark is the UTF-8 encoding of U+FEFF, written at the start of
// many bank exports.
const byteOrderMark = "\xef\xbb\xbf"

// skipBOM drops a leading UTF-8 byte order mark.
func skipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(byteOrderMark)); err == nil && string(head) == byteOrderMark {
		_, _ = br.Discard(len(byteOrderMark))
	}
	return br
}

// complete reports whether every field of record is populated.
func complete(record []string) bool {
	if len(record) == 0 {
		return false
	}
	for _, field := range record {
		if strings.TrimSpace(field) == "" {
			return false
		}
	}
	return true
}

func blank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}

// recordReader serves already split records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	record := r.records[r.pos]
	r.pos++
	return record, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}
