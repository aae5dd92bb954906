// Package report renders budget summaries for the command line.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"fjacquet/budget-ledger/internal/currencyutils"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/logging"
	"fjacquet/budget-ledger/internal/models"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// Supported output formats.
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
)

// SummaryRecord is the flat form of a summary row used by the CSV and JSON
// renderings.
type SummaryRecord struct {
	Category string          `csv:"Category" json:"category"`
	Sign     int             `csv:"Sign" json:"sign"`
	Budget   int64           `csv:"Budget" json:"budget"`
	Average  decimal.Decimal `csv:"Average" json:"average"`
	Net      decimal.Decimal `csv:"Net" json:"net"`
	Total    decimal.Decimal `csv:"Total" json:"total"`
	Jan      decimal.Decimal `csv:"Jan" json:"jan"`
	Feb      decimal.Decimal `csv:"Feb" json:"feb"`
	Mar      decimal.Decimal `csv:"Mar" json:"mar"`
	Apr      decimal.Decimal `csv:"Apr" json:"apr"`
	May      decimal.Decimal `csv:"May" json:"may"`
	Jun      decimal.Decimal `csv:"Jun" json:"jun"`
	Jul      decimal.Decimal `csv:"Jul" json:"jul"`
	Aug      decimal.Decimal `csv:"Aug" json:"aug"`
	Sep      decimal.Decimal `csv:"Sep" json:"sep"`
	Oct      decimal.Decimal `csv:"Oct" json:"oct"`
	Nov      decimal.Decimal `csv:"Nov" json:"nov"`
	Dec      decimal.Decimal `csv:"Dec" json:"dec"`
}

// NewSummaryRecord flattens a summary row.
func NewSummaryRecord(row models.SummaryRow) *SummaryRecord {
	m := row.Months
	return &SummaryRecord{
		Category: row.Category, Sign: row.Sign, Budget: row.Budget,
		Average: row.Average, Net: row.Net, Total: row.Total,
		Jan: m[0], Feb: m[1], Mar: m[2], Apr: m[3], May: m[4], Jun: m[5],
		Jul: m[6], Aug: m[7], Sep: m[8], Oct: m[9], Nov: m[10], Dec: m[11],
	}
}

// Generator writes summaries in one of the supported formats.
type Generator struct {
	logger    logging.Logger
	delimiter rune
}

// NewGenerator creates a Generator. delimiter applies to CSV output; zero
// means comma.
func NewGenerator(logger logging.Logger, delimiter rune) *Generator {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	if delimiter == 0 {
		delimiter = ','
	}
	return &Generator{logger: logger, delimiter: delimiter}
}

// Render writes rows to w in format.
func (g *Generator) Render(w io.Writer, rows []models.SummaryRow, format string) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return g.renderTable(w, rows)
	case FormatCSV:
		return g.renderCSV(w, rows)
	case FormatJSON:
		return g.renderJSON(w, rows)
	default:
		return fmt.Errorf("unsupported report format: %s", format)
	}
}

func records(rows []models.SummaryRow) []*SummaryRecord {
	out := make([]*SummaryRecord, len(rows))
	for i, r := range rows {
		out[i] = NewSummaryRecord(r)
	}
	return out
}

func (g *Generator) renderCSV(w io.Writer, rows []models.SummaryRow) error {
	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = g.delimiter
	recs := records(rows)
	if err := gocsv.MarshalCSV(&recs, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		g.logger.WithError(err).Error("Failed to write CSV report")
		return fmt.Errorf("failed to write CSV report: %w", err)
	}
	return nil
}

func (g *Generator) renderJSON(w io.Writer, rows []models.SummaryRow) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records(rows)); err != nil {
		g.logger.WithError(err).Error("Failed to write JSON report")
		return fmt.Errorf("failed to write JSON report: %w", err)
	}
	return nil
}

// renderTable writes an aligned table with one line per category followed by
// a NET line that sums the signed net of every category.
func (g *Generator) renderTable(w io.Writer, rows []models.SummaryRow) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"Category", "Budget", "Average", "Net", "Total"}
	header = append(header, dateutils.MonthNames[:]...)
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	net := decimal.Zero
	for _, r := range rows {
		cells := []string{
			r.Category,
			currencyutils.FormatAmount(decimal.NewFromInt(r.Budget)),
			currencyutils.FormatAmount(r.Average),
			currencyutils.FormatAmount(r.Net),
			currencyutils.FormatAmount(r.Total),
		}
		for _, m := range r.Months {
			cells = append(cells, currencyutils.FormatAmount(m))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t")+"\t")
		net = net.Add(r.Net)
	}
	fmt.Fprintf(tw, "NET\t\t\t%s\t\t\n", currencyutils.FormatAmount(net))

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
