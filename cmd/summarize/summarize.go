// Package summarize implements the summarize command
package summarize

import (
	"fmt"
	"io"
	"strings"

	"fjacquet/budget-ledger/cmd/common"
	"fjacquet/budget-ledger/cmd/root"
	"fjacquet/budget-ledger/internal/book"
	"fjacquet/budget-ledger/internal/dateutils"
	"fjacquet/budget-ledger/internal/fileutils"
	"fjacquet/budget-ledger/internal/models"
	"fjacquet/budget-ledger/internal/validation"

	"github.com/spf13/cobra"
)

var (
	year      string
	from      string
	to        string
	format    string
	output    string
	listYears bool
)

// Cmd represents the summarize command
var Cmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize the Ledger per budget category and month",
	Long: `Summarize totals the Ledger per budget category and month over a year, every
year, or an explicit date range, and compares the monthly average with the
budget. The figures are also stored on the budget table.`,
	Args: cobra.NoArgs,
	RunE: run,
}

func init() {
	Cmd.Flags().StringVarP(&year, "year", "y", dateutils.AllYears, "Year to summarize, or All")
	Cmd.Flags().StringVar(&from, "from", "", "First date of an explicit range (overrides --year)")
	Cmd.Flags().StringVar(&to, "to", "", "Last date of an explicit range (overrides --year)")
	Cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format: table, csv or json")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "Write the summary to a file instead of stdout")
	Cmd.Flags().BoolVar(&listYears, "list-years", false, "List the year selections and exit")
}

func run(cmd *cobra.Command, args []string) error {
	c := root.GetContainer()
	if listYears {
		return common.ViewBook(c, func(b *book.Book) error {
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(dateutils.YearOptions(b.Years()), "\n"))
			return nil
		})
	}

	start, end, explicit, err := dateRange(from, to)
	if err != nil {
		return err
	}

	return common.UpdateBook(c, func(b *book.Book) error {
		var rows []models.SummaryRow
		var err error
		if explicit {
			rows, err = b.Summarize(start, end)
		} else {
			rows, err = b.SummarizeYear(year)
		}
		if err != nil {
			return err
		}
		return write(cmd.OutOrStdout(), func(w io.Writer) error {
			return c.GetReportGenerator().Render(w, rows, format)
		})
	})
}

// dateRange parses --from and --to. explicit is false when neither is set.
func dateRange(fromText, toText string) (start, end models.Date, explicit bool, err error) {
	if fromText == "" && toText == "" {
		return start, end, false, nil
	}
	if fromText == "" || toText == "" {
		return start, end, false, fmt.Errorf("--from and --to must be given together")
	}
	if start, _, err = dateutils.ParseDate(fromText); err != nil {
		return start, end, false, fmt.Errorf("invalid --from: %w", err)
	}
	if end, _, err = dateutils.ParseDate(toText); err != nil {
		return start, end, false, fmt.Errorf("invalid --to: %w", err)
	}
	if dateutils.Ordinal(end) < dateutils.Ordinal(start) {
		return start, end, false, fmt.Errorf("--to %s is before --from %s", end, start)
	}
	return start, end, true, nil
}

func write(stdout io.Writer, render func(io.Writer) error) error {
	if output == "" {
		return render(stdout)
	}
	if err := validation.IsValidOutputPath(output); err != nil {
		return err
	}
	f, err := fileutils.CreateFile(output)
	if err != nil {
		return err
	}
	if err := render(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
