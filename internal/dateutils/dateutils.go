// Package dateutils provides the date helpers used by the budget engine:
// parsing bank-export dates, the linear day ordinal used for range filtering,
// and year range selection.
package dateutils

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"fjacquet/budget-ledger/internal/models"
)

// Common date layouts used throughout the application
const (
	DateLayoutISO       = "2006-01-02"
	DateLayoutFull      = "2006-01-02 15:04:05"
	DateLayoutUS        = "1/2/2006"
	DateLayoutUSShort   = "1/2/06"
	DateLayoutEuropean  = "2.1.2006"
	DateLayoutWithMonth = "2-Jan-2006"
)

// MinYear is the last year a transaction may not carry; valid years are above it.
const MinYear = 2000

// AllYears selects every year present in the ledger.
const AllYears = "All"

// MonthNames are the column names of the twelve monthly figures.
var MonthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// CommonFormats is the list of layouts tried, in order, when parsing dates.
// Slash dates are read month first, as US bank exports write them.
var CommonFormats = []string{
	DateLayoutISO,
	DateLayoutFull,
	DateLayoutISO + "T15:04:05Z07:00",
	DateLayoutUS,
	DateLayoutUSShort,
	"1-2-2006",
	"2006/1/2",
	DateLayoutEuropean,
	DateLayoutWithMonth,
	"02 Jan 2006",
	"Jan 2, 2006",
	"January 2, 2006",
}

var whitespace = regexp.MustCompile(`\s+`)

// CleanDateString trims and collapses whitespace in a date string.
func CleanDateString(dateStr string) string {
	return whitespace.ReplaceAllString(strings.TrimSpace(dateStr), " ")
}

// ParseDate attempts to parse a date string using CommonFormats.
// Returns the parsed date and the layout that matched.
func ParseDate(dateStr string) (models.Date, string, error) {
	dateStr = CleanDateString(dateStr)
	for _, layout := range CommonFormats {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return FromTime(t), layout, nil
		}
	}
	return models.Date{}, "", fmt.Errorf("unable to parse date: %s", dateStr)
}

// FromTime converts a time to a Date in its own location.
func FromTime(t time.Time) models.Date {
	return models.Date{Year: t.Year(), Month: int(t.Month()), Day: t.Day()}
}

// DaysIn returns the number of days in the given month.
func DaysIn(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsValidDate reports whether d is a real calendar date.
func IsValidDate(d models.Date) bool {
	if d.Month < 1 || d.Month > 12 || d.Day < 1 {
		return false
	}
	return d.Day <= DaysIn(d.Year, d.Month)
}

// Ordinal converts a date to a linear day count (days since 1970-01-01) so
// dates can be compared and range-filtered as integers. Leap years are
// counted. Out-of-range days roll over into the next month, keeping the
// ordering monotonic for inputs such as 31 April.
func Ordinal(d models.Date) int {
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	return int(t.Unix() / 86400)
}

// InRange reports whether d lies within [start, end] inclusive.
func InRange(d, start, end models.Date) bool {
	o := Ordinal(d)
	return Ordinal(start) <= o && o <= Ordinal(end)
}

// YearRange resolves a year selection into an inclusive date range.
// AllYears spans the smallest to the largest of years; any other selection
// must be a year number and spans that calendar year.
func YearRange(selection string, years []int) (models.Date, models.Date, error) {
	selection = strings.TrimSpace(selection)
	if strings.EqualFold(selection, AllYears) {
		if len(years) == 0 {
			return models.Date{}, models.Date{}, fmt.Errorf("no years to select from")
		}
		sorted := append([]int(nil), years...)
		sort.Ints(sorted)
		return models.Date{Year: sorted[0], Month: 1, Day: 1},
			models.Date{Year: sorted[len(sorted)-1], Month: 12, Day: 31}, nil
	}

	year, err := strconv.Atoi(selection)
	if err != nil {
		return models.Date{}, models.Date{}, fmt.Errorf("invalid year selection %q", selection)
	}
	return models.Date{Year: year, Month: 1, Day: 1}, models.Date{Year: year, Month: 12, Day: 31}, nil
}

// YearOptions lists the selections offered for a set of years: AllYears
// followed by each distinct year in ascending order.
func YearOptions(years []int) []string {
	seen := make(map[int]bool, len(years))
	var distinct []int
	for _, y := range years {
		if !seen[y] {
			seen[y] = true
			distinct = append(distinct, y)
		}
	}
	sort.Ints(distinct)

	options := []string{AllYears}
	for _, y := range distinct {
		options = append(options, strconv.Itoa(y))
	}
	return options
}
