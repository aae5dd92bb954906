package dateutils

import (
	"testing"

	"fjacquet/budget-ledger/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name       string
		dateStr    string
		expectedOk bool
		expected   models.Date
		layout     string
	}{
		{"ISO format", "2023-01-15", true, models.Date{Year: 2023, Month: 1, Day: 15}, DateLayoutISO},
		{"US format", "01/15/2023", true, models.Date{Year: 2023, Month: 1, Day: 15}, DateLayoutUS},
		{"US format without padding", "3/7/2020", true, models.Date{Year: 2020, Month: 3, Day: 7}, DateLayoutUS},
		{"US short year", "03/07/20", true, models.Date{Year: 2020, Month: 3, Day: 7}, DateLayoutUSShort},
		{"European dotted", "15.01.2023", true, models.Date{Year: 2023, Month: 1, Day: 15}, DateLayoutEuropean},
		{"Full timestamp", "2023-01-15 10:30:45", true, models.Date{Year: 2023, Month: 1, Day: 15}, DateLayoutFull},
		{"With month name", "15-Jan-2023", true, models.Date{Year: 2023, Month: 1, Day: 15}, DateLayoutWithMonth},
		{"Extra whitespace", "  2023-01-15 ", true, models.Date{Year: 2023, Month: 1, Day: 15}, DateLayoutISO},
		{"Empty string", "", false, models.Date{}, ""},
		{"Invalid format", "not a date", false, models.Date{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, layout, err := ParseDate(tt.dateStr)
			if !tt.expectedOk {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
			assert.Equal(t, tt.layout, layout)
		})
	}
}

func TestOrdinal_LeapYears(t *testing.T) {
	// 2020 and 2024 are leap years: 29 February sits between 28 February and 1 March.
	feb28 := Ordinal(models.Date{Year: 2024, Month: 2, Day: 28})
	feb29 := Ordinal(models.Date{Year: 2024, Month: 2, Day: 29})
	mar1 := Ordinal(models.Date{Year: 2024, Month: 3, Day: 1})
	assert.Equal(t, feb28+1, feb29)
	assert.Equal(t, feb29+1, mar1)

	// A leap year has 366 days, a common year 365.
	assert.Equal(t, 366, Ordinal(models.Date{Year: 2021, Month: 1, Day: 1})-Ordinal(models.Date{Year: 2020, Month: 1, Day: 1}))
	assert.Equal(t, 365, Ordinal(models.Date{Year: 2022, Month: 1, Day: 1})-Ordinal(models.Date{Year: 2021, Month: 1, Day: 1}))

	// Consecutive year ends never collide with the next year's start.
	assert.Less(t, Ordinal(models.Date{Year: 2020, Month: 12, Day: 31}), Ordinal(models.Date{Year: 2021, Month: 1, Day: 1}))
}

func TestOrdinal_Epoch(t *testing.T) {
	assert.Equal(t, 0, Ordinal(models.Date{Year: 1970, Month: 1, Day: 1}))
	assert.Equal(t, 18322, Ordinal(models.Date{Year: 2020, Month: 3, Day: 1}))
}

func TestOrdinal_Overflow(t *testing.T) {
	// 31 April rolls into 1 May; the ordering stays monotonic.
	assert.Equal(t, Ordinal(models.Date{Year: 2021, Month: 5, Day: 1}), Ordinal(models.Date{Year: 2021, Month: 4, Day: 31}))
	assert.Less(t, Ordinal(models.Date{Year: 2021, Month: 4, Day: 30}), Ordinal(models.Date{Year: 2021, Month: 4, Day: 31}))
}

func TestInRange(t *testing.T) {
	start := models.Date{Year: 2020, Month: 1, Day: 1}
	end := models.Date{Year: 2020, Month: 12, Day: 31}
	assert.True(t, InRange(models.Date{Year: 2020, Month: 1, Day: 1}, start, end))
	assert.True(t, InRange(models.Date{Year: 2020, Month: 12, Day: 31}, start, end))
	assert.True(t, InRange(models.Date{Year: 2020, Month: 2, Day: 29}, start, end))
	assert.False(t, InRange(models.Date{Year: 2019, Month: 12, Day: 31}, start, end))
	assert.False(t, InRange(models.Date{Year: 2021, Month: 1, Day: 1}, start, end))
}

func TestIsValidDate(t *testing.T) {
	assert.True(t, IsValidDate(models.Date{Year: 2020, Month: 2, Day: 29}))
	assert.False(t, IsValidDate(models.Date{Year: 2021, Month: 2, Day: 29}))
	assert.False(t, IsValidDate(models.Date{Year: 2021, Month: 4, Day: 31}))
	assert.False(t, IsValidDate(models.Date{Year: 2021, Month: 13, Day: 1}))
	assert.False(t, IsValidDate(models.Date{Year: 2021, Month: 0, Day: 1}))
	assert.False(t, IsValidDate(models.Date{Year: 2021, Month: 1, Day: 0}))
	assert.Equal(t, 31, DaysIn(2021, 12))
	assert.Equal(t, 28, DaysIn(2021, 2))
}

func TestYearRange(t *testing.T) {
	years := []int{2020, 2019, 2021, 2020}

	start, end, err := YearRange("All", years)
	require.NoError(t, err)
	assert.Equal(t, models.Date{Year: 2019, Month: 1, Day: 1}, start)
	assert.Equal(t, models.Date{Year: 2021, Month: 12, Day: 31}, end)

	start, end, err = YearRange("2020", years)
	require.NoError(t, err)
	assert.Equal(t, models.Date{Year: 2020, Month: 1, Day: 1}, start)
	assert.Equal(t, models.Date{Year: 2020, Month: 12, Day: 31}, end)

	_, _, err = YearRange("All", nil)
	assert.Error(t, err)

	_, _, err = YearRange("last year", years)
	assert.Error(t, err)
}

func TestYearOptions(t *testing.T) {
	assert.Equal(t, []string{"All", "2019", "2020", "2021"}, YearOptions([]int{2021, 2019, 2020, 2021}))
	assert.Equal(t, []string{"All"}, YearOptions(nil))
}
