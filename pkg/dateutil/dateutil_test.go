package dateutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// TestLeapYearCalculation tests leap year determination
func TestLeapYearCalculation(t *testing.T) {
	tests := []struct {
		year     int
		expected bool
	}{
		{2000, true},  // Divisible by 400
		{1900, false}, // Divisible by 100 but not 400
		{2004, true},  // Divisible by 4
		{2001, false}, // Not divisible by 4
		{2024, true},
		{2026, false},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("Year_%d", tt.year), func(t *testing.T) {
			assert.Equal(t, tt.expected, IsLeapYear(tt.year))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 28, DaysInMonth(2026, time.February))
	assert.Equal(t, 30, DaysInMonth(2026, time.April))
	assert.Equal(t, 31, DaysInMonth(2026, time.December))
}

// TestAddMonths covers month-end clamping, which time.AddDate does not do
func TestAddMonths(t *testing.T) {
	tests := []struct {
		name     string
		from     time.Time
		months   int
		expected time.Time
	}{
		{"plain", date(2025, 6, 15), 18, date(2026, 12, 15)},
		{"month end into February", date(2025, 1, 31), 1, date(2025, 2, 28)},
		{"month end into leap February", date(2024, 1, 31), 1, date(2024, 2, 29)},
		{"into 30-day month", date(2025, 3, 31), 1, date(2025, 4, 30)},
		{"backwards across year", date(2025, 1, 10), -1, date(2024, 12, 10)},
		{"backwards more than a year", date(2025, 1, 10), -13, date(2023, 12, 10)},
		{"zero", date(2025, 5, 5), 0, date(2025, 5, 5)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AddMonths(tt.from, tt.months))
		})
	}
}

func TestMonthsUntilDate(t *testing.T) {
	tests := []struct {
		name     string
		from, to time.Time
		expected int
	}{
		{"same day", date(2025, 1, 15), date(2025, 1, 15), 0},
		{"one day short of a month", date(2025, 1, 15), date(2025, 2, 14), 0},
		{"exactly one month", date(2025, 1, 15), date(2025, 2, 15), 1},
		{"clamped month end", date(2025, 1, 31), date(2025, 2, 28), 1},
		{"five years", date(2020, 3, 1), date(2025, 3, 1), 60},
		{"reversed", date(2025, 3, 1), date(2025, 1, 1), -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MonthsUntilDate(tt.from, tt.to))
		})
	}
}

func TestInstallmentsDue(t *testing.T) {
	first := date(2021, 1, 20)
	assert.Equal(t, 0, InstallmentsDue(first, date(2021, 1, 19)))
	assert.Equal(t, 1, InstallmentsDue(first, date(2021, 1, 20)))
	assert.Equal(t, 1, InstallmentsDue(first, date(2021, 2, 19)))
	assert.Equal(t, 2, InstallmentsDue(first, date(2021, 2, 20)))
	assert.Equal(t, 60, InstallmentsDue(first, date(2025, 12, 31)))
}

func TestDueDate(t *testing.T) {
	first := date(2021, 1, 31)
	assert.Equal(t, first, DueDate(first, 1))
	assert.Equal(t, date(2021, 2, 28), DueDate(first, 2))
	assert.Equal(t, date(2021, 3, 31), DueDate(first, 3))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2026-10-18")
	require.NoError(t, err)
	assert.Equal(t, date(2026, 10, 18), d)

	_, err = ParseDate("18/10/2026")
	assert.Error(t, err)
}
