package dateutil

import (
	"fmt"
	"time"
)

// DateLayout is the calendar date format accepted in inputs.
const DateLayout = "2006-01-02"

// ParseDate parses a YYYY-MM-DD date in UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// IsLeapYear checks if a year is a leap year
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysInMonth returns the number of days in the given month
func DaysInMonth(year int, month time.Month) int {
	switch month {
	case time.February:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case time.April, time.June, time.September, time.November:
		return 30
	}
	return 31
}

// AddMonths adds months to a date, clamping the day to the end of the target
// month (Jan 31 + 1 month = Feb 28/29) instead of overflowing like time.AddDate.
func AddMonths(date time.Time, months int) time.Time {
	total := int(date.Month()) - 1 + months
	year := date.Year() + total/12
	m := total % 12
	if m < 0 {
		m += 12
		year--
	}
	month := time.Month(m + 1)
	day := date.Day()
	if last := DaysInMonth(year, month); day > last {
		day = last
	}
	return time.Date(year, month, day, date.Hour(), date.Minute(), date.Second(), date.Nanosecond(), date.Location())
}

// MonthsUntilDate counts the whole months from fromDate up to toDate.
// A month is complete once toDate reaches the same day of month (clamped).
func MonthsUntilDate(fromDate, toDate time.Time) int {
	if toDate.Before(fromDate) {
		return -MonthsUntilDate(toDate, fromDate)
	}
	months := (toDate.Year()-fromDate.Year())*12 + int(toDate.Month()) - int(fromDate.Month())
	if AddMonths(fromDate, months).After(toDate) {
		months--
	}
	return months
}

// DueDate returns the due date of the given 1-based installment when the first
// installment falls on firstPayment.
func DueDate(firstPayment time.Time, installment int) time.Time {
	return AddMonths(firstPayment, installment-1)
}

// InstallmentsDue counts the monthly installments falling due on or before
// asOf, starting with firstPayment.
func InstallmentsDue(firstPayment, asOf time.Time) int {
	if asOf.Before(firstPayment) {
		return 0
	}
	return MonthsUntilDate(firstPayment, asOf) + 1
}
