// Package calendar lays out a month as Sunday-first weeks for the calendar
// screens.
package calendar

import (
	"fmt"
	"time"
)

// WeekdayLabels are the column headers, Sunday first
var WeekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Weeks returns the month as rows of seven day numbers. Cells outside the
// month are 0.
func Weeks(year int, month time.Month) [][7]int {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	days := DaysIn(year, month)

	var weeks [][7]int
	var week [7]int
	col := int(first.Weekday())
	for day := 1; day <= days; day++ {
		week[col] = day
		col++
		if col == 7 {
			weeks = append(weeks, week)
			week = [7]int{}
			col = 0
		}
	}
	if col > 0 {
		weeks = append(weeks, week)
	}
	return weeks
}

// DaysIn returns the number of days in the month
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Shift moves delta months from year/month, wrapping across years
func Shift(year int, month time.Month, delta int) (int, time.Month) {
	t := time.Date(year, month+time.Month(delta), 1, 0, 0, 0, 0, time.UTC)
	return t.Year(), t.Month()
}

// Title renders the month header, e.g. "2024년 3월"
func Title(year int, month time.Month) string {
	return fmt.Sprintf("%d년 %d월", year, int(month))
}

// DateKey formats a day of the month as a record key
func DateKey(year int, month time.Month, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", year, int(month), day)
}

// ParseMonth reads a YYYY-MM string
func ParseMonth(s string) (int, time.Month, error) {
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid month %q: expected YYYY-MM", s)
	}
	return t.Year(), t.Month(), nil
}
