// Copyright (c) 2026 Shelfmark. All rights reserved.

/*
Package partialdate models dates of varying precision.

Bibliographic data is rarely complete: a first edition may be dated "1954",
a reprint "1954-07", an author's birth only "circa 1920". This package
represents all of those as one value with an explicit precision, instead of
forcing callers to invent fake days and months.

Forms:

  - Year only: "1954"
  - Year and month: "1954-07"
  - Full date: "1954-07-29"
  - Free text: anything else ("circa 1920", "late Meiji era")

Free-text values carry no ordering information and sort after all
structured values.
*/
package partialdate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// structured matches YYYY, YYYY-MM, or YYYY-MM-DD.
var structured = regexp.MustCompile(`^(\d{4})(?:-(\d{2})(?:-(\d{2}))?)?$`)

// Date is a date of year, year-month, year-month-day, or free-text precision.
//
// The zero value is the empty date; IsZero reports it.
type Date struct {
	Year  int    `json:"year,omitempty"`
	Month int    `json:"month,omitempty"`
	Day   int    `json:"day,omitempty"`
	Text  string `json:"text,omitempty"`
}

// Parse interprets raw as a partial date.
//
// Structured forms are range-checked (month 1-12, day valid for the given
// month and year). Any other non-empty string becomes a free-text date.
// An empty or whitespace-only string returns the zero Date.
func Parse(raw string) (Date, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Date{}, nil
	}

	match := structured.FindStringSubmatch(trimmed)
	if match == nil {
		return Date{Text: trimmed}, nil
	}

	date := Date{}
	date.Year, _ = strconv.Atoi(match[1])

	if match[2] != "" {
		date.Month, _ = strconv.Atoi(match[2])
		if date.Month < 1 || date.Month > 12 {
			return Date{}, fmt.Errorf("partialdate: month %d out of range in %q", date.Month, trimmed)
		}
	}

	if match[3] != "" {
		date.Day, _ = strconv.Atoi(match[3])
		if date.Day < 1 || date.Day > daysIn(date.Year, date.Month) {
			return Date{}, fmt.Errorf("partialdate: day %d out of range in %q", date.Day, trimmed)
		}
	}

	return date, nil
}

// IsZero reports whether the date carries no value at all.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Text == ""
}

// IsText reports whether the date is a free-text value.
func (d Date) IsText() bool {
	return d.Text != ""
}

// String renders the date in its canonical storage form.
func (d Date) String() string {
	switch {
	case d.Text != "":
		return d.Text
	case d.Day != 0:
		return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
	case d.Month != 0:
		return fmt.Sprintf("%04d-%02d", d.Year, d.Month)
	case d.Year != 0:
		return fmt.Sprintf("%04d", d.Year)
	default:
		return ""
	}
}

// SortKey returns a string that orders structured dates chronologically.
//
// Missing components sort before present ones ("1954" < "1954-01"), and
// free-text dates sort after every structured date.
func (d Date) SortKey() string {
	if d.Text != "" {
		return "~" + strings.ToLower(d.Text)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Month, d.Day)
}

// daysIn returns the number of days in the given month, accounting for
// leap years. With month 0 (year-only precision) it returns 31 so that any
// day value is rejected upstream by the regex shape instead.
func daysIn(year, month int) int {
	if month == 0 {
		return 31
	}
	// Day 0 of the next month is the last day of this month.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
