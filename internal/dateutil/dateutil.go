// Package dateutil provides calendar-day arithmetic for the scheduling
// engine. All functions operate at local-midnight granularity: time-of-day
// components are normalized away so daylight-saving transitions cannot
// drift day counts.
package dateutil

import (
	"fmt"
	"strings"
	"time"
)

const isoLayout = "2006-01-02"

// Normalize truncates t to local midnight.
func Normalize(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// FormatISO renders t as "YYYY-MM-DD".
func FormatISO(t time.Time) string {
	return t.Format(isoLayout)
}

// ParseISO parses "YYYY-MM-DD" into a local-midnight time. A trailing
// time-of-day component (e.g. "2024-01-05T09:30:00Z") is truncated.
func ParseISO(s string) (time.Time, error) {
	if len(s) > len(isoLayout) {
		s = s[:len(isoLayout)]
	}
	s = strings.TrimSpace(s)
	t, err := time.ParseInLocation(isoLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// AddDays returns t shifted by n calendar days, normalized to midnight.
func AddDays(t time.Time, n int) time.Time {
	n2 := Normalize(t)
	return time.Date(n2.Year(), n2.Month(), n2.Day()+n, 0, 0, 0, 0, n2.Location())
}

// DayDiff returns the number of calendar days from a to b (b - a).
// Negative when b is before a. The count is exclusive: DayDiff(d, d) == 0.
func DayDiff(a, b time.Time) int {
	ua := Normalize(a)
	ub := Normalize(b)
	// Walk via UTC day numbers so DST-shortened days still count as one.
	da := time.Date(ua.Year(), ua.Month(), ua.Day(), 0, 0, 0, 0, time.UTC)
	db := time.Date(ub.Year(), ub.Month(), ub.Day(), 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// DurationDays returns the inclusive day count of [start, end], minimum 1.
// A milestone (start == end) has duration 1.
func DurationDays(start, end time.Time) int {
	d := DayDiff(start, end) + 1
	if d < 1 {
		return 1
	}
	return d
}

// StartOfWeek returns the Monday of t's calendar week, at midnight.
func StartOfWeek(t time.Time) time.Time {
	n := Normalize(t)
	offset := (int(n.Weekday()) + 6) % 7 // Monday = 0
	return AddDays(n, -offset)
}

// StartOfMonth returns the first day of t's month, at midnight.
func StartOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// StartOfQuarter returns the first day of t's calendar quarter.
func StartOfQuarter(t time.Time) time.Time {
	q := (int(t.Month()) - 1) / 3
	return time.Date(t.Year(), time.Month(q*3+1), 1, 0, 0, 0, 0, t.Location())
}

// Quarter returns t's calendar quarter, 1-4.
func Quarter(t time.Time) int {
	return (int(t.Month())-1)/3 + 1
}

// IsWeekend reports whether t falls on Saturday or Sunday.
func IsWeekend(t time.Time) bool {
	wd := t.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SameDay reports whether a and b fall on the same calendar day.
func SameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
