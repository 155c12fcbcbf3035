package repository

import (
	"database/sql"
	"time"
)

const dateLayout = "2006-01-02"

// parseDate parses a stored "YYYY-MM-DD" string into a local-midnight time.
// Malformed values fall back to the zero time rather than failing the scan.
func parseDate(s string) time.Time {
	t, err := time.ParseInLocation(dateLayout, s, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// parseTimestamp parses a stored RFC3339 timestamp.
func parseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// nullableFloat converts a sql.NullFloat64 into a *float64.
func nullableFloat(f sql.NullFloat64) *float64 {
	if !f.Valid {
		return nil
	}
	v := f.Float64
	return &v
}

// nullableFloatValue converts a *float64 into a value for SQLite storage.
func nullableFloatValue(f *float64) interface{} {
	if f == nil {
		return nil
	}
	return *f
}

// nullableString converts a sql.NullString into a *string.
func nullableString(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

// boolToInt converts a Go bool to an integer for SQLite storage.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// intToBool converts a SQLite integer to a Go bool.
func intToBool(i int) bool {
	return i != 0
}
