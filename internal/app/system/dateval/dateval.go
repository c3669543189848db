// Package dateval validates drive departure dates.
//
// A departure date is a zero-padded MM/DD/YYYY string, exactly 10
// characters, naming a calendar day that is not before today in the
// server's calendar. Parsing is strict: out-of-range months and days
// ("13/01/2025", "02/30/2025") are format errors.
package dateval

import (
	"errors"
	"time"
)

// Layout is the accepted departure date layout.
const Layout = "01/02/2006"

var (
	// ErrFormat reports a string that is not a zero-padded MM/DD/YYYY date.
	ErrFormat = errors.New("date must be in MM/DD/YYYY format")
	// ErrPast reports a date before today's server-local calendar day.
	ErrPast = errors.New("date cannot be in the past")
)

// Parse validates s as a strict MM/DD/YYYY calendar date and returns it
// at midnight UTC.
func Parse(s string) (time.Time, error) {
	if len(s) != len(Layout) {
		return time.Time{}, ErrFormat
	}
	t, err := time.Parse(Layout, s)
	if err != nil {
		return time.Time{}, ErrFormat
	}
	return t, nil
}

// Validate parses s and rejects dates before now's calendar day.
func Validate(s string, now time.Time) (time.Time, error) {
	t, err := Parse(s)
	if err != nil {
		return time.Time{}, err
	}
	if t.Before(StartOfDay(now)) {
		return time.Time{}, ErrPast
	}
	return t, nil
}

// StartOfDay returns midnight UTC of t's calendar day.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
