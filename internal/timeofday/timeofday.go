// Package timeofday decomposes a wall-clock instant into the hours, minutes,
// seconds and meridiem shown to consumers.
package timeofday

import (
	"fmt"
	"strings"
	"time"
)

// Format selects how hours are displayed
type Format string

// Supported hour formats
const (
	Format24Hour Format = "24-hour"
	Format12Hour Format = "12-hour"
)

// Meridiem suffixes used in 12-hour display
const (
	AM = "am"
	PM = "pm"
)

var formatAliases = map[string]Format{
	"24-hour": Format24Hour,
	"24h":     Format24Hour,
	"24":      Format24Hour,
	"12-hour": Format12Hour,
	"12h":     Format12Hour,
	"12":      Format12Hour,
}

// ParseFormat maps a configured value onto a Format.
// Unknown or empty values fall back to 24-hour.
func ParseFormat(s string) Format {
	if f, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]; ok {
		return f
	}
	return Format24Hour
}

// KnownFormat reports whether s names a format rather than falling back
func KnownFormat(s string) bool {
	_, ok := formatAliases[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Reading is a single capture of the wall clock
type Reading struct {
	Hours    int    `json:"hours"`
	Minutes  int    `json:"minutes"`
	Seconds  int    `json:"seconds"`
	Meridiem string `json:"ampm"`
}

// Read decomposes t, in its own location, according to f
func Read(t time.Time, f Format) Reading {
	r := Reading{
		Hours:   t.Hour(),
		Minutes: t.Minute(),
		Seconds: t.Second(),
	}

	if f != Format12Hour {
		return r
	}

	r.Meridiem = AM
	if r.Hours >= 12 {
		r.Meridiem = PM
	}
	// 0 and 12 both display as 12
	r.Hours = (r.Hours+11)%12 + 1

	return r
}

// String renders the reading as HH:MM:SS with an optional meridiem suffix
func (r Reading) String() string {
	s := fmt.Sprintf("%02d:%02d:%02d", r.Hours, r.Minutes, r.Seconds)
	if r.Meridiem != "" {
		s += " " + r.Meridiem
	}
	return s
}
