// domain/dates.go
package domain

import (
	"regexp"
	"strings"
	"time"
)

var zoneSuffix = regexp.MustCompile(`(?i)(z|[+-]\d{2}(:?\d{2})?)$`)

var wallClockLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
}

var absoluteLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04Z0700",
	"2006-01-02T15:04Z07",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05Z07",
	"2006-01-02T15:04:05.999999999Z0700",
	"2006-01-02T15:04:05.999999999Z07",
}

// ParseClientDate parses a date sent by a client. A date-time without a zone
// ("2025-08-13T20:11") is wall-clock time in loc; anything carrying a zone is
// an absolute instant; a bare date is midnight UTC.
func ParseClientDate(value string, loc *time.Location) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, Validation("Date is required")
	}
	if loc == nil {
		loc = time.Local
	}

	if !strings.Contains(value, "T") {
		t, err := time.Parse(time.DateOnly, value)
		if err != nil {
			return time.Time{}, Validationf("Invalid date: %s", value)
		}
		return t, nil
	}

	date, clock, _ := strings.Cut(value, "T")
	if !zoneSuffix.MatchString(clock) {
		for _, layout := range wallClockLayouts {
			if t, err := time.ParseInLocation(layout, date+"T"+clock, loc); err == nil {
				return t, nil
			}
		}
		return time.Time{}, Validationf("Invalid date: %s", value)
	}

	for _, layout := range absoluteLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, Validationf("Invalid date: %s", value)
}

// ParseOptionalDate is ParseClientDate for optional request fields: nil or
// blank input yields nil.
func ParseOptionalDate(value *string, loc *time.Location) (*time.Time, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	t, err := ParseClientDate(*value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
