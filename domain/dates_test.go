package domain

import (
	"testing"
	"time"
)

func TestParseClientDateWallClock(t *testing.T) {
	loc := time.FixedZone("BRT", -3*60*60)
	got, err := ParseClientDate("2025-08-13T20:11", loc)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := time.Date(2025, 8, 13, 20, 11, 0, 0, loc)
	if !got.Equal(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	local := got.In(loc)
	if local.Hour() != 20 || local.Minute() != 11 {
		t.Fatalf("wall clock shifted: %v", local)
	}
}

func TestParseClientDateLayouts(t *testing.T) {
	loc := time.FixedZone("X", 2*60*60)
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2025-08-13T20:11:30", time.Date(2025, 8, 13, 20, 11, 30, 0, loc)},
		{"2025-08-13T20:11:30.250", time.Date(2025, 8, 13, 20, 11, 30, 250_000_000, loc)},
		{"2025-08-13T20:11:00Z", time.Date(2025, 8, 13, 20, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11:00.000Z", time.Date(2025, 8, 13, 20, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11:00+05:00", time.Date(2025, 8, 13, 15, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11:00-03:00", time.Date(2025, 8, 13, 23, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11-03", time.Date(2025, 8, 13, 23, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11-0300", time.Date(2025, 8, 13, 23, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11:00+05", time.Date(2025, 8, 13, 15, 11, 0, 0, time.UTC)},
		{"2025-08-13T20:11:00.5-03", time.Date(2025, 8, 13, 23, 11, 0, 500_000_000, time.UTC)},
		{"2025-08-13", time.Date(2025, 8, 13, 0, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseClientDate(tt.in, loc)
			if err != nil {
				t.Fatalf("parse: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseClientDateRejectsGarbage(t *testing.T) {
	for _, in := range []string{"", "   ", "yesterday", "2025-13-45T10:00", "2025-08-13Tnoon"} {
		if _, err := ParseClientDate(in, time.UTC); KindOf(err) != KindValidation {
			t.Fatalf("%q: expected validation error, got %v", in, err)
		}
	}
}

func TestParseOptionalDate(t *testing.T) {
	got, err := ParseOptionalDate(nil, time.UTC)
	if err != nil || got != nil {
		t.Fatalf("nil input: got %v, %v", got, err)
	}
	blank := " "
	got, err = ParseOptionalDate(&blank, time.UTC)
	if err != nil || got != nil {
		t.Fatalf("blank input: got %v, %v", got, err)
	}
	value := "2025-01-01T00:00:00Z"
	got, err = ParseOptionalDate(&value, time.UTC)
	if err != nil || got == nil {
		t.Fatalf("value input: got %v, %v", got, err)
	}
}
