package domain

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHistoryMainFallsBackWhenEmpty(t *testing.T) {
	var h History
	fallback := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	if got := h.Main(fallback); !got.Equal(fallback) {
		t.Fatalf("expected fallback %v, got %v", fallback, got)
	}
	if _, ok := h.Last(); ok {
		t.Fatalf("expected no last entry")
	}
}

func TestHistoryAppendDoesNotAliasCopies(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	var h History
	h.Append(DateEntry{Date: base, RecordedAt: base})

	copyA := h
	copyB := h
	copyA.Append(DateEntry{Date: base.Add(time.Hour), RecordedAt: base})
	copyB.Append(DateEntry{Date: base.Add(2 * time.Hour), RecordedAt: base})

	if h.Len() != 1 {
		t.Fatalf("original history changed: len %d", h.Len())
	}
	if got := copyA.Main(time.Time{}); !got.Equal(base.Add(time.Hour)) {
		t.Fatalf("copy A main = %v", got)
	}
	if got := copyB.Main(time.Time{}); !got.Equal(base.Add(2 * time.Hour)) {
		t.Fatalf("copy B main = %v", got)
	}
}

func TestHistoryEntriesReturnsCopy(t *testing.T) {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	h := RestoreHistory([]DateEntry{{Date: base, RecordedAt: base}})
	entries := h.Entries()
	entries[0].Date = base.Add(time.Hour)
	if got := h.Main(time.Time{}); !got.Equal(base) {
		t.Fatalf("history mutated through Entries: %v", got)
	}
}

func TestHistoryJSONUsesModifiedAtKey(t *testing.T) {
	base := time.Date(2025, 8, 13, 20, 11, 0, 0, time.UTC)
	h := RestoreHistory([]DateEntry{{Date: base, RecordedAt: base.Add(time.Minute)}})
	data, err := json.Marshal(h)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `[{"date":"2025-08-13T20:11:00Z","modifiedAt":"2025-08-13T20:12:00Z"}]`
	if string(data) != want {
		t.Fatalf("unexpected json %s", data)
	}

	var back History
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Len() != 1 || !back.Main(time.Time{}).Equal(base) {
		t.Fatalf("unexpected history %+v", back.Entries())
	}
}

func TestFolderCreatedDateDefaultsToCreatedAt(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	f := Folder{CreatedAt: now}
	if !f.RecordCreated(nil, now) {
		t.Fatalf("expected seed entry")
	}
	if got := f.MainCreatedAt(); !got.Equal(now) {
		t.Fatalf("main created = %v, want %v", got, now)
	}
	if f.CreatedDates.Len() != 1 {
		t.Fatalf("expected one entry, got %d", f.CreatedDates.Len())
	}
}

func TestRecordCreatedTolerance(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := Note{CreatedAt: created}
	n.RecordCreated(nil, created)

	tests := []struct {
		name     string
		explicit time.Time
		appended bool
	}{
		{name: "same value", explicit: created, appended: false},
		{name: "within a minute", explicit: created.Add(59 * time.Second), appended: false},
		{name: "exactly a minute", explicit: created.Add(-time.Minute), appended: false},
		{name: "beyond a minute", explicit: created.Add(61 * time.Second), appended: true},
		{name: "backdated a year", explicit: created.AddDate(-1, 0, 0), appended: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			note := n
			before := note.CreatedDates.Len()
			explicit := tt.explicit
			got := note.RecordCreated(&explicit, created.Add(time.Hour))
			if got != tt.appended {
				t.Fatalf("appended = %v, want %v", got, tt.appended)
			}
			wantLen := before
			if tt.appended {
				wantLen++
			}
			if note.CreatedDates.Len() != wantLen {
				t.Fatalf("len = %d, want %d", note.CreatedDates.Len(), wantLen)
			}
			if tt.appended && !note.MainCreatedAt().Equal(tt.explicit) {
				t.Fatalf("main created = %v, want %v", note.MainCreatedAt(), tt.explicit)
			}
		})
	}
}

func TestRecordModifiedExplicitAlwaysAppends(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := Note{CreatedAt: created}
	n.RecordModified(nil, created)
	if n.ModifiedDates.Len() != 1 {
		t.Fatalf("expected seeded modified history, got %d", n.ModifiedDates.Len())
	}

	later := created.Add(time.Hour)
	explicit := n.LastModified.Add(time.Second)
	n.RecordModified(&explicit, later)
	if n.ModifiedDates.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", n.ModifiedDates.Len())
	}
	if !n.LastModified.Equal(explicit) {
		t.Fatalf("last modified = %v, want %v", n.LastModified, explicit)
	}
	if !n.MainLastModified().Equal(explicit) {
		t.Fatalf("main last modified = %v, want %v", n.MainLastModified(), explicit)
	}
}

func TestRecordModifiedWithoutDateAdvancesMain(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	n := Note{CreatedAt: created}
	n.RecordCreated(nil, created)
	n.RecordModified(nil, created)
	if !n.MainLastModified().Equal(n.LastModified) {
		t.Fatalf("fresh note: main %v != scalar %v", n.MainLastModified(), n.LastModified)
	}

	later := created.Add(10 * time.Minute)
	n.RecordModified(nil, later)
	if !n.MainLastModified().Equal(later) {
		t.Fatalf("main last modified = %v, want %v", n.MainLastModified(), later)
	}
	if n.ModifiedDates.Len() != 1 {
		t.Fatalf("modified history grew without an explicit date: %d", n.ModifiedDates.Len())
	}
	if n.CreatedDates.Len() != 1 || !n.MainCreatedAt().Equal(created) {
		t.Fatalf("created history changed")
	}
}
