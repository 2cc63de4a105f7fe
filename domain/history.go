// domain/history.go
package domain

import (
	"encoding/json"
	"time"
)

// CreatedDateTolerance is the minimum distance between a created-date
// override and the current main created date for the override to be kept.
const CreatedDateTolerance = time.Minute

// DateEntry is one explicit date override. Date is the effective value the
// user asked for; RecordedAt is when the override was made.
type DateEntry struct {
	Date       time.Time `json:"date"`
	RecordedAt time.Time `json:"modifiedAt"`
}

// History is an append-only sequence of date overrides owned by a single
// folder or note. The zero value is an empty history.
type History struct {
	entries []DateEntry
}

// RestoreHistory rebuilds a history loaded from storage.
func RestoreHistory(entries []DateEntry) History {
	if len(entries) == 0 {
		return History{}
	}
	return History{entries: append([]DateEntry(nil), entries...)}
}

func (h History) Len() int {
	return len(h.entries)
}

func (h History) Last() (DateEntry, bool) {
	if len(h.entries) == 0 {
		return DateEntry{}, false
	}
	return h.entries[len(h.entries)-1], true
}

// Entries returns a copy of the recorded overrides, oldest first.
func (h History) Entries() []DateEntry {
	return append([]DateEntry{}, h.entries...)
}

// Main returns the date of the latest entry, or fallback when empty.
func (h History) Main(fallback time.Time) time.Time {
	if last, ok := h.Last(); ok {
		return last.Date
	}
	return fallback
}

// Append adds e to the end of the history. The backing array is never shared
// with copies of h.
func (h *History) Append(e DateEntry) {
	n := len(h.entries)
	h.entries = append(h.entries[:n:n], e)
}

func (h History) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.Entries())
}

func (h *History) UnmarshalJSON(data []byte) error {
	var entries []DateEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	*h = RestoreHistory(entries)
	return nil
}

func recordCreated(h *History, createdAt time.Time, explicit *time.Time, now time.Time) bool {
	if h.Len() == 0 {
		date := createdAt
		if explicit != nil {
			date = *explicit
		}
		if date.IsZero() {
			date = now
		}
		h.Append(DateEntry{Date: date, RecordedAt: now})
		return true
	}
	if explicit == nil {
		return false
	}
	delta := explicit.Sub(h.Main(createdAt))
	if delta < 0 {
		delta = -delta
	}
	if delta <= CreatedDateTolerance {
		return false
	}
	h.Append(DateEntry{Date: *explicit, RecordedAt: now})
	return true
}
