// domain/note.go
package domain

import "time"

const (
	DefaultFolderColor = "#007bff"

	MaxFolderNameLength        = 100
	MaxFolderDescriptionLength = 500
	MaxNoteTitleLength         = 200
	MaxNoteContentLength       = 10000
)

type Folder struct {
	ID           string
	Name         string
	Description  string
	Color        string
	NotesCount   int
	CreatedDates History
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// MainCreatedAt is the user-facing creation date: the latest override, or
// the system creation time when none was recorded.
func (f *Folder) MainCreatedAt() time.Time {
	return f.CreatedDates.Main(f.CreatedAt)
}

// RecordCreated seeds or extends the created-date history.
func (f *Folder) RecordCreated(explicit *time.Time, now time.Time) bool {
	return recordCreated(&f.CreatedDates, f.CreatedAt, explicit, now)
}

// FolderRef is the slice of a folder embedded in note responses.
type FolderRef struct {
	ID    string
	Name  string
	Color string
}

type Image struct {
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Mimetype     string `json:"mimetype"`
	Size         int64  `json:"size"`
	Data         string `json:"data"`
}

type Note struct {
	ID            string
	Title         string
	Content       string
	FolderID      string
	Folder        *FolderRef
	Images        []Image
	Tags          []string
	IsPinned      bool
	CreatedDates  History
	ModifiedDates History
	LastModified  time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (n *Note) MainCreatedAt() time.Time {
	return n.CreatedDates.Main(n.CreatedAt)
}

// MainLastModified returns the latest modified override unless the note was
// saved again after that override was recorded, in which case the scalar
// LastModified is newer and wins.
func (n *Note) MainLastModified() time.Time {
	last, ok := n.ModifiedDates.Last()
	if !ok || last.RecordedAt.Before(n.UpdatedAt) {
		return n.LastModified
	}
	return last.Date
}

func (n *Note) RecordCreated(explicit *time.Time, now time.Time) bool {
	return recordCreated(&n.CreatedDates, n.CreatedAt, explicit, now)
}

// RecordModified marks the note as changed at now. An explicit date becomes
// the new LastModified and is always appended to the modified history.
func (n *Note) RecordModified(explicit *time.Time, now time.Time) {
	n.UpdatedAt = now
	if explicit == nil {
		n.LastModified = now
		if n.ModifiedDates.Len() == 0 {
			n.ModifiedDates.Append(DateEntry{Date: now, RecordedAt: now})
		}
		return
	}
	n.LastModified = *explicit
	n.ModifiedDates.Append(DateEntry{Date: *explicit, RecordedAt: now})
}

// Session is the single login record behind the shared password.
type Session struct {
	ID            string
	Token         string
	Authenticated bool
	LastLogin     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

type FolderStats struct {
	TotalNotes   int
	PinnedNotes  int
	RecentNotes  int
	LastModified time.Time
}
