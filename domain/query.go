// domain/query.go
package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

type SortField string

const (
	SortByCreatedAt    SortField = "createdAt"
	SortByLastModified SortField = "lastModified"
	SortByTitle        SortField = "title"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int32 for every backend.
	MaxPage = math.MaxInt32 / MaxLimit
)

// NoteQuery lists notes. An empty FolderID searches every folder.
type NoteQuery struct {
	FolderID  string
	Search    string
	SortBy    SortField
	Ascending bool
	Page      int
	Limit     int
}

// ParseNoteQuery normalizes raw query-string values. Unknown sort fields
// fall back to createdAt; anything but "asc" sorts descending.
func ParseNoteQuery(folderID, search, sortBy, sortOrder, page, limit string) NoteQuery {
	q := NoteQuery{
		FolderID:  folderID,
		Search:    strings.TrimSpace(search),
		SortBy:    SortByCreatedAt,
		Ascending: strings.EqualFold(strings.TrimSpace(sortOrder), "asc"),
	}
	switch SortField(strings.TrimSpace(sortBy)) {
	case SortByTitle:
		q.SortBy = SortByTitle
	case SortByLastModified:
		q.SortBy = SortByLastModified
	}
	q.Page, q.Limit = ParsePage(page, limit)
	return q
}

func ParsePage(page, limit string) (int, int) {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = DefaultPage
	}
	if p > MaxPage {
		p = MaxPage
	}
	l, err := strconv.Atoi(strings.TrimSpace(limit))
	if err != nil || l < 1 {
		l = DefaultLimit
	}
	if l > MaxLimit {
		l = MaxLimit
	}
	return p, l
}

func (q NoteQuery) Skip() int {
	return (q.Page - 1) * q.Limit
}

// NoteFilter selects notes for counting.
type NoteFilter struct {
	FolderID     string
	PinnedOnly   bool
	CreatedSince time.Time
}

type Pagination struct {
	Current    int `json:"current"`
	Total      int `json:"total"`
	Count      int `json:"count"`
	TotalNotes int `json:"totalNotes"`
}

type NotePage struct {
	Notes      []Note
	Pagination Pagination
}

func NewNotePage(notes []Note, total, page, limit int) NotePage {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	if notes == nil {
		notes = []Note{}
	}
	return NotePage{
		Notes: notes,
		Pagination: Pagination{
			Current:    page,
			Total:      pages,
			Count:      len(notes),
			TotalNotes: total,
		},
	}
}

// CompareNotes orders notes for folder listings: pinned first, then by the
// requested field, then by id so the order is total.
func CompareNotes(a, b *Note, field SortField, ascending bool) int {
	if a.IsPinned != b.IsPinned {
		if a.IsPinned {
			return -1
		}
		return 1
	}
	var c int
	switch field {
	case SortByTitle:
		c = strings.Compare(a.Title, b.Title)
	case SortByLastModified:
		c = a.LastModified.Compare(b.LastModified)
	default:
		c = a.CreatedAt.Compare(b.CreatedAt)
	}
	if !ascending {
		c = -c
	}
	if c != 0 {
		return c
	}
	return strings.Compare(a.ID, b.ID)
}
