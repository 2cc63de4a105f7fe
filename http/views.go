// http/views.go
package http

import (
	"time"

	"github.com/ViniZap4/lumi-notes/domain"
)

type folderView struct {
	ID                 string         `json:"id"`
	Name               string         `json:"name"`
	Description        string         `json:"description"`
	Color              string         `json:"color"`
	NotesCount         int            `json:"notesCount"`
	CustomCreatedDates domain.History `json:"customCreatedDates"`
	MainCreatedAt      time.Time      `json:"mainCreatedAt"`
	CreatedAt          time.Time      `json:"createdAt"`
	UpdatedAt          time.Time      `json:"updatedAt"`
}

func newFolderView(f *domain.Folder) folderView {
	return folderView{
		ID:                 f.ID,
		Name:               f.Name,
		Description:        f.Description,
		Color:              f.Color,
		NotesCount:         f.NotesCount,
		CustomCreatedDates: f.CreatedDates,
		MainCreatedAt:      f.MainCreatedAt(),
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

type folderRefView struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type noteView struct {
	ID                      string         `json:"id"`
	Title                   string         `json:"title"`
	Content                 string         `json:"content"`
	FolderID                string         `json:"folderId"`
	Folder                  *folderRefView `json:"folder,omitempty"`
	Images                  []domain.Image `json:"images"`
	Tags                    []string       `json:"tags"`
	IsPinned                bool           `json:"isPinned"`
	CustomCreatedDates      domain.History `json:"customCreatedDates"`
	CustomLastModifiedDates domain.History `json:"customLastModifiedDates"`
	LastModified            time.Time      `json:"lastModified"`
	MainCreatedAt           time.Time      `json:"mainCreatedAt"`
	MainLastModified        time.Time      `json:"mainLastModified"`
	CreatedAt               time.Time      `json:"createdAt"`
	UpdatedAt               time.Time      `json:"updatedAt"`
}

func newNoteView(n *domain.Note) noteView {
	v := noteView{
		ID:                      n.ID,
		Title:                   n.Title,
		Content:                 n.Content,
		FolderID:                n.FolderID,
		Images:                  n.Images,
		Tags:                    n.Tags,
		IsPinned:                n.IsPinned,
		CustomCreatedDates:      n.CreatedDates,
		CustomLastModifiedDates: n.ModifiedDates,
		LastModified:            n.LastModified,
		MainCreatedAt:           n.MainCreatedAt(),
		MainLastModified:        n.MainLastModified(),
		CreatedAt:               n.CreatedAt,
		UpdatedAt:               n.UpdatedAt,
	}
	if v.Images == nil {
		v.Images = []domain.Image{}
	}
	if v.Tags == nil {
		v.Tags = []string{}
	}
	if n.Folder != nil {
		v.Folder = &folderRefView{ID: n.Folder.ID, Name: n.Folder.Name, Color: n.Folder.Color}
	}
	return v
}

type notePageView struct {
	Notes       []noteView        `json:"notes"`
	Pagination  domain.Pagination `json:"pagination"`
	SearchQuery string            `json:"searchQuery,omitempty"`
}

func newNotePageView(p domain.NotePage) notePageView {
	notes := make([]noteView, len(p.Notes))
	for i := range p.Notes {
		notes[i] = newNoteView(&p.Notes[i])
	}
	return notePageView{Notes: notes, Pagination: p.Pagination}
}

type sessionUserView struct {
	ID        string    `json:"id"`
	LastLogin time.Time `json:"lastLogin"`
}

type folderStatsView struct {
	TotalNotes   int       `json:"totalNotes"`
	PinnedNotes  int       `json:"pinnedNotes"`
	RecentNotes  int       `json:"recentNotes"`
	LastModified time.Time `json:"lastModified"`
}
