// store/mongo/docs.go
package mongo

import (
	"time"

	"github.com/ViniZap4/lumi-notes/domain"
)

type dateEntryDoc struct {
	Date       time.Time `bson:"date"`
	ModifiedAt time.Time `bson:"modifiedAt"`
}

type folderDoc struct {
	ID                 string         `bson:"_id"`
	Name               string         `bson:"name"`
	Description        string         `bson:"description"`
	Color              string         `bson:"color"`
	NotesCount         int            `bson:"notesCount"`
	CustomCreatedDates []dateEntryDoc `bson:"customCreatedDates"`
	CreatedAt          time.Time      `bson:"createdAt"`
	UpdatedAt          time.Time      `bson:"updatedAt"`
}

type imageDoc struct {
	Filename     string `bson:"filename"`
	OriginalName string `bson:"originalName"`
	Mimetype     string `bson:"mimetype"`
	Size         int64  `bson:"size"`
	Data         string `bson:"data"`
}

type noteDoc struct {
	ID                      string         `bson:"_id"`
	FolderID                string         `bson:"folderId"`
	Title                   string         `bson:"title"`
	Content                 string         `bson:"content"`
	Images                  []imageDoc     `bson:"images"`
	Tags                    []string       `bson:"tags"`
	IsPinned                bool           `bson:"isPinned"`
	CustomCreatedDates      []dateEntryDoc `bson:"customCreatedDates"`
	CustomLastModifiedDates []dateEntryDoc `bson:"customLastModifiedDates"`
	LastModified            time.Time      `bson:"lastModified"`
	CreatedAt               time.Time      `bson:"createdAt"`
	UpdatedAt               time.Time      `bson:"updatedAt"`
}

type sessionDoc struct {
	ID              string    `bson:"_id"`
	SessionID       string    `bson:"sessionId"`
	IsAuthenticated bool      `bson:"isAuthenticated"`
	LastLogin       time.Time `bson:"lastLogin"`
	CreatedAt       time.Time `bson:"createdAt"`
	UpdatedAt       time.Time `bson:"updatedAt"`
}

func fromHistory(h domain.History) []dateEntryDoc {
	entries := h.Entries()
	docs := make([]dateEntryDoc, len(entries))
	for i, e := range entries {
		docs[i] = dateEntryDoc{Date: e.Date, ModifiedAt: e.RecordedAt}
	}
	return docs
}

func toHistory(docs []dateEntryDoc) domain.History {
	entries := make([]domain.DateEntry, len(docs))
	for i, d := range docs {
		entries[i] = domain.DateEntry{Date: d.Date, RecordedAt: d.ModifiedAt}
	}
	return domain.RestoreHistory(entries)
}

func newFolderDoc(f *domain.Folder) folderDoc {
	return folderDoc{
		ID:                 f.ID,
		Name:               f.Name,
		Description:        f.Description,
		Color:              f.Color,
		NotesCount:         f.NotesCount,
		CustomCreatedDates: fromHistory(f.CreatedDates),
		CreatedAt:          f.CreatedAt,
		UpdatedAt:          f.UpdatedAt,
	}
}

func (d folderDoc) folder() domain.Folder {
	return domain.Folder{
		ID:           d.ID,
		Name:         d.Name,
		Description:  d.Description,
		Color:        d.Color,
		NotesCount:   d.NotesCount,
		CreatedDates: toHistory(d.CustomCreatedDates),
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
}

func newNoteDoc(n *domain.Note) noteDoc {
	images := make([]imageDoc, len(n.Images))
	for i, img := range n.Images {
		images[i] = imageDoc(img)
	}
	tags := n.Tags
	if tags == nil {
		tags = []string{}
	}
	return noteDoc{
		ID:                      n.ID,
		FolderID:                n.FolderID,
		Title:                   n.Title,
		Content:                 n.Content,
		Images:                  images,
		Tags:                    tags,
		IsPinned:                n.IsPinned,
		CustomCreatedDates:      fromHistory(n.CreatedDates),
		CustomLastModifiedDates: fromHistory(n.ModifiedDates),
		LastModified:            n.LastModified,
		CreatedAt:               n.CreatedAt,
		UpdatedAt:               n.UpdatedAt,
	}
}

func (d noteDoc) note() domain.Note {
	images := make([]domain.Image, len(d.Images))
	for i, img := range d.Images {
		images[i] = domain.Image(img)
	}
	return domain.Note{
		ID:            d.ID,
		FolderID:      d.FolderID,
		Title:         d.Title,
		Content:       d.Content,
		Images:        images,
		Tags:          d.Tags,
		IsPinned:      d.IsPinned,
		CreatedDates:  toHistory(d.CustomCreatedDates),
		ModifiedDates: toHistory(d.CustomLastModifiedDates),
		LastModified:  d.LastModified,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}
