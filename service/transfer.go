// service/transfer.go
package service

import (
	"context"
	"strings"

	"github.com/ViniZap4/lumi-notes/domain"
	"github.com/ViniZap4/lumi-notes/filesystem"
)

const (
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

// ExportNote renders a note as markdown with frontmatter or as HTML. It
// returns the body and its content type.
func (s *Service) ExportNote(ctx context.Context, id, format string) ([]byte, string, error) {
	n, err := s.GetNote(ctx, id)
	if err != nil {
		return nil, "", err
	}
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatMarkdown, "markdown":
		data, err := filesystem.WriteNote(n)
		return data, "text/markdown; charset=utf-8", err
	case FormatHTML:
		data, err := filesystem.WriteHTML(n)
		return data, "text/html; charset=utf-8", err
	default:
		return nil, "", domain.Validationf("Unsupported export format: %s", format)
	}
}

// ImportNote creates a note in folderID from a markdown document. Frontmatter
// dates become explicit created and modified dates.
func (s *Service) ImportNote(ctx context.Context, folderID string, data []byte) (*domain.Note, error) {
	doc, err := filesystem.ParseNote(data)
	if err != nil {
		return nil, domain.Validation("Invalid markdown document")
	}

	tags := Tags(NormalizeTags(doc.Tags))
	pinned := FlexBool(doc.Pinned)
	in := NoteInput{
		Title:    ptr(doc.Title),
		Content:  ptr(doc.Content),
		FolderID: ptr(folderID),
		Tags:     &tags,
		IsPinned: &pinned,
	}
	if doc.Created != "" {
		in.CustomCreatedAt = ptr(doc.Created)
	}
	if doc.Modified != "" {
		in.CustomLastModified = ptr(doc.Modified)
	}
	return s.CreateNote(ctx, in)
}
