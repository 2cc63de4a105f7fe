// filesystem/create.go
package filesystem

import (
	"bytes"
	"fmt"
	"html"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"

	"github.com/ViniZap4/lumi-notes/domain"
)

var mdRenderer = goldmark.New()

// WriteNote renders n as markdown with a YAML frontmatter header.
func WriteNote(n *domain.Note) ([]byte, error) {
	fm := Frontmatter{
		ID:       n.ID,
		Title:    n.Title,
		Tags:     n.Tags,
		Pinned:   n.IsPinned,
		Created:  n.MainCreatedAt().Format(time.RFC3339Nano),
		Modified: n.MainLastModified().Format(time.RFC3339Nano),
	}
	if n.Folder != nil {
		fm.Folder = n.Folder.Name
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(fm); err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}
	encoder.Close()

	buf.WriteString("---\n\n")
	buf.WriteString(n.Content)
	buf.WriteString("\n")
	return buf.Bytes(), nil
}

// WriteHTML renders the note content as a standalone HTML page.
func WriteHTML(n *domain.Note) ([]byte, error) {
	var body bytes.Buffer
	if err := mdRenderer.Convert([]byte(n.Content), &body); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}

	var buf bytes.Buffer
	title := html.EscapeString(n.Title)
	fmt.Fprintf(&buf, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n<title>%s</title>\n</head>\n<body>\n", title)
	fmt.Fprintf(&buf, "<h1>%s</h1>\n", title)
	buf.Write(body.Bytes())
	buf.WriteString("</body>\n</html>\n")
	return buf.Bytes(), nil
}
