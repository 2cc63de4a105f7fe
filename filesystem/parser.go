// filesystem/parser.go
package filesystem

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Frontmatter is the YAML header of an exported note. Dates are kept as
// strings so zone-less values survive until the caller parses them in the
// right location.
type Frontmatter struct {
	ID       string   `yaml:"id,omitempty"`
	Title    string   `yaml:"title"`
	Folder   string   `yaml:"folder,omitempty"`
	Tags     []string `yaml:"tags,omitempty"`
	Pinned   bool     `yaml:"pinned,omitempty"`
	Created  string   `yaml:"created,omitempty"`
	Modified string   `yaml:"modified,omitempty"`
}

type Document struct {
	Frontmatter
	Content string
}

// ParseNote reads a markdown note. The frontmatter block is optional; when
// it carries no title the first "# " heading is used.
func ParseNote(data []byte) (*Document, error) {
	data = bytes.TrimPrefix(data, []byte("\ufeff"))
	text := strings.ReplaceAll(string(data), "\r\n", "\n")

	doc := &Document{}
	body := text
	if rest, ok := strings.CutPrefix(text, "---\n"); ok {
		header, content, found := cutFrontmatter(rest)
		if !found {
			return nil, fmt.Errorf("invalid frontmatter format")
		}
		if err := yaml.Unmarshal([]byte(header), &doc.Frontmatter); err != nil {
			return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
		}
		body = content
	}

	doc.Content = strings.TrimSpace(body)
	doc.Title = strings.TrimSpace(doc.Title)
	if doc.Title == "" {
		doc.Title = firstHeading(doc.Content)
	}
	return doc, nil
}

// cutFrontmatter splits at the closing "---" line.
func cutFrontmatter(s string) (header, content string, found bool) {
	if rest, ok := strings.CutPrefix(s, "---\n"); ok {
		return "", rest, true
	}
	if s == "---" {
		return "", "", true
	}
	header, content, found = strings.Cut(s, "\n---\n")
	if !found && strings.HasSuffix(s, "\n---") {
		return strings.TrimSuffix(s, "\n---"), "", true
	}
	return header, content, found
}

func firstHeading(content string) string {
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		if title, ok := strings.CutPrefix(strings.TrimSpace(sc.Text()), "# "); ok {
			return strings.TrimSpace(title)
		}
	}
	return ""
}
