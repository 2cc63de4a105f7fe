package postgres

import (
	"testing"
	"time"

	"github.com/ViniZap4/lumi-notes/domain"
)

func TestOrderClausePinnedFirst(t *testing.T) {
	tests := []struct {
		field domain.SortField
		asc   bool
		want  string
	}{
		{domain.SortByCreatedAt, false, "n.is_pinned DESC, n.created_at DESC, n.id ASC"},
		{domain.SortByLastModified, true, "n.is_pinned DESC, n.last_modified ASC, n.id ASC"},
		{domain.SortByTitle, true, `n.is_pinned DESC, n.title COLLATE "C" ASC, n.id ASC`},
	}
	for _, tt := range tests {
		if got := orderClause(tt.field, tt.asc); got != tt.want {
			t.Fatalf("orderClause(%s, %v) = %q, want %q", tt.field, tt.asc, got, tt.want)
		}
	}
}

func TestTSQuerySanitizes(t *testing.T) {
	tests := map[string]string{
		"hello world":        "hello | world",
		"  café's & (notes)": "cafés | notes",
		"!!! :*":             "",
		"go1.22":             "go122",
	}
	for in, want := range tests {
		if got := tsQuery(in); got != want {
			t.Fatalf("tsQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNoteFilterWhereNumbersPlaceholders(t *testing.T) {
	since := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	id := "6f1c2f8e-4f7a-4b8e-9d1a-0c2b3d4e5f60"
	w := noteFilterWhere(domain.NoteFilter{FolderID: id, PinnedOnly: true, CreatedSince: since})
	want := " WHERE n.folder_id = $1 AND n.is_pinned AND n.created_at >= $2"
	if got := w.String(); got != want {
		t.Fatalf("where = %q, want %q", got, want)
	}
	if len(w.args) != 2 {
		t.Fatalf("expected 2 args, got %d", len(w.args))
	}
	if got := w.placeholder(1); got != "$3" {
		t.Fatalf("next placeholder = %q", got)
	}
	if got := noteFilterWhere(domain.NoteFilter{}).String(); got != "" {
		t.Fatalf("empty filter where = %q", got)
	}
}

func TestNoteFilterWhereRejectsMalformedFolderID(t *testing.T) {
	w := noteFilterWhere(domain.NoteFilter{FolderID: "not-a-uuid"})
	if got := w.String(); got != " WHERE false" || len(w.args) != 0 {
		t.Fatalf("where = %q with %d args", got, len(w.args))
	}
}
