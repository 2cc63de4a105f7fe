// store/postgres/query.go
package postgres

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/ViniZap4/lumi-notes/domain"
)

// orderClause puts pinned notes first, then applies the requested field.
func orderClause(field domain.SortField, ascending bool) string {
	dir := "DESC"
	if ascending {
		dir = "ASC"
	}
	col := "n.created_at"
	switch field {
	case domain.SortByTitle:
		col = `n.title COLLATE "C"`
	case domain.SortByLastModified:
		col = "n.last_modified"
	}
	return fmt.Sprintf("n.is_pinned DESC, %s %s, n.id ASC", col, dir)
}

// tsQuery turns free text into an OR of its words for to_tsquery. Every
// character that is not a letter or digit is dropped so the result can never
// be a tsquery syntax error.
func tsQuery(text string) string {
	var terms []string
	for _, word := range strings.Fields(text) {
		clean := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return r
			}
			return -1
		}, word)
		if clean != "" {
			terms = append(terms, clean)
		}
	}
	return strings.Join(terms, " | ")
}

type whereBuilder struct {
	conds []string
	args  []any
}

func (w *whereBuilder) add(cond string, arg any) {
	w.args = append(w.args, arg)
	w.conds = append(w.conds, strings.ReplaceAll(cond, "?", "$"+strconv.Itoa(len(w.args))))
}

func (w *whereBuilder) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// placeholder names the i-th parameter after the ones already bound.
func (w *whereBuilder) placeholder(i int) string {
	return "$" + strconv.Itoa(len(w.args)+i)
}

func noteFilterWhere(filter domain.NoteFilter) *whereBuilder {
	w := &whereBuilder{}
	switch {
	case filter.FolderID == "":
	case uuid.Validate(filter.FolderID) != nil:
		// Ids that are not uuids cannot match and would fail the cast.
		w.conds = append(w.conds, "false")
	default:
		w.add("n.folder_id = ?", filter.FolderID)
	}
	if filter.PinnedOnly {
		w.conds = append(w.conds, "n.is_pinned")
	}
	if !filter.CreatedSince.IsZero() {
		w.add("n.created_at >= ?", filter.CreatedSince)
	}
	return w
}
