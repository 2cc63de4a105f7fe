// store/mongo/query.go
package mongo

import (
	"strings"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/ViniZap4/lumi-notes/domain"
)

var sortKeys = map[domain.SortField]string{
	domain.SortByCreatedAt:    "createdAt",
	domain.SortByLastModified: "lastModified",
	domain.SortByTitle:        "title",
}

// sortDocument puts pinned notes first, then applies the requested field.
func sortDocument(field domain.SortField, ascending bool) bson.D {
	key, ok := sortKeys[field]
	if !ok {
		key = "createdAt"
	}
	dir := -1
	if ascending {
		dir = 1
	}
	return bson.D{
		{Key: "isPinned", Value: -1},
		{Key: key, Value: dir},
		{Key: "_id", Value: 1},
	}
}

func noteFilter(filter domain.NoteFilter) bson.M {
	m := bson.M{}
	if filter.FolderID != "" {
		m["folderId"] = filter.FolderID
	}
	if filter.PinnedOnly {
		m["isPinned"] = true
	}
	if !filter.CreatedSince.IsZero() {
		m["createdAt"] = bson.M{"$gte": filter.CreatedSince}
	}
	return m
}

func textFilter(m bson.M, text string) bson.M {
	if text = strings.TrimSpace(text); text != "" {
		m["$text"] = bson.M{"$search": text}
	}
	return m
}
