// store/mongo/notes.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ViniZap4/lumi-notes/domain"
)

func (s *Store) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	var doc noteDoc
	if err := s.notes().FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	notes, err := s.populate(ctx, []noteDoc{doc})
	if err != nil {
		return nil, err
	}
	return &notes[0], nil
}

func (s *Store) CreateNote(ctx context.Context, n *domain.Note) error {
	if _, err := s.GetFolder(ctx, n.FolderID); err != nil {
		return err
	}
	_, err := s.notes().InsertOne(ctx, newNoteDoc(n))
	return translate(err)
}

func (s *Store) UpdateNote(ctx context.Context, n *domain.Note) error {
	doc := newNoteDoc(n)
	res, err := s.notes().UpdateOne(ctx, bson.M{"_id": n.ID}, bson.M{"$set": bson.M{
		"folderId":                doc.FolderID,
		"title":                   doc.Title,
		"content":                 doc.Content,
		"images":                  doc.Images,
		"tags":                    doc.Tags,
		"isPinned":                doc.IsPinned,
		"customCreatedDates":      doc.CustomCreatedDates,
		"customLastModifiedDates": doc.CustomLastModifiedDates,
		"lastModified":            doc.LastModified,
		"updatedAt":               doc.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) DeleteNote(ctx context.Context, id string) error {
	res, err := s.notes().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) CountNotes(ctx context.Context, filter domain.NoteFilter) (int, error) {
	n, err := s.notes().CountDocuments(ctx, noteFilter(filter))
	return int(n), err
}

func (s *Store) ListNotes(ctx context.Context, q domain.NoteQuery) ([]domain.Note, int, error) {
	filter := textFilter(noteFilter(domain.NoteFilter{FolderID: q.FolderID}), q.Search)
	total, err := s.notes().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	opts := options.Find().
		SetSort(sortDocument(q.SortBy, q.Ascending)).
		SetSkip(int64(q.Skip())).
		SetLimit(int64(q.Limit))
	notes, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return notes, int(total), nil
}

func (s *Store) SearchNotes(ctx context.Context, text string, page, limit int) ([]domain.Note, int, error) {
	filter := textFilter(bson.M{}, text)
	if len(filter) == 0 {
		return []domain.Note{}, 0, nil
	}
	total, err := s.notes().CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	score := bson.M{"$meta": "textScore"}
	opts := options.Find().
		SetProjection(bson.M{"score": score}).
		SetSort(bson.D{{Key: "score", Value: score}, {Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))
	notes, err := s.find(ctx, filter, opts)
	if err != nil {
		return nil, 0, err
	}
	return notes, int(total), nil
}

func (s *Store) find(ctx context.Context, filter bson.M, opts *options.FindOptionsBuilder) ([]domain.Note, error) {
	cursor, err := s.notes().Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	var docs []noteDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	return s.populate(ctx, docs)
}

// populate converts docs and attaches the name and color of each owning folder.
func (s *Store) populate(ctx context.Context, docs []noteDoc) ([]domain.Note, error) {
	notes := make([]domain.Note, len(docs))
	if len(docs) == 0 {
		return notes, nil
	}

	ids := make([]string, 0, len(docs))
	seen := make(map[string]bool)
	for _, d := range docs {
		if !seen[d.FolderID] {
			seen[d.FolderID] = true
			ids = append(ids, d.FolderID)
		}
	}
	cursor, err := s.folders().Find(ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		options.Find().SetProjection(bson.M{"name": 1, "color": 1}))
	if err != nil {
		return nil, err
	}
	var folders []folderDoc
	if err := cursor.All(ctx, &folders); err != nil {
		return nil, err
	}
	refs := make(map[string]*domain.FolderRef, len(folders))
	for _, f := range folders {
		refs[f.ID] = &domain.FolderRef{ID: f.ID, Name: f.Name, Color: f.Color}
	}

	for i, d := range docs {
		notes[i] = d.note()
		notes[i].Folder = refs[d.FolderID]
	}
	return notes, nil
}
