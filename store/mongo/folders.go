// store/mongo/folders.go
package mongo

import (
	"context"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ViniZap4/lumi-notes/domain"
)

func (s *Store) ListFolders(ctx context.Context) ([]domain.Folder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: 1}})
	cursor, err := s.folders().Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	var docs []folderDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	folders := make([]domain.Folder, len(docs))
	for i, d := range docs {
		folders[i] = d.folder()
	}
	return folders, nil
}

func (s *Store) findFolder(ctx context.Context, filter bson.M) (*domain.Folder, error) {
	var doc folderDoc
	if err := s.folders().FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	f := doc.folder()
	return &f, nil
}

func (s *Store) GetFolder(ctx context.Context, id string) (*domain.Folder, error) {
	return s.findFolder(ctx, bson.M{"_id": id})
}

func (s *Store) FindFolderByName(ctx context.Context, name string) (*domain.Folder, error) {
	return s.findFolder(ctx, bson.M{"name": name})
}

func (s *Store) CreateFolder(ctx context.Context, f *domain.Folder) error {
	_, err := s.folders().InsertOne(ctx, newFolderDoc(f))
	return translate(err)
}

func (s *Store) UpdateFolder(ctx context.Context, f *domain.Folder) error {
	doc := newFolderDoc(f)
	res, err := s.folders().UpdateOne(ctx, bson.M{"_id": f.ID}, bson.M{"$set": bson.M{
		"name":               doc.Name,
		"description":        doc.Description,
		"color":              doc.Color,
		"customCreatedDates": doc.CustomCreatedDates,
		"updatedAt":          doc.UpdatedAt,
	}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (s *Store) SetNotesCount(ctx context.Context, id string, count int) error {
	res, err := s.folders().UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"notesCount": count}})
	if err != nil {
		return translate(err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteFolder refuses to remove a folder that notes still point to; Mongo
// has no foreign keys to do it for us.
func (s *Store) DeleteFolder(ctx context.Context, id string) error {
	n, err := s.notes().CountDocuments(ctx, bson.M{"folderId": id})
	if err != nil {
		return err
	}
	if n > 0 {
		return domain.ErrReferenced
	}
	res, err := s.folders().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return translate(err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
