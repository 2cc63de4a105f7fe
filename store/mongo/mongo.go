// store/mongo/mongo.go
package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ViniZap4/lumi-notes/domain"
)

type Options struct {
	Database      string
	EnsureIndexes bool
	Logger        zerolog.Logger
}

// Store keeps folders, notes and the session in MongoDB collections.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	log    zerolog.Logger
}

func Open(ctx context.Context, uri string, opts Options) (*Store, error) {
	client, err := mongo.Connect(options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	name := opts.Database
	if name == "" {
		name = "notesapp"
	}
	s := &Store{client: client, db: client.Database(name), log: opts.Logger}
	if opts.EnsureIndexes {
		if err := s.ensureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
	}
	return s, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func (s *Store) folders() *mongo.Collection  { return s.db.Collection("folders") }
func (s *Store) notes() *mongo.Collection    { return s.db.Collection("notes") }
func (s *Store) sessions() *mongo.Collection { return s.db.Collection("sessions") }

func (s *Store) ensureIndexes(ctx context.Context) error {
	collections := map[*mongo.Collection][]mongo.IndexModel{
		s.folders(): {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true).SetName("folders_name_unique")},
			{Keys: bson.D{{Key: "createdAt", Value: -1}}},
		},
		s.notes(): {
			{
				Keys: bson.D{{Key: "title", Value: "text"}, {Key: "content", Value: "text"}, {Key: "tags", Value: "text"}},
				Options: options.Index().SetName("notes_text").
					SetWeights(bson.D{{Key: "title", Value: 10}, {Key: "tags", Value: 5}, {Key: "content", Value: 1}}),
			},
			{Keys: bson.D{{Key: "folderId", Value: 1}, {Key: "isPinned", Value: -1}, {Key: "createdAt", Value: -1}}},
			{Keys: bson.D{{Key: "folderId", Value: 1}, {Key: "isPinned", Value: -1}, {Key: "title", Value: 1}}},
			{Keys: bson.D{{Key: "folderId", Value: 1}, {Key: "isPinned", Value: -1}, {Key: "lastModified", Value: -1}}},
		},
	}
	for coll, models := range collections {
		if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", coll.Name(), err)
		}
	}
	s.log.Info().Str("database", s.db.Name()).Msg("mongo indexes ensured")
	return nil
}

func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return domain.ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrDuplicate
	default:
		return err
	}
}
