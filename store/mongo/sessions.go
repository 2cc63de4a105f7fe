// store/mongo/sessions.go
package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/ViniZap4/lumi-notes/domain"
)

func (s *Store) GetSession(ctx context.Context) (*domain.Session, error) {
	var doc sessionDoc
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	if err := s.sessions().FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		return nil, translate(err)
	}
	return &domain.Session{
		ID:            doc.ID,
		Token:         doc.SessionID,
		Authenticated: doc.IsAuthenticated,
		LastLogin:     doc.LastLogin,
		CreatedAt:     doc.CreatedAt,
		UpdatedAt:     doc.UpdatedAt,
	}, nil
}

func (s *Store) SaveSession(ctx context.Context, sess *domain.Session) error {
	doc := sessionDoc{
		ID:              sess.ID,
		SessionID:       sess.Token,
		IsAuthenticated: sess.Authenticated,
		LastLogin:       sess.LastLogin,
		CreatedAt:       sess.CreatedAt,
		UpdatedAt:       sess.UpdatedAt,
	}
	_, err := s.sessions().ReplaceOne(ctx, bson.M{"_id": sess.ID}, doc, options.Replace().SetUpsert(true))
	return translate(err)
}

func (s *Store) ClearSessions(ctx context.Context) error {
	_, err := s.sessions().UpdateMany(ctx, bson.M{}, bson.M{"$set": bson.M{
		"isAuthenticated": false,
		"sessionId":       "",
		"updatedAt":       time.Now().UTC(),
	}})
	return err
}
