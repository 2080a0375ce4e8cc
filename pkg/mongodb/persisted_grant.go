package mongodb

import (
	"context"
	"errors"

	"github.com/luikyv/go-oidc-grants/pkg/goidc"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const DefaultCollection = "persisted_grants"

var _ goidc.PersistedGrantManager = PersistedGrantManager{}

type PersistedGrantManager struct {
	Collection *mongo.Collection
}

type Option func(*settings)

type settings struct {
	collection string
}

// WithCollection overrides [DefaultCollection].
func WithCollection(name string) Option {
	return func(s *settings) {
		s.collection = name
	}
}

func NewPersistedGrantManager(database *mongo.Database, opts ...Option) PersistedGrantManager {
	s := settings{collection: DefaultCollection}
	for _, opt := range opts {
		opt(&s)
	}

	return PersistedGrantManager{
		Collection: database.Collection(s.collection),
	}
}

// EnsureIndexes creates the indexes backing the filters used for bulk
// queries. It is safe to call it more than once.
func (m PersistedGrantManager) EnsureIndexes(ctx context.Context) error {
	_, err := m.Collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "subject_id", Value: 1},
				{Key: "client_id", Value: 1},
				{Key: "type", Value: 1},
			},
		},
		{
			Keys: bson.D{{Key: "session_id", Value: 1}},
		},
	})
	return err
}

func (m PersistedGrantManager) Save(ctx context.Context, grant *goidc.PersistedGrant) error {
	filter := bson.D{{Key: "_id", Value: grant.Key}}
	opts := options.Replace().SetUpsert(true)
	if _, err := m.Collection.ReplaceOne(ctx, filter, grant, opts); err != nil {
		return err
	}

	return nil
}

func (m PersistedGrantManager) PersistedGrant(ctx context.Context, key string) (*goidc.PersistedGrant, error) {
	filter := bson.D{{Key: "_id", Value: key}}
	result := m.Collection.FindOne(ctx, filter)
	if err := result.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	var grant goidc.PersistedGrant
	if err := result.Decode(&grant); err != nil {
		return nil, err
	}

	return &grant, nil
}

func (m PersistedGrantManager) Delete(ctx context.Context, key string) error {
	filter := bson.D{{Key: "_id", Value: key}}
	if _, err := m.Collection.DeleteOne(ctx, filter); err != nil {
		return err
	}

	return nil
}

// PersistedGrants returns [goidc.ErrInvalidFilter] for an empty filter since
// it would scan the whole collection.
func (m PersistedGrantManager) PersistedGrants(
	ctx context.Context,
	filter goidc.PersistedGrantFilter,
) (
	[]*goidc.PersistedGrant,
	error,
) {
	if err := filter.RequireBounded(); err != nil {
		return nil, err
	}

	cursor, err := m.Collection.Find(ctx, filterDocument(filter))
	if err != nil {
		return nil, err
	}

	var grants []*goidc.PersistedGrant
	if err := cursor.All(ctx, &grants); err != nil {
		return nil, err
	}

	return grants, nil
}

// DeleteAll returns [goidc.ErrInvalidFilter] for an empty filter.
func (m PersistedGrantManager) DeleteAll(ctx context.Context, filter goidc.PersistedGrantFilter) error {
	if err := filter.RequireBounded(); err != nil {
		return err
	}

	if _, err := m.Collection.DeleteMany(ctx, filterDocument(filter)); err != nil {
		return err
	}

	return nil
}

func filterDocument(filter goidc.PersistedGrantFilter) bson.D {
	doc := bson.D{}
	if filter.SubjectID != "" {
		doc = append(doc, bson.E{Key: "subject_id", Value: filter.SubjectID})
	}
	if filter.SessionID != "" {
		doc = append(doc, bson.E{Key: "session_id", Value: filter.SessionID})
	}
	if filter.ClientID != "" {
		doc = append(doc, bson.E{Key: "client_id", Value: filter.ClientID})
	}
	if filter.Type != "" {
		doc = append(doc, bson.E{Key: "type", Value: filter.Type})
	}
	return doc
}
