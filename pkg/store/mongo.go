package store

import (
	"context"
	stderrors "errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/ggframe/pkg/errors"
	"github.com/matzehuels/ggframe/pkg/layout"
)

// Mongo defaults.
const (
	DefaultDatabase   = "ggframe"
	DefaultCollection = "layouts"
	DefaultRetention  = 30 * 24 * time.Hour
)

// MongoStore keeps reports in a MongoDB collection. Documents expire
// through a TTL index on the creation time.
type MongoStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

// NewMongoStore connects to uri and ensures the TTL index. A zero
// retention keeps reports forever.
func NewMongoStore(ctx context.Context, uri, database string, retention time.Duration) (*MongoStore, error) {
	if database == "" {
		database = DefaultDatabase
	}
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect mongo")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongo")
	}

	s := &MongoStore{client: client, coll: client.Database(database).Collection(DefaultCollection)}
	if retention > 0 {
		idx := mongo.IndexModel{
			Keys:    bson.D{{Key: "created", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(int32(retention / time.Second)),
		}
		if _, err := s.coll.Indexes().CreateOne(ctx, idx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "create ttl index")
		}
	}
	return s, nil
}

func (s *MongoStore) Put(ctx context.Context, r *layout.Report) (string, error) {
	prepare(r)
	if _, err := s.coll.InsertOne(ctx, r); err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "insert layout")
	}
	return r.ID, nil
}

func (s *MongoStore) Get(ctx context.Context, id string) (*layout.Report, error) {
	if err := validID(id); err != nil {
		return nil, err
	}
	var r layout.Report
	err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&r)
	if stderrors.Is(err, mongo.ErrNoDocuments) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "find layout")
	}
	return &r, nil
}

func (s *MongoStore) Close(ctx context.Context) error { return s.client.Disconnect(ctx) }

var _ Store = (*MongoStore)(nil)
