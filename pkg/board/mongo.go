package board

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/draftboard/pkg/errors"
)

// MongoStore persists boards in a MongoDB collection, for server
// deployments. Optimistic concurrency is enforced by including the read
// version in the update filter.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the MongoDB connection.
type MongoConfig struct {
	// URI is the connection string, e.g. mongodb://localhost:27017.
	URI string

	// Database defaults to "draftboard".
	Database string

	// Collection defaults to "boards".
	Collection string
}

// NewMongoStore connects to MongoDB, verifies connectivity, and ensures
// the owner index exists.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "draftboard"
	}
	if cfg.Collection == "" {
		cfg.Collection = "boards"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to mongodb")
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "ping mongodb")
	}

	s := &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}
	if err := s.ensureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) ensureIndexes(ctx context.Context) error {
	_, err := s.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "owner", Value: 1}, {Key: "updated_at", Value: -1}},
	})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create board indexes")
	}
	return nil
}

func (s *MongoStore) Create(ctx context.Context, b *Board) error {
	if err := Validate(b); err != nil {
		return err
	}

	if _, err := s.collection.InsertOne(ctx, b); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New(errors.ErrCodeInvalidBoard, "board %s already exists", b.ID)
		}
		return errors.Wrap(errors.ErrCodeInternal, err, "insert board")
	}
	return nil
}

func (s *MongoStore) Get(ctx context.Context, owner, id string) (*Board, error) {
	var b Board
	err := s.collection.FindOne(ctx, bson.M{"_id": id, "owner": owner}).Decode(&b)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "find board")
	}
	return &b, nil
}

func (s *MongoStore) List(ctx context.Context, owner string) ([]Summary, error) {
	opts := options.Find().
		SetProjection(bson.M{"_id": 1, "name": 1, "version": 1, "updated_at": 1}).
		SetSort(bson.D{{Key: "updated_at", Value: -1}, {Key: "_id", Value: 1}})

	cursor, err := s.collection.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "list boards")
	}
	defer cursor.Close(ctx)

	summaries := make([]Summary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "decode board list")
	}
	return summaries, nil
}

func (s *MongoStore) Update(ctx context.Context, b *Board) error {
	if err := Validate(b); err != nil {
		return err
	}

	now := time.Now().UTC()
	res, err := s.collection.UpdateOne(ctx,
		bson.M{"_id": b.ID, "owner": b.Owner, "version": b.Version},
		bson.M{
			"$set": bson.M{
				"name":       b.Name,
				"prompt":     b.Prompt,
				"elements":   b.Elements,
				"updated_at": now,
			},
			"$inc": bson.M{"version": 1},
		})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "update board")
	}

	if res.MatchedCount == 0 {
		// Distinguish a missing board from a stale version.
		count, err := s.collection.CountDocuments(ctx, bson.M{"_id": b.ID, "owner": b.Owner})
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "check board existence")
		}
		if count == 0 {
			return errors.New(errors.ErrCodeBoardNotFound, "board %s not found", b.ID)
		}
		return errors.New(errors.ErrCodeVersionConflict,
			"board %s version %d is stale", b.ID, b.Version)
	}

	b.Version++
	b.UpdatedAt = now
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, owner, id string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"_id": id, "owner": owner})
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "delete board")
	}
	if res.DeletedCount == 0 {
		return errors.New(errors.ErrCodeBoardNotFound, "board %s not found", id)
	}
	return nil
}

func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ Store = (*MongoStore)(nil)
