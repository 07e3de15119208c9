package notes

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Repository provides note persistence operations
type Repository interface {
	Insert(ctx context.Context, n *Note) error
	List(ctx context.Context) ([]*Note, error)
	// Get returns (nil, nil) when no note has the given id.
	Get(ctx context.Context, id string) (*Note, error)
	// Delete succeeds even when nothing matched.
	Delete(ctx context.Context, id string) error
}

// MongoRepository implements Repository using the "notes" collection.
// Documents are keyed by the string "id" field; the Mongo _id is never exposed.
type MongoRepository struct {
	col *mongo.Collection
}

func NewMongoRepository(col *mongo.Collection) *MongoRepository {
	return &MongoRepository{col: col}
}

var withoutObjectID = bson.M{"_id": 0}

func (r *MongoRepository) Insert(ctx context.Context, n *Note) error {
	if _, err := r.col.InsertOne(ctx, n); err != nil {
		return fmt.Errorf("insert note: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]*Note, error) {
	opts := options.Find().
		SetProjection(withoutObjectID).
		SetSort(bson.D{{Key: "date", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find notes: %w", err)
	}
	defer cur.Close(ctx)
	out := []*Note{}
	for cur.Next(ctx) {
		var n Note
		if err := cur.Decode(&n); err != nil {
			return nil, fmt.Errorf("decode note: %w", err)
		}
		out = append(out, &n)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate notes: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) Get(ctx context.Context, id string) (*Note, error) {
	var n Note
	opts := options.FindOne().SetProjection(withoutObjectID)
	if err := r.col.FindOne(ctx, bson.M{"id": id}, opts).Decode(&n); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("find note %q: %w", id, err)
	}
	return &n, nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("delete note %q: %w", id, err)
	}
	return nil
}
