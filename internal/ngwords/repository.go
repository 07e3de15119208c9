package ngwords

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrDuplicateWord is returned when the word is already registered.
var ErrDuplicateWord = errors.New("ng word already registered")

// BannedWord is a single entry of the "ngs" collection.
type BannedWord struct {
	Word string `json:"word" bson:"word"`
}

// Repository provides banned word persistence operations
type Repository interface {
	Insert(ctx context.Context, word string) error
	// List returns words in natural (insertion) order.
	List(ctx context.Context) ([]string, error)
	// Delete succeeds even when nothing matched.
	Delete(ctx context.Context, word string) error
}

// MongoRepository implements Repository using the "ngs" collection.
type MongoRepository struct {
	col *mongo.Collection
}

// NewMongoRepository ensures the unique index on "word" and returns the repository.
func NewMongoRepository(ctx context.Context, col *mongo.Collection) (*MongoRepository, error) {
	idx := mongo.IndexModel{Keys: bson.D{{Key: "word", Value: 1}}, Options: options.Index().SetUnique(true)}
	if _, err := col.Indexes().CreateOne(ctx, idx); err != nil {
		return nil, fmt.Errorf("create ngs word index: %w", err)
	}
	return &MongoRepository{col: col}, nil
}

func (r *MongoRepository) Insert(ctx context.Context, word string) error {
	if _, err := r.col.InsertOne(ctx, BannedWord{Word: word}); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateWord
		}
		return fmt.Errorf("insert ng word: %w", err)
	}
	return nil
}

func (r *MongoRepository) List(ctx context.Context) ([]string, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetProjection(bson.M{"_id": 0}))
	if err != nil {
		return nil, fmt.Errorf("find ng words: %w", err)
	}
	defer cur.Close(ctx)
	out := []string{}
	for cur.Next(ctx) {
		// documents without a string "word" field are skipped
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode ng word: %w", err)
		}
		if w, ok := raw["word"].(string); ok {
			out = append(out, w)
		}
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate ng words: %w", err)
	}
	return out, nil
}

func (r *MongoRepository) Delete(ctx context.Context, word string) error {
	if _, err := r.col.DeleteOne(ctx, bson.M{"word": word}); err != nil {
		return fmt.Errorf("delete ng word: %w", err)
	}
	return nil
}
