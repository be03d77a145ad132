package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "reviews"

type reviewDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	BookTitle  string             `bson:"bookTitle"`
	Author     string             `bson:"author"`
	Rating     int                `bson:"rating"`
	ReviewText string             `bson:"reviewText"`
	DateAdded  time.Time          `bson:"dateAdded"`
}

func (d reviewDocument) toReview() *Review {
	return &Review{
		ID:         d.ID.Hex(),
		BookTitle:  d.BookTitle,
		Author:     d.Author,
		Rating:     d.Rating,
		ReviewText: d.ReviewText,
		DateAdded:  d.DateAdded.UTC(),
	}
}

type MongoRepository struct {
	coll *mongo.Collection
	now  func() time.Time
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		coll: db.Collection(CollectionName),
		now:  time.Now,
	}
}

// EnsureIndexes creates the dateAdded index used by ListAll.
func (r *MongoRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "dateAdded", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create reviews index: %w", err)
	}
	return nil
}

func (r *MongoRepository) ListAll(ctx context.Context) ([]Review, error) {
	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	opts := options.Find().SetSort(bson.D{
		{Key: "dateAdded", Value: -1},
		{Key: "_id", Value: -1},
	})
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}

	var docs []reviewDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("failed to decode reviews: %w", err)
	}

	out := make([]Review, 0, len(docs))
	for _, d := range docs {
		out = append(out, *d.toReview())
	}
	return out, nil
}

func (r *MongoRepository) Create(ctx context.Context, in CreateInput) (*Review, error) {
	in = in.trimmed()
	if err := Validate(in); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	doc := reviewDocument{
		ID:         primitive.NewObjectID(),
		BookTitle:  in.BookTitle,
		Author:     in.Author,
		Rating:     int(in.Rating),
		ReviewText: in.ReviewText,
		// BSON dates carry millisecond precision
		DateAdded: r.now().UTC().Truncate(time.Millisecond),
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return nil, fmt.Errorf("failed to insert review: %w", err)
	}
	return doc.toReview(), nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id string) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	var doc reviewDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return doc.toReview(), nil
}

func (r *MongoRepository) Update(ctx context.Context, id string, in UpdateInput) (*Review, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if err := validateUpdate(in); err != nil {
		// a missing record is reported ahead of a bad rating
		if _, lookupErr := r.GetByID(ctx, id); errors.Is(lookupErr, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	fields := in.Fields()
	if len(fields) == 0 {
		return r.GetByID(ctx, id)
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc reviewDocument
	err = r.coll.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(fields)}, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to update review: %w", err)
	}
	return doc.toReview(), nil
}

func (r *MongoRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, QueryTimeoutDuration)
	defer cancel()

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("failed to delete review: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
