// Package mongodb holds the MongoDB plumbing shared by the account and
// message repositories.
package mongodb

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const countersCollection = "counters"

// Connect dials uri and pings the primary before returning the client.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// Sequence hands out increasing integer ids for one collection, backed by a
// document in the counters collection so ids survive restarts.
type Sequence struct {
	counters *mongo.Collection
	name     string
}

func NewSequence(db *mongo.Database, name string) *Sequence {
	return &Sequence{counters: db.Collection(countersCollection), name: name}
}

func (s *Sequence) Next(ctx context.Context) (int, error) {
	var doc struct {
		Seq int `bson:"seq"`
	}

	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := s.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": s.name},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

// EnsureIndex creates an ascending index on field, unique when requested.
func EnsureIndex(ctx context.Context, c *mongo.Collection, field string, unique bool) error {
	_, err := c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(unique),
	})
	return err
}
