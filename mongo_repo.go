package microboard

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jimiolaniyan/microboard/auth"
	"github.com/jimiolaniyan/microboard/internal/mongodb"
)

type mongoMessageRepository struct {
	collection *mongo.Collection
	ids        *mongodb.Sequence
}

type dbMessage struct {
	ID         MessageID `bson:"_id"`
	PostedBy   auth.ID   `bson:"posted_by"`
	Text       string    `bson:"text"`
	TimePosted int64     `bson:"time_posted"`
}

// NewMongoMessageRepository stores messages in the "messages" collection of
// db, indexed by author.
func NewMongoMessageRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	c := db.Collection("messages")
	if err := mongodb.EnsureIndex(ctx, c, "posted_by", false); err != nil {
		return nil, err
	}
	return &mongoMessageRepository{collection: c, ids: mongodb.NewSequence(db, "messages")}, nil
}

func (m *mongoMessageRepository) FindByID(ctx context.Context, id MessageID) (*Message, error) {
	var dbm dbMessage
	sr := m.collection.FindOne(ctx, bson.M{"_id": id})

	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrMessageNotFound
	}

	if err := sr.Decode(&dbm); err != nil {
		return nil, err
	}

	msg := messageFromDBMessage(dbm)
	return &msg, nil
}

func (m *mongoMessageRepository) FindAll(ctx context.Context) ([]Message, error) {
	return m.find(ctx, bson.M{})
}

func (m *mongoMessageRepository) FindByAuthor(ctx context.Context, author auth.ID) ([]Message, error) {
	return m.find(ctx, bson.M{"posted_by": author})
}

func (m *mongoMessageRepository) find(ctx context.Context, filter bson.M) ([]Message, error) {
	cur, err := m.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}

	var docs []dbMessage
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	messages := make([]Message, 0, len(docs))
	for _, d := range docs {
		messages = append(messages, messageFromDBMessage(d))
	}
	return messages, nil
}

func (m *mongoMessageRepository) Store(ctx context.Context, msg *Message) error {
	id, err := m.ids.Next(ctx)
	if err != nil {
		return err
	}

	dbm := dbMessageFromMessage(msg)
	dbm.ID = MessageID(id)
	if _, err := m.collection.InsertOne(ctx, &dbm); err != nil {
		return err
	}

	msg.ID = dbm.ID
	return nil
}

func (m *mongoMessageRepository) Update(ctx context.Context, msg *Message) error {
	dbm := dbMessageFromMessage(msg)
	res, err := m.collection.ReplaceOne(ctx, bson.M{"_id": dbm.ID}, dbm)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrMessageNotFound
	}
	return nil
}

func (m *mongoMessageRepository) Delete(ctx context.Context, id MessageID) (bool, error) {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func dbMessageFromMessage(m *Message) dbMessage {
	return dbMessage{m.ID, m.PostedBy, m.Text, m.TimePosted}
}

func messageFromDBMessage(m dbMessage) Message {
	return Message{ID: m.ID, PostedBy: m.PostedBy, Text: m.Text, TimePosted: m.TimePosted}
}
