package auth

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/jimiolaniyan/microboard/internal/mongodb"
)

type mongoAccountRepository struct {
	collection *mongo.Collection
	ids        *mongodb.Sequence
}

type dbAccount struct {
	ID       ID `bson:"_id"`
	Username string
	Password string
}

// NewMongoAccountRepository stores accounts in the "accounts" collection of
// db and makes sure usernames are uniquely indexed.
func NewMongoAccountRepository(ctx context.Context, db *mongo.Database) (Repository, error) {
	c := db.Collection("accounts")
	if err := mongodb.EnsureIndex(ctx, c, "username", true); err != nil {
		return nil, err
	}
	return &mongoAccountRepository{collection: c, ids: mongodb.NewSequence(db, "accounts")}, nil
}

func (m *mongoAccountRepository) FindByName(ctx context.Context, username string) (*Account, error) {
	return m.findAccountBy(ctx, "username", username)
}

func (m *mongoAccountRepository) FindByID(ctx context.Context, id ID) (*Account, error) {
	return m.findAccountBy(ctx, "_id", id)
}

func (m *mongoAccountRepository) findAccountBy(ctx context.Context, key string, val interface{}) (*Account, error) {
	var a dbAccount
	sr := m.collection.FindOne(ctx, bson.M{key: val})

	if errors.Is(sr.Err(), mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}

	if err := sr.Decode(&a); err != nil {
		return nil, err
	}

	acc := accountFromDBAccount(a)
	return &acc, nil
}

func (m *mongoAccountRepository) FindAll(ctx context.Context) ([]Account, error) {
	cur, err := m.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}

	var docs []dbAccount
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	accounts := make([]Account, 0, len(docs))
	for _, a := range docs {
		accounts = append(accounts, accountFromDBAccount(a))
	}
	return accounts, nil
}

func (m *mongoAccountRepository) Store(ctx context.Context, acc *Account) error {
	id, err := m.ids.Next(ctx)
	if err != nil {
		return err
	}

	dba := dbAccountFromAccount(acc)
	dba.ID = ID(id)
	if _, err := m.collection.InsertOne(ctx, &dba); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrExistingUsername
		}
		return err
	}

	acc.ID = dba.ID
	return nil
}

func (m *mongoAccountRepository) Delete(ctx context.Context, id ID) (bool, error) {
	res, err := m.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

func dbAccountFromAccount(a *Account) dbAccount {
	return dbAccount{a.ID, a.Username, a.Password}
}

func accountFromDBAccount(a dbAccount) Account {
	return Account{ID: a.ID, Credentials: Credentials{Username: a.Username, Password: a.Password}}
}
