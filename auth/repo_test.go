package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/jimiolaniyan/microboard/internal/mongodb"
	"github.com/jimiolaniyan/microboard/internal/sqldb"
)

// RepositoryTestSuite runs the same contract against every Repository.
type RepositoryTestSuite struct {
	suite.Suite
	newRepo func(t *testing.T) Repository
	repo    Repository
}

func (s *RepositoryTestSuite) SetupTest() {
	s.repo = s.newRepo(s.T())
}

func (s *RepositoryTestSuite) TestStoreAssignsIDs() {
	ctx := context.Background()
	a := &Account{Credentials: Credentials{"a", "pass"}}
	b := &Account{Credentials: Credentials{"b", "pass"}}

	require.NoError(s.T(), s.repo.Store(ctx, a))
	require.NoError(s.T(), s.repo.Store(ctx, b))

	assert.NotZero(s.T(), a.ID)
	assert.NotZero(s.T(), b.ID)
	assert.NotEqual(s.T(), a.ID, b.ID)
}

func (s *RepositoryTestSuite) TestStoreRejectsDuplicateUsername() {
	ctx := context.Background()
	require.NoError(s.T(), s.repo.Store(ctx, &Account{Credentials: Credentials{"a", "pass"}}))

	err := s.repo.Store(ctx, &Account{Credentials: Credentials{"a", "other"}})

	assert.Equal(s.T(), ErrExistingUsername, err)
}

func (s *RepositoryTestSuite) TestFind() {
	ctx := context.Background()
	a := &Account{Credentials: Credentials{"alice", "secret"}}
	require.NoError(s.T(), s.repo.Store(ctx, a))

	got, err := s.repo.FindByID(ctx, a.ID)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), *a, *got)

	got, err = s.repo.FindByName(ctx, "alice")
	require.NoError(s.T(), err)
	assert.Equal(s.T(), *a, *got)

	_, err = s.repo.FindByName(ctx, "Alice")
	assert.Equal(s.T(), ErrNotFound, err)

	_, err = s.repo.FindByID(ctx, a.ID+100)
	assert.Equal(s.T(), ErrNotFound, err)

	all, err := s.repo.FindAll(ctx)
	require.NoError(s.T(), err)
	assert.Equal(s.T(), []Account{*a}, all)
}

func (s *RepositoryTestSuite) TestDelete() {
	ctx := context.Background()
	a := &Account{Credentials: Credentials{"a", "pass"}}
	require.NoError(s.T(), s.repo.Store(ctx, a))

	existed, err := s.repo.Delete(ctx, a.ID)
	require.NoError(s.T(), err)
	assert.True(s.T(), existed)

	existed, err = s.repo.Delete(ctx, a.ID)
	require.NoError(s.T(), err)
	assert.False(s.T(), existed)

	_, err = s.repo.FindByID(ctx, a.ID)
	assert.Equal(s.T(), ErrNotFound, err)
}

func TestInMemoryRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(*testing.T) Repository {
		return NewAccountRepository()
	}})
}

func TestSQLRepository(t *testing.T) {
	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) Repository {
		db, err := sqldb.Open("sqlite", filepath.Join(t.TempDir(), "accounts.db"))
		require.NoError(t, err)
		t.Cleanup(func() { _ = db.Close() })

		repo, err := NewSQLAccountRepository(context.Background(), db)
		require.NoError(t, err)
		return repo
	}})
}

// TestMongoRepository needs a running server at MICROBOARD_TEST_MONGO_URI.
func TestMongoRepository(t *testing.T) {
	uri := os.Getenv("MICROBOARD_TEST_MONGO_URI")
	if uri == "" {
		t.Skip("MICROBOARD_TEST_MONGO_URI not set")
	}

	suite.Run(t, &RepositoryTestSuite{newRepo: func(t *testing.T) Repository {
		ctx := context.Background()
		client, err := mongodb.Connect(ctx, uri)
		require.NoError(t, err)
		db := client.Database("microboard_auth_test")
		require.NoError(t, db.Drop(ctx))
		t.Cleanup(func() {
			_ = db.Drop(ctx)
			_ = client.Disconnect(ctx)
		})

		repo, err := NewMongoAccountRepository(ctx, db)
		require.NoError(t, err)
		return repo
	}})
}
