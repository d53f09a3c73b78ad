package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/milevb/movieweb/internal/model"
	"github.com/milevb/movieweb/internal/repository"
	"github.com/milevb/movieweb/internal/testutil"
)

func TestCreateUserAndAvailability(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	avail, err := users.NameAvailable(ctx, "Mile")
	require.NoError(t, err)
	assert.True(t, avail, "fresh database should have the name free")

	id, err := users.Create(ctx, "Mile")
	require.NoError(t, err)
	assert.NotZero(t, id)

	avail, err = users.NameAvailable(ctx, "Mile")
	require.NoError(t, err)
	assert.False(t, avail, "taken name must not be reported available")

	// Availability is case-sensitive.
	avail, err = users.NameAvailable(ctx, "mile")
	require.NoError(t, err)
	assert.True(t, avail)

	_, err = users.Create(ctx, "Mile")
	assert.ErrorIs(t, err, repository.ErrNameTaken)
}

func TestUserListOrderAndLookup(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := repository.NewUserRepo(db)
	ctx := context.Background()

	idA, err := users.Create(ctx, "alice_1")
	require.NoError(t, err)
	idB, err := users.Create(ctx, "bob_2")
	require.NoError(t, err)

	list, err := users.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "alice_1", list[0].Name, "insertion order expected")
	assert.Equal(t, "bob_2", list[1].Name)

	exists, err := users.IDExists(ctx, idA)
	require.NoError(t, err)
	assert.True(t, exists)
	exists, err = users.IDExists(ctx, idB+1000)
	require.NoError(t, err)
	assert.False(t, exists)

	name, err := users.GetNameByID(ctx, idB)
	require.NoError(t, err)
	assert.Equal(t, "bob_2", name)

	_, err = users.GetNameByID(ctx, idB+1000)
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestDeleteUserCascades(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	library := repository.NewLibraryRepo(db)
	ctx := context.Background()

	uid, err := users.Create(ctx, "Mile")
	require.NoError(t, err)

	m := model.Movie{Title: "Titanic", Director: "James Cameron", Year: 1997, Rating: 8.7, Poster: "http://posters/titanic.jpg"}
	require.NoError(t, library.AddMovie(ctx, uid, &m))

	require.NoError(t, users.Delete(ctx, uid))

	// The movie row and the junction row went with the account.
	_, err = movies.GetByID(ctx, m.ID)
	assert.ErrorIs(t, err, repository.ErrMovieNotFound)

	owned, err := movies.ListByUser(ctx, uid)
	require.NoError(t, err)
	assert.Empty(t, owned)

	assert.ErrorIs(t, users.Delete(ctx, uid), repository.ErrUserNotFound)
}
