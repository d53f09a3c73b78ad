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

func TestUpdateMovieFullReplacement(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	library := repository.NewLibraryRepo(db)
	ctx := context.Background()

	uid, err := users.Create(ctx, "Mile")
	require.NoError(t, err)
	m := titanic()
	require.NoError(t, library.AddMovie(ctx, uid, &m))

	replacement := model.Movie{
		ID:       m.ID,
		Title:    "Titanic Directors Cut",
		Director: "James Cameron",
		Year:     1998,
		Rating:   9.0,
		Poster:   "http://posters/titanic-dc.jpg",
	}
	require.NoError(t, movies.Update(ctx, replacement))

	got, err := movies.GetByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, replacement, got)

	// Submitting unchanged values is still a successful update.
	require.NoError(t, movies.Update(ctx, replacement))

	replacement.ID = m.ID + 1000
	assert.ErrorIs(t, movies.Update(ctx, replacement), repository.ErrMovieNotFound)
}

func TestListByUserEmptyAndJoined(t *testing.T) {
	db := testutil.SetupTestDB(t)
	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	library := repository.NewLibraryRepo(db)
	ctx := context.Background()

	alice, err := users.Create(ctx, "alice")
	require.NoError(t, err)
	bob, err := users.Create(ctx, "bob")
	require.NoError(t, err)

	m := titanic()
	require.NoError(t, library.AddMovie(ctx, alice, &m))

	owned, err := movies.ListByUser(ctx, alice)
	require.NoError(t, err)
	assert.Len(t, owned, 1)

	// Bob has no entries; the join yields an empty slice, not an error.
	owned, err = movies.ListByUser(ctx, bob)
	require.NoError(t, err)
	assert.Empty(t, owned)
}
