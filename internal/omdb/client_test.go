package omdb

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOMDB serves a canned JSON body for every request.
func fakeOMDB(t *testing.T, status int, body string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEmpty(t, r.URL.Query().Get("apikey"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
	t.Cleanup(srv.Close)
	return New(srv.URL, "test-key", nil)
}

func TestLookupNormalizesPayload(t *testing.T) {
	c := fakeOMDB(t, 200, `{
		"Response": "True",
		"Title": "The Good, the Bad and the Ugly",
		"Director": "Sergio Leone",
		"Year": "1966",
		"imdbRating": "8.8",
		"Poster": "http://posters/gbu.jpg"
	}`)

	res, err := c.Lookup(context.Background(), "good bad ugly")
	require.NoError(t, err)
	// Commas are stripped so downstream storage never chokes on them.
	assert.Equal(t, "The Good the Bad and the Ugly", res.Title)
	assert.Equal(t, "Sergio Leone", res.Director)
	assert.Equal(t, 1966, res.Year)
	assert.Equal(t, 8.8, res.Rating)
	assert.Equal(t, "http://posters/gbu.jpg", res.Poster)
}

func TestLookupSentinelsForNotAvailable(t *testing.T) {
	c := fakeOMDB(t, 200, `{
		"Response": "True",
		"Title": "Obscure Short",
		"Director": "Unknown",
		"Year": "N/A",
		"imdbRating": "N/A",
		"Poster": "N/A"
	}`)

	res, err := c.Lookup(context.Background(), "obscure short")
	require.NoError(t, err)
	assert.Equal(t, SentinelYear, res.Year)
	assert.Equal(t, SentinelRating, res.Rating)
}

func TestLookupCleansStrayPunctuation(t *testing.T) {
	// Upstream year ranges look like "1994–" (en-dash) for running series;
	// ratings occasionally leak the same runes.
	c := fakeOMDB(t, 200, `{
		"Response": "True",
		"Title": "Some Series",
		"Director": "Someone",
		"Year": "1994–",
		"imdbRating": "8.66–",
		"Poster": "http://posters/x.jpg"
	}`)

	res, err := c.Lookup(context.Background(), "some series")
	require.NoError(t, err)
	assert.Equal(t, 1994, res.Year)
	assert.Equal(t, 8.7, res.Rating, "one decimal after rounding")
}

func TestLookupCorruptEntry(t *testing.T) {
	c := fakeOMDB(t, 200, `{
		"Response": "True",
		"Title": "Broken",
		"Director": "Someone",
		"Year": "nineteen-ninety",
		"imdbRating": "7.0",
		"Poster": ""
	}`)

	_, err := c.Lookup(context.Background(), "broken")
	assert.ErrorIs(t, err, ErrBadPayload)
}

func TestLookupNoMatch(t *testing.T) {
	c := fakeOMDB(t, 200, `{"Response": "False", "Error": "Movie not found!"}`)

	_, err := c.Lookup(context.Background(), "zzzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLookupUpstreamErrors(t *testing.T) {
	c := fakeOMDB(t, 500, `oops`)
	_, err := c.Lookup(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)

	// Unreachable host.
	dead := New("http://127.0.0.1:1", "test-key", nil)
	_, err = dead.Lookup(context.Background(), "anything")
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestNormalizeTable(t *testing.T) {
	cases := []struct {
		name    string
		in      payload
		want    Result
		wantErr error
	}{
		{
			name: "plain",
			in:   payload{Title: "Titanic", Director: "James Cameron", Year: "1997", Rating: "8.7", Poster: "p"},
			want: Result{Title: "Titanic", Director: "James Cameron", Year: 1997, Rating: 8.7, Poster: "p"},
		},
		{
			name: "underscored year",
			in:   payload{Title: "X", Director: "Y", Year: "19_97", Rating: "0", Poster: ""},
			want: Result{Title: "X", Director: "Y", Year: 1997, Rating: 0, Poster: ""},
		},
		{
			name:    "unparseable rating",
			in:      payload{Title: "X", Director: "Y", Year: "1997", Rating: "great"},
			wantErr: ErrBadPayload,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := normalize(tc.in)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}
