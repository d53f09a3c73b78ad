package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovieReqValidate(t *testing.T) {
	valid := movieReq{Title: "Titanic", Director: "James Cameron", Year: 1997, Rating: 8.7, Poster: "p"}
	assert.Empty(t, valid.validate())

	// The sentinel year for unknown releases must pass, as must a zero
	// rating (the sentinel for unrated entries).
	sentinel := movieReq{Title: "Obscure", Director: "Unknown", Year: 1850, Rating: 0.0}
	assert.Empty(t, sentinel.validate())

	cases := []struct {
		name string
		req  movieReq
	}{
		{"empty title", movieReq{Director: "D", Year: 1997, Rating: 5}},
		{"blank title", movieReq{Title: "  ", Director: "D", Year: 1997, Rating: 5}},
		{"empty director", movieReq{Title: "T", Year: 1997, Rating: 5}},
		{"year too small", movieReq{Title: "T", Director: "D", Year: 1849, Rating: 5}},
		{"year too large", movieReq{Title: "T", Director: "D", Year: 2101, Rating: 5}},
		{"negative rating", movieReq{Title: "T", Director: "D", Year: 1997, Rating: -0.1}},
		{"rating above scale", movieReq{Title: "T", Director: "D", Year: 1997, Rating: 10.1}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NotEmpty(t, tc.req.validate())
		})
	}
}
