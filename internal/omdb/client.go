// Package omdb wraps the OMDb movie-information API. It keeps the API
// plumbing out of the handlers and normalizes the loosely-typed payload
// into the five fields the application stores.
package omdb

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// SentinelYear substitutes an upstream year reported as "N/A". The value is
// old enough to be recognizably artificial next to any real release year.
const SentinelYear = 1850

// SentinelRating substitutes an upstream rating reported as "N/A".
const SentinelRating = 0.0

// ErrNotFound means the API answered but matched no movie. The caller
// should ask the user to try another query.
var ErrNotFound = errors.New("omdb: no movie matched the query")

// ErrUnavailable covers network failures, timeouts and non-200 responses.
// It never propagates to the end user as a fault, only as a retry hint.
var ErrUnavailable = errors.New("omdb: upstream unavailable")

// ErrBadPayload means the entry survived cleanup but still failed numeric
// parsing. The entry is treated as corrupt rather than crashing on it.
var ErrBadPayload = errors.New("omdb: corrupt movie entry")

// Result is the normalized 5-tuple handed to the confirm-before-save step.
type Result struct {
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	Poster   string  `json:"poster"`
}

// payload mirrors the subset of the OMDb response we read. OMDb reports
// every field as a string and signals misses with Response=False.
type payload struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Director string `json:"Director"`
	Year     string `json:"Year"`
	Rating   string `json:"imdbRating"`
	Poster   string `json:"Poster"`
}

type Client struct {
	http   *resty.Client
	apiKey string
	cache  *Cache
}

// New builds a Client against baseURL (e.g. "http://www.omdbapi.com/").
// cache may be nil, which disables lookup caching.
func New(baseURL, apiKey string, cache *Cache) *Client {
	r := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(4 * time.Second)
	return &Client{http: r, apiKey: apiKey, cache: cache}
}

// Lookup fetches and normalizes the movie data for title. Cache hits skip
// the API entirely; only successful lookups are cached.
func (c *Client) Lookup(ctx context.Context, title string) (Result, error) {
	if c.cache != nil {
		if res, ok := c.cache.Get(ctx, title); ok {
			return res, nil
		}
	}

	var body payload
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("apikey", c.apiKey).
		SetQueryParam("t", title).
		SetResult(&body).
		Get("")
	if err != nil {
		return Result{}, ErrUnavailable
	}
	if resp.StatusCode() != 200 {
		return Result{}, ErrUnavailable
	}
	if body.Response == "False" {
		return Result{}, ErrNotFound
	}

	res, err := normalize(body)
	if err != nil {
		return Result{}, err
	}
	if c.cache != nil {
		c.cache.Put(ctx, title, res)
	}
	return res, nil
}

// normalize applies the storage-format cleanup rules: commas are stripped
// from titles, "N/A" year/rating become sentinels instead of failures,
// stray dash/underscore runes are removed before numeric parsing, and the
// rating is rounded to one decimal. Anything still non-numeric after
// cleanup marks the entry as corrupt.
func normalize(p payload) (Result, error) {
	res := Result{
		Title:    strings.ReplaceAll(p.Title, ",", ""),
		Director: p.Director,
		Poster:   p.Poster,
	}

	if p.Year == "N/A" {
		res.Year = SentinelYear
	} else {
		y, err := strconv.Atoi(stripDashes(p.Year))
		if err != nil {
			return Result{}, ErrBadPayload
		}
		res.Year = y
	}

	if p.Rating == "N/A" {
		res.Rating = SentinelRating
	} else {
		f, err := strconv.ParseFloat(stripDashes(p.Rating), 64)
		if err != nil {
			return Result{}, ErrBadPayload
		}
		res.Rating = math.Round(f*10) / 10
	}

	return res, nil
}

// stripDashes removes the rune set the upstream source is known to leak
// into numeric fields (year ranges like "1994–", underscores).
func stripDashes(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '-', '–', '_':
			return -1
		}
		return r
	}, s)
}
