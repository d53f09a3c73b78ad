// Package queue defines message payloads exchanged over the message broker.
package queue

// MovieAddedEvent is published when a movie entry is successfully added to a
// user's list. It carries enough information for downstream consumers to
// log or notify without querying the primary database.
type MovieAddedEvent struct {
	UserID   uint64  `json:"user_id"`
	UserName string  `json:"user_name"`
	MovieID  uint64  `json:"movie_id"`
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
}
