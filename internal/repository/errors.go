// Package repository defines error types that are reused across multiple
// repositories. These sentinel values allow higher layers such as handlers
// to distinguish between different failure scenarios. For example,
// ErrNameTaken indicates a registration collided with an existing display
// name, while ErrAlreadyPaired signals that a user/movie pairing already
// exists and the insert was a benign no-op.
package repository

import (
	"errors"
	"strings"
)

// ErrUserNotFound is returned when a user id does not resolve to a row.
// Handlers should translate this into an HTTP 404 response.
var ErrUserNotFound = errors.New("user not found")

// ErrMovieNotFound is returned when a movie id does not resolve to a row.
// Handlers should translate this into an HTTP 404 response.
var ErrMovieNotFound = errors.New("movie not found")

// ErrNameTaken is returned when creating a user whose display name is
// already registered. The users.name unique index makes the insert itself
// the authoritative check, so a prior availability call is advisory only.
var ErrNameTaken = errors.New("name already taken")

// ErrAlreadyPaired is returned when a (user, movie) pairing already exists.
// It is a benign outcome: no duplicate junction row was created.
var ErrAlreadyPaired = errors.New("already paired")

// ErrNotPaired is returned when deleting a movie for a user who does not
// own it. Handlers should translate this into an HTTP 404 response.
var ErrNotPaired = errors.New("no such pairing")

// isDuplicateKey reports whether err is a MySQL duplicate-entry error (1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}

// isFKViolation reports whether err is a MySQL foreign-key error (1452),
// raised when a junction insert references a missing parent row.
func isFKViolation(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1452")
}
