package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/milevb/movieweb/internal/model"
)

// LibraryRepo owns the user_movies junction table and every operation that
// has to touch a movie row and its pairing together. Creating and removing
// entries are each a single transaction so a crash in between the two
// statements cannot leave a dangling movie row or a dangling pairing.
type LibraryRepo struct{ DB *sql.DB }

func NewLibraryRepo(db *sql.DB) *LibraryRepo { return &LibraryRepo{DB: db} }

// AddMovie inserts a movie row and its ownership pairing for userID in one
// transaction, populating the generated movie ID on the passed record.
// Duplicate titles are allowed on purpose. Returns ErrUserNotFound when the
// user id does not resolve.
func (r *LibraryRepo) AddMovie(ctx context.Context, userID uint64, m *model.Movie) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"INSERT INTO movies (title, director, year, rating, poster) VALUES (?,?,?,?,?)",
		m.Title, m.Director, m.Year, m.Rating, m.Poster)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO user_movies (user_id, movie_id) VALUES (?,?)",
		userID, m.ID); err != nil {
		if isFKViolation(err) {
			// The movie row was inserted in this same tx, so the only parent
			// that can be missing is the user.
			return ErrUserNotFound
		}
		return err
	}
	return tx.Commit()
}

// Pair creates an ownership pairing between an existing user and an existing
// movie. INSERT IGNORE against the unique (user_id, movie_id) index makes
// the existence check and the insert one atomic statement: an existing
// pairing reports ErrAlreadyPaired and no duplicate row is written. When the
// insert is rejected by a foreign key, the missing parent is identified so
// the caller gets a precise not-found signal.
func (r *LibraryRepo) Pair(ctx context.Context, userID, movieID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO user_movies (user_id, movie_id) VALUES (?,?)",
		userID, movieID)
	if err != nil {
		if isFKViolation(err) {
			return r.missingParent(ctx, userID, movieID)
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrAlreadyPaired
	}
	return nil
}

// IsPaired reports whether userID owns movieID.
func (r *LibraryRepo) IsPaired(ctx context.Context, userID, movieID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM user_movies WHERE user_id=? AND movie_id=? LIMIT 1",
		userID, movieID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// RemoveMovie deletes the ownership pairing and the movie row itself in one
// transaction. Movie rows are never shared, so removing the pairing without
// the row would strand an unreachable movie. Returns ErrNotPaired when the
// (user, movie) pairing does not exist.
func (r *LibraryRepo) RemoveMovie(ctx context.Context, userID, movieID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM user_movies WHERE user_id=? AND movie_id=?", userID, movieID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotPaired
	}
	if _, err := tx.ExecContext(ctx,
		"DELETE FROM movies WHERE id=?", movieID); err != nil {
		return err
	}
	return tx.Commit()
}

// missingParent resolves which side of a failed pairing insert was absent.
func (r *LibraryRepo) missingParent(ctx context.Context, userID, movieID uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", userID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}
	return ErrMovieNotFound
}
