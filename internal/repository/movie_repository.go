package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/milevb/movieweb/internal/model"
)

// MovieRepo provides read and update access to the movies table. Inserting
// and deleting movie rows goes through LibraryRepo because those operations
// always involve the user_movies junction as well.
type MovieRepo struct{ DB *sql.DB }

func NewMovieRepo(db *sql.DB) *MovieRepo { return &MovieRepo{DB: db} }

const movieColumns = "id, title, director, year, rating, poster"

// ListAll returns every movie row system-wide. Duplicate titles are
// expected: each user's copy of a film is its own row.
func (r *MovieRepo) ListAll(ctx context.Context) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT "+movieColumns+" FROM movies ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

// ListByUser returns the movies a user owns, joined through the junction
// table. An unknown user id simply yields an empty slice; callers that need
// to distinguish check the user's existence first.
func (r *MovieRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Movie, error) {
	rows, err := r.DB.QueryContext(ctx,
		`SELECT m.id, m.title, m.director, m.year, m.rating, m.poster
		 FROM movies m
		 JOIN user_movies um ON um.movie_id = m.id
		 WHERE um.user_id = ?
		 ORDER BY m.id ASC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanMovies(rows)
}

// GetByID fetches a single movie.
func (r *MovieRepo) GetByID(ctx context.Context, id uint64) (model.Movie, error) {
	var m model.Movie
	err := r.DB.QueryRowContext(ctx,
		"SELECT "+movieColumns+" FROM movies WHERE id=? LIMIT 1", id).
		Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Rating, &m.Poster)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Movie{}, ErrMovieNotFound
	}
	return m, err
}

// Update replaces every mutable field of the movie row in place. The id and
// the ownership pairing are untouched; this matches the edit-form workflow
// where the whole record is resubmitted.
func (r *MovieRepo) Update(ctx context.Context, m model.Movie) error {
	res, err := r.DB.ExecContext(ctx,
		"UPDATE movies SET title=?, director=?, year=?, rating=?, poster=? WHERE id=?",
		m.Title, m.Director, m.Year, m.Rating, m.Poster, m.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		// RowsAffected is also 0 when the submitted values equal the stored
		// ones, so probe before reporting a missing row.
		var one int
		err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM movies WHERE id=? LIMIT 1", m.ID).Scan(&one)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrMovieNotFound
		}
		return err
	}
	return nil
}

func scanMovies(rows *sql.Rows) ([]model.Movie, error) {
	movies := []model.Movie{}
	for rows.Next() {
		var m model.Movie
		if err := rows.Scan(&m.ID, &m.Title, &m.Director, &m.Year, &m.Rating, &m.Poster); err != nil {
			return nil, err
		}
		movies = append(movies, m)
	}
	return movies, rows.Err()
}
