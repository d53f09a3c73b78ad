package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/milevb/movieweb/internal/model"
)

type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// List returns every registered user in insertion order.
func (r *UserRepo) List(ctx context.Context) ([]model.User, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id, name, created_at FROM users ORDER BY id ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		var u model.User
		if err := rows.Scan(&u.ID, &u.Name, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Create inserts a user and returns its ID. The unique index on users.name
// makes this a single atomic check-and-insert: a concurrent registration of
// the same name loses with ErrNameTaken instead of creating a second row.
func (r *UserRepo) Create(ctx context.Context, name string) (uint64, error) {
	name = strings.TrimSpace(name)
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (name) VALUES (?)", name)
	if err != nil {
		if isDuplicateKey(err) {
			return 0, ErrNameTaken
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// NameAvailable reports whether no user has claimed the given display name.
// The comparison is case-sensitive (BINARY) to match registration behavior.
func (r *UserRepo) NameAvailable(ctx context.Context, name string) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE BINARY name=? LIMIT 1", name).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// IDExists reports whether a user row with the given id exists.
func (r *UserRepo) IDExists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetNameByID fetches the display name for a user id.
func (r *UserRepo) GetNameByID(ctx context.Context, id uint64) (string, error) {
	var name string
	err := r.DB.QueryRowContext(ctx,
		"SELECT name FROM users WHERE id=? LIMIT 1", id).Scan(&name)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrUserNotFound
	}
	return name, err
}

// Delete removes a user together with all of their movie entries and
// junction rows in a single transaction, so a crash mid-way can never leave
// an orphaned movie row or a junction row pointing at a dead user.
func (r *UserRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	// Movie rows are never shared between users, so everything this user's
	// junction rows point at belongs to them alone and goes too. Junction
	// rows must go first or the FK on user_movies.movie_id blocks the
	// movie deletes, so collect the movie ids up front.
	rows, err := tx.QueryContext(ctx,
		"SELECT movie_id FROM user_movies WHERE user_id=?", id)
	if err != nil {
		return err
	}
	movieIDs := []uint64{}
	for rows.Next() {
		var mid uint64
		if err := rows.Scan(&mid); err != nil {
			rows.Close()
			return err
		}
		movieIDs = append(movieIDs, mid)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM user_movies WHERE user_id=?", id); err != nil {
		return err
	}
	if len(movieIDs) > 0 {
		query := "DELETE FROM movies WHERE id IN ("
		args := make([]interface{}, 0, len(movieIDs))
		for i, mid := range movieIDs {
			if i > 0 {
				query += ","
			}
			query += "?"
			args = append(args, mid)
		}
		query += ")"
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return err
		}
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM users WHERE id=?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return tx.Commit()
}
