package database

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates the three application tables.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// movies.title intentionally has NO unique index. Two users adding the same
// film must get two independent rows, otherwise editing one copy would
// silently rewrite the other user's entry. The junction table is what makes
// a movie row reachable, and its (user_id, movie_id) pair is unique so the
// same pairing can never exist twice.
func CreateSchema(db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("create schema: %w", err)
		}
	}
	return nil
}

// MySQL executes one statement per Exec call, hence a slice instead of a
// single script.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name       VARCHAR(80) NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_name (name)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS movies (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		title    VARCHAR(120) NOT NULL,
		director VARCHAR(120) NOT NULL,
		year     INT NOT NULL,
		rating   DOUBLE NOT NULL,
		poster   VARCHAR(512) NOT NULL DEFAULT '',
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS user_movies (
		id       BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		user_id  BIGINT UNSIGNED NOT NULL,
		movie_id BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_user_movie (user_id, movie_id),
		KEY idx_user_movies_movie (movie_id),
		CONSTRAINT fk_user_movies_user  FOREIGN KEY (user_id)  REFERENCES users (id),
		CONSTRAINT fk_user_movies_movie FOREIGN KEY (movie_id) REFERENCES movies (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}
