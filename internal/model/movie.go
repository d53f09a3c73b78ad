package model

// Movie mirrors a row of the `movies` table. Titles deliberately
// carry no unique index: when two users add "Titanic" each gets an
// independent row, so one user's edit can never leak into the
// other's copy. A movie row is reachable only through the
// user_movies junction and in practice has exactly one owner.
//
// Fields:
//  ID       – primary key identifier.
//  Title    – movie title (non-empty, not unique by design).
//  Director – director name (non-empty).
//  Year     – release year; 1850 is the sentinel for "unknown".
//  Rating   – rating on a 0.0–10.0 scale, one decimal.
//  Poster   – poster image reference, usually a URL.
type Movie struct {
	ID       uint64  `json:"id"`       // movies.id
	Title    string  `json:"title"`    // movies.title
	Director string  `json:"director"` // movies.director
	Year     int     `json:"year"`     // movies.year
	Rating   float64 `json:"rating"`   // movies.rating
	Poster   string  `json:"poster"`   // movies.poster
}

// UserMovie is one row of the `user_movies` junction table tying a
// user to a movie they added. The (UserID, MovieID) pair is unique;
// both columns are foreign keys into their parent tables.
//
// Fields:
//  ID      – primary key identifier.
//  UserID  – owning user.
//  MovieID – owned movie row.
type UserMovie struct {
	ID      uint64 // user_movies.id
	UserID  uint64 // user_movies.user_id
	MovieID uint64 // user_movies.movie_id
}
