package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/milevb/movieweb/internal/model"
	"github.com/milevb/movieweb/internal/omdb"
	"github.com/milevb/movieweb/internal/queue"
	"github.com/milevb/movieweb/internal/repository"
	qp "github.com/milevb/movieweb/internal/service"
)

// MovieHandler bundles dependencies for movie endpoints.
type MovieHandler struct {
	Users   *repository.UserRepo
	Movies  *repository.MovieRepo
	Library *repository.LibraryRepo
}

func NewMovieHandler(u *repository.UserRepo, m *repository.MovieRepo, l *repository.LibraryRepo) *MovieHandler {
	return &MovieHandler{Users: u, Movies: m, Library: l}
}

// ----- DTOs -----

type movieReq struct {
	Title    string  `json:"title"`
	Director string  `json:"director"`
	Year     int     `json:"year"`
	Rating   float64 `json:"rating"`
	Poster   string  `json:"poster"`
}

// validate applies the form-field rules. The sentinel year for "unknown"
// release dates is the lowest acceptable value.
func (r *movieReq) validate() string {
	r.Title = strings.TrimSpace(r.Title)
	r.Director = strings.TrimSpace(r.Director)
	switch {
	case r.Title == "":
		return "title required"
	case r.Director == "":
		return "director required"
	case r.Year < omdb.SentinelYear || r.Year > 2100:
		return "year out of range"
	case r.Rating < 0.0 || r.Rating > 10.0:
		return "rating out of range"
	}
	return ""
}

// ListMovies handles GET /v1/movies and returns every movie row
// system-wide, duplicate titles included.
func (h *MovieHandler) ListMovies(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	movies, err := h.Movies.ListAll(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"movies": movies})
}

// GetMovie handles GET /v1/movies/:id.
func (h *MovieHandler) GetMovie(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	m, err := h.Movies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// AddMovie handles POST /v1/users/:id/movies. The movie row and its
// ownership pairing are created in a single transaction; a movie-added
// event is published afterwards on a best-effort basis.
func (h *MovieHandler) AddMovie(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	m := model.Movie{
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Rating:   req.Rating,
		Poster:   req.Poster,
	}
	if err := h.Library.AddMovie(ctx, userID, &m); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "add movie failed"})
	}

	// Publish failures only cost the activity log a line, never the request.
	name, _ := h.Users.GetNameByID(ctx, userID)
	_ = qp.PublishMovieAdded(ctx, queue.MovieAddedEvent{
		UserID:   userID,
		UserName: name,
		MovieID:  m.ID,
		Title:    m.Title,
		Director: m.Director,
		Year:     m.Year,
		Rating:   m.Rating,
	})

	return c.JSON(http.StatusCreated, m)
}

// UpdateMovie handles PUT /v1/users/:id/movies/:movieID. Full replacement:
// every mutable field is overwritten with the submitted value. The pairing
// is checked first so one user cannot edit another user's copy.
func (h *MovieHandler) UpdateMovie(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	movieID, err := pathID(c, "movieID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req movieReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	paired, err := h.Library.IsPaired(ctx, userID, movieID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !paired {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
	}

	m := model.Movie{
		ID:       movieID,
		Title:    req.Title,
		Director: req.Director,
		Year:     req.Year,
		Rating:   req.Rating,
		Poster:   req.Poster,
	}
	if err := h.Movies.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrMovieNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}
	return c.JSON(http.StatusOK, m)
}

// DeleteMovie handles DELETE /v1/users/:id/movies/:movieID. Removes the
// pairing and the movie row together; both or neither.
func (h *MovieHandler) DeleteMovie(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	movieID, err := pathID(c, "movieID")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Library.RemoveMovie(ctx, userID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotPaired) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "movie not found for user"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
