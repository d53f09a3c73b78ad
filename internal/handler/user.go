// Package handler defines the HTTP handlers of the MovieWeb API. Handlers
// validate user-supplied form fields themselves; referential integrity is
// guarded one layer down in the repositories.
package handler

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/milevb/movieweb/internal/repository"
)

// UserHandler bundles dependencies for user endpoints.
type UserHandler struct {
	Users  *repository.UserRepo
	Movies *repository.MovieRepo
}

func NewUserHandler(u *repository.UserRepo, m *repository.MovieRepo) *UserHandler {
	return &UserHandler{Users: u, Movies: m}
}

// Display names: alphanumerics and underscore only. At least one letter is
// required separately so a name can't be all digits or underscores.
var (
	nameCharset = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	nameLetter  = regexp.MustCompile(`[A-Za-z]`)
)

// ValidUsername reports whether name passes the registration rules:
// non-empty, restricted charset, at least one letter.
func ValidUsername(name string) bool {
	return name != "" && nameCharset.MatchString(name) && nameLetter.MatchString(name)
}

// ----- DTOs -----

type registerReq struct {
	Name string `json:"name"`
}

// ListUsers handles GET /v1/users and returns all users in insertion order.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := dbCtx(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"users": users})
}

// Register handles POST /v1/users. The uniqueness check happens inside the
// insert itself, so two concurrent registrations of the same name cannot
// both succeed.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	name := strings.TrimSpace(req.Name)
	if !ValidUsername(name) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "name must be alphanumeric/underscore with at least one letter"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	id, err := h.Users.Create(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "name already taken"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"id": id, "name": name})
}

// GetUser handles GET /v1/users/:id and returns the display name.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	name, err := h.Users.GetNameByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"id": id, "name": name})
}

// DeleteUser handles DELETE /v1/users/:id. The user's movie entries and
// junction rows go with the account, all inside one transaction.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

// ListUserMovies handles GET /v1/users/:id/movies. An unknown user id gets
// a 404 rather than an empty list, matching the page behavior for a
// manually entered gibberish id.
func (h *UserHandler) ListUserMovies(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	exists, err := h.Users.IDExists(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	movies, err := h.Movies.ListByUser(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"user_id": id, "movies": movies})
}

// ----- shared helpers -----

// dbCtx bounds the duration of database work for a request.
func dbCtx(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), 5*time.Second)
}

func pathID(c echo.Context, name string) (uint64, error) {
	return strconv.ParseUint(c.Param(name), 10, 64)
}
