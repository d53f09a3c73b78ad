package handler

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/milevb/movieweb/internal/omdb"
	"github.com/milevb/movieweb/internal/repository"
)

// LookupHandler drives the confirm-before-save step of adding a movie: the
// client posts a free-text title, gets back the normalized OMDb data, and
// submits it to AddMovie once the user confirms.
type LookupHandler struct {
	Users *repository.UserRepo
	OMDB  *omdb.Client
}

func NewLookupHandler(u *repository.UserRepo, c *omdb.Client) *LookupHandler {
	return &LookupHandler{Users: u, OMDB: c}
}

type lookupReq struct {
	Title string `json:"title"`
}

// Lookup handles POST /v1/users/:id/movies/lookup. Upstream trouble is
// always reported as a "try another query" outcome, never as a fault.
func (h *LookupHandler) Lookup(c echo.Context) error {
	userID, err := pathID(c, "id")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req lookupReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title required"})
	}

	ctx, cancel := dbCtx(c)
	defer cancel()

	exists, err := h.Users.IDExists(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !exists {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}

	res, err := h.OMDB.Lookup(ctx, strings.TrimSpace(req.Title))
	if err != nil {
		switch {
		case errors.Is(err, omdb.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "no movie matched the query, try another"})
		case errors.Is(err, omdb.ErrBadPayload):
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "incomplete movie entry, try another query"})
		default:
			return c.JSON(http.StatusBadGateway, echo.Map{"error": "movie service unavailable, try again"})
		}
	}
	return c.JSON(http.StatusOK, res)
}
