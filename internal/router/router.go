// Package router defines how HTTP routes are registered for the API.
package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/milevb/movieweb/internal/config"
	"github.com/milevb/movieweb/internal/handler"
	"github.com/milevb/movieweb/internal/middleware"
)

// RegisterRoutes registers routes that need no handler state. Currently it
// exposes only a health check, used by load balancers and monitoring to
// verify that the service is up.
func RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", handler.Health)
}

// RegisterAPI registers the movie-tracking API under /v1. Read endpoints go
// through the Redis response cache; rdb may be nil, which disables it.
func RegisterAPI(e *echo.Echo, u *handler.UserHandler, m *handler.MovieHandler, l *handler.LookupHandler, cacheCfg config.CacheConfig, rdb *redis.Client) {
	g := e.Group("/v1", middleware.ResponseCache(cacheCfg, rdb))

	// Users: registration, listing, lookup by id, deletion with cascade.
	g.GET("/users", u.ListUsers)
	g.POST("/users", u.Register)
	g.GET("/users/:id", u.GetUser)
	g.DELETE("/users/:id", u.DeleteUser)

	// A user's personal movie list.
	g.GET("/users/:id/movies", u.ListUserMovies)
	g.POST("/users/:id/movies", m.AddMovie)
	g.PUT("/users/:id/movies/:movieID", m.UpdateMovie)
	g.DELETE("/users/:id/movies/:movieID", m.DeleteMovie)

	// Confirm-before-save lookup against the movie-information API.
	g.POST("/users/:id/movies/lookup", l.Lookup)

	// System-wide movie browsing.
	g.GET("/movies", m.ListMovies)
	g.GET("/movies/:id", m.GetMovie)
}
