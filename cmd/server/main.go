package main // Entry point package

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/milevb/movieweb/internal/config"
	"github.com/milevb/movieweb/internal/database"
	"github.com/milevb/movieweb/internal/handler"
	"github.com/milevb/movieweb/internal/omdb"
	"github.com/milevb/movieweb/internal/queue"
	"github.com/milevb/movieweb/internal/repository"
	"github.com/milevb/movieweb/internal/router"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()
	if err := database.CreateSchema(db); err != nil {
		log.Fatalf("create schema: %v", err)
	}

	// Redis is optional: a nil client disables the response cache and the
	// lookup cache but the service stays fully functional.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, caching disabled")
	}

	users := repository.NewUserRepo(db)
	movies := repository.NewMovieRepo(db)
	library := repository.NewLibraryRepo(db)

	lookupCache := omdb.NewCache(rdb, time.Duration(cfg.LookupTTL)*time.Second)
	omdbClient := omdb.New(cfg.OMDBBaseURL, cfg.OMDBKey, lookupCache)

	userHandler := handler.NewUserHandler(users, movies)
	movieHandler := handler.NewMovieHandler(users, movies, library)
	lookupHandler := handler.NewLookupHandler(users, omdbClient)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAPI(e, userHandler, movieHandler, lookupHandler, config.LoadCacheConfig(), rdb)

	// Background consumer appending movie-added events to the activity log.
	go func() {
		if err := queue.StartActivityConsumer(); err != nil {
			log.Printf("activity consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
