package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/dfryer1193/catalog/catalog/application"
	"github.com/dfryer1193/catalog/catalog/domain"
	"github.com/dfryer1193/catalog/catalog/persistence"
	"github.com/dfryer1193/catalog/internal/middleware"
	"github.com/dfryer1193/catalog/internal/rest"
	"github.com/dfryer1193/catalog/shared/db/sqlite"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

const (
	defaultPort     = 9000
	shutdownTimeout = 5 * time.Second
	defaultImageDir = "./images"
	defaultJSONPath = "./items.json"
	defaultFrontURL = "http://localhost:3000"
	backendSQLite   = "sqlite"
	backendJSON     = "json"
)

func main() {
	repo, cleanup, err := newCatalogRepository()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to set up catalog storage")
	}
	defer cleanup()

	imageDir := os.Getenv("IMAGE_DIR")
	if imageDir == "" {
		imageDir = defaultImageDir
	}
	images := persistence.NewFileImageStore(imageDir)

	service := application.NewCatalogService(repo, images)

	frontURL := os.Getenv("FRONT_URL")
	if frontURL == "" {
		frontURL = defaultFrontURL
	}

	router := gin.New()
	router.Use(middleware.LoggingMiddleware())
	router.Use(gin.CustomRecovery(middleware.HandlePanics()))
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{frontURL},
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders: []string{"*"},
	}))

	rest.NewApi(router, service)

	port := defaultPort
	if p := os.Getenv("PORT"); p != "" {
		parsed, err := strconv.Atoi(p)
		if err != nil {
			log.Fatal().Str("port", p).Msg("Invalid PORT value")
		}
		port = parsed
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: router,
	}

	go func() {
		log.Info().Int("port", port).Msg("Starting catalog server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt)
	<-quit

	log.Info().Msg("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to shutdown server")
	}

	log.Info().Msg("Server stopped")
}

// newCatalogRepository selects the catalog backend from CATALOG_BACKEND.
// SQLite is canonical; the JSON document store honors the same contract.
func newCatalogRepository() (domain.CatalogRepository, func(), error) {
	backend := os.Getenv("CATALOG_BACKEND")
	if backend == "" {
		backend = backendSQLite
	}

	switch backend {
	case backendSQLite:
		database := sqlite.NewSQLiteDB(sqlite.NewSQLiteConfig())
		if err := database.Connect(); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}

		cleanup := func() {
			if err := database.Close(); err != nil {
				log.Error().Err(err).Msg("Failed to close database")
			}
		}

		return persistence.NewCatalogRepository(database.DB()), cleanup, nil

	case backendJSON:
		path := os.Getenv("CATALOG_JSON_PATH")
		if path == "" {
			path = defaultJSONPath
		}

		repo, err := persistence.NewJSONCatalogRepository(path)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open catalog document: %w", err)
		}

		return repo, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown catalog backend %q", backend)
	}
}
