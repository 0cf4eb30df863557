package server

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/pageza/alchemorsel-favourites/backend/config"
	"github.com/pageza/alchemorsel-favourites/backend/internal/database"
	"github.com/pageza/alchemorsel-favourites/backend/internal/events"
	"github.com/pageza/alchemorsel-favourites/backend/internal/router"
	"github.com/pageza/alchemorsel-favourites/backend/internal/service"
)

// ShutdownTimeout bounds how long in-flight requests may drain
const ShutdownTimeout = 5 * time.Second

// Server represents the HTTP server and the resources it owns
type Server struct {
	router    *gin.Engine
	http      *http.Server
	db        *gorm.DB
	redis     *redis.Client
	publisher events.Publisher
}

// New creates a new server instance. redisClient and publisher are optional.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher events.Publisher) *Server {
	var cache service.FavouriteCache
	if redisClient != nil {
		cache = service.NewRedisFavouriteCache(redisClient, cfg.CacheTTL)
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	favourites := service.NewFavouriteService(db, cache, publisher)
	engine := router.SetupRouter(cfg, db, redisClient, favourites)

	return &Server{
		router: engine,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           engine,
			ReadHeaderTimeout: 10 * time.Second,
		},
		db:        db,
		redis:     redisClient,
		publisher: publisher,
	}
}

// Handler exposes the routes, mostly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called. It returns nil after a clean
// shutdown.
func (s *Server) Start() error {
	log.Printf("Server is running on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the publisher, the
// cache connection and the database pool
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)

	if cerr := s.publisher.Close(); cerr != nil {
		log.Printf("failed to close event publisher: %v", cerr)
	}
	if s.redis != nil {
		if cerr := s.redis.Close(); cerr != nil {
			log.Printf("failed to close Redis client: %v", cerr)
		}
	}
	if cerr := database.Close(s.db); cerr != nil {
		log.Printf("failed to close database: %v", cerr)
	}

	return err
}
