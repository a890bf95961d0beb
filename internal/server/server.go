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

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/api"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/middleware"
	"github.com/pageza/cookbook/backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// New wires the recipe API onto a gin engine. db is required; redisClient
// may be nil, in which case requests are not rate limited.
func New(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *Server {
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(
		gin.Logger(),
		middleware.RequestID(),
		middleware.ErrorHandler(),
		middleware.CORS(cfg.CORSOrigins),
	)

	healthHandler := api.NewHealthHandler(func(ctx context.Context) error {
		return database.HealthCheck(ctx, db)
	})
	healthHandler.RegisterRoutes(router)

	if redisClient != nil && cfg.RateLimitEnabled() {
		limiter := middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window: cfg.RateLimitWindow,
			Limit:  cfg.RateLimit,
		})
		router.Use(limiter.Middleware())
	}

	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db))
	recipeHandler.RegisterRoutes(router)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              cfg.Addr(),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       30 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       2 * time.Minute,
		},
		db:    db,
		redis: redisClient,
	}
}

// Handler returns the HTTP handler serving the API
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens and serves until Shutdown is called. It returns nil after a
// graceful shutdown.
func (s *Server) Start() error {
	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, waits for in-flight ones and then
// releases the Redis client and the store, in that order.
func (s *Server) Shutdown(ctx context.Context) error {
	var errs []error

	if err := s.http.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if s.db != nil {
		if err := database.Close(s.db); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
