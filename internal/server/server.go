package server

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/forkful/recipebook-backend/config"
	"github.com/forkful/recipebook-backend/internal/api"
	"github.com/forkful/recipebook-backend/internal/middleware"
	"github.com/forkful/recipebook-backend/internal/service"
)

// Server represents the HTTP server
type Server struct {
	router *gin.Engine
	http   *http.Server
	cfg    *config.Config
}

// New wires services and handlers onto a gin router. The redis client is
// optional; without it the image-upload endpoint runs unthrottled.
func New(cfg *config.Config, db *gorm.DB, store service.ImageStore, redisClient *redis.Client) *Server {
	router := gin.Default()
	router.Use(cors.Default())

	imageService := service.NewImageService(store)
	authService := service.NewAuthService(db, cfg.JWTSecret)
	recipeService := service.NewRecipeService(db, imageService)
	tagService := service.NewTagService(db)
	ingredientService := service.NewIngredientService(db)

	var rateLimiter *middleware.RateLimiter
	if redisClient != nil {
		rateLimiter = middleware.NewRateLimiter(redisClient, middleware.RateLimitConfig{
			Window:    time.Minute,
			Limit:     10,
			KeyPrefix: "ratelimit:upload",
		})
	}

	router.GET("/health-check", api.HealthCheck)
	if cfg.StorageBackend == "local" {
		router.Static(cfg.MediaBaseURL, cfg.MediaDir)
	}

	v1 := router.Group("/api/v1")
	{
		api.NewAuthHandler(authService).RegisterRoutes(v1)
		api.NewRecipeHandler(recipeService, authService, rateLimiter).RegisterRoutes(v1)
		api.NewTagHandler(tagService, authService).RegisterRoutes(v1)
		api.NewIngredientHandler(ingredientService, authService).RegisterRoutes(v1)
	}

	return &Server{
		router: router,
		cfg:    cfg,
	}
}

// Start begins serving and blocks until the listener fails.
func (s *Server) Start() error {
	s.http = &http.Server{
		Addr:    s.cfg.ServerHost + ":" + s.cfg.ServerPort,
		Handler: s.router,
	}

	log.Printf("Listening on %s", s.http.Addr)
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully stops the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.http != nil {
		return s.http.Shutdown(ctx)
	}
	return nil
}
