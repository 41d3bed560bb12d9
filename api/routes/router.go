// api/routes/router.go
package routes

import (
	"net/http"
	"time"

	"seatlab/internal/auth"
	"seatlab/internal/layouts"
	"seatlab/internal/sessions"
	"seatlab/internal/shared/config"
	"seatlab/internal/shared/database"
	"seatlab/internal/stream"
	"seatlab/pkg/cache"

	"github.com/gin-gonic/gin"
)

// Router holds all route dependencies
type Router struct {
	config   *config.Config
	db       *database.DB
	producer stream.Producer    // nil when Kafka is disabled
	registry *sessions.Registry

	layoutService layouts.Service // shared between layout and session routes
}

// NewRouter creates a new router instance
func NewRouter(cfg *config.Config, db *database.DB, producer stream.Producer, registry *sessions.Registry) *Router {
	return &Router{
		config:   cfg,
		db:       db,
		producer: producer,
		registry: registry,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	// Health check and basic info endpoints
	r.setupHealthRoutes(engine)

	// API routes
	api := engine.Group(r.config.GetAPIBasePath())
	{
		r.setupAuthRoutes(api)

		// Layout routes must come first: the session routes reuse the
		// layout service for load and save.
		r.setupLayoutRoutes(api)
		r.setupSessionRoutes(api)
	}
}

// setupHealthRoutes sets up health check and system status routes
func (r *Router) setupHealthRoutes(engine *gin.Engine) {
	engine.GET("/health", func(c *gin.Context) {
		if err := r.db.HealthCheck(c.Request.Context()); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":    "unhealthy",
				"error":     err.Error(),
				"timestamp": time.Now(),
				"service":   "seatlab-backend",
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"timestamp": time.Now(),
			"service":   "seatlab-backend",
		})
	})

	engine.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "pong",
			"version": r.config.APIVersion,
		})
	})

	engine.GET("/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":        "operational",
			"api_version":   r.config.APIVersion,
			"open_sessions": r.registry.Len(),
			"timestamp":     time.Now(),
		})
	})
}

// setupAuthRoutes configures authentication routes
func (r *Router) setupAuthRoutes(rg *gin.RouterGroup) {
	authRepo := auth.NewRepository(r.db.GetPostgreSQL())
	authService := auth.NewService(authRepo, r.config)
	authController := auth.NewController(authService)
	authRouter := auth.NewRouter(authController, r.config)

	authRouter.SetupRoutes(rg)
}

// setupLayoutRoutes configures layout persistence routes
func (r *Router) setupLayoutRoutes(rg *gin.RouterGroup) {
	layoutRepo := layouts.NewRepository(r.db.GetPostgreSQL())
	cacheService := cache.NewService(r.db.GetRedisClient())
	r.layoutService = layouts.NewService(layoutRepo, cacheService, r.producer)

	layoutController := layouts.NewController(r.layoutService)
	layoutRouter := layouts.NewRouter(layoutController, r.config)

	layoutRouter.SetupRoutes(rg)
}

// setupSessionRoutes configures live editing session routes
func (r *Router) setupSessionRoutes(rg *gin.RouterGroup) {
	sessionController := sessions.NewController(r.registry, r.layoutService)
	sessionRouter := sessions.NewRouter(sessionController, r.config)

	sessionRouter.SetupRoutes(rg)
}
