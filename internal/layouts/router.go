package layouts

import (
	"seatlab/internal/shared/config"
	"seatlab/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles layout-related routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new layout router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all layout routes
func (layoutRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	layouts := rg.Group("/layouts")
	{
		// Public routes: the customer-facing seat map. An operator token,
		// when present, unlocks the owner's own drafts.
		public := layouts.Group("")
		public.Use(middleware.OptionalAuthWithConfig(layoutRouter.config))
		{
			public.GET("/published", layoutRouter.controller.ListPublished)
			public.GET("/published/:id", layoutRouter.controller.GetPublished)
		}

		// Protected routes: the operator's own layouts
		protected := layouts.Group("")
		protected.Use(middleware.JWTAuthWithConfig(layoutRouter.config))
		{
			protected.POST("", layoutRouter.controller.Create)
			protected.GET("", layoutRouter.controller.ListMine)
			protected.GET("/:id", layoutRouter.controller.Get)
			protected.PUT("/:id", layoutRouter.controller.Update)
			protected.POST("/:id/publish", layoutRouter.controller.Publish)
			protected.DELETE("/:id", layoutRouter.controller.Delete)
		}
	}

	// Admin routes: listing across all owners
	admin := rg.Group("/admin/layouts")
	admin.Use(middleware.JWTAuthWithConfig(layoutRouter.config), middleware.RequireAdmin())
	{
		admin.GET("", layoutRouter.controller.ListAll)
	}
}
