package sessions

import (
	"seatlab/internal/shared/config"
	"seatlab/internal/shared/middleware"

	"github.com/gin-gonic/gin"
)

// Router handles editing-session routes
type Router struct {
	controller *Controller
	config     *config.Config
}

// NewRouter creates a new session router
func NewRouter(controller *Controller, cfg *config.Config) *Router {
	return &Router{
		controller: controller,
		config:     cfg,
	}
}

// SetupRoutes registers all session routes. Everything is operator-only;
// sessions are bound to the authenticated user.
func (sessionRouter *Router) SetupRoutes(rg *gin.RouterGroup) {
	sessions := rg.Group("/sessions")
	sessions.Use(middleware.JWTAuthWithConfig(sessionRouter.config))
	{
		sessions.POST("", sessionRouter.controller.Create)
		sessions.GET("/:id", sessionRouter.controller.Get)
		sessions.DELETE("/:id", sessionRouter.controller.Close)

		// document lifecycle
		sessions.GET("/:id/document", sessionRouter.controller.ExportDocument)
		sessions.PUT("/:id/document", sessionRouter.controller.ImportDocument)
		sessions.POST("/:id/save", sessionRouter.controller.Save)

		// tools and input
		sessions.PUT("/:id/tool", sessionRouter.controller.SetTool)
		sessions.POST("/:id/pointer", sessionRouter.controller.Pointer)
		sessions.POST("/:id/drag", sessionRouter.controller.Drag)
		sessions.POST("/:id/key", sessionRouter.controller.Keystroke)

		// selection, clipboard, history
		sessions.PUT("/:id/selection", sessionRouter.controller.SetSelection)
		sessions.DELETE("/:id/selection", sessionRouter.controller.DeleteSelection)
		sessions.POST("/:id/clipboard", sessionRouter.controller.Clipboard)
		sessions.POST("/:id/undo", sessionRouter.controller.Undo)
		sessions.POST("/:id/redo", sessionRouter.controller.Redo)

		// seat and text edits
		sessions.PUT("/:id/seats/:seatId/number", sessionRouter.controller.SetSeatNumber)
		sessions.PUT("/:id/seats/:seatId/category", sessionRouter.controller.SetSeatCategory)
		sessions.PUT("/:id/categories", sessionRouter.controller.SetCategories)
		sessions.PUT("/:id/text/:objectId", sessionRouter.controller.CommitText)
		sessions.PUT("/:id/smart-snap", sessionRouter.controller.SetSmartSnap)

		// customer-view preview
		sessions.POST("/:id/preview", sessionRouter.controller.StartPreview)
		sessions.DELETE("/:id/preview", sessionRouter.controller.EndPreview)
		sessions.GET("/:id/preview/selection", sessionRouter.controller.GetPreviewSelection)
		sessions.PUT("/:id/preview/selection", sessionRouter.controller.SetPreviewSelection)
		sessions.POST("/:id/preview/bookings", sessionRouter.controller.ApplyBookings)
		sessions.POST("/:id/preview/click", sessionRouter.controller.PreviewClick)
	}
}
