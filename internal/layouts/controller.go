package layouts

import (
	"errors"
	"net/http"

	"seatlab/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	service   Service
	validator *validator.Validate
}

func NewController(service Service) *Controller {
	return &Controller{
		service:   service,
		validator: validator.New(),
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Create(ctx.Request.Context(), userID.(string), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Layout document is not valid", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to create layout", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout created successfully", resp, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	resp, err := c.service.Get(ctx.Request.Context(), ctx.Param("id"), userID.(string))
	if err != nil {
		c.respondLayoutError(ctx, err, "Failed to fetch layout")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", resp, nil)
}

// GetPublished is the customer-facing read; no authentication required. A
// logged-in owner also sees their own unpublished drafts through this route.
func (c *Controller) GetPublished(ctx *gin.Context) {
	resp, err := c.service.GetPublished(ctx.Request.Context(), ctx.Param("id"))
	if err != nil {
		if errors.Is(err, ErrLayoutNotFound) {
			if userID, ok := ctx.Get("user_id"); ok {
				if draft, draftErr := c.service.Get(ctx.Request.Context(), ctx.Param("id"), userID.(string)); draftErr == nil {
					response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", draft, nil)
					return
				}
			}
			response.RespondJSON(ctx, "error", http.StatusNotFound, "Layout not found", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to fetch layout", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout retrieved successfully", resp, nil)
}

func (c *Controller) ListMine(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var filters ListFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.ListMine(ctx.Request.Context(), userID.(string), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list layouts", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved successfully", resp, nil)
}

func (c *Controller) ListPublished(ctx *gin.Context) {
	var filters ListFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.ListPublished(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list layouts", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved successfully", resp, nil)
}

// ListAll is the admin view across all owners.
func (c *Controller) ListAll(ctx *gin.Context) {
	var filters ListFilters
	if err := ctx.ShouldBindQuery(&filters); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid query parameters", nil, err.Error())
		return
	}

	resp, err := c.service.ListAll(ctx.Request.Context(), filters)
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to list layouts", nil, nil)
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layouts retrieved successfully", resp, nil)
}

func (c *Controller) Update(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req UpdateLayoutRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	if err := c.validator.Struct(&req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return
	}

	resp, err := c.service.Update(ctx.Request.Context(), ctx.Param("id"), userID.(string), req)
	if err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Layout document is not valid", nil, err.Error())
			return
		}
		c.respondLayoutError(ctx, err, "Failed to update layout")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout updated successfully", resp, nil)
}

func (c *Controller) Publish(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	resp, err := c.service.Publish(ctx.Request.Context(), ctx.Param("id"), userID.(string))
	if err != nil {
		c.respondLayoutError(ctx, err, "Failed to publish layout")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout published successfully", resp, nil)
}

func (c *Controller) Delete(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	if err := c.service.Delete(ctx.Request.Context(), ctx.Param("id"), userID.(string)); err != nil {
		c.respondLayoutError(ctx, err, "Failed to delete layout")
		return
	}

	response.RespondJSON(ctx, "success", http.StatusOK, "Layout deleted successfully", nil, nil)
}

func (c *Controller) respondLayoutError(ctx *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrLayoutNotFound):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Layout not found", nil, nil)
	case errors.Is(err, ErrNotOwner):
		response.RespondJSON(ctx, "error", http.StatusForbidden, "You do not own this layout", nil, nil)
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, fallback, nil, nil)
	}
}
