package sessions

import (
	"encoding/json"
	"errors"
	"net/http"

	"seatlab/internal/editor"
	"seatlab/internal/layouts"
	"seatlab/internal/scene"
	"seatlab/internal/shared/utils/response"
	"seatlab/internal/tools"
	"seatlab/internal/viewer"
	"seatlab/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type Controller struct {
	registry  *Registry
	layouts   layouts.Service
	validator *validator.Validate
	log       *logger.Logger
}

func NewController(registry *Registry, layoutService layouts.Service) *Controller {
	return &Controller{
		registry:  registry,
		layouts:   layoutService,
		validator: validator.New(),
		log:       logger.GetDefault(),
	}
}

func (c *Controller) Create(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	var req CreateSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
			return
		}
		if err := c.validator.Struct(&req); err != nil {
			response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
			return
		}
	}

	s, err := c.registry.Create(ctx.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, ErrTooManySessions) {
			response.RespondJSON(ctx, "error", http.StatusServiceUnavailable, "Too many open sessions, try again later", nil, nil)
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to open session", nil, nil)
		return
	}

	if req.LayoutID != "" {
		rec, err := c.layouts.Get(ctx.Request.Context(), req.LayoutID, userID.(string))
		if err != nil {
			c.registry.Close(ctx.Request.Context(), s.ID, userID.(string), "layout load failed")
			if errors.Is(err, layouts.ErrLayoutNotFound) || errors.Is(err, layouts.ErrNotOwner) {
				response.RespondJSON(ctx, "error", http.StatusNotFound, "Layout not found", nil, nil)
				return
			}
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to load layout", nil, nil)
			return
		}
		importErr := s.Do(func(e *editor.Editor) error {
			return e.ImportJSON(rec.Document)
		})
		if importErr != nil {
			c.registry.Close(ctx.Request.Context(), s.ID, userID.(string), "layout load failed")
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Stored layout document is not loadable", nil, importErr.Error())
			return
		}
		s.LayoutID = req.LayoutID
	}

	var resp *SessionResponse
	s.Do(func(e *editor.Editor) error {
		resp = toSessionResponse(s, e)
		return nil
	})
	response.RespondJSON(ctx, "success", http.StatusCreated, "Session opened successfully", resp, nil)
}

func (c *Controller) Get(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var resp *SessionResponse
	s.Do(func(e *editor.Editor) error {
		resp = toSessionResponse(s, e)
		return nil
	})
	response.RespondJSON(ctx, "success", http.StatusOK, "Session retrieved successfully", resp, nil)
}

func (c *Controller) Close(ctx *gin.Context) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return
	}

	err := c.registry.Close(ctx.Request.Context(), ctx.Param("id"), userID.(string), "closed by operator")
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Session not found", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Session closed successfully", nil, nil)
}

//  DOCUMENT

func (c *Controller) ExportDocument(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var resp DocumentResponse
	err := s.Do(func(e *editor.Editor) error {
		data, filename, err := e.ExportJSON()
		if err != nil {
			return err
		}
		resp = DocumentResponse{Filename: filename, Document: data}
		return nil
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to export document", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Document exported successfully", resp, nil)
}

func (c *Controller) ImportDocument(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req ImportRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.Do(func(e *editor.Editor) error {
		return e.ImportJSON(req.Document)
	})
	if err != nil {
		if errors.Is(err, editor.ErrInvalidFile) {
			c.log.LogImportRejected(ctx.Request.Context(), s.ID, err)
			response.RespondJSON(ctx, "error", http.StatusUnprocessableEntity, "Invalid layout file", nil, err.Error())
			return
		}
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to import document", nil, nil)
		return
	}
	c.respondState(ctx, s, "Document imported successfully")
}

// Save persists the session's document through the layout store. A session
// loaded from a layout updates it in place; an unbound session creates a new
// layout and binds to it.
func (c *Controller) Save(ctx *gin.Context) {
	userID, _ := ctx.Get("user_id")
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SaveRequest
	if ctx.Request.ContentLength > 0 {
		if !c.bind(ctx, &req) {
			return
		}
	}

	var data []byte
	err := s.Do(func(e *editor.Editor) error {
		var err error
		data, _, err = e.ExportJSON()
		return err
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to serialize document", nil, nil)
		return
	}

	if s.LayoutID != "" {
		resp, err := c.layouts.Update(ctx.Request.Context(), s.LayoutID, userID.(string), layouts.UpdateLayoutRequest{
			Document: json.RawMessage(data),
		})
		if err != nil {
			response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to save layout", nil, nil)
			return
		}
		response.RespondJSON(ctx, "success", http.StatusOK, "Layout saved successfully", resp, nil)
		return
	}

	if req.Name == "" {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "A name is required to save a new layout", nil, nil)
		return
	}
	resp, err := c.layouts.Create(ctx.Request.Context(), userID.(string), layouts.CreateLayoutRequest{
		Name:     req.Name,
		Document: json.RawMessage(data),
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to save layout", nil, nil)
		return
	}
	s.LayoutID = resp.ID
	response.RespondJSON(ctx, "success", http.StatusCreated, "Layout saved successfully", resp, nil)
}

//  TOOLS & POINTER

func (c *Controller) SetTool(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SetToolRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.Do(func(e *editor.Editor) error {
		return e.SetTool(tools.Tool(req.Tool))
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Unknown tool", nil, err.Error())
		return
	}
	c.respondState(ctx, s, "Tool changed successfully")
}

func (c *Controller) Pointer(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req PointerRequest
	if !c.bind(ctx, &req) {
		return
	}

	p := scene.Point{X: req.X, Y: req.Y}
	s.Do(func(e *editor.Editor) error {
		switch req.Action {
		case "down":
			e.PointerDown(p, req.HitID)
		case "move":
			e.PointerMove(p)
		case "up":
			e.PointerUp(p)
		case "double-click":
			e.DoubleClick(p)
		}
		return nil
	})
	c.respondState(ctx, s, "Pointer event applied")
}

func (c *Controller) Drag(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req DragRequest
	if !c.bind(ctx, &req) {
		return
	}

	s.Do(func(e *editor.Editor) error {
		switch req.Action {
		case "move":
			e.DragMove(req.ID, scene.Point{X: req.X, Y: req.Y})
		case "end":
			e.DragEnd(req.ID)
		}
		return nil
	})
	c.respondState(ctx, s, "Drag event applied")
}

func (c *Controller) Keystroke(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req KeystrokeRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.Do(func(e *editor.Editor) error {
		return e.HandleKey(ctx.Request.Context(), editor.Keystroke{
			Key:   req.Key,
			Ctrl:  req.Ctrl,
			Shift: req.Shift,
		})
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to handle keystroke", nil, nil)
		return
	}
	c.respondState(ctx, s, "Keystroke applied")
}

//  SELECTION, CLIPBOARD & HISTORY

func (c *Controller) SetSelection(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SelectionRequest
	if !c.bind(ctx, &req) {
		return
	}

	s.Do(func(e *editor.Editor) error {
		e.SelectObjects(req.IDs...)
		return nil
	})
	c.respondState(ctx, s, "Selection updated")
}

func (c *Controller) DeleteSelection(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	s.Do(func(e *editor.Editor) error {
		e.DeleteSelection()
		return nil
	})
	c.respondState(ctx, s, "Selection deleted")
}

func (c *Controller) Clipboard(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req ClipboardRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.Do(func(e *editor.Editor) error {
		switch req.Action {
		case "copy":
			return e.Copy(ctx.Request.Context())
		case "cut":
			return e.Cut(ctx.Request.Context())
		case "paste":
			return e.Paste(ctx.Request.Context())
		}
		return nil
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Clipboard operation failed", nil, nil)
		return
	}
	c.respondState(ctx, s, "Clipboard operation applied")
}

func (c *Controller) Undo(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	s.Do(func(e *editor.Editor) error {
		return e.Undo()
	})
	c.respondState(ctx, s, "Undo applied")
}

func (c *Controller) Redo(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	s.Do(func(e *editor.Editor) error {
		return e.Redo()
	})
	c.respondState(ctx, s, "Redo applied")
}

//  SEAT & TEXT EDITS

func (c *Controller) SetSeatNumber(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SeatNumberRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.Do(func(e *editor.Editor) error {
		return e.SetSeatNumber(ctx.Param("seatId"), req.Number)
	})
	if err != nil {
		c.respondSeatError(ctx, err)
		return
	}
	c.respondState(ctx, s, "Seat number updated")
}

func (c *Controller) SetSeatCategory(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SeatCategoryRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.Do(func(e *editor.Editor) error {
		return e.SetSeatCategory(ctx.Param("seatId"), req.CategoryID)
	})
	if err != nil {
		c.respondSeatError(ctx, err)
		return
	}
	c.respondState(ctx, s, "Seat category updated")
}

func (c *Controller) SetCategories(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SetCategoriesRequest
	if !c.bind(ctx, &req) {
		return
	}

	s.Do(func(e *editor.Editor) error {
		e.SetCategories(req.Categories)
		return nil
	})
	c.respondState(ctx, s, "Categories updated")
}

func (c *Controller) CommitText(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req CommitTextRequest
	if !c.bind(ctx, &req) {
		return
	}

	s.Do(func(e *editor.Editor) error {
		e.CommitText(ctx.Param("objectId"), req.Text)
		return nil
	})
	c.respondState(ctx, s, "Text committed")
}

func (c *Controller) SetSmartSnap(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req SmartSnapRequest
	if !c.bind(ctx, &req) {
		return
	}

	s.Do(func(e *editor.Editor) error {
		e.SetSmartSnap(req.Enabled)
		return nil
	})
	c.respondState(ctx, s, "Smart snap updated")
}

//  PREVIEW

func (c *Controller) StartPreview(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	s.StartPreview()
	c.respondState(ctx, s, "Preview started")
}

func (c *Controller) EndPreview(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	s.EndPreview()
	c.respondState(ctx, s, "Preview ended")
}

func (c *Controller) ApplyBookings(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req ApplyBookingsRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.DoPreview(func(v *viewer.Viewer) error {
		v.ApplyBookings(req.Bookings)
		return nil
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Preview mode is not active", nil, nil)
		return
	}
	c.respondState(ctx, s, "Bookings applied")
}

func (c *Controller) PreviewClick(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req PreviewClickRequest
	if !c.bind(ctx, &req) {
		return
	}

	var resp PreviewSelectionResponse
	err := s.DoPreview(func(v *viewer.Viewer) error {
		ids := v.SelectedIDs()
		records := v.Records(ids)
		v.OnSelectionChange = func(newIDs []string, seats []viewer.SeatRecord) {
			ids = newIDs
			records = seats
		}
		v.HandleClick(req.SeatID)
		v.OnSelectionChange = nil

		if ids == nil {
			ids = []string{}
		}
		resp = PreviewSelectionResponse{
			Controlled: v.Controlled(),
			IDs:        ids,
			Seats:      records,
		}
		return nil
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Preview mode is not active", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Click processed", resp, nil)
}

func (c *Controller) SetPreviewSelection(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var req PreviewSelectionRequest
	if !c.bind(ctx, &req) {
		return
	}

	err := s.DoPreview(func(v *viewer.Viewer) error {
		v.SetSelectedSeatIDs(req.IDs)
		return nil
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Preview mode is not active", nil, nil)
		return
	}
	c.respondState(ctx, s, "Preview selection updated")
}

func (c *Controller) GetPreviewSelection(ctx *gin.Context) {
	s, ok := c.session(ctx)
	if !ok {
		return
	}

	var resp PreviewSelectionResponse
	err := s.DoPreview(func(v *viewer.Viewer) error {
		ids := v.SelectedIDs()
		if ids == nil {
			ids = []string{}
		}
		resp = PreviewSelectionResponse{
			Controlled: v.Controlled(),
			IDs:        ids,
			Seats:      v.Records(ids),
		}
		return nil
	})
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusConflict, "Preview mode is not active", nil, nil)
		return
	}
	response.RespondJSON(ctx, "success", http.StatusOK, "Preview selection retrieved", resp, nil)
}

//  HELPERS

func (c *Controller) session(ctx *gin.Context) (*Session, bool) {
	userID, exists := ctx.Get("user_id")
	if !exists {
		response.RespondJSON(ctx, "error", http.StatusUnauthorized, "User not authenticated", nil, nil)
		return nil, false
	}

	s, err := c.registry.Get(ctx.Param("id"), userID.(string))
	if err != nil {
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Session not found", nil, nil)
		return nil, false
	}
	return s, true
}

func (c *Controller) bind(ctx *gin.Context, req interface{}) bool {
	if err := ctx.ShouldBindJSON(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return false
	}
	if err := c.validator.Struct(req); err != nil {
		response.RespondJSON(ctx, "error", http.StatusBadRequest, "Validation failed", nil, err.Error())
		return false
	}
	return true
}

func (c *Controller) respondState(ctx *gin.Context, s *Session, msg string) {
	var state State
	s.Do(func(e *editor.Editor) error {
		state = stateOf(s, e)
		return nil
	})
	response.RespondJSON(ctx, "success", http.StatusOK, msg, state, nil)
}

func (c *Controller) respondSeatError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, editor.ErrUnknownSeat):
		response.RespondJSON(ctx, "error", http.StatusNotFound, "Seat not found", nil, nil)
	case errors.Is(err, editor.ErrSeatImmutable):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seat is sold or held and cannot be edited", nil, nil)
	case errors.Is(err, editor.ErrDuplicateSeatNumber):
		response.RespondJSON(ctx, "error", http.StatusConflict, "Seat number already used in this row", nil, err.Error())
	default:
		response.RespondJSON(ctx, "error", http.StatusInternalServerError, "Failed to update seat", nil, nil)
	}
}
