package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/controller"
	"github.com/garyjia/invoice-portal/internal/domain/entity"
	"github.com/garyjia/invoice-portal/internal/domain/form"
	"github.com/garyjia/invoice-portal/internal/interfaces/surface"
	"github.com/garyjia/invoice-portal/internal/interfaces/websocket"
	"github.com/garyjia/invoice-portal/internal/session"
)

// Handlers contains all HTTP request handlers
type Handlers struct {
	store   *session.Store
	version string
	logger  *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(store *session.Store, version string, logger *zap.Logger) *Handlers {
	return &Handlers{
		store:   store,
		version: version,
		logger:  logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
	Sessions  int    `json:"sessions"`
}

// SessionResponse is returned when a session starts
type SessionResponse struct {
	ID  string       `json:"id"`
	Ops []surface.Op `json:"ops"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	response := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   h.version,
		Sessions:  h.store.Len(),
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    response,
	})
}

// CreateSession handles POST /api/sessions
func (h *Handlers) CreateSession(c *gin.Context) {
	s, ops, err := h.store.Create()
	if err != nil {
		h.logger.Warn("Failed to create session", zap.Error(err))
		status, message := errorStatus(err)
		c.JSON(status, Response{
			Success: false,
			Error:   message,
		})
		return
	}

	c.JSON(http.StatusCreated, Response{
		Success: true,
		Data: SessionResponse{
			ID:  s.ID.String(),
			Ops: ops,
		},
	})
}

// DeleteSession handles DELETE /api/sessions/:id
func (h *Handlers) DeleteSession(c *gin.Context) {
	if err := h.store.Delete(c.Param("id")); err != nil {
		status, message := errorStatus(err)
		c.JSON(status, Response{
			Success: false,
			Error:   message,
		})
		return
	}

	c.JSON(http.StatusOK, Response{Success: true})
}

// PostEvent handles POST /api/sessions/:id/events
func (h *Handlers) PostEvent(c *gin.Context) {
	var ev controller.Event
	if err := c.ShouldBindJSON(&ev); err != nil {
		h.logger.Debug("Invalid event body", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid event",
		})
		return
	}

	h.handleEvent(c, ev)
}

// UploadFile handles POST /api/sessions/:id/files/:slot.
// Only the part's filename, size and content type are read; the content is discarded.
// The optional "event" form field selects "change" (picker, default) or "drop" (upload zone).
func (h *Handlers) UploadFile(c *gin.Context) {
	slot := form.Slot(c.Param("slot"))
	if !slot.IsValid() {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "unknown file slot",
		})
		return
	}

	elements := h.store.Elements()
	ev := controller.Event{
		Type:   controller.EventChange,
		Target: elements.FileInputs[slot],
		Files:  []entity.FileHandle{},
	}
	if c.DefaultPostForm("event", string(controller.EventChange)) == string(controller.EventDrop) {
		ev.Type = controller.EventDrop
		ev.Target = elements.UploadZones[slot]
	}

	header, err := c.FormFile("file")
	switch {
	case errors.Is(err, http.ErrMissingFile):
		// an emptied picker
	case err != nil:
		h.logger.Debug("Invalid upload", zap.Error(err))
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "invalid upload",
		})
		return
	default:
		ev.Files = append(ev.Files, entity.FileHandle{
			Name:        header.Filename,
			Size:        header.Size,
			ContentType: header.Header.Get("Content-Type"),
		})
	}

	h.handleEvent(c, ev)
}

// LiveChannel handles GET /api/sessions/:id/ws
func (h *Handlers) LiveChannel(live *websocket.Channel) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := live.Serve(c.Writer, c.Request, c.Param("id")); err != nil {
			status, message := errorStatus(err)
			c.JSON(status, Response{
				Success: false,
				Error:   message,
			})
		}
	}
}

func (h *Handlers) handleEvent(c *gin.Context, ev controller.Event) {
	s, err := h.store.Get(c.Param("id"))
	if err != nil {
		status, message := errorStatus(err)
		c.JSON(status, Response{
			Success: false,
			Error:   message,
		})
		return
	}

	outcome, err := s.Handle(c.Request.Context(), ev)
	if err != nil {
		h.logger.Warn("Event failed",
			zap.String("session_id", s.ID.String()),
			zap.String("event", string(ev.Type)),
			zap.String("target", ev.Target),
			zap.Error(err),
		)
		status, message := errorStatus(err)
		c.JSON(status, Response{
			Success: false,
			Data:    outcome.Report(),
			Error:   message,
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    outcome.Report(),
	})
}

// errorStatus maps an error to the HTTP status and public message it is reported with
func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session not found"
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable, "too many sessions"
	case errors.Is(err, controller.ErrUnknownEvent):
		return http.StatusBadRequest, err.Error()
	default:
		return http.StatusBadGateway, "submission failed"
	}
}
