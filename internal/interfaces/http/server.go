// Package http provides the HTTP and WebSocket transport for the invoice form.
// It is a thin adapter that forwards page events to per-session controllers.
package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/interfaces/websocket"
	"github.com/garyjia/invoice-portal/internal/session"
)

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// MaxMultipartMemory bounds the memory used to parse file uploads
	MaxMultipartMemory int64

	// Version is reported by the health endpoint
	Version string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:               "0.0.0.0",
		Port:               8080,
		ReadTimeout:        30 * time.Second,
		WriteTimeout:       30 * time.Second,
		MaxMultipartMemory: 1 << 20,
		Version:            "dev",
	}
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	store      *session.Store
	page       PageConfig
	live       websocket.Config
	logger     *zap.Logger
}

// NewServer creates a new HTTP server over the session store
func NewServer(
	config ServerConfig,
	store *session.Store,
	page PageConfig,
	live websocket.Config,
	logger *zap.Logger,
) (*Server, error) {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = config.MaxMultipartMemory

	server := &Server{
		config: config,
		router: router,
		store:  store,
		page:   page,
		live:   live,
		logger: logger,
	}

	server.setupMiddleware()
	if err := server.setupRoutes(); err != nil {
		return nil, err
	}

	return server, nil
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware logs every request once it completes
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() error {
	page, err := newPageRenderer(s.page)
	if err != nil {
		return fmt.Errorf("failed to load page template: %w", err)
	}
	handlers := NewHandlers(s.store, s.config.Version, s.logger)
	live := websocket.NewChannel(s.store, s.live, s.logger)

	s.router.GET("/health", handlers.HealthCheck)
	s.router.GET("/", page.ServePage)
	assets, err := assetsFS()
	if err != nil {
		return fmt.Errorf("failed to load page assets: %w", err)
	}
	s.router.StaticFS("/assets", assets)

	api := s.router.Group("/api")
	{
		api.POST("/sessions", handlers.CreateSession)
		api.DELETE("/sessions/:id", handlers.DeleteSession)
		api.POST("/sessions/:id/events", handlers.PostEvent)
		api.POST("/sessions/:id/files/:slot", handlers.UploadFile)
		api.GET("/sessions/:id/ws", handlers.LiveChannel(live))
	}
	return nil
}

// Start runs the server until ctx is canceled
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", zap.String("address", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", zap.Error(err))
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", zap.Error(err))
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
