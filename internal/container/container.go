package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/form"
	httpapi "github.com/garyjia/invoice-portal/internal/interfaces/http"
	"github.com/garyjia/invoice-portal/internal/session"
)

// Container manages all application dependencies and lifecycle.
// Components are initialized in dependency order and torn down in reverse.
type Container struct {
	config *Config
	logger *zap.Logger

	// Domain
	checker *form.Checker

	// Infrastructure
	submitter port.Submitter

	// Application
	sessions *session.Store
	janitor  chan struct{}

	// Interfaces
	server *httpapi.Server

	// Lifecycle
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	ready  atomic.Bool
	closed atomic.Bool
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &Container{
		config: cfg,
		logger: logger,
	}, nil
}

// Start initializes all components.
// Components are initialized in dependency order:
// 1. Form checker
// 2. Submission collaborator
// 3. Session store and its janitor
// 4. HTTP server
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}

	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.ctx, c.cancel = context.WithCancel(ctx)
	c.logger.Info("Starting container initialization")

	checker, err := ProvideChecker(&c.config.Form, c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize form checker: %w", err)
	}
	c.checker = checker

	submitter, err := ProvideSubmitter(c.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize submitter: %w", err)
	}
	c.submitter = submitter

	if err := c.initSessions(); err != nil {
		return fmt.Errorf("failed to initialize sessions: %w", err)
	}
	c.logger.Info("Session store initialized",
		zap.Duration("ttl", c.config.Session.TTL),
		zap.Int("max_sessions", c.config.Session.MaxSessions))

	server, err := ProvideServer(c.config, c.sessions, c.logger)
	if err != nil {
		return err
	}
	c.server = server

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

func (c *Container) initSessions() error {
	store, err := ProvideSessionStore(&SessionDeps{
		Config:    &c.config.Session,
		Checker:   c.checker,
		Submitter: c.submitter,
		Logger:    c.logger,
	})
	if err != nil {
		return err
	}
	c.sessions = store

	c.janitor = make(chan struct{})
	go func(ctx context.Context, done chan<- struct{}) {
		defer close(done)
		store.Run(ctx)
	}(c.ctx, c.janitor)

	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	if c.server != nil {
		if err := c.server.Stop(); err != nil {
			c.logger.Error("Failed to stop HTTP server", zap.Error(err))
			errs = append(errs, fmt.Errorf("stop server: %w", err))
		}
	}

	// Cancel context to stop the janitor
	if c.cancel != nil {
		c.cancel()
	}
	if c.janitor != nil {
		<-c.janitor
		c.logger.Info("Session janitor stopped")
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

// Ready reports whether Start completed.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns the health of every component.
func (c *Container) Health() *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}

	if c.sessions != nil {
		status.Components["sessions"] = ComponentHealth{
			Healthy: true,
			Message: fmt.Sprintf("live sessions: %d", c.sessions.Len()),
		}
	} else {
		status.Components["sessions"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	if c.server != nil {
		status.Components["server"] = ComponentHealth{Healthy: true}
	} else {
		status.Components["server"] = ComponentHealth{
			Healthy: false,
			Message: "not initialized",
		}
		status.Overall = false
	}

	return status
}

// Server returns the HTTP server. Nil before Start.
func (c *Container) Server() *httpapi.Server {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.server
}

// Sessions returns the session store. Nil before Start.
func (c *Container) Sessions() *session.Store {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.sessions
}
