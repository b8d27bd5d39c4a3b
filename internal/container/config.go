// Package container provides dependency injection and lifecycle management
// for the invoice portal.
package container

import (
	"fmt"
	"time"

	"github.com/garyjia/invoice-portal/internal/domain/form"
	httpapi "github.com/garyjia/invoice-portal/internal/interfaces/http"
	"github.com/garyjia/invoice-portal/internal/interfaces/websocket"
	"github.com/garyjia/invoice-portal/internal/session"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Server configuration
	Server httpapi.ServerConfig

	// Page shown to suppliers
	Page httpapi.PageConfig

	// Form validation settings
	Form FormConfig

	// Session store configuration
	Session session.Config

	// Live event channel configuration
	WebSocket websocket.Config
}

// FormConfig holds validation settings shared by every session.
type FormConfig struct {
	// MaxFileSize is the largest accepted upload in bytes
	MaxFileSize int64

	// Language selects the message catalog
	Language string
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Server: httpapi.DefaultServerConfig(),
		Page: httpapi.PageConfig{
			Language: "en",
		},
		Form: FormConfig{
			MaxFileSize: form.DefaultMaxFileSize,
			Language:    "en",
		},
		Session: session.Config{
			TTL:           30 * time.Minute,
			SweepInterval: time.Minute,
			MaxSessions:   10000,
		},
		WebSocket: websocket.DefaultConfig(),
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port out of range: %d", c.Server.Port)
	}
	if c.Form.MaxFileSize <= 0 {
		return fmt.Errorf("form max file size must be positive")
	}
	if c.Session.TTL < 0 {
		return fmt.Errorf("session ttl must not be negative")
	}
	return nil
}
