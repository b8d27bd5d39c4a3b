package config

import (
	"github.com/garyjia/invoice-portal/internal/container"
	httpapi "github.com/garyjia/invoice-portal/internal/interfaces/http"
	"github.com/garyjia/invoice-portal/internal/interfaces/websocket"
	"github.com/garyjia/invoice-portal/internal/session"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig(version string) *container.Config {
	return &container.Config{
		Server: httpapi.ServerConfig{
			Host:               c.Server.Host,
			Port:               c.Server.Port,
			ReadTimeout:        c.Server.ReadTimeout,
			WriteTimeout:       c.Server.WriteTimeout,
			MaxMultipartMemory: c.Upload.MaxMultipartMemory,
			Version:            version,
		},
		Page: httpapi.PageConfig{
			Title:      c.Form.Title,
			Language:   c.Form.Language,
			NoticeHTML: c.Form.NoticeHTML,
		},
		Form: container.FormConfig{
			MaxFileSize: c.Upload.MaxFileSize,
			Language:    c.Form.Language,
		},
		Session: session.Config{
			TTL:           c.Session.TTL,
			SweepInterval: c.Session.SweepInterval,
			MaxSessions:   c.Session.MaxSessions,
		},
		WebSocket: websocket.Config{
			ReadLimit: c.WebSocket.ReadLimit,
			PongWait:  c.WebSocket.PongWait,
			WriteWait: c.WebSocket.WriteWait,
		},
	}
}
