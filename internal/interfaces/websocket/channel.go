// Package websocket provides the live event channel between a browser page and
// its session. Each text frame carries one page event; each reply carries the
// render operations the event produced.
package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/controller"
	"github.com/garyjia/invoice-portal/internal/session"
)

// Config holds live channel configuration
type Config struct {
	ReadLimit int64
	PongWait  time.Duration
	WriteWait time.Duration
}

// DefaultConfig returns default channel configuration
func DefaultConfig() Config {
	return Config{
		ReadLimit: 64 * 1024,
		PongWait:  60 * time.Second,
		WriteWait: 10 * time.Second,
	}
}

// Frame is one inbound message. Seq is echoed in the reply.
type Frame struct {
	Seq int64 `json:"seq,omitempty"`
	controller.Event
}

// Reply is one outbound message
type Reply struct {
	Seq     int64           `json:"seq,omitempty"`
	Success bool            `json:"success"`
	Data    *session.Report `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// Channel upgrades requests and pumps events into sessions
type Channel struct {
	store    *session.Store
	config   Config
	upgrader websocket.Upgrader
	logger   *zap.Logger
}

// NewChannel creates a live channel over the session store
func NewChannel(store *session.Store, config Config, logger *zap.Logger) *Channel {
	defaults := DefaultConfig()
	if config.ReadLimit <= 0 {
		config.ReadLimit = defaults.ReadLimit
	}
	if config.PongWait <= 0 {
		config.PongWait = defaults.PongWait
	}
	if config.WriteWait <= 0 {
		config.WriteWait = defaults.WriteWait
	}

	return &Channel{
		store:  store,
		config: config,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
		logger: logger,
	}
}

// Serve upgrades the request and handles frames for the given session until
// the peer goes away or the session expires. It returns ErrSessionNotFound
// before upgrading when the session is unknown.
func (ch *Channel) Serve(w http.ResponseWriter, r *http.Request, sessionID string) error {
	s, err := ch.store.Get(sessionID)
	if err != nil {
		return err
	}

	conn, err := ch.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// the upgrader has already replied
		ch.logger.Debug("WebSocket upgrade failed", zap.Error(err))
		return nil
	}
	defer conn.Close()

	logger := ch.logger.With(zap.String("session_id", s.ID.String()))
	logger.Debug("Live channel opened", zap.String("remote_addr", r.RemoteAddr))

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	conn.SetReadLimit(ch.config.ReadLimit)
	_ = conn.SetReadDeadline(time.Now().Add(ch.config.PongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(ch.config.PongWait))
	})

	var writeMu sync.Mutex
	write := func(reply Reply) error {
		writeMu.Lock()
		defer writeMu.Unlock()
		_ = conn.SetWriteDeadline(time.Now().Add(ch.config.WriteWait))
		return conn.WriteJSON(reply)
	}

	go ch.ping(ctx, conn, &writeMu)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Live channel closed unexpectedly", zap.Error(err))
			}
			logger.Debug("Live channel closed")
			return nil
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			if werr := write(Reply{Error: "invalid event"}); werr != nil {
				return nil
			}
			continue
		}

		// a lookup per frame keeps the session alive and notices expiry
		if _, err := ch.store.Get(sessionID); err != nil {
			_ = write(Reply{Seq: frame.Seq, Error: "session not found"})
			return nil
		}

		outcome, err := s.Handle(ctx, frame.Event)
		reply := Reply{Seq: frame.Seq, Success: err == nil, Data: outcome.Report()}
		if err != nil {
			logger.Warn("Event failed",
				zap.String("event", string(frame.Type)),
				zap.String("target", frame.Target),
				zap.Error(err),
			)
			reply.Error = errorMessage(err)
		}
		if err := write(reply); err != nil {
			logger.Debug("Live channel write failed", zap.Error(err))
			return nil
		}
	}
}

func (ch *Channel) ping(ctx context.Context, conn *websocket.Conn, writeMu *sync.Mutex) {
	ticker := time.NewTicker(ch.config.PongWait * 9 / 10)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			writeMu.Lock()
			err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(ch.config.WriteWait))
			writeMu.Unlock()
			if err != nil {
				return
			}
		}
	}
}

func errorMessage(err error) string {
	if errors.Is(err, controller.ErrUnknownEvent) {
		return err.Error()
	}
	return "submission failed"
}
