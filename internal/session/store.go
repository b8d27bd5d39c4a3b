// Package session keeps one form controller per browser session.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/garyjia/invoice-portal/internal/application/controller"
	"github.com/garyjia/invoice-portal/internal/application/port"
	"github.com/garyjia/invoice-portal/internal/domain/form"
	"github.com/garyjia/invoice-portal/internal/interfaces/surface"
)

var (
	// ErrSessionNotFound is returned for unknown, malformed or expired session ids
	ErrSessionNotFound = errors.New("session not found")

	// ErrTooManySessions is returned when the store is full
	ErrTooManySessions = errors.New("too many sessions")
)

// Config holds session store configuration
type Config struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxSessions   int
}

// Outcome is what one event produced
type Outcome struct {
	Ops    []surface.Op
	Submit *controller.SubmitResult
}

// Session is one browser's form
type Session struct {
	ID uuid.UUID

	mu         sync.Mutex
	controller *controller.Controller
	mirror     *surface.Mirror
	lastSeen   atomic.Int64

	// only these ids may receive values and file selections from the page
	textControls map[string]bool
	filePickers  map[string]bool
}

// Handle applies the event's values to the page copy, dispatches it and
// returns the render operations it caused. Events of one session run one at a time.
func (s *Session) Handle(ctx context.Context, ev controller.Event) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if ev.Value != nil && s.textControls[ev.Target] {
		s.mirror.SetValue(ev.Target, *ev.Value)
	}
	if ev.Type == controller.EventChange && ev.Files != nil && s.filePickers[ev.Target] {
		s.mirror.SetFiles(ev.Target, ev.Files)
	}

	result, err := s.controller.Dispatch(ctx, ev)
	outcome := &Outcome{Ops: s.mirror.Drain(), Submit: result}
	return outcome, err
}

// State returns a copy of the session's form state
func (s *Session) State() form.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.controller.State()
}

func (s *Session) touch(now time.Time) {
	s.lastSeen.Store(now.UnixNano())
}

func (s *Session) idleSince() time.Time {
	return time.Unix(0, s.lastSeen.Load())
}

// Store owns every live session
type Store struct {
	config    Config
	elements  controller.Elements
	textIDs   map[string]bool
	pickerIDs map[string]bool
	checker   *form.Checker
	submitter port.Submitter
	logger    *zap.Logger
	now       func() time.Time

	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
}

// NewStore creates an empty store
func NewStore(config Config, elements controller.Elements, checker *form.Checker, submitter port.Submitter, logger *zap.Logger) *Store {
	return &Store{
		config:    config,
		elements:  elements,
		textIDs:   idSet(elements.TextControls()),
		pickerIDs: idSet(elements.FilePickers()),
		checker:   checker,
		submitter: submitter,
		logger:    logger,
		now:       time.Now,
		sessions:  make(map[uuid.UUID]*Session),
	}
}

func idSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = true
		}
	}
	return set
}

// Elements returns the element ids every session renders into
func (st *Store) Elements() controller.Elements {
	return st.elements
}

// Checker returns the shared validation rules
func (st *Store) Checker() *form.Checker {
	return st.checker
}

// Create starts a session and returns the operations of its initial render
func (st *Store) Create() (*Session, []surface.Op, error) {
	mirror := surface.NewMirror()
	id := uuid.New()
	s := &Session{
		ID:           id,
		mirror:       mirror,
		textControls: st.textIDs,
		filePickers:  st.pickerIDs,
		controller:   controller.New(st.elements, st.checker, mirror, mirror, st.submitter, st.logger.With(zap.String("session_id", id.String()))),
	}
	s.controller.Init()
	s.touch(st.now())

	st.mu.Lock()
	if st.config.MaxSessions > 0 && len(st.sessions) >= st.config.MaxSessions {
		st.mu.Unlock()
		return nil, nil, ErrTooManySessions
	}
	st.sessions[id] = s
	st.mu.Unlock()

	st.logger.Debug("Session created", zap.String("session_id", id.String()))
	return s, mirror.Drain(), nil
}

// Get returns a live session and marks it as used
func (st *Store) Get(id string) (*Session, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	st.mu.RLock()
	s, ok := st.sessions[parsed]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	s.touch(st.now())
	return s, nil
}

// Delete ends a session
func (st *Store) Delete(id string) error {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[parsed]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(st.sessions, parsed)
	return nil
}

// Len returns the number of live sessions
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep drops sessions idle for longer than the TTL and returns how many
func (st *Store) Sweep() int {
	if st.config.TTL <= 0 {
		return 0
	}
	cutoff := st.now().Add(-st.config.TTL)

	st.mu.Lock()
	defer st.mu.Unlock()

	removed := 0
	for id, s := range st.sessions {
		if s.idleSince().Before(cutoff) {
			delete(st.sessions, id)
			removed++
		}
	}
	if removed > 0 {
		st.logger.Info("Expired idle sessions", zap.Int("removed", removed), zap.Int("remaining", len(st.sessions)))
	}
	return removed
}

// Run sweeps expired sessions until ctx is canceled
func (st *Store) Run(ctx context.Context) {
	interval := st.config.SweepInterval
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			st.Sweep()
		}
	}
}
