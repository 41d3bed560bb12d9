package sessions

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"seatlab/internal/editor"
	"seatlab/internal/shared/config"
	"seatlab/internal/viewer"
	"seatlab/pkg/logger"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("session limit reached")
	ErrNoPreview       = errors.New("session has no active preview")
)

// Session is one operator's live editing context. The editor engine is not
// safe for concurrent use, so every operation on it goes through Do, which
// serializes access and refreshes the idle clock.
type Session struct {
	ID        string
	OwnerID   string
	LayoutID  string // layout the session was loaded from, if any
	CreatedAt time.Time

	mu         sync.Mutex
	editor     *editor.Editor
	preview    *viewer.Viewer
	lastActive time.Time
}

// Do runs fn with exclusive access to the session's editor.
func (s *Session) Do(fn func(e *editor.Editor) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	return fn(s.editor)
}

// DoPreview runs fn with exclusive access to the session's preview viewer.
// ErrNoPreview if preview mode has not been started.
func (s *Session) DoPreview(fn func(v *viewer.Viewer) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	if s.preview == nil {
		return ErrNoPreview
	}
	return fn(s.preview)
}

// StartPreview builds a read-only viewer over the session's current scene.
// Idempotent: an existing preview is replaced so it picks up later edits.
func (s *Session) StartPreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	e := s.editor
	s.preview = viewer.New(e.Scene, e.Rows, e.Categories())
}

// EndPreview drops the preview viewer and restores editing appearance.
func (s *Session) EndPreview() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastActive = time.Now()
	if s.preview != nil {
		s.preview.SetSelectedSeatIDs([]string{})
		s.preview = nil
	}
}

// Previewing reports whether a preview viewer is active.
func (s *Session) Previewing() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.preview != nil
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastActive)
}

// Registry owns every live editing session. Sessions expire after the
// configured idle timeout; a janitor goroutine sweeps them out.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session

	cfg  config.EditorConfig
	log  *logger.Logger
	stop chan struct{}
	once sync.Once
}

// NewRegistry creates a registry and starts its idle-session janitor.
func NewRegistry(cfg config.EditorConfig) *Registry {
	r := &Registry{
		sessions: make(map[string]*Session),
		cfg:      cfg,
		log:      logger.GetDefault(),
		stop:     make(chan struct{}),
	}
	go r.janitor()
	return r
}

// Create opens a new session for the owner.
func (r *Registry) Create(ctx context.Context, ownerID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.sessions) >= r.cfg.MaxSessions {
		return nil, ErrTooManySessions
	}

	now := time.Now()
	s := &Session{
		ID:         uuid.NewString(),
		OwnerID:    ownerID,
		CreatedAt:  now,
		editor:     editor.New(r.log),
		lastActive: now,
	}
	r.sessions[s.ID] = s

	r.log.LogSessionStarted(ctx, s.ID, ownerID)
	return s, nil
}

// Get looks up a session and enforces ownership; a foreign session id reads
// the same as a missing one.
func (r *Registry) Get(id, ownerID string) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears down a session and releases its journal resources.
func (r *Registry) Close(ctx context.Context, id, ownerID, reason string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	if !ok || s.OwnerID != ownerID {
		r.mu.Unlock()
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	r.mu.Unlock()

	s.Do(func(e *editor.Editor) error {
		e.Journal.Close()
		return nil
	})
	r.log.LogSessionClosed(ctx, id, reason)
	return nil
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Shutdown stops the janitor and closes every session.
func (r *Registry) Shutdown(ctx context.Context) {
	r.once.Do(func() { close(r.stop) })

	r.mu.Lock()
	all := make([]*Session, 0, len(r.sessions))
	for _, s := range r.sessions {
		all = append(all, s)
	}
	r.sessions = make(map[string]*Session)
	r.mu.Unlock()

	for _, s := range all {
		s.Do(func(e *editor.Editor) error {
			e.Journal.Close()
			return nil
		})
		r.log.LogSessionClosed(ctx, s.ID, "shutdown")
	}
}

func (r *Registry) janitor() {
	interval := r.cfg.SessionIdleTimeout / 4
	if interval < time.Minute {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.sweep(now)
		}
	}
}

func (r *Registry) sweep(now time.Time) {
	r.mu.Lock()
	var expired []*Session
	for id, s := range r.sessions {
		if s.idleSince(now) > r.cfg.SessionIdleTimeout {
			delete(r.sessions, id)
			expired = append(expired, s)
		}
	}
	r.mu.Unlock()

	for _, s := range expired {
		s.Do(func(e *editor.Editor) error {
			e.Journal.Close()
			return nil
		})
		r.log.LogSessionClosed(context.Background(), s.ID, "idle timeout")
	}
}
