// internal/store/memory.go
//
// In-memory session store.
// Each player session owns one puzzle engine; the store only maps session IDs
// to sessions. The engine serializes its own mutations.
//
// Characteristics:
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - State is lost when the process restarts.
//   - Get returns ErrNotFound for unknown IDs.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/onlinedenker/denker/internal/puzzle"
)

// ErrNotFound is returned by Get for an unknown session.
var ErrNotFound = errors.New("session not found")

// Session is one player's puzzle in progress.
type Session struct {
	ID        string
	PuzzleID  string
	Date      string // YYYY-MM-DD the session was started on
	Day       int    // 1..7
	StartedAt time.Time
	Engine    *puzzle.Engine
}

// NewSession wraps an engine in a session with a fresh random ID.
func NewSession(puzzleID, date string, day int, e *puzzle.Engine) *Session {
	return &Session{
		ID:        uuid.NewString(),
		PuzzleID:  puzzleID,
		Date:      date,
		Day:       day,
		StartedAt: time.Now(),
		Engine:    e,
	}
}

// Store defines the persistence interface for sessions.
type Store interface {
	// Save persists or replaces a session.
	Save(ctx context.Context, s *Session) error

	// Get retrieves a session by ID.
	Get(ctx context.Context, id string) (*Session, error)

	// Delete removes a session; deleting an unknown ID is not an error.
	Delete(ctx context.Context, id string) error

	// Len reports the number of live sessions.
	Len() int

	// Sweep drops sessions started before cutoff and returns how many were removed.
	Sweep(ctx context.Context, cutoff time.Time) int
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*Session)}
}

func (m *memory) Save(ctx context.Context, s *Session) error {
	if s == nil || s.ID == "" {
		return errors.New("session without id")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}

func (m *memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

func (m *memory) Sweep(ctx context.Context, cutoff time.Time) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for id, s := range m.sessions {
		if s.StartedAt.Before(cutoff) {
			delete(m.sessions, id)
			n++
		}
	}
	return n
}
