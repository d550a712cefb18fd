package memory

import (
	"context"
	"sync"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// SessionRepository implements session.Repository in memory
type SessionRepository struct {
	mu       sync.RWMutex
	sessions map[string]session.Session
}

// NewSessionRepository creates an empty session repository
func NewSessionRepository() *SessionRepository {
	return &SessionRepository{sessions: make(map[string]session.Session)}
}

// CreateSession stores a new session
func (repo *SessionRepository) CreateSession(_ context.Context, sess *session.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.sessions[sess.ID]; ok {
		return errors.NewConflictError("session already exists")
	}
	repo.sessions[sess.ID] = *sess
	return nil
}

// GetSession retrieves a copy of a session by ID
func (repo *SessionRepository) GetSession(_ context.Context, sessionID string) (*session.Session, error) {
	repo.mu.RLock()
	defer repo.mu.RUnlock()
	sess, ok := repo.sessions[sessionID]
	if !ok {
		return nil, errors.NewNotFoundError("session not found")
	}
	return &sess, nil
}

// UpdateSession replaces a stored session
func (repo *SessionRepository) UpdateSession(_ context.Context, sess *session.Session) error {
	repo.mu.Lock()
	defer repo.mu.Unlock()
	if _, ok := repo.sessions[sess.ID]; !ok {
		return errors.NewNotFoundError("session not found")
	}
	repo.sessions[sess.ID] = *sess
	return nil
}
