package session

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hirosato/smartrt/internal/domain/errors"
)

// Service manages sessions and the shared administrator profile
type Service struct {
	repo   Repository
	gate   *Gate
	logger *slog.Logger

	mu          sync.RWMutex
	profileName string
}

// NewService creates a new session service
func NewService(repo Repository, gate *Gate, profileName string, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		gate:        gate,
		logger:      logger,
		profileName: profileName,
	}
}

// Start creates a new session in the RESIDENT role
func (s *Service) Start(ctx context.Context) (*Session, error) {
	now := time.Now().UTC()
	sess := &Session{
		ID:          uuid.New().String(),
		Role:        RoleResident,
		ProfileName: s.ProfileName(),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.CreateSession(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Session started", "sessionId", sess.ID)
	return sess, nil
}

// Get retrieves a session by ID with the current profile name applied
func (s *Service) Get(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.repo.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	sess.ProfileName = s.ProfileName()
	return sess, nil
}

// Elevate promotes the session to ADMIN when the passphrase matches
func (s *Service) Elevate(ctx context.Context, sessionID string, passphrase string) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := s.gate.Elevate(sess, passphrase); err != nil {
		s.logger.Warn("Elevation rejected", "sessionId", sess.ID)
		return nil, err
	}

	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Session elevated", "sessionId", sess.ID)
	return sess, nil
}

// Demote returns the session to the RESIDENT role
func (s *Service) Demote(ctx context.Context, sessionID string) (*Session, error) {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.gate.Demote(sess)

	if err := s.repo.UpdateSession(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("Session demoted", "sessionId", sess.ID)
	return sess, nil
}

// Rename changes the administrator profile name used as author and letter authority
func (s *Service) Rename(ctx context.Context, sess *Session, name string) (*Session, error) {
	if err := sess.Require(EntityProfile, ActionUpdate); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("profileName is required")
	}

	s.mu.Lock()
	s.profileName = name
	s.mu.Unlock()

	sess.ProfileName = name
	return sess, nil
}

// ProfileName returns the current administrator profile name
func (s *Service) ProfileName() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.profileName
}
