package announcement

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/pkg/validator"
)

const dateLayout = "2006-01-02"

// Service provides announcement business logic
type Service struct {
	repo      Repository
	validator validator.Validator
	now       func() time.Time
}

// NewService creates a new announcement service
func NewService(repo Repository, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: v,
		now:       time.Now,
	}
}

// Create publishes an announcement authored by the session's profile name
func (s *Service) Create(ctx context.Context, sess *session.Session, req *CreateAnnouncementRequest) (*Announcement, error) {
	if err := sess.Require(session.EntityAnnouncement, session.ActionCreate); err != nil {
		return nil, err
	}

	// Validate request fields
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	content := strings.TrimSpace(req.Content)
	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = titleFrom(content)
	}

	now := s.now()
	a := &Announcement{
		ID:        ulid.Make().String(),
		Title:     title,
		Content:   content,
		Date:      now.Format(dateLayout),
		Author:    sess.ProfileName,
		CreatedAt: now.UTC(),
	}

	if err := s.repo.CreateAnnouncement(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// Get retrieves an announcement by ID
func (s *Service) Get(ctx context.Context, sess *session.Session, announcementID string) (*Announcement, error) {
	if err := sess.Require(session.EntityAnnouncement, session.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetAnnouncement(ctx, announcementID)
}

// Delete removes an announcement
func (s *Service) Delete(ctx context.Context, sess *session.Session, announcementID string) error {
	if err := sess.Require(session.EntityAnnouncement, session.ActionDelete); err != nil {
		return err
	}
	return s.repo.DeleteAnnouncement(ctx, announcementID)
}

// List returns all announcements, newest first
func (s *Service) List(ctx context.Context, sess *session.Session) ([]Announcement, error) {
	if err := sess.Require(session.EntityAnnouncement, session.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.ListAnnouncements(ctx)
}
