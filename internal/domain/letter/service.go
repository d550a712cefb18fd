package letter

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/pkg/validator"
)

const dateLayout = "2006-01-02"

// Service provides letter request business logic
type Service struct {
	repo      Repository
	names     NameValidator
	validator validator.Validator
	now       func() time.Time
}

// NewService creates a new letter service
func NewService(repo Repository, names NameValidator, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		names:     names,
		validator: v,
		now:       time.Now,
	}
}

// Create files a letter request for a registered resident.
// The stored name and address come from the matched registry entry.
func (s *Service) Create(ctx context.Context, sess *session.Session, req *CreateLetterRequest) (*Request, error) {
	if err := sess.Require(session.EntityLetter, session.ActionCreate); err != nil {
		return nil, err
	}

	// Validate request fields
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Resolve the requester in the registry
	match, err := s.names.Validate(ctx, req.ResidentName)
	if err != nil {
		return nil, err
	}

	now := s.now()
	r := &Request{
		ID:              ulid.Make().String(),
		ResidentName:    match.Name,
		ResidentAddress: match.Address,
		Purpose:         strings.TrimSpace(req.Purpose),
		Date:            now.Format(dateLayout),
		Status:          StatusPending,
		CreatedAt:       now.UTC(),
		UpdatedAt:       now.UTC(),
	}

	if err := s.repo.CreateLetter(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Get retrieves a letter request by ID
func (s *Service) Get(ctx context.Context, sess *session.Session, letterID string) (*Request, error) {
	if err := sess.Require(session.EntityLetter, session.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetLetter(ctx, letterID)
}

// List returns letter requests matching the filter, newest first
func (s *Service) List(ctx context.Context, sess *session.Session, filter Filter) ([]Request, error) {
	if err := sess.Require(session.EntityLetter, session.ActionRead); err != nil {
		return nil, err
	}

	all, err := s.repo.ListLetters(ctx)
	if err != nil {
		return nil, err
	}

	letters := make([]Request, 0, len(all))
	for _, r := range all {
		if filter.Match(r) {
			letters = append(letters, r)
		}
	}
	return letters, nil
}

// Approve marks a letter approved. A non-empty content replaces the current text.
func (s *Service) Approve(ctx context.Context, sess *session.Session, letterID string, req *ApproveRequest) (*Request, error) {
	if err := sess.Require(session.EntityLetter, session.ActionApprove); err != nil {
		return nil, err
	}

	return s.repo.UpdateLetter(ctx, letterID, func(r *Request) error {
		if content := strings.TrimSpace(req.Content); content != "" {
			r.Content = content
		}
		r.Status = StatusApproved
		r.UpdatedAt = s.now().UTC()
		return nil
	})
}

// ApplyDraft stores generated content and approves the letter.
// Later calls overwrite earlier ones.
func (s *Service) ApplyDraft(ctx context.Context, sess *session.Session, letterID string, content string) (*Request, error) {
	if err := sess.Require(session.EntityLetter, session.ActionApprove); err != nil {
		return nil, err
	}

	return s.repo.UpdateLetter(ctx, letterID, func(r *Request) error {
		r.Content = content
		r.Status = StatusApproved
		r.UpdatedAt = s.now().UTC()
		return nil
	})
}

// Reject marks a letter rejected
func (s *Service) Reject(ctx context.Context, sess *session.Session, letterID string) (*Request, error) {
	if err := sess.Require(session.EntityLetter, session.ActionReject); err != nil {
		return nil, err
	}

	return s.repo.UpdateLetter(ctx, letterID, func(r *Request) error {
		r.Status = StatusRejected
		r.UpdatedAt = s.now().UTC()
		return nil
	})
}

// Print renders an approved letter signed by the session's authority name
func (s *Service) Print(ctx context.Context, sess *session.Session, letterID string) (*Printout, error) {
	if err := sess.Require(session.EntityLetter, session.ActionPrint); err != nil {
		return nil, err
	}

	r, err := s.repo.GetLetter(ctx, letterID)
	if err != nil {
		return nil, err
	}

	if r.Status != StatusApproved {
		return nil, errors.NewValidationError("only approved letters can be printed").
			WithDetail("status", string(r.Status))
	}

	return &Printout{
		LetterID:        r.ID,
		ResidentName:    r.ResidentName,
		ResidentAddress: r.ResidentAddress,
		Purpose:         r.Purpose,
		Date:            r.Date,
		AuthorityName:   sess.ProfileName,
		Content:         r.Content,
	}, nil
}
