package resident

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/pkg/validator"
)

// Service provides resident registry business logic
type Service struct {
	repo      Repository
	validator validator.Validator
}

// NewService creates a new resident service
func NewService(repo Repository, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		validator: v,
	}
}

// Create registers a new resident
func (s *Service) Create(ctx context.Context, sess *session.Session, req *CreateResidentRequest) (*Resident, error) {
	if err := sess.Require(session.EntityResident, session.ActionCreate); err != nil {
		return nil, err
	}

	// Validate request fields
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = StatusPermanent
	}

	now := time.Now().UTC()
	r := &Resident{
		ID:             ulid.Make().String(),
		Name:           strings.TrimSpace(req.Name),
		Address:        strings.TrimSpace(req.Address),
		Phone:          phoneOrDefault(req.Phone),
		Status:         status,
		FamilyMembers:  req.FamilyMembers,
		IsHeadOfFamily: req.IsHeadOfFamily,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.CreateResident(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Get retrieves a resident by ID
func (s *Service) Get(ctx context.Context, sess *session.Session, residentID string) (*Resident, error) {
	if err := sess.Require(session.EntityResident, session.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetResident(ctx, residentID)
}

// Update merges the patch into an existing resident
func (s *Service) Update(ctx context.Context, sess *session.Session, residentID string, req *UpdateResidentRequest) (*Resident, error) {
	if err := sess.Require(session.EntityResident, session.ActionUpdate); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.repo.UpdateResident(ctx, residentID, func(r *Resident) error {
		req.ApplyTo(r)
		r.UpdatedAt = time.Now().UTC()
		return nil
	})
}

// Delete removes a resident. Reports and letters that mention the name are kept as is.
func (s *Service) Delete(ctx context.Context, sess *session.Session, residentID string) error {
	if err := sess.Require(session.EntityResident, session.ActionDelete); err != nil {
		return err
	}
	return s.repo.DeleteResident(ctx, residentID)
}

// List returns residents matching the filter, newest first
func (s *Service) List(ctx context.Context, sess *session.Session, filter Filter) ([]Resident, error) {
	if err := sess.Require(session.EntityResident, session.ActionRead); err != nil {
		return nil, err
	}

	all, err := s.repo.ListResidents(ctx)
	if err != nil {
		return nil, err
	}

	residents := make([]Resident, 0, len(all))
	for _, r := range all {
		if filter.Match(r) {
			residents = append(residents, r)
		}
	}
	return residents, nil
}

// Snapshot returns the current registry for name validation
func (s *Service) Snapshot(ctx context.Context) ([]Resident, error) {
	return s.repo.ListResidents(ctx)
}
