package report

import (
	"context"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/pkg/validator"
)

const dateLayout = "2006-01-02"

// Service provides citizen report business logic
type Service struct {
	repo      Repository
	names     NameValidator
	validator validator.Validator
	now       func() time.Time
}

// NewService creates a new report service
func NewService(repo Repository, names NameValidator, v validator.Validator) *Service {
	return &Service{
		repo:      repo,
		names:     names,
		validator: v,
		now:       time.Now,
	}
}

// Create files a new report. The reporter must be in the resident registry.
// The name is stored as typed.
func (s *Service) Create(ctx context.Context, sess *session.Session, req *CreateReportRequest) (*Report, error) {
	if err := sess.Require(session.EntityReport, session.ActionCreate); err != nil {
		return nil, err
	}

	// Validate request fields
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	// Check the reporter against the registry before touching the collection
	if _, err := s.names.Validate(ctx, req.ReporterName); err != nil {
		return nil, err
	}

	now := s.now()
	r := &Report{
		ID:           ulid.Make().String(),
		ReporterName: req.ReporterName,
		Date:         now.Format(dateLayout),
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Status:       StatusPending,
		CreatedAt:    now.UTC(),
		UpdatedAt:    now.UTC(),
	}

	if err := s.repo.CreateReport(ctx, r); err != nil {
		return nil, err
	}

	return r, nil
}

// Get retrieves a report by ID
func (s *Service) Get(ctx context.Context, sess *session.Session, reportID string) (*Report, error) {
	if err := sess.Require(session.EntityReport, session.ActionRead); err != nil {
		return nil, err
	}
	return s.repo.GetReport(ctx, reportID)
}

// UpdateStatus moves a report to another status. Transitions are not restricted.
func (s *Service) UpdateStatus(ctx context.Context, sess *session.Session, reportID string, req *UpdateStatusRequest) (*Report, error) {
	if err := sess.Require(session.EntityReport, session.ActionChangeStatus); err != nil {
		return nil, err
	}

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	return s.repo.UpdateReport(ctx, reportID, func(r *Report) error {
		r.Status = req.Status
		r.UpdatedAt = s.now().UTC()
		return nil
	})
}

// Delete removes a report
func (s *Service) Delete(ctx context.Context, sess *session.Session, reportID string) error {
	if err := sess.Require(session.EntityReport, session.ActionDelete); err != nil {
		return err
	}
	return s.repo.DeleteReport(ctx, reportID)
}

// List returns reports matching the filter, newest first
func (s *Service) List(ctx context.Context, sess *session.Session, filter Filter) ([]Report, error) {
	if err := sess.Require(session.EntityReport, session.ActionRead); err != nil {
		return nil, err
	}

	all, err := s.repo.ListReports(ctx)
	if err != nil {
		return nil, err
	}

	reports := make([]Report, 0, len(all))
	for _, r := range all {
		if filter.Match(r) {
			reports = append(reports, r)
		}
	}
	return reports, nil
}

// ActiveCount returns the number of reports that are not resolved
func (s *Service) ActiveCount(ctx context.Context, sess *session.Session) (int, error) {
	reports, err := s.List(ctx, sess, Filter{})
	if err != nil {
		return 0, err
	}
	return CountActive(reports), nil
}
