package memory

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/report"
)

// ReportRepository implements report.Repository in memory
type ReportRepository struct {
	items *collection[report.Report]
}

// NewReportRepository creates an empty report repository
func NewReportRepository() *ReportRepository {
	return &ReportRepository{
		items: newCollection(func(r report.Report) string { return r.ID }),
	}
}

// CreateReport inserts r at the head of the collection
func (repo *ReportRepository) CreateReport(_ context.Context, r *report.Report) error {
	repo.items.insert(*r)
	return nil
}

// GetReport retrieves a report by ID
func (repo *ReportRepository) GetReport(_ context.Context, reportID string) (*report.Report, error) {
	r, ok := repo.items.get(reportID)
	if !ok {
		return nil, reportNotFound(reportID)
	}
	return &r, nil
}

// UpdateReport applies a mutation to a stored report
func (repo *ReportRepository) UpdateReport(_ context.Context, reportID string, apply func(*report.Report) error) (*report.Report, error) {
	r, found, err := repo.items.update(reportID, apply)
	if !found {
		return nil, reportNotFound(reportID)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// DeleteReport removes a report
func (repo *ReportRepository) DeleteReport(_ context.Context, reportID string) error {
	if !repo.items.remove(reportID) {
		return reportNotFound(reportID)
	}
	return nil
}

// ListReports returns all reports newest first
func (repo *ReportRepository) ListReports(_ context.Context) ([]report.Report, error) {
	return repo.items.snapshot(), nil
}

func reportNotFound(id string) error {
	return errors.NewNotFoundError("report not found").WithDetail("id", id)
}
