package report

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/resident"
)

// Repository defines the interface for the report collection.
// Listing returns reports newest first.
type Repository interface {
	CreateReport(ctx context.Context, r *Report) error
	GetReport(ctx context.Context, reportID string) (*Report, error)
	UpdateReport(ctx context.Context, reportID string, apply func(*Report) error) (*Report, error)
	DeleteReport(ctx context.Context, reportID string) error
	ListReports(ctx context.Context) ([]Report, error)
}

// NameValidator checks that a name belongs to the resident registry
type NameValidator interface {
	Validate(ctx context.Context, name string) (resident.Resident, error)
}
