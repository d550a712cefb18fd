package resources

import (
	"context"

	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ReportLister lists community reports
type ReportLister interface {
	List(ctx context.Context, sess *session.Session, filter report.Filter) ([]report.Report, error)
}

// ReportsResource exposes the reports that are not resolved yet
type ReportsResource struct {
	reports ReportLister
	reader  *session.Session
}

func NewReportsResource(reports ReportLister, reader *session.Session) *ReportsResource {
	return &ReportsResource{
		reports: reports,
		reader:  reader,
	}
}

func (r *ReportsResource) GetURI() string         { return "smartrt://reports/active" }
func (r *ReportsResource) GetName() string        { return "Active Reports" }
func (r *ReportsResource) GetDescription() string { return "Community reports that are pending or in progress" }
func (r *ReportsResource) GetMimeType() string    { return mimeJSON }

func (r *ReportsResource) Read(ctx context.Context) (*mcp.ReadResourceResult, error) {
	reports, err := r.reports.List(ctx, r.reader, report.Filter{ActiveOnly: true})
	if err != nil {
		return nil, err
	}
	return jsonContents(r.GetURI(), reports)
}
