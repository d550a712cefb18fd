package prompts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ReportLister lists community reports
type ReportLister interface {
	List(ctx context.Context, sess *session.Session, filter report.Filter) ([]report.Report, error)
}

// ReportTriagePrompt asks for a summary of the current reports with suggested actions
type ReportTriagePrompt struct {
	reports ReportLister
	reader  *session.Session
}

func NewReportTriagePrompt(reports ReportLister, reader *session.Session) *ReportTriagePrompt {
	return &ReportTriagePrompt{
		reports: reports,
		reader:  reader,
	}
}

func (p *ReportTriagePrompt) GetName() string {
	return "report-triage"
}

func (p *ReportTriagePrompt) GetDescription() string {
	return "Summarize community reports and suggest what the administrator should do next"
}

func (p *ReportTriagePrompt) GetArguments() []mcp.PromptArgument {
	return []mcp.PromptArgument{
		{
			Name:        "status",
			Description: "Only include reports in this status (PENDING, IN_PROGRESS, RESOLVED)",
			Required:    false,
		},
	}
}

func (p *ReportTriagePrompt) GetPrompt(ctx context.Context, arguments map[string]interface{}) (*mcp.GetPromptResult, error) {
	var filter report.Filter
	if s, ok := arguments["status"].(string); ok && s != "" {
		filter.Status = report.Status(s)
		if !filter.Status.Valid() {
			return nil, fmt.Errorf("unknown report status %q", s)
		}
	}

	reports, err := p.reports.List(ctx, p.reader, filter)
	if err != nil {
		return nil, err
	}
	if len(reports) == 0 {
		return nil, fmt.Errorf("there are no reports to analyze")
	}

	digests := make([]draft.ReportDigest, 0, len(reports))
	for _, r := range reports {
		digests = append(digests, draft.ReportDigest{Title: r.Title, Description: r.Description})
	}

	raw, err := json.MarshalIndent(reports, "", "  ")
	if err != nil {
		return nil, err
	}

	messages := append(render(draft.ReportAnalysisPrompt(digests)), mcp.PromptMessage{
		Role: "user",
		Content: mcp.PromptContent{
			Type: "resource",
			Resource: &mcp.PromptResource{
				URI:      "smartrt://reports",
				MimeType: "application/json",
				Text:     string(raw),
			},
		},
	})

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Analisis %d laporan warga", len(reports)),
		Messages:    messages,
	}, nil
}
