package tools

import (
	"context"
	"encoding/json"

	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ReportCreator files community reports
type ReportCreator interface {
	Create(ctx context.Context, sess *session.Session, req *report.CreateReportRequest) (*report.Report, error)
}

type CreateReportTool struct {
	sessions SessionResolver
	reports  ReportCreator
}

func NewCreateReportTool(sessions SessionResolver, reports ReportCreator) *CreateReportTool {
	return &CreateReportTool{
		sessions: sessions,
		reports:  reports,
	}
}

func (t *CreateReportTool) GetName() string {
	return "create-report"
}

func (t *CreateReportTool) GetDescription() string {
	return "Files a community report. The reporter must be a registered resident."
}

func (t *CreateReportTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"sessionToken": sessionTokenProperty,
			"reporterName": map[string]string{
				"type":        "string",
				"description": "Name of the reporting resident as registered",
			},
			"title": map[string]string{
				"type":        "string",
				"description": "Short title of the issue",
			},
			"description": map[string]string{
				"type":        "string",
				"description": "What happened and where",
			},
		},
		Required: []string{"sessionToken", "reporterName", "title", "description"},
	}
}

func (t *CreateReportTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		SessionToken string `json:"sessionToken"`
		report.CreateReportRequest
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResult("Error parsing arguments: %v", err), nil
	}

	sess, err := resolve(ctx, t.sessions, args.SessionToken)
	if err != nil {
		return errorResult("Error resolving session: %v", err), nil
	}

	r, err := t.reports.Create(ctx, sess, &args.CreateReportRequest)
	if err != nil {
		return errorResult("Error creating report: %v", err), nil
	}

	return jsonResult(r), nil
}
