package tools

import (
	"context"
	"encoding/json"

	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ReportAnalyzer summarizes the current reports
type ReportAnalyzer interface {
	AnalyzeReports(ctx context.Context, sess *session.Session) (string, error)
}

type AnalyzeReportsTool struct {
	sessions SessionResolver
	analyzer ReportAnalyzer
}

func NewAnalyzeReportsTool(sessions SessionResolver, analyzer ReportAnalyzer) *AnalyzeReportsTool {
	return &AnalyzeReportsTool{
		sessions: sessions,
		analyzer: analyzer,
	}
}

func (t *AnalyzeReportsTool) GetName() string {
	return "analyze-reports"
}

func (t *AnalyzeReportsTool) GetDescription() string {
	return "Summarizes all community reports and suggests follow-up actions for the administrator"
}

func (t *AnalyzeReportsTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"sessionToken": sessionTokenProperty,
		},
		Required: []string{"sessionToken"},
	}
}

func (t *AnalyzeReportsTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		SessionToken string `json:"sessionToken"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResult("Error parsing arguments: %v", err), nil
	}

	sess, err := resolve(ctx, t.sessions, args.SessionToken)
	if err != nil {
		return errorResult("Error resolving session: %v", err), nil
	}

	text, err := t.analyzer.AnalyzeReports(ctx, sess)
	if err != nil {
		return errorResult("Error analyzing reports: %v", err), nil
	}

	return textResult(text), nil
}
