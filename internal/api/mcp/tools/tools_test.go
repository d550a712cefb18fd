package tools_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hirosato/smartrt/internal/api/mcp/tools"
	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

var admin = &session.Session{ID: "admin", Role: session.RoleAdmin, ProfileName: "Pak RT Ahmad"}

type tokenSessions map[string]*session.Session

func (m tokenSessions) Resolve(ctx context.Context, token string) (*session.Session, error) {
	sess, ok := m[token]
	if !ok {
		return nil, errors.NewAuthenticationError("invalid or expired token")
	}
	return sess, nil
}

var sessions = tokenSessions{"admin-token": admin}

type fakeAssist struct {
	topic string
	tone  draft.Tone
}

func (f *fakeAssist) DraftAnnouncement(ctx context.Context, sess *session.Session, topic string, tone draft.Tone) (string, error) {
	if err := sess.Require(session.EntityAnnouncement, session.ActionDraft); err != nil {
		return "", err
	}
	f.topic, f.tone = topic, tone
	return "Draf pengumuman", nil
}

func (f *fakeAssist) DraftLetter(ctx context.Context, sess *session.Session, letterID string) (*letter.Request, error) {
	if letterID != "L1" {
		return nil, errors.NewNotFoundError("letter not found")
	}
	return &letter.Request{ID: letterID, Status: letter.StatusApproved, Content: "Surat"}, nil
}

func (f *fakeAssist) AnalyzeReports(ctx context.Context, sess *session.Session) (string, error) {
	return "", errors.NewValidationError("there are no reports to analyze")
}

type fakeReports struct {
	created *report.CreateReportRequest
}

func (f *fakeReports) Create(ctx context.Context, sess *session.Session, req *report.CreateReportRequest) (*report.Report, error) {
	f.created = req
	return &report.Report{ID: "R1", ReporterName: req.ReporterName, Title: req.Title, Status: report.StatusPending}, nil
}

func args(t *testing.T, v map[string]interface{}) json.RawMessage {
	t.Helper()
	raw, err := json.Marshal(v)
	require.NoError(t, err)
	return raw
}

func TestDraftAnnouncementTool(t *testing.T) {
	assist := &fakeAssist{}
	tool := tools.NewDraftAnnouncementTool(sessions, assist)
	assert.Equal(t, "draft-announcement", tool.GetName())
	assert.Equal(t, []string{"sessionToken", "topic"}, tool.GetInputSchema().Required)

	result, err := tool.Execute(context.Background(), args(t, map[string]interface{}{
		"sessionToken": "admin-token",
		"topic":        "kerja bakti",
		"tone":         "urgent",
	}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Equal(t, "Draf pengumuman", result.Content[0].Text)
	assert.Equal(t, "kerja bakti", assist.topic)
	assert.Equal(t, draft.ToneUrgent, assist.tone)
}

func TestToolsReportErrorsAsResults(t *testing.T) {
	assist := &fakeAssist{}

	tests := []struct {
		name     string
		execute  func() (string, bool)
		contains string
	}{
		{
			name: "missing token",
			execute: func() (string, bool) {
				r, err := tools.NewDraftAnnouncementTool(sessions, assist).Execute(context.Background(), args(t, map[string]interface{}{"topic": "x"}))
				require.NoError(t, err)
				return r.Content[0].Text, r.IsError
			},
			contains: "sessionToken is required",
		},
		{
			name: "unknown token",
			execute: func() (string, bool) {
				r, err := tools.NewAnalyzeReportsTool(sessions, assist).Execute(context.Background(), args(t, map[string]interface{}{"sessionToken": "nope"}))
				require.NoError(t, err)
				return r.Content[0].Text, r.IsError
			},
			contains: "invalid or expired token",
		},
		{
			name: "service error",
			execute: func() (string, bool) {
				r, err := tools.NewAnalyzeReportsTool(sessions, assist).Execute(context.Background(), args(t, map[string]interface{}{"sessionToken": "admin-token"}))
				require.NoError(t, err)
				return r.Content[0].Text, r.IsError
			},
			contains: "there are no reports to analyze",
		},
		{
			name: "bad arguments",
			execute: func() (string, bool) {
				r, err := tools.NewDraftReferenceLetterTool(sessions, assist).Execute(context.Background(), json.RawMessage(`[1,2]`))
				require.NoError(t, err)
				return r.Content[0].Text, r.IsError
			},
			contains: "Error parsing arguments",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			text, isError := tt.execute()
			assert.True(t, isError)
			assert.Contains(t, text, tt.contains)
		})
	}
}

func TestDraftReferenceLetterTool(t *testing.T) {
	tool := tools.NewDraftReferenceLetterTool(sessions, &fakeAssist{})

	result, err := tool.Execute(context.Background(), args(t, map[string]interface{}{
		"sessionToken": "admin-token",
		"letterId":     "L1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)
	assert.Equal(t, "application/json", result.Content[0].MimeType)

	var got letter.Request
	require.NoError(t, json.Unmarshal([]byte(result.Content[0].Text), &got))
	assert.Equal(t, letter.StatusApproved, got.Status)
	assert.Equal(t, "Surat", got.Content)
}

func TestCreateReportTool(t *testing.T) {
	reports := &fakeReports{}
	tool := tools.NewCreateReportTool(sessions, reports)

	result, err := tool.Execute(context.Background(), args(t, map[string]interface{}{
		"sessionToken": "admin-token",
		"reporterName": "Budi Santoso",
		"title":        "Lampu jalan mati",
		"description":  "Depan Blok A1",
	}))
	require.NoError(t, err)
	require.False(t, result.IsError)

	require.NotNil(t, reports.created)
	assert.Equal(t, "Budi Santoso", reports.created.ReporterName)
	assert.Equal(t, "Depan Blok A1", reports.created.Description)
	assert.Contains(t, result.Content[0].Text, `"id": "R1"`)
}
