package tools

import (
	"context"
	"encoding/json"

	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// AnnouncementDrafter drafts announcement text
type AnnouncementDrafter interface {
	DraftAnnouncement(ctx context.Context, sess *session.Session, topic string, tone draft.Tone) (string, error)
}

type DraftAnnouncementTool struct {
	sessions SessionResolver
	drafter  AnnouncementDrafter
}

func NewDraftAnnouncementTool(sessions SessionResolver, drafter AnnouncementDrafter) *DraftAnnouncementTool {
	return &DraftAnnouncementTool{
		sessions: sessions,
		drafter:  drafter,
	}
}

func (t *DraftAnnouncementTool) GetName() string {
	return "draft-announcement"
}

func (t *DraftAnnouncementTool) GetDescription() string {
	return "Drafts a neighborhood announcement in Indonesian. The draft is returned, not published."
}

func (t *DraftAnnouncementTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"sessionToken": sessionTokenProperty,
			"topic": map[string]string{
				"type":        "string",
				"description": "What the announcement is about, e.g. 'kerja bakti hari Minggu'",
			},
			"tone": map[string]interface{}{
				"type":        "string",
				"description": "Writing tone",
				"enum":        []string{string(draft.ToneFormal), string(draft.ToneCasual), string(draft.ToneUrgent)},
				"default":     string(draft.ToneFormal),
			},
		},
		Required: []string{"sessionToken", "topic"},
	}
}

func (t *DraftAnnouncementTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		SessionToken string `json:"sessionToken"`
		Topic        string `json:"topic"`
		Tone         string `json:"tone,omitempty"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResult("Error parsing arguments: %v", err), nil
	}

	sess, err := resolve(ctx, t.sessions, args.SessionToken)
	if err != nil {
		return errorResult("Error resolving session: %v", err), nil
	}

	text, err := t.drafter.DraftAnnouncement(ctx, sess, args.Topic, draft.Tone(args.Tone))
	if err != nil {
		return errorResult("Error drafting announcement: %v", err), nil
	}

	return textResult(text), nil
}
