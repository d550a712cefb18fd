package tools

import (
	"context"
	"encoding/json"

	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// LetterDrafter drafts a letter and approves it with the generated text
type LetterDrafter interface {
	DraftLetter(ctx context.Context, sess *session.Session, letterID string) (*letter.Request, error)
}

type DraftReferenceLetterTool struct {
	sessions SessionResolver
	drafter  LetterDrafter
}

func NewDraftReferenceLetterTool(sessions SessionResolver, drafter LetterDrafter) *DraftReferenceLetterTool {
	return &DraftReferenceLetterTool{
		sessions: sessions,
		drafter:  drafter,
	}
}

func (t *DraftReferenceLetterTool) GetName() string {
	return "draft-reference-letter"
}

func (t *DraftReferenceLetterTool) GetDescription() string {
	return "Generates the text of a pending reference letter request and approves the letter with it"
}

func (t *DraftReferenceLetterTool) GetInputSchema() mcp.JSONSchema {
	return mcp.JSONSchema{
		Type: "object",
		Properties: map[string]interface{}{
			"sessionToken": sessionTokenProperty,
			"letterId": map[string]string{
				"type":        "string",
				"description": "ID of a letter request in PENDING status",
			},
		},
		Required: []string{"sessionToken", "letterId"},
	}
}

func (t *DraftReferenceLetterTool) Execute(ctx context.Context, arguments json.RawMessage) (*mcp.CallToolResult, error) {
	var args struct {
		SessionToken string `json:"sessionToken"`
		LetterID     string `json:"letterId"`
	}
	if err := json.Unmarshal(arguments, &args); err != nil {
		return errorResult("Error parsing arguments: %v", err), nil
	}

	sess, err := resolve(ctx, t.sessions, args.SessionToken)
	if err != nil {
		return errorResult("Error resolving session: %v", err), nil
	}

	req, err := t.drafter.DraftLetter(ctx, sess, args.LetterID)
	if err != nil {
		return errorResult("Error drafting letter: %v", err), nil
	}

	return jsonResult(req), nil
}
