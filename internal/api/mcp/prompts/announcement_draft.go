package prompts

import (
	"context"
	"fmt"
	"strings"

	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/mcp"
)

// AnnouncementDraftPrompt renders the announcement instructions used by the draft assistant
// so a client can run them against its own model.
type AnnouncementDraftPrompt struct{}

func (p *AnnouncementDraftPrompt) GetName() string {
	return "announcement-draft"
}

func (p *AnnouncementDraftPrompt) GetDescription() string {
	return "Write a neighborhood announcement in Indonesian for a topic and tone"
}

func (p *AnnouncementDraftPrompt) GetArguments() []mcp.PromptArgument {
	return []mcp.PromptArgument{
		{
			Name:        "topic",
			Description: "What the announcement is about (e.g., 'kerja bakti hari Minggu')",
			Required:    true,
		},
		{
			Name:        "tone",
			Description: "One of formal, casual, urgent. Defaults to formal.",
			Required:    false,
		},
	}
}

func (p *AnnouncementDraftPrompt) GetPrompt(ctx context.Context, arguments map[string]interface{}) (*mcp.GetPromptResult, error) {
	topic, _ := arguments["topic"].(string)
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, fmt.Errorf("topic argument is required")
	}

	tone := draft.ToneFormal
	if t, ok := arguments["tone"].(string); ok && t != "" {
		tone = draft.Tone(t)
	}
	if !tone.Valid() {
		return nil, fmt.Errorf("tone must be one of formal, casual, urgent")
	}

	prompt := draft.AnnouncementPrompt(topic, tone)
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Pengumuman %s: %s", tone.Label(), topic),
		Messages:    render(prompt),
	}, nil
}

// render turns a generator prompt into MCP messages. System instructions come first.
func render(prompt draft.Prompt) []mcp.PromptMessage {
	var messages []mcp.PromptMessage
	if prompt.System != "" {
		messages = append(messages, mcp.PromptMessage{
			Role:    "user",
			Content: mcp.PromptContent{Type: "text", Text: prompt.System},
		})
	}
	return append(messages, mcp.PromptMessage{
		Role:    "user",
		Content: mcp.PromptContent{Type: "text", Text: prompt.Contents},
	})
}
