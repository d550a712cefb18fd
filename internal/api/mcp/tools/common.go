package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// SessionResolver turns a session token into the caller's session
type SessionResolver interface {
	Resolve(ctx context.Context, token string) (*session.Session, error)
}

var sessionTokenProperty = map[string]string{
	"type":        "string",
	"description": "Session token returned by POST /session. Drafting requires an elevated session.",
}

func resolve(ctx context.Context, sessions SessionResolver, token string) (*session.Session, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, fmt.Errorf("sessionToken is required")
	}
	return sessions.Resolve(ctx, token)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.ToolResultContent{
			{
				Type: "text",
				Text: text,
			},
		},
	}
}

func errorResult(format string, args ...interface{}) *mcp.CallToolResult {
	result := textResult(fmt.Sprintf(format, args...))
	result.IsError = true
	return result
}

func jsonResult(v interface{}) *mcp.CallToolResult {
	responseData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errorResult("Error formatting response: %v", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.ToolResultContent{
			{
				Type:     "text",
				Text:     string(responseData),
				MimeType: "application/json",
			},
		},
	}
}
