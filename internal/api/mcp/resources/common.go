package resources

import (
	"encoding/json"
	"fmt"

	"github.com/hirosato/smartrt/internal/domain/mcp"
)

const mimeJSON = "application/json"

func jsonContents(uri string, v interface{}) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []mcp.ResourceContent{
			{
				URI:      uri,
				MimeType: mimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
