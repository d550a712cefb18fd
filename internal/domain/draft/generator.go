package draft

import (
	"context"
)

// Prompt is a single request to the text generation service
type Prompt struct {
	// System is the system instruction
	System string
	// Contents is the user turn
	Contents string
	// Temperature is left to the service default when nil
	Temperature *float32
}

// Generator calls an external text generation service
type Generator interface {
	Generate(ctx context.Context, prompt Prompt) (string, error)
}
