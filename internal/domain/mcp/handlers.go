package mcp

import (
	"context"
	"encoding/json"
	"sort"
)

// ToolHandler defines the interface for tool handlers
type ToolHandler interface {
	GetName() string
	GetDescription() string
	GetInputSchema() JSONSchema
	Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error)
}

// ResourceHandler defines the interface for resource handlers
type ResourceHandler interface {
	GetURI() string
	GetName() string
	GetDescription() string
	GetMimeType() string
	Read(ctx context.Context) (*ReadResourceResult, error)
}

// PromptHandler defines the interface for prompt templates
type PromptHandler interface {
	GetName() string
	GetDescription() string
	GetArguments() []PromptArgument
	GetPrompt(ctx context.Context, arguments map[string]interface{}) (*GetPromptResult, error)
}

// HandlerRegistry manages tool, resource and prompt handlers
type HandlerRegistry struct {
	tools     map[string]ToolHandler
	resources map[string]ResourceHandler
	prompts   map[string]PromptHandler
}

// NewHandlerRegistry creates a new handler registry
func NewHandlerRegistry() *HandlerRegistry {
	return &HandlerRegistry{
		tools:     make(map[string]ToolHandler),
		resources: make(map[string]ResourceHandler),
		prompts:   make(map[string]PromptHandler),
	}
}

// RegisterTool registers a tool handler
func (r *HandlerRegistry) RegisterTool(handler ToolHandler) {
	r.tools[handler.GetName()] = handler
}

// RegisterResource registers a resource handler
func (r *HandlerRegistry) RegisterResource(handler ResourceHandler) {
	r.resources[handler.GetURI()] = handler
}

// RegisterPrompt registers a prompt handler
func (r *HandlerRegistry) RegisterPrompt(handler PromptHandler) {
	r.prompts[handler.GetName()] = handler
}

// GetTool retrieves a tool handler by name
func (r *HandlerRegistry) GetTool(name string) (ToolHandler, bool) {
	handler, ok := r.tools[name]
	return handler, ok
}

// GetResource retrieves a resource handler by URI
func (r *HandlerRegistry) GetResource(uri string) (ResourceHandler, bool) {
	handler, ok := r.resources[uri]
	return handler, ok
}

// GetPrompt retrieves a prompt handler by name
func (r *HandlerRegistry) GetPrompt(name string) (PromptHandler, bool) {
	handler, ok := r.prompts[name]
	return handler, ok
}

// ListTools returns all registered tools sorted by name
func (r *HandlerRegistry) ListTools() []Tool {
	tools := make([]Tool, 0, len(r.tools))
	for _, handler := range r.tools {
		tools = append(tools, Tool{
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			InputSchema: handler.GetInputSchema(),
		})
	}
	sort.Slice(tools, func(i, j int) bool { return tools[i].Name < tools[j].Name })
	return tools
}

// ListResources returns all registered resources sorted by URI
func (r *HandlerRegistry) ListResources() []Resource {
	resources := make([]Resource, 0, len(r.resources))
	for _, handler := range r.resources {
		resources = append(resources, Resource{
			URI:         handler.GetURI(),
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			MimeType:    handler.GetMimeType(),
		})
	}
	sort.Slice(resources, func(i, j int) bool { return resources[i].URI < resources[j].URI })
	return resources
}

// ListPrompts returns all registered prompts sorted by name
func (r *HandlerRegistry) ListPrompts() []Prompt {
	prompts := make([]Prompt, 0, len(r.prompts))
	for _, handler := range r.prompts {
		prompts = append(prompts, Prompt{
			Name:        handler.GetName(),
			Description: handler.GetDescription(),
			Arguments:   handler.GetArguments(),
		})
	}
	sort.Slice(prompts, func(i, j int) bool { return prompts[i].Name < prompts[j].Name })
	return prompts
}
