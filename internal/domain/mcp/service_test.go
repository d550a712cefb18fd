package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockTool struct {
	name        string
	description string
	schema      JSONSchema
	result      *CallToolResult
	err         error
}

func (m *mockTool) GetName() string            { return m.name }
func (m *mockTool) GetDescription() string     { return m.description }
func (m *mockTool) GetInputSchema() JSONSchema { return m.schema }
func (m *mockTool) Execute(ctx context.Context, arguments json.RawMessage) (*CallToolResult, error) {
	return m.result, m.err
}

type mockResource struct {
	uri         string
	name        string
	description string
	mimeType    string
	result      *ReadResourceResult
	err         error
}

func (m *mockResource) GetURI() string         { return m.uri }
func (m *mockResource) GetName() string        { return m.name }
func (m *mockResource) GetDescription() string { return m.description }
func (m *mockResource) GetMimeType() string    { return m.mimeType }
func (m *mockResource) Read(ctx context.Context) (*ReadResourceResult, error) {
	return m.result, m.err
}

type mockPrompt struct {
	name string
	args []PromptArgument
	got  map[string]interface{}
}

func (m *mockPrompt) GetName() string                { return m.name }
func (m *mockPrompt) GetDescription() string         { return "test prompt" }
func (m *mockPrompt) GetArguments() []PromptArgument { return m.args }
func (m *mockPrompt) GetPrompt(ctx context.Context, arguments map[string]interface{}) (*GetPromptResult, error) {
	m.got = arguments
	return &GetPromptResult{
		Messages: []PromptMessage{
			{Role: "user", Content: PromptContent{Type: "text", Text: "hello"}},
		},
	}, nil
}

func newTestService(registry *HandlerRegistry) *Service {
	return NewService(slog.New(slog.NewTextHandler(io.Discard, nil)), registry)
}

func call(t *testing.T, service *Service, method string, params interface{}) HTTPResponse {
	t.Helper()
	request := JSONRPCRequest{
		JSONRPC: "2.0",
		ID:      json.RawMessage(`1`),
		Method:  method,
	}
	if params != nil {
		raw, err := json.Marshal(params)
		require.NoError(t, err)
		request.Params = raw
	}
	return service.HandleRequest(context.Background(), request)
}

func decodeResult(t *testing.T, httpResponse HTTPResponse, out interface{}) {
	t.Helper()
	require.Nil(t, httpResponse.JSONRPCResponse.Error)
	raw, err := json.Marshal(httpResponse.JSONRPCResponse.Result)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func TestService_HandleInitialize(t *testing.T) {
	service := newTestService(NewHandlerRegistry())

	httpResponse := call(t, service, "initialize", InitializeParams{
		ProtocolVersion: "2024-11-05",
		ClientInfo:      ClientInfo{Name: "test-client", Version: "1.0.0"},
	})
	assert.Equal(t, 200, httpResponse.StatusCode)

	var result InitializeResult
	decodeResult(t, httpResponse, &result)
	assert.Equal(t, "2024-11-05", result.ProtocolVersion)
	assert.Equal(t, "smartrt-mcp-server", result.ServerInfo.Name)
	assert.True(t, result.Capabilities.Prompts.ListChanged)
	assert.NotEmpty(t, result.Instructions)
}

func TestService_InitializedNotification(t *testing.T) {
	service := newTestService(NewHandlerRegistry())

	httpResponse := call(t, service, "notifications/initialized", nil)
	assert.Equal(t, 202, httpResponse.StatusCode)
}

func TestService_HandleListResources(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterResource(&mockResource{uri: "test://b", name: "B", mimeType: "application/json"})
	registry.RegisterResource(&mockResource{uri: "test://a", name: "A", mimeType: "text/plain"})
	service := newTestService(registry)

	var result ListResourcesResult
	decodeResult(t, call(t, service, "resources/list", nil), &result)

	require.Len(t, result.Resources, 2)
	assert.Equal(t, "test://a", result.Resources[0].URI)
	assert.Equal(t, "test://b", result.Resources[1].URI)
}

func TestService_ReadResource(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterResource(&mockResource{
		uri: "test://a",
		result: &ReadResourceResult{
			Contents: []ResourceContent{{URI: "test://a", Text: "content"}},
		},
	})
	registry.RegisterResource(&mockResource{uri: "test://broken", err: errors.New("boom")})
	service := newTestService(registry)

	var result ReadResourceResult
	decodeResult(t, call(t, service, "resources/read", ReadResourceParams{URI: "test://a"}), &result)
	require.Len(t, result.Contents, 1)
	assert.Equal(t, "content", result.Contents[0].Text)

	missing := call(t, service, "resources/read", ReadResourceParams{URI: "test://missing"})
	require.NotNil(t, missing.JSONRPCResponse.Error)
	assert.Equal(t, InvalidParams, missing.JSONRPCResponse.Error.Code)

	broken := call(t, service, "resources/read", ReadResourceParams{URI: "test://broken"})
	require.NotNil(t, broken.JSONRPCResponse.Error)
	assert.Equal(t, InternalError, broken.JSONRPCResponse.Error.Code)
}

func TestService_HandleListTools(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{name: "tool_b", schema: JSONSchema{Type: "object", Required: []string{"param2"}}})
	registry.RegisterTool(&mockTool{name: "tool_a", schema: JSONSchema{Type: "object", Required: []string{"param1"}}})
	service := newTestService(registry)

	var result ListToolsResult
	decodeResult(t, call(t, service, "tools/list", nil), &result)

	require.Len(t, result.Tools, 2)
	assert.Equal(t, "tool_a", result.Tools[0].Name)
	assert.Equal(t, []string{"param1"}, result.Tools[0].InputSchema.Required)
}

func TestService_CallTool(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{
		name:   "test_tool",
		schema: JSONSchema{Type: "object"},
		result: &CallToolResult{
			Content: []ToolResultContent{{Type: "text", Text: "Tool executed successfully"}},
		},
	})
	service := newTestService(registry)

	var result CallToolResult
	decodeResult(t, call(t, service, "tools/call", CallToolParams{
		Name:      "test_tool",
		Arguments: json.RawMessage(`{"param": "value"}`),
	}), &result)

	require.Len(t, result.Content, 1)
	assert.Equal(t, "text", result.Content[0].Type)
	assert.Equal(t, "Tool executed successfully", result.Content[0].Text)
	assert.False(t, result.IsError)
}

func TestService_CallToolFailureIsToolResult(t *testing.T) {
	registry := NewHandlerRegistry()
	registry.RegisterTool(&mockTool{name: "failing", err: errors.New("not allowed")})
	service := newTestService(registry)

	var result CallToolResult
	decodeResult(t, call(t, service, "tools/call", CallToolParams{Name: "failing"}), &result)

	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "not allowed", result.Content[0].Text)
}

func TestService_Prompts(t *testing.T) {
	prompt := &mockPrompt{
		name: "greeting",
		args: []PromptArgument{{Name: "topic", Required: true}},
	}
	registry := NewHandlerRegistry()
	registry.RegisterPrompt(prompt)
	service := newTestService(registry)

	var list ListPromptsResult
	decodeResult(t, call(t, service, "prompts/list", nil), &list)
	require.Len(t, list.Prompts, 1)
	assert.Equal(t, "greeting", list.Prompts[0].Name)
	assert.True(t, list.Prompts[0].Arguments[0].Required)

	var got GetPromptResult
	decodeResult(t, call(t, service, "prompts/get", GetPromptParams{
		Name:      "greeting",
		Arguments: map[string]interface{}{"topic": "kerja bakti"},
	}), &got)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "hello", got.Messages[0].Content.Text)
	assert.Equal(t, "kerja bakti", prompt.got["topic"])

	missingArg := call(t, service, "prompts/get", GetPromptParams{Name: "greeting"})
	require.NotNil(t, missingArg.JSONRPCResponse.Error)
	assert.Equal(t, InvalidParams, missingArg.JSONRPCResponse.Error.Code)

	unknown := call(t, service, "prompts/get", GetPromptParams{Name: "nope"})
	require.NotNil(t, unknown.JSONRPCResponse.Error)
}

func TestService_UnknownMethod(t *testing.T) {
	service := newTestService(NewHandlerRegistry())

	httpResponse := call(t, service, "sampling/createMessage", nil)
	require.NotNil(t, httpResponse.JSONRPCResponse.Error)
	assert.Equal(t, MethodNotFound, httpResponse.JSONRPCResponse.Error.Code)
	assert.Equal(t, 200, httpResponse.StatusCode)
}
