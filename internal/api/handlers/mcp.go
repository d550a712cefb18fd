package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/domain/mcp"
)

// MCPHandler serves MCP JSON-RPC requests posted to a single endpoint
type MCPHandler struct {
	mcpService *mcp.Service
	verbose    bool
}

// NewMCPHandler creates a new MCP request handler. Verbose logs request and response bodies.
func NewMCPHandler(mcpService *mcp.Service, verbose bool) *MCPHandler {
	return &MCPHandler{
		mcpService: mcpService,
		verbose:    verbose,
	}
}

// Handle processes one JSON-RPC request
func (h *MCPHandler) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	// Handle CORS preflight
	if request.HTTPMethod == http.MethodOptions {
		return events.APIGatewayProxyResponse{
			StatusCode: http.StatusOK,
			Headers:    mcpHeaders(),
		}, nil
	}

	if request.HTTPMethod != http.MethodPost {
		return jsonRPCMethodNotAllowed(), nil
	}

	if h.verbose {
		logger.Info("MCP request details",
			"path", request.Path,
			"body", request.Body,
			"requestId", request.RequestContext.RequestID,
			"sourceIP", request.RequestContext.Identity.SourceIP,
		)
	}

	var jsonRPCRequest mcp.JSONRPCRequest
	if err := json.Unmarshal([]byte(request.Body), &jsonRPCRequest); err != nil {
		logger.Error("Failed to parse JSON-RPC request", "error", err)
		return jsonRPCErrorResponse(mcp.ParseError, "Parse error", err.Error()), nil
	}

	httpResponse := h.mcpService.HandleRequest(ctx, jsonRPCRequest)

	responseBody, err := json.Marshal(httpResponse.JSONRPCResponse)
	if err != nil {
		logger.Error("Failed to marshal JSON-RPC response", "error", err)
		return jsonRPCErrorResponse(mcp.InternalError, "Internal error", "Failed to marshal response"), nil
	}

	if h.verbose {
		logger.Info("MCP response details", "response", string(responseBody))
	}

	return events.APIGatewayProxyResponse{
		StatusCode: httpResponse.StatusCode,
		Headers:    mcpHeaders(),
		Body:       string(responseBody),
	}, nil
}

func mcpHeaders() map[string]string {
	return map[string]string{
		"Content-Type":                 "application/json",
		"Access-Control-Allow-Origin":  "*",
		"Access-Control-Allow-Methods": "POST, OPTIONS",
		"Access-Control-Allow-Headers": "Content-Type, Authorization",
	}
}

func jsonRPCErrorResponse(code int, message string, data string) events.APIGatewayProxyResponse {
	body, _ := json.Marshal(mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &mcp.JSONRPCError{
			Code:    code,
			Message: message,
			Data:    data,
		},
	})
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusOK, // JSON-RPC errors still return 200
		Headers:    mcpHeaders(),
		Body:       string(body),
	}
}

func jsonRPCMethodNotAllowed() events.APIGatewayProxyResponse {
	body, _ := json.Marshal(mcp.JSONRPCResponse{
		JSONRPC: "2.0",
		Error: &mcp.JSONRPCError{
			Code:    mcp.MethodNotAllowed,
			Message: "Method Not Allowed",
		},
	})
	headers := mcpHeaders()
	headers["Allow"] = http.MethodPost
	return events.APIGatewayProxyResponse{
		StatusCode: http.StatusMethodNotAllowed,
		Headers:    headers,
		Body:       string(body),
	}
}
