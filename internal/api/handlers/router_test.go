package handlers

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoResource(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: request.Resource + "|" + request.PathParameters["id"]}, nil
}

func testRouter() *Router {
	return NewRouter([]Route{
		{http.MethodGet, "/transactions", echoResource},
		{http.MethodGet, "/transactions/summary", echoResource},
		{http.MethodGet, "/transactions/{id}", echoResource},
		{http.MethodPut, "/reports/{id}/status", echoResource},
	})
}

func TestRouter_Match(t *testing.T) {
	r := testRouter()

	tests := []struct {
		name       string
		method     string
		resource   string
		path       string
		wantRoute  string
		wantParams map[string]string
		wantOK     bool
	}{
		{"exact resource", http.MethodGet, "/transactions/{id}", "/transactions/t1", "/transactions/{id}", nil, true},
		{"literal before parameter", http.MethodGet, "/{proxy+}", "/transactions/summary", "/transactions/summary", map[string]string{}, true},
		{"path parameter", http.MethodGet, "/{proxy+}", "/transactions/t1", "/transactions/{id}", map[string]string{"id": "t1"}, true},
		{"nested parameter", http.MethodPut, "", "/reports/r9/status/", "/reports/{id}/status", map[string]string{"id": "r9"}, true},
		{"wrong method", http.MethodDelete, "", "/transactions/t1", "", nil, false},
		{"too many segments", http.MethodGet, "", "/transactions/t1/extra", "", nil, false},
		{"unknown", http.MethodGet, "", "/nothing", "", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			route, params, ok := r.Match(tt.method, tt.resource, tt.path)
			assert.Equal(t, tt.wantOK, ok)
			if !tt.wantOK {
				return
			}
			assert.Equal(t, tt.wantRoute, route.Resource)
			assert.Equal(t, tt.wantParams, params)
		})
	}
}

func TestRouter_Handle(t *testing.T) {
	r := testRouter()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	resp, err := r.Handle(context.Background(), logger, events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Resource:   "/{proxy+}",
		Path:       "/transactions/t1",
	})
	require.NoError(t, err)
	assert.Equal(t, "/transactions/{id}|t1", resp.Body)

	resp, err = r.Handle(context.Background(), logger, events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions, Path: "/anything"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	_, err = r.Handle(context.Background(), logger, events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/nothing"})
	assert.Error(t, err)
}

func TestRoutes_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for _, route := range Routes(&Handlers{}) {
		key := route.Method + " " + route.Resource
		assert.False(t, seen[key], "duplicate route %s", key)
		seen[key] = true
	}
}
