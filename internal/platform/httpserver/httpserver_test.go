package httpserver_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirosato/smartrt/internal/api/handlers"
	"github.com/hirosato/smartrt/internal/api/middleware"
	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/platform/httpserver"
)

type echoed struct {
	Resource  string            `json:"resource"`
	Path      string            `json:"path"`
	Params    map[string]string `json:"params"`
	Query     map[string]string `json:"query"`
	Body      string            `json:"body"`
	RequestID string            `json:"requestId"`
	Wrapped   bool              `json:"wrapped"`
}

func echo(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return response.OK(echoed{
		Resource:  request.Resource,
		Path:      request.Path,
		Params:    request.PathParameters,
		Query:     request.QueryStringParameters,
		Body:      request.Body,
		RequestID: request.RequestContext.RequestID,
		Wrapped:   request.Headers["X-Wrapped"] == "yes",
	}, request.RequestContext.RequestID), nil
}

func failing(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return events.APIGatewayProxyResponse{}, errors.NewPermissionDeniedError("admins only")
}

// markWrapped tags requests that went through the wrapper
func markWrapped(h middleware.APIGatewayHandler) middleware.APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		request.Headers["X-Wrapped"] = "yes"
		return h(ctx, logger, request)
	}
}

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	routes := []handlers.Route{
		{Method: http.MethodGet, Resource: "/transactions/summary", Handler: echo},
		{Method: http.MethodGet, Resource: "/transactions/{id}", Handler: echo},
		{Method: http.MethodPost, Resource: "/residents", Handler: echo},
		{Method: http.MethodDelete, Resource: "/residents/{id}", Handler: failing},
	}
	extra := map[string]http.Handler{
		"/metrics": http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, "smartrt_up 1\n")
		}),
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(httpserver.NewRouter(routes, markWrapped, logger, zap.NewNop(), extra))
	t.Cleanup(srv.Close)
	return srv
}

func getEcho(t *testing.T, resp *http.Response) echoed {
	t.Helper()
	defer resp.Body.Close()
	var env struct {
		Data echoed `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	return env.Data
}

func TestRouter_PathParameters(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/transactions/t42?type=INCOME")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	got := getEcho(t, resp)
	assert.Equal(t, "/transactions/{id}", got.Resource)
	assert.Equal(t, "/transactions/t42", got.Path)
	assert.Equal(t, map[string]string{"id": "t42"}, got.Params)
	assert.Equal(t, "INCOME", got.Query["type"])
	assert.NotEmpty(t, got.RequestID)
	assert.True(t, got.Wrapped)
}

func TestRouter_LiteralSegmentWins(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/transactions/summary")
	require.NoError(t, err)
	got := getEcho(t, resp)
	assert.Equal(t, "/transactions/summary", got.Resource)
	assert.Empty(t, got.Params)
}

func TestRouter_Body(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Post(srv.URL+"/residents", "application/json", strings.NewReader(`{"name":"Budi"}`))
	require.NoError(t, err)
	assert.Equal(t, `{"name":"Budi"}`, getEcho(t, resp).Body)
}

func TestRouter_HandlerError(t *testing.T) {
	srv := newServer(t)

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/residents/r1", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	var env response.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	assert.Equal(t, errors.CodePermissionDenied, env.Error)
	assert.Equal(t, "admins only", env.ErrorDescription.Message)
}

func TestRouter_NotFoundAndPreflight(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/nothing")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))

	req, err := http.NewRequest(http.MethodOptions, srv.URL+"/residents", nil)
	require.NoError(t, err)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestRouter_ExtraHandlers(t *testing.T) {
	srv := newServer(t)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "smartrt_up 1\n", string(body))
}
