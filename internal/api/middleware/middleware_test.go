package middleware

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hirosato/smartrt/internal/common/utils"
	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
)

var signingKey = []byte("middleware-test-key")

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func echoSession(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	body := "anonymous"
	if sess, found := GetSession(ctx); found {
		body = sess.ID
	}
	return events.APIGatewayProxyResponse{StatusCode: http.StatusOK, Body: body}, nil
}

type sessionMap map[string]*session.Session

func (m sessionMap) Get(ctx context.Context, sessionID string) (*session.Session, error) {
	sess, found := m[sessionID]
	if !found {
		return nil, errors.NewNotFoundError("session not found")
	}
	return sess, nil
}

type requestCounter struct {
	got []string
}

func (c *requestCounter) IncrementHTTPRequest(method, route, status string) {
	c.got = append(c.got, method+" "+route+" "+status)
}

func TestMaskSensitiveBody(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"passphrase", `{"passphrase":"rahasia"}`, `{"passphrase":"***"}`},
		{"nested token", `{"data":{"token":"abc","session":{"id":"s1"}}}`, `{"data":{"session":{"id":"s1"},"token":"***"}}`},
		{"case insensitive", `{"SessionToken":"abc","topic":"rapat"}`, `{"SessionToken":"***","topic":"rapat"}`},
		{"array", `[{"token":"a"},{"name":"b"}]`, `[{"token":"***"},{"name":"b"}]`},
		{"not json", "plain text", "plain text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, maskSensitiveBody(tt.body))
		})
	}
}

func TestMaskSensitiveHeaders(t *testing.T) {
	headers := map[string]string{"authorization": "Bearer abc", "Content-Type": "application/json"}
	masked := maskSensitiveHeaders(headers)

	assert.Equal(t, "***", masked["authorization"])
	assert.Equal(t, "application/json", masked["Content-Type"])
	assert.Equal(t, "Bearer abc", headers["authorization"])
}

func TestRecoveryMiddleware(t *testing.T) {
	recovery := NewRecoveryMiddleware()

	panicking := recovery.Handle(func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		panic("boom")
	})
	resp, err := panicking(context.Background(), discard(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	failing := recovery.Handle(func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return events.APIGatewayProxyResponse{}, errors.NewValidationError("name is required").WithDetail("field", "name")
	})
	resp, err = failing(context.Background(), discard(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body struct {
		Error            string `json:"error"`
		ErrorDescription struct {
			Message string                 `json:"message"`
			Details map[string]interface{} `json:"details"`
		} `json:"error_description"`
	}
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Equal(t, errors.CodeValidation, body.Error)
	assert.Equal(t, "name is required", body.ErrorDescription.Message)
	assert.Equal(t, "name", body.ErrorDescription.Details["field"])
}

func TestSessionMiddleware(t *testing.T) {
	sessions := sessionMap{"s1": {ID: "s1", Role: session.RoleResident}}
	m := NewSessionMiddleware(sessions, signingKey, zap.NewNop())
	h := m.Handle(echoSession)
	ctx := context.Background()

	valid, err := utils.IssueSessionToken("s1", signingKey, time.Hour, time.Now())
	require.NoError(t, err)
	orphan, err := utils.IssueSessionToken("gone", signingKey, time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := utils.IssueSessionToken("s1", signingKey, time.Hour, time.Now().Add(-2*time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		resource   string
		auth       string
		wantStatus int
		wantBody   string
	}{
		{"public start", http.MethodPost, "/session", "", http.StatusOK, "anonymous"},
		{"public health", http.MethodGet, "/health", "", http.StatusOK, "anonymous"},
		{"preflight", http.MethodOptions, "/residents", "", http.StatusOK, "anonymous"},
		{"missing token", http.MethodGet, "/residents", "", http.StatusUnauthorized, ""},
		{"malformed header", http.MethodGet, "/residents", "Token " + valid, http.StatusUnauthorized, ""},
		{"valid", http.MethodGet, "/residents", "Bearer " + valid, http.StatusOK, "s1"},
		{"unknown session", http.MethodGet, "/residents", "Bearer " + orphan, http.StatusUnauthorized, ""},
		{"expired", http.MethodGet, "/residents", "Bearer " + expired, http.StatusUnauthorized, ""},
		{"session read needs token", http.MethodGet, "/session", "", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := events.APIGatewayProxyRequest{
				HTTPMethod: tt.method,
				Resource:   tt.resource,
				Headers:    map[string]string{},
			}
			if tt.auth != "" {
				request.Headers["authorization"] = tt.auth
			}

			resp, err := h(ctx, discard(), request)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, resp.Body)
			}
		})
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next APIGatewayHandler) APIGatewayHandler {
			return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
				order = append(order, name)
				return next(ctx, logger, request)
			}
		}
	}

	_, err := Chain(echoSession, mark("outer"), mark("inner"))(context.Background(), discard(), events.APIGatewayProxyRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"outer", "inner"}, order)
}

func TestMetricsMiddleware(t *testing.T) {
	counter := &requestCounter{}
	h := NewMetricsMiddleware(counter).Handle(echoSession)

	_, err := h(context.Background(), discard(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Resource: "/residents/{id}"})
	require.NoError(t, err)
	assert.Equal(t, []string{"GET /residents/{id} 200"}, counter.got)
}
