package middleware

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"go.uber.org/zap"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/common/utils"
	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// SessionContextKey is the key for the session in the request context
type SessionContextKey string

// SessionContextKeyValue is the context key for the active session
const SessionContextKeyValue SessionContextKey = "session"

// SessionResolver loads a session by ID
type SessionResolver interface {
	Get(ctx context.Context, sessionID string) (*session.Session, error)
}

// SessionMiddleware resolves the bearer token into the caller's session
type SessionMiddleware struct {
	sessions   SessionResolver
	signingKey []byte
	log        *zap.Logger
}

// NewSessionMiddleware creates a new session middleware
func NewSessionMiddleware(sessions SessionResolver, signingKey []byte, log *zap.Logger) SessionMiddleware {
	return SessionMiddleware{
		sessions:   sessions,
		signingKey: signingKey,
		log:        log,
	}
}

// Handle handles the session middleware
func (m SessionMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		if isPublicPath(request.Resource, request.HTTPMethod) {
			return next(ctx, logger, request)
		}

		requestID := request.RequestContext.RequestID

		token, err := utils.ExtractBearerToken(HeaderValue(request.Headers, "Authorization"))
		if err != nil {
			m.log.Info("Missing session token", zap.String("requestId", requestID), zap.String("path", request.Path))
			return response.AuthenticationError(err.Error(), requestID), nil
		}

		sess, err := m.Resolve(ctx, token)
		if err != nil {
			return response.FromError(err, requestID), nil
		}

		ctx = WithSession(ctx, sess)
		return next(ctx, logger.With("sessionId", sess.ID), request)
	}
}

// Resolve validates a session token and loads its session
func (m SessionMiddleware) Resolve(ctx context.Context, token string) (*session.Session, error) {
	claims, err := utils.ParseSessionToken(token, m.signingKey)
	if err != nil {
		m.log.Warn("Session token validation failed", zap.Error(err))
		return nil, errors.NewAuthenticationError("invalid or expired token")
	}

	sess, err := m.sessions.Get(ctx, claims.SessionID)
	if err != nil {
		if stderrors.Is(err, errors.ErrNotFound) {
			m.log.Warn("Session not found", zap.String("sessionId", claims.SessionID))
			return nil, errors.NewAuthenticationError("session not found")
		}
		return nil, err
	}
	return sess, nil
}

// WithSession stores the session in ctx
func WithSession(ctx context.Context, sess *session.Session) context.Context {
	return context.WithValue(ctx, SessionContextKeyValue, sess)
}

// GetSession gets the session from the request context
func GetSession(ctx context.Context) (*session.Session, bool) {
	sess, ok := ctx.Value(SessionContextKeyValue).(*session.Session)
	return sess, ok && sess != nil
}

// HeaderValue looks up a header case-insensitively
func HeaderValue(headers map[string]string, name string) string {
	if v, ok := headers[name]; ok {
		return v
	}
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// isPublicPath checks if the path is public (doesn't require a session)
func isPublicPath(path string, method string) bool {
	publicPaths := map[string][]string{
		"/session": {http.MethodPost},
		"/health":  {http.MethodGet},
	}

	if methods, ok := publicPaths[path]; ok {
		for _, allowedMethod := range methods {
			if allowedMethod == method {
				return true
			}
		}
	}

	// CORS preflight
	return method == http.MethodOptions
}
