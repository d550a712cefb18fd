package handlers

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/middleware"
	"github.com/hirosato/smartrt/internal/domain/errors"
	"github.com/hirosato/smartrt/internal/domain/session"
)

func requestID(request events.APIGatewayProxyRequest) string {
	return request.RequestContext.RequestID
}

// currentSession returns the session resolved by the session middleware
func currentSession(ctx context.Context) (*session.Session, error) {
	sess, ok := middleware.GetSession(ctx)
	if !ok {
		return nil, errors.NewAuthenticationError("an active session is required")
	}
	return sess, nil
}

func decodeBody(request events.APIGatewayProxyRequest, v interface{}) error {
	if strings.TrimSpace(request.Body) == "" {
		return errors.NewValidationError("request body is required")
	}
	if err := json.Unmarshal([]byte(request.Body), v); err != nil {
		return errors.NewInvalidInputError("Invalid JSON body", err)
	}
	return nil
}

func pathParam(request events.APIGatewayProxyRequest, name string) (string, error) {
	v := strings.TrimSpace(request.PathParameters[name])
	if v == "" {
		return "", errors.NewValidationError(name + " is required")
	}
	return v, nil
}

func queryParam(request events.APIGatewayProxyRequest, name string) string {
	return strings.TrimSpace(request.QueryStringParameters[name])
}
