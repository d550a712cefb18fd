package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/errors"
)

// RecoveryMiddleware is a middleware for recovering from panics
type RecoveryMiddleware struct{}

// NewRecoveryMiddleware creates a new recovery middleware
func NewRecoveryMiddleware() RecoveryMiddleware {
	return RecoveryMiddleware{}
}

// Handle converts handler errors into error responses and panics into 500s
func (m RecoveryMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (resp events.APIGatewayProxyResponse, err error) {
		requestID := request.RequestContext.RequestID

		defer func() {
			if r := recover(); r != nil {
				logger.Error("PANIC", "panic", fmt.Sprint(r), "stack", string(debug.Stack()), "requestId", requestID)
				resp = response.InternalError("An unexpected error occurred", nil, requestID)
				err = nil
			}
		}()

		// Try to handle the request
		resp, err = next(ctx, logger, request)
		if err == nil {
			return resp, nil
		}

		appErr := response.AsAppError(err)
		if appErr.Code == errors.CodeInternal {
			logger.Error("ERROR", "code", appErr.Code, "error", appErr.Error(), "requestId", requestID)
		} else {
			logger.Info("ERROR", "code", appErr.Code, "message", appErr.Message, "requestId", requestID)
		}

		return response.Error(appErr, requestID), nil
	}
}
