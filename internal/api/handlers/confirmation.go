package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/confirm"
)

// ConfirmationHandler executes or cancels pending deletions
type ConfirmationHandler struct {
	confirm *confirm.Registry
}

// NewConfirmationHandler creates a new confirmation handler
func NewConfirmationHandler(confirmations *confirm.Registry) *ConfirmationHandler {
	return &ConfirmationHandler{confirm: confirmations}
}

// Confirm handles POST /confirmations/{token}
func (h *ConfirmationHandler) Confirm(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	token, err := pathParam(request, "token")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	pending, err := h.confirm.Confirm(ctx, sess, token)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	logger.Info("Deletion confirmed", "entity", pending.Entity, "targetId", pending.TargetID)
	return response.OK(pending, requestID(request)), nil
}

// Cancel handles DELETE /confirmations/{token}
func (h *ConfirmationHandler) Cancel(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	token, err := pathParam(request, "token")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	h.confirm.Cancel(sess, token)
	return response.NoContent(), nil
}
