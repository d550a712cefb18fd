package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/confirm"
	"github.com/hirosato/smartrt/internal/domain/ledger"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// TransactionHandler handles the cash ledger endpoints
type TransactionHandler struct {
	service *ledger.Service
	confirm *confirm.Registry
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(service *ledger.Service, confirmations *confirm.Registry) *TransactionHandler {
	return &TransactionHandler{
		service: service,
		confirm: confirmations,
	}
}

func transactionFilter(request events.APIGatewayProxyRequest) ledger.Filter {
	return ledger.Filter{
		Type:      ledger.Type(queryParam(request, "type")),
		StartDate: queryParam(request, "startDate"),
		EndDate:   queryParam(request, "endDate"),
	}
}

// List handles GET /transactions
func (h *TransactionHandler) List(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	transactions, err := h.service.List(ctx, sess, transactionFilter(request))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.List(transactions, len(transactions), requestID(request)), nil
}

// Summary handles GET /transactions/summary
func (h *TransactionHandler) Summary(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	summary, err := h.service.Summary(ctx, sess, transactionFilter(request))
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(summary, requestID(request)), nil
}

// Categories handles GET /transactions/categories
func (h *TransactionHandler) Categories(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := sess.Require(session.EntityTransaction, session.ActionRead); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(ledger.Categories, requestID(request)), nil
}

// Create handles POST /transactions
func (h *TransactionHandler) Create(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req ledger.CreateTransactionRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	t, err := h.service.Create(ctx, sess, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(t, requestID(request)), nil
}

// Get handles GET /transactions/{id}
func (h *TransactionHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	t, err := h.service.Get(ctx, sess, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(t, requestID(request)), nil
}

// Update handles PUT /transactions/{id}
func (h *TransactionHandler) Update(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req ledger.UpdateTransactionRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	t, err := h.service.Update(ctx, sess, id, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(t, requestID(request)), nil
}

// Delete handles DELETE /transactions/{id}. The removal waits for confirmation.
func (h *TransactionHandler) Delete(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := sess.Require(session.EntityTransaction, session.ActionDelete); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := h.service.Get(ctx, sess, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	pending, err := h.confirm.Request(sess, session.EntityTransaction, id, func(ctx context.Context, sess *session.Session) error {
		return h.service.Delete(ctx, sess, id)
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Accepted(pending, requestID(request)), nil
}
