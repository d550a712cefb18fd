package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/confirm"
	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ResidentHandler handles the resident registry endpoints
type ResidentHandler struct {
	service *resident.Service
	confirm *confirm.Registry
}

// NewResidentHandler creates a new resident handler
func NewResidentHandler(service *resident.Service, confirmations *confirm.Registry) *ResidentHandler {
	return &ResidentHandler{
		service: service,
		confirm: confirmations,
	}
}

// List handles GET /residents
func (h *ResidentHandler) List(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	filter := resident.Filter{
		Query:  queryParam(request, "q"),
		Status: resident.Status(queryParam(request, "status")),
	}

	residents, err := h.service.List(ctx, sess, filter)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.List(residents, len(residents), requestID(request)), nil
}

// Create handles POST /residents
func (h *ResidentHandler) Create(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req resident.CreateResidentRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Create(ctx, sess, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(r, requestID(request)), nil
}

// Get handles GET /residents/{id}
func (h *ResidentHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Get(ctx, sess, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(r, requestID(request)), nil
}

// Update handles PUT /residents/{id}
func (h *ResidentHandler) Update(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req resident.UpdateResidentRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Update(ctx, sess, id, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(r, requestID(request)), nil
}

// Delete handles DELETE /residents/{id}. The removal waits for confirmation.
func (h *ResidentHandler) Delete(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := sess.Require(session.EntityResident, session.ActionDelete); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := h.service.Get(ctx, sess, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	pending, err := h.confirm.Request(sess, session.EntityResident, id, func(ctx context.Context, sess *session.Session) error {
		return h.service.Delete(ctx, sess, id)
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Accepted(pending, requestID(request)), nil
}
