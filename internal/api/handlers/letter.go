package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// LetterHandler handles the reference letter endpoints
type LetterHandler struct {
	service *letter.Service
	assist  *draft.Assist
}

// NewLetterHandler creates a new letter handler
func NewLetterHandler(service *letter.Service, assist *draft.Assist) *LetterHandler {
	return &LetterHandler{
		service: service,
		assist:  assist,
	}
}

// LetterView is a letter request with its background draft state
type LetterView struct {
	*letter.Request
	DraftInProgress bool `json:"draftInProgress"`
}

func (h *LetterHandler) view(r *letter.Request) LetterView {
	return LetterView{Request: r, DraftInProgress: h.assist.InProgress(r.ID)}
}

// List handles GET /letters
func (h *LetterHandler) List(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	filter := letter.Filter{
		Query:  queryParam(request, "q"),
		Status: letter.Status(queryParam(request, "status")),
	}

	letters, err := h.service.List(ctx, sess, filter)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	views := make([]LetterView, 0, len(letters))
	for i := range letters {
		views = append(views, h.view(&letters[i]))
	}
	return response.List(views, len(views), requestID(request)), nil
}

// Purposes handles GET /letters/purposes
func (h *LetterHandler) Purposes(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if err := sess.Require(session.EntityLetter, session.ActionRead); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(letter.Purposes, requestID(request)), nil
}

// Create handles POST /letters
func (h *LetterHandler) Create(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req letter.CreateLetterRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Create(ctx, sess, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(r, requestID(request)), nil
}

// Get handles GET /letters/{id}
func (h *LetterHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
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
	return response.OK(h.view(r), requestID(request)), nil
}

// Approve handles POST /letters/{id}/approve
func (h *LetterHandler) Approve(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	// The body is optional
	var req letter.ApproveRequest
	if request.Body != "" {
		if err := decodeBody(request, &req); err != nil {
			return events.APIGatewayProxyResponse{}, err
		}
	}

	r, err := h.service.Approve(ctx, sess, id, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(r, requestID(request)), nil
}

// Reject handles POST /letters/{id}/reject
func (h *LetterHandler) Reject(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Reject(ctx, sess, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(r, requestID(request)), nil
}

// Draft handles POST /letters/{id}/draft. Generation continues after the response.
func (h *LetterHandler) Draft(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := h.assist.StartLetterDraft(ctx, sess, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Get(ctx, sess, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Accepted(h.view(r), requestID(request)), nil
}

// Print handles GET /letters/{id}/print
func (h *LetterHandler) Print(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	printout, err := h.service.Print(ctx, sess, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(printout, requestID(request)), nil
}
