package handlers

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/announcement"
	"github.com/hirosato/smartrt/internal/domain/confirm"
	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// AnnouncementHandler handles the announcement endpoints
type AnnouncementHandler struct {
	service *announcement.Service
	assist  *draft.Assist
	confirm *confirm.Registry
}

// NewAnnouncementHandler creates a new announcement handler
func NewAnnouncementHandler(service *announcement.Service, assist *draft.Assist, confirmations *confirm.Registry) *AnnouncementHandler {
	return &AnnouncementHandler{
		service: service,
		assist:  assist,
		confirm: confirmations,
	}
}

// DraftAnnouncementRequest asks for a generated announcement
type DraftAnnouncementRequest struct {
	Topic string     `json:"topic"`
	Tone  draft.Tone `json:"tone"`
}

// DraftAnnouncementResponse carries the generated text
type DraftAnnouncementResponse struct {
	Content string `json:"content"`
}

// List handles GET /announcements
func (h *AnnouncementHandler) List(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	announcements, err := h.service.List(ctx, sess)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.List(announcements, len(announcements), requestID(request)), nil
}

// Create handles POST /announcements
func (h *AnnouncementHandler) Create(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req announcement.CreateAnnouncementRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	a, err := h.service.Create(ctx, sess, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(a, requestID(request)), nil
}

// Draft handles POST /announcements/draft
func (h *AnnouncementHandler) Draft(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req DraftAnnouncementRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	content, err := h.assist.DraftAnnouncement(ctx, sess, req.Topic, req.Tone)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(DraftAnnouncementResponse{Content: content}, requestID(request)), nil
}

// Get handles GET /announcements/{id}
func (h *AnnouncementHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	a, err := h.service.Get(ctx, sess, id)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(a, requestID(request)), nil
}

// Delete handles DELETE /announcements/{id}. The removal waits for confirmation.
func (h *AnnouncementHandler) Delete(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := sess.Require(session.EntityAnnouncement, session.ActionDelete); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := h.service.Get(ctx, sess, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	pending, err := h.confirm.Request(sess, session.EntityAnnouncement, id, func(ctx context.Context, sess *session.Session) error {
		return h.service.Delete(ctx, sess, id)
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Accepted(pending, requestID(request)), nil
}
