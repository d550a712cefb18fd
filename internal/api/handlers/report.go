package handlers

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/confirm"
	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/session"
)

// ReportHandler handles the citizen report endpoints
type ReportHandler struct {
	service *report.Service
	assist  *draft.Assist
	confirm *confirm.Registry
}

// NewReportHandler creates a new report handler
func NewReportHandler(service *report.Service, assist *draft.Assist, confirmations *confirm.Registry) *ReportHandler {
	return &ReportHandler{
		service: service,
		assist:  assist,
		confirm: confirmations,
	}
}

// AnalysisResponse carries the generated report analysis
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}

// List handles GET /reports
func (h *ReportHandler) List(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	activeOnly, _ := strconv.ParseBool(queryParam(request, "active"))
	filter := report.Filter{
		Status:     report.Status(queryParam(request, "status")),
		ActiveOnly: activeOnly,
	}

	reports, err := h.service.List(ctx, sess, filter)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.List(reports, len(reports), requestID(request)), nil
}

// Create handles POST /reports
func (h *ReportHandler) Create(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req report.CreateReportRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.Create(ctx, sess, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Created(r, requestID(request)), nil
}

// Analyze handles POST /reports/analysis
func (h *ReportHandler) Analyze(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	analysis, err := h.assist.AnalyzeReports(ctx, sess)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(AnalysisResponse{Analysis: analysis}, requestID(request)), nil
}

// Get handles GET /reports/{id}
func (h *ReportHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
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

// UpdateStatus handles PUT /reports/{id}/status
func (h *ReportHandler) UpdateStatus(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	var req report.UpdateStatusRequest
	if err := decodeBody(request, &req); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	r, err := h.service.UpdateStatus(ctx, sess, id, &req)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(r, requestID(request)), nil
}

// Delete handles DELETE /reports/{id}. The removal waits for confirmation.
func (h *ReportHandler) Delete(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	id, err := pathParam(request, "id")
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	if err := sess.Require(session.EntityReport, session.ActionDelete); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	if _, err := h.service.Get(ctx, sess, id); err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	pending, err := h.confirm.Request(sess, session.EntityReport, id, func(ctx context.Context, sess *session.Session) error {
		return h.service.Delete(ctx, sess, id)
	})
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.Accepted(pending, requestID(request)), nil
}
