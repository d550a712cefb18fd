package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/dashboard"
)

// DashboardHandler serves the overview page data
type DashboardHandler struct {
	service *dashboard.Service
	now     func() time.Time
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(service *dashboard.Service) *DashboardHandler {
	return &DashboardHandler{
		service: service,
		now:     time.Now,
	}
}

// Get handles GET /dashboard
func (h *DashboardHandler) Get(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	sess, err := currentSession(ctx)
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}

	overview, err := h.service.Overview(ctx, sess, h.now())
	if err != nil {
		return events.APIGatewayProxyResponse{}, err
	}
	return response.OK(overview, requestID(request)), nil
}
