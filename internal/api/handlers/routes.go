package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/middleware"
	"github.com/hirosato/smartrt/internal/api/response"
)

// Route binds a method and resource template to a handler.
// Templates use API Gateway syntax, for example /residents/{id}.
type Route struct {
	Method   string
	Resource string
	Handler  middleware.APIGatewayHandler
}

// Handlers groups every endpoint handler
type Handlers struct {
	Session       *SessionHandler
	Residents     *ResidentHandler
	Transactions  *TransactionHandler
	Reports       *ReportHandler
	Letters       *LetterHandler
	Announcements *AnnouncementHandler
	Confirmations *ConfirmationHandler
	Dashboard     *DashboardHandler
}

// Routes returns the route table. Literal segments are listed before parameters they overlap.
func Routes(h *Handlers) []Route {
	return []Route{
		{http.MethodGet, "/health", Health},

		{http.MethodPost, "/session", h.Session.Start},
		{http.MethodGet, "/session", h.Session.Get},
		{http.MethodPost, "/session/elevate", h.Session.Elevate},
		{http.MethodPost, "/session/demote", h.Session.Demote},
		{http.MethodPut, "/session/profile", h.Session.UpdateProfile},

		{http.MethodGet, "/dashboard", h.Dashboard.Get},

		{http.MethodGet, "/residents", h.Residents.List},
		{http.MethodPost, "/residents", h.Residents.Create},
		{http.MethodGet, "/residents/{id}", h.Residents.Get},
		{http.MethodPut, "/residents/{id}", h.Residents.Update},
		{http.MethodDelete, "/residents/{id}", h.Residents.Delete},

		{http.MethodGet, "/transactions", h.Transactions.List},
		{http.MethodPost, "/transactions", h.Transactions.Create},
		{http.MethodGet, "/transactions/summary", h.Transactions.Summary},
		{http.MethodGet, "/transactions/categories", h.Transactions.Categories},
		{http.MethodGet, "/transactions/{id}", h.Transactions.Get},
		{http.MethodPut, "/transactions/{id}", h.Transactions.Update},
		{http.MethodDelete, "/transactions/{id}", h.Transactions.Delete},

		{http.MethodGet, "/reports", h.Reports.List},
		{http.MethodPost, "/reports", h.Reports.Create},
		{http.MethodPost, "/reports/analysis", h.Reports.Analyze},
		{http.MethodGet, "/reports/{id}", h.Reports.Get},
		{http.MethodPut, "/reports/{id}/status", h.Reports.UpdateStatus},
		{http.MethodDelete, "/reports/{id}", h.Reports.Delete},

		{http.MethodGet, "/letters", h.Letters.List},
		{http.MethodPost, "/letters", h.Letters.Create},
		{http.MethodGet, "/letters/purposes", h.Letters.Purposes},
		{http.MethodGet, "/letters/{id}", h.Letters.Get},
		{http.MethodPost, "/letters/{id}/approve", h.Letters.Approve},
		{http.MethodPost, "/letters/{id}/reject", h.Letters.Reject},
		{http.MethodPost, "/letters/{id}/draft", h.Letters.Draft},
		{http.MethodGet, "/letters/{id}/print", h.Letters.Print},

		{http.MethodGet, "/announcements", h.Announcements.List},
		{http.MethodPost, "/announcements", h.Announcements.Create},
		{http.MethodPost, "/announcements/draft", h.Announcements.Draft},
		{http.MethodGet, "/announcements/{id}", h.Announcements.Get},
		{http.MethodDelete, "/announcements/{id}", h.Announcements.Delete},

		{http.MethodPost, "/confirmations/{token}", h.Confirmations.Confirm},
		{http.MethodDelete, "/confirmations/{token}", h.Confirmations.Cancel},
	}
}

// Health handles GET /health
func Health(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	return response.OK(map[string]string{"status": "ok"}, requestID(request)), nil
}
