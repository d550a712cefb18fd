package middleware

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/aws/aws-lambda-go/events"
)

// RequestCounter counts handled requests
type RequestCounter interface {
	IncrementHTTPRequest(method, route, status string)
}

// MetricsMiddleware counts requests by route template and status
type MetricsMiddleware struct {
	counter RequestCounter
}

// NewMetricsMiddleware creates a new metrics middleware
func NewMetricsMiddleware(counter RequestCounter) MetricsMiddleware {
	return MetricsMiddleware{counter: counter}
}

// Handle handles the metrics middleware
func (m MetricsMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		resp, err := next(ctx, logger, request)
		if m.counter != nil {
			m.counter.IncrementHTTPRequest(request.HTTPMethod, request.Resource, strconv.Itoa(resp.StatusCode))
		}
		return resp, err
	}
}
