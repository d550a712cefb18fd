package middleware

import (
	"context"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"
)

// APIGatewayHandler is a function that handles API Gateway requests
type APIGatewayHandler func(context.Context, *slog.Logger, events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

// Middleware wraps an APIGatewayHandler
type Middleware func(APIGatewayHandler) APIGatewayHandler

// Chain applies middlewares so the first one is the outermost
func Chain(h APIGatewayHandler, mws ...Middleware) APIGatewayHandler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}
