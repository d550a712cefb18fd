package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"

	"github.com/hirosato/smartrt/internal/api/response"
	"github.com/hirosato/smartrt/internal/domain/errors"
)

// Router dispatches API Gateway requests over a route table
type Router struct {
	routes []Route
}

// NewRouter creates a router for routes
func NewRouter(routes []Route) *Router {
	return &Router{routes: routes}
}

// Handle is an APIGatewayHandler that dispatches to the matching route.
// Requests from a proxy resource are matched by path and get their path parameters filled in.
func (r *Router) Handle(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if request.HTTPMethod == http.MethodOptions {
		return response.NoContent(), nil
	}

	route, params, ok := r.Match(request.HTTPMethod, request.Resource, request.Path)
	if !ok {
		return events.APIGatewayProxyResponse{}, errors.NewNotFoundError("route not found").
			WithDetail("path", request.Path)
	}

	request.Resource = route.Resource
	if len(params) > 0 {
		if request.PathParameters == nil {
			request.PathParameters = make(map[string]string, len(params))
		}
		for k, v := range params {
			request.PathParameters[k] = v
		}
	}

	return route.Handler(ctx, logger, request)
}

// Match finds the route for method. An exact resource template wins over path matching.
func (r *Router) Match(method, resource, path string) (Route, map[string]string, bool) {
	for _, route := range r.routes {
		if route.Method == method && route.Resource == resource {
			return route, nil, true
		}
	}

	for _, route := range r.routes {
		if route.Method != method {
			continue
		}
		if params, ok := matchTemplate(route.Resource, path); ok {
			return route, params, true
		}
	}
	return Route{}, nil, false
}

func matchTemplate(template, path string) (map[string]string, bool) {
	want := splitPath(template)
	got := splitPath(path)
	if len(want) != len(got) {
		return nil, false
	}

	params := make(map[string]string)
	for i, segment := range want {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			if got[i] == "" {
				return nil, false
			}
			params[strings.Trim(segment, "{}")] = got[i]
			continue
		}
		if segment != got[i] {
			return nil, false
		}
	}
	return params, true
}

func splitPath(p string) []string {
	p = strings.Trim(p, "/")
	if p == "" {
		return nil
	}
	return strings.Split(p, "/")
}
