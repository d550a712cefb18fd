package httpserver

import (
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hirosato/smartrt/internal/api/handlers"
	"github.com/hirosato/smartrt/internal/api/middleware"
	"github.com/hirosato/smartrt/internal/api/response"
)

// maxBodyBytes bounds request bodies read by the adapter
const maxBodyBytes = 1 << 20

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Wrapper applies the request middleware chain to a route handler
type Wrapper func(middleware.APIGatewayHandler) middleware.APIGatewayHandler

// NewRouter serves the route table over chi. Extra handlers (such as /metrics) are mounted as is.
func NewRouter(routes []handlers.Route, wrap Wrapper, logger *slog.Logger, access *zap.Logger, extra map[string]http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(AccessLog(access))
	r.Use(cors)

	for _, route := range routes {
		r.Method(route.Method, route.Resource, Adapt(route.Resource, wrap(route.Handler), logger))
	}
	for pattern, h := range extra {
		r.Handle(pattern, h)
	}

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		write(w, response.NotFound("route not found", chimiddleware.GetReqID(req.Context())))
	})
	return r
}

// Adapt converts an http.Request into an API Gateway proxy request for h
func Adapt(resource string, h middleware.APIGatewayHandler, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			write(w, response.BadRequest("failed to read request body", ""))
			return
		}

		requestID := chimiddleware.GetReqID(r.Context())
		if requestID == "" {
			requestID = uuid.New().String()
		}

		request := events.APIGatewayProxyRequest{
			Resource:              resource,
			Path:                  r.URL.Path,
			HTTPMethod:            r.Method,
			Headers:               firstValues(r.Header),
			MultiValueHeaders:     r.Header,
			QueryStringParameters: firstValues(r.URL.Query()),
			PathParameters:        pathParameters(r),
			Body:                  string(body),
			RequestContext: events.APIGatewayProxyRequestContext{
				RequestID:  requestID,
				HTTPMethod: r.Method,
				Path:       r.URL.Path,
			},
		}

		resp, err := h(r.Context(), logger, request)
		if err != nil {
			resp = response.FromError(err, requestID)
		}
		write(w, resp)
	}
}

// AccessLog logs each request with zap
func AccessLog(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Info("http request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Int("bytes", ww.BytesWritten()),
				zap.Duration("duration", time.Since(start)),
				zap.String("requestId", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			write(w, response.NoContent())
			return
		}
		next.ServeHTTP(w, r)
	})
}

func write(w http.ResponseWriter, resp events.APIGatewayProxyResponse) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	status := resp.StatusCode
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)
	if resp.Body != "" {
		_, _ = io.WriteString(w, resp.Body)
	}
}

func pathParameters(r *http.Request) map[string]string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil || len(rctx.URLParams.Keys) == 0 {
		return nil
	}
	params := make(map[string]string, len(rctx.URLParams.Keys))
	for i, key := range rctx.URLParams.Keys {
		params[key] = rctx.URLParams.Values[i]
	}
	return params
}

func firstValues(values map[string][]string) map[string]string {
	out := make(map[string]string, len(values))
	for k, v := range values {
		if len(v) > 0 {
			out[k] = v[0]
		}
	}
	return out
}
