package middleware

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
)

const masked = "***"

var (
	sensitiveHeaders = []string{"authorization", "x-api-key", "cookie"}
	sensitiveFields  = []string{"passphrase", "token", "sessionToken"}
)

// LoggingMiddleware is a middleware for logging requests and responses
type LoggingMiddleware struct{}

// NewLoggingMiddleware creates a new logging middleware
func NewLoggingMiddleware() LoggingMiddleware {
	return LoggingMiddleware{}
}

// Handle handles the logging middleware
func (m LoggingMiddleware) Handle(next APIGatewayHandler) APIGatewayHandler {
	return func(ctx context.Context, logger *slog.Logger, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		startTime := time.Now()
		logger = logger.With("requestId", request.RequestContext.RequestID)

		logger.Info("REQUEST",
			"method", request.HTTPMethod,
			"path", request.Path,
			"queryParameters", request.QueryStringParameters,
			"headers", maskSensitiveHeaders(request.Headers),
			"body", maskSensitiveBody(request.Body))

		response, err := next(ctx, logger, request)

		if err != nil {
			logger.Info("ERROR", "error", err)
		}
		logger.Info("RESPONSE",
			"status", response.StatusCode,
			"duration", time.Since(startTime),
			"body", maskSensitiveBody(response.Body))

		return response, err
	}
}

// maskSensitiveHeaders masks sensitive headers
func maskSensitiveHeaders(headers map[string]string) map[string]string {
	maskedHeaders := make(map[string]string, len(headers))
	for k, v := range headers {
		maskedHeaders[k] = v
		for _, h := range sensitiveHeaders {
			if strings.EqualFold(k, h) {
				maskedHeaders[k] = masked
			}
		}
	}
	return maskedHeaders
}

// maskSensitiveBody masks secrets in a JSON body. Non-JSON bodies are returned as is.
func maskSensitiveBody(body string) string {
	if body == "" {
		return ""
	}

	var value interface{}
	if err := json.Unmarshal([]byte(body), &value); err != nil {
		return body
	}

	out, err := json.Marshal(maskValue(value))
	if err != nil {
		return body
	}
	return string(out)
}

func maskValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, child := range t {
			if isSensitiveField(k) {
				t[k] = masked
				continue
			}
			t[k] = maskValue(child)
		}
		return t
	case []interface{}:
		for i, child := range t {
			t[i] = maskValue(child)
		}
		return t
	default:
		return v
	}
}

func isSensitiveField(key string) bool {
	for _, f := range sensitiveFields {
		if strings.EqualFold(key, f) {
			return true
		}
	}
	return false
}
