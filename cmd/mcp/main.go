package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/hirosato/smartrt/internal/api/handlers"
	"github.com/hirosato/smartrt/internal/app"
	envconfig "github.com/hirosato/smartrt/internal/common/config"
	"github.com/hirosato/smartrt/internal/domain/mcp"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	config, err := envconfig.LoadFromEnv()
	if err != nil {
		logger.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := app.ResolveSecrets(ctx, config, logger); err != nil {
		logger.Error("Failed to resolve secrets", "error", err)
		os.Exit(1)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		logger.Error("Failed to create zap logger", "error", err)
		os.Exit(1)
	}

	a, err := app.New(ctx, config, logger, app.Options{ZapLogger: zapLogger})
	if err != nil {
		logger.Error("Failed to initialize app", "error", err)
		os.Exit(1)
	}

	registry, err := a.MCPRegistry(ctx)
	if err != nil {
		logger.Error("Failed to build MCP registry", "error", err)
		os.Exit(1)
	}

	handler := handlers.NewMCPHandler(mcp.NewService(logger, registry), !config.IsProd())

	lambda.Start(func(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return handler.Handle(ctx, logger, request)
	})
}
