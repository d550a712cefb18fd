package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"runtime"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"

	"github.com/hirosato/smartrt/internal/api/middleware"
	"github.com/hirosato/smartrt/internal/app"
	envconfig "github.com/hirosato/smartrt/internal/common/config"
)

var (
	apiHandler middleware.APIGatewayHandler
	logger     *slog.Logger
)

func init() {
	logger = slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	config, err := envconfig.LoadFromEnv()
	if err != nil {
		log.Fatalf("Failed to load Env config: %v", err)
	}

	ctx := context.Background()
	if err := app.ResolveSecrets(ctx, config, logger); err != nil {
		log.Fatalf("Failed to resolve secrets: %v", err)
	}

	zapLogger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create zap logger: %v", err)
	}

	a, err := app.New(ctx, config, logger, app.Options{ZapLogger: zapLogger})
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}
	apiHandler = a.Handler()
}

func handler(ctx context.Context, request events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	logger.Debug("api - Memory Status", "MB", m.Alloc/1024/1024)

	return apiHandler(ctx, logger, request)
}

func main() {
	lambda.Start(handler)
}
