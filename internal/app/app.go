package app

import (
	"context"
	"fmt"
	"log/slog"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/hirosato/smartrt/internal/api/handlers"
	"github.com/hirosato/smartrt/internal/api/mcp/prompts"
	"github.com/hirosato/smartrt/internal/api/mcp/resources"
	"github.com/hirosato/smartrt/internal/api/mcp/tools"
	"github.com/hirosato/smartrt/internal/api/middleware"
	"github.com/hirosato/smartrt/internal/common/config"
	"github.com/hirosato/smartrt/internal/domain/announcement"
	"github.com/hirosato/smartrt/internal/domain/confirm"
	"github.com/hirosato/smartrt/internal/domain/dashboard"
	"github.com/hirosato/smartrt/internal/domain/draft"
	"github.com/hirosato/smartrt/internal/domain/ledger"
	"github.com/hirosato/smartrt/internal/domain/letter"
	"github.com/hirosato/smartrt/internal/domain/mcp"
	"github.com/hirosato/smartrt/internal/domain/registry"
	"github.com/hirosato/smartrt/internal/domain/report"
	"github.com/hirosato/smartrt/internal/domain/resident"
	"github.com/hirosato/smartrt/internal/domain/session"
	"github.com/hirosato/smartrt/internal/platform/gemini"
	"github.com/hirosato/smartrt/internal/platform/memory"
	"github.com/hirosato/smartrt/internal/platform/metrics"
	"github.com/hirosato/smartrt/internal/platform/secrets"
	"github.com/hirosato/smartrt/pkg/validator"
)

// App holds the services of one process
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	Store   *memory.Store
	Metrics *metrics.Metrics

	Sessions      *session.Service
	Residents     *resident.Service
	Ledger        *ledger.Service
	Reports       *report.Service
	Letters       *letter.Service
	Announcements *announcement.Service
	Dashboard     *dashboard.Service
	Confirmations *confirm.Registry
	Bridge        *draft.Bridge
	Assist        *draft.Assist

	SessionMiddleware middleware.SessionMiddleware
	Routes            []handlers.Route

	outer []middleware.Middleware
}

// Options carries dependencies that callers may replace
type Options struct {
	// Generator overrides the Gemini client
	Generator draft.Generator
	// Registerer receives the Prometheus metrics. Nil disables registration.
	Registerer prometheus.Registerer
	// ZapLogger logs session authentication events
	ZapLogger *zap.Logger
	// PassphraseCost is the bcrypt cost of the passphrase hash
	PassphraseCost int
}

// New wires the services, seeds demo data when configured and builds the route table
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts Options) (*App, error) {
	if opts.ZapLogger == nil {
		opts.ZapLogger = zap.NewNop()
	}
	if opts.PassphraseCost == 0 {
		opts.PassphraseCost = bcrypt.DefaultCost
	}
	if opts.Registerer == nil {
		opts.Registerer = prometheus.NewRegistry()
	}

	generator := opts.Generator
	if generator == nil {
		g, err := gemini.NewGenerator(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			return nil, err
		}
		if cfg.GeminiAPIKey == "" {
			logger.Warn("GEMINI_API_KEY is not set, drafts will use fallback text")
		}
		generator = g
	}

	gate, err := session.NewGate(cfg.Passphrase, opts.PassphraseCost)
	if err != nil {
		return nil, fmt.Errorf("failed to create role gate: %w", err)
	}

	a := &App{
		Config:  cfg,
		Logger:  logger,
		Store:   memory.NewStore(),
		Metrics: metrics.New(opts.Registerer),
	}

	v := validator.New()
	a.Sessions = session.NewService(a.Store.Sessions, gate, cfg.AuthorityName, logger)
	a.Residents = resident.NewService(a.Store.Residents, v)
	names := registry.NewValidator(a.Residents)
	a.Ledger = ledger.NewService(a.Store.Transactions, v)
	a.Reports = report.NewService(a.Store.Reports, names, v)
	a.Letters = letter.NewService(a.Store.Letters, names, v)
	a.Announcements = announcement.NewService(a.Store.Announcements, v)
	a.Dashboard = dashboard.NewService(a.Residents, a.Reports, a.Ledger)
	a.Confirmations = confirm.NewRegistry(cfg.ConfirmationTTL)

	a.Bridge = draft.NewBridge(generator, logger,
		draft.WithRecorder(a.Metrics),
		draft.WithTimeout(cfg.DraftTimeout),
	)
	var assistOpts []draft.AssistOption
	if cfg.DraftDiscardStale {
		assistOpts = append(assistOpts, draft.WithStaleDiscard())
	}
	a.Assist = draft.NewAssist(a.Bridge, a.Letters, a.Reports, logger, assistOpts...)

	if cfg.SeedDemoData {
		if err := memory.SeedDemoData(ctx, a.Store, cfg.AuthorityName); err != nil {
			return nil, fmt.Errorf("failed to seed demo data: %w", err)
		}
		logger.Info("Seeded demo data")
	}

	a.SessionMiddleware = middleware.NewSessionMiddleware(a.Sessions, cfg.SessionSigningKey, opts.ZapLogger)
	a.Routes = handlers.Routes(&handlers.Handlers{
		Session:       handlers.NewSessionHandler(a.Sessions, cfg.SessionSigningKey, cfg.SessionTTL, a.Metrics),
		Residents:     handlers.NewResidentHandler(a.Residents, a.Confirmations),
		Transactions:  handlers.NewTransactionHandler(a.Ledger, a.Confirmations),
		Reports:       handlers.NewReportHandler(a.Reports, a.Assist, a.Confirmations),
		Letters:       handlers.NewLetterHandler(a.Letters, a.Assist),
		Announcements: handlers.NewAnnouncementHandler(a.Announcements, a.Assist, a.Confirmations),
		Confirmations: handlers.NewConfirmationHandler(a.Confirmations),
		Dashboard:     handlers.NewDashboardHandler(a.Dashboard),
	})
	a.outer = []middleware.Middleware{
		middleware.NewLoggingMiddleware().Handle,
		middleware.NewMetricsMiddleware(a.Metrics).Handle,
		middleware.NewRecoveryMiddleware().Handle,
	}

	return a, nil
}

// Wrap applies the full middleware chain to the handler of one route.
// The request's Resource must already hold the route template.
func (a *App) Wrap(h middleware.APIGatewayHandler) middleware.APIGatewayHandler {
	return middleware.Chain(h, append(a.outer, a.SessionMiddleware.Handle)...)
}

// Handler dispatches any API Gateway request. Sessions are resolved after routing
// so public routes are recognized behind a proxy resource.
func (a *App) Handler() middleware.APIGatewayHandler {
	routes := make([]handlers.Route, len(a.Routes))
	for i, route := range a.Routes {
		route.Handler = a.SessionMiddleware.Handle(route.Handler)
		routes[i] = route
	}
	return middleware.Chain(handlers.NewRouter(routes).Handle, a.outer...)
}

// MCPRegistry registers the SmartRT tools, resources and prompts.
// Resources and prompts read through a resident session started here.
// Tools act with the session named by their sessionToken argument.
func (a *App) MCPRegistry(ctx context.Context) (*mcp.HandlerRegistry, error) {
	reader, err := a.Sessions.Start(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to start reader session: %w", err)
	}

	registry := mcp.NewHandlerRegistry()

	registry.RegisterTool(tools.NewDraftAnnouncementTool(a.SessionMiddleware, a.Assist))
	registry.RegisterTool(tools.NewDraftReferenceLetterTool(a.SessionMiddleware, a.Assist))
	registry.RegisterTool(tools.NewAnalyzeReportsTool(a.SessionMiddleware, a.Assist))
	registry.RegisterTool(tools.NewCreateReportTool(a.SessionMiddleware, a.Reports))

	registry.RegisterResource(resources.NewResidentsResource(a.Residents, reader))
	registry.RegisterResource(resources.NewTransactionSummaryResource(a.Ledger, reader))
	registry.RegisterResource(resources.NewReportsResource(a.Reports, reader))
	registry.RegisterResource(resources.NewAnnouncementsResource(a.Announcements, reader))

	registry.RegisterPrompt(&prompts.AnnouncementDraftPrompt{})
	registry.RegisterPrompt(prompts.NewReportTriagePrompt(a.Reports, reader))

	return registry, nil
}

// ResolveSecrets loads the passphrase and Gemini key from Secrets Manager when a secret is configured
func ResolveSecrets(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.SecretID == "" {
		return nil
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	store := secrets.NewStore(secretsmanager.NewFromConfig(awsCfg), logger)
	secret, err := store.GetRTSecret(ctx, cfg.SecretID)
	if err != nil {
		return err
	}

	cfg.ApplySecret(secret.Passphrase, secret.GeminiAPIKey)
	return nil
}
