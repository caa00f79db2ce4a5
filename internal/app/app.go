package app

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/txlens/base-tx-analyzer/internal/api"
	"github.com/txlens/base-tx-analyzer/internal/config"
	"github.com/txlens/base-tx-analyzer/pkg/analyzer"
	"github.com/txlens/base-tx-analyzer/pkg/chain"
	"github.com/txlens/base-tx-analyzer/pkg/classify"
	"github.com/txlens/base-tx-analyzer/pkg/events"
	"github.com/txlens/base-tx-analyzer/pkg/interfaces"
	"github.com/txlens/base-tx-analyzer/pkg/metrics"
	"github.com/txlens/base-tx-analyzer/pkg/registry"
)

// Application ties the analyzer service and API server together
type Application struct {
	config *config.Config
	server *api.Server
	client *chain.Client
	logger *zap.Logger
}

// NewApplication creates the application
func NewApplication(cfg *config.Config, server *api.Server, client *chain.Client, logger *zap.Logger) *Application {
	return &Application{config: cfg, server: server, client: client, logger: logger}
}

// Start starts the API server
func (a *Application) Start(ctx context.Context) error {
	a.logger.Info("starting base-tx-analyzer",
		zap.String("rpc", a.config.RPC.URL))
	return a.server.Start(ctx)
}

// Stop shuts everything down gracefully
func (a *Application) Stop(ctx context.Context) error {
	err := a.server.Stop(ctx)
	a.client.Close()
	a.logger.Info("base-tx-analyzer stopped")
	return err
}

// NewLogger builds the zap logger from the configured level
func NewLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Logging.Level)
	if err != nil {
		level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	zapCfg := zap.NewProductionConfig()
	zapCfg.Level = level
	return zapCfg.Build()
}

// NewChainClient dials the configured JSON-RPC endpoints
func NewChainClient(cfg *config.Config, logger *zap.Logger) (*chain.Client, error) {
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RPC.RequestTimeout)
	defer cancel()
	return chain.Dial(ctx, chain.Config{
		URL:        cfg.RPC.URL,
		BackupURLs: cfg.RPC.BackupURLs,
		MaxRetries: cfg.RPC.MaxRetries,
		RetryDelay: cfg.RPC.RetryDelay,
	}, logger)
}

// NewRegistry builds the static Base mainnet address registry
func NewRegistry() *registry.Registry {
	return registry.NewBaseMainnet()
}

// NewDecoder builds the event decoder
func NewDecoder(reg *registry.Registry, logger *zap.Logger) *events.Decoder {
	return events.NewDecoder(reg, logger)
}

// NewClassifier builds the transaction classifier
func NewClassifier(reg *registry.Registry) *classify.Classifier {
	return classify.NewClassifier(reg)
}

// NewCollector registers the Prometheus collectors
func NewCollector() *metrics.Collector {
	return metrics.NewCollector(nil)
}

// NewAnalyzer assembles the analysis pipeline
func NewAnalyzer(
	cfg *config.Config,
	client *chain.Client,
	decoder *events.Decoder,
	classifier *classify.Classifier,
	collector *metrics.Collector,
	logger *zap.Logger,
) interfaces.Analyzer {
	return analyzer.NewService(client, decoder, classifier, logger,
		analyzer.WithWorkers(cfg.Analyzer.BatchWorkers),
		analyzer.WithCollector(collector),
	)
}

// NewAPIServer builds the HTTP API server
func NewAPIServer(cfg *config.Config, svc interfaces.Analyzer, reg *registry.Registry, logger *zap.Logger) *api.Server {
	return api.NewServer(cfg, svc, reg, logger)
}

// Module provides the fx module for dependency injection
var Module = fx.Options(
	fx.Provide(
		NewLogger,
		NewChainClient,
		NewRegistry,
		NewDecoder,
		NewClassifier,
		NewCollector,
		NewAnalyzer,
		NewAPIServer,
		NewApplication,
	),
)
