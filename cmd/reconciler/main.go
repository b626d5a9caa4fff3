package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/config"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	natspub "github.com/remixrite/remix-ledger/internal/providers/jetstream"
	"github.com/remixrite/remix-ledger/internal/reconciler"
	"github.com/remixrite/remix-ledger/internal/resolver"
	"github.com/remixrite/remix-ledger/internal/royalty"
	"github.com/remixrite/remix-ledger/internal/settlement"
	"github.com/remixrite/remix-ledger/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
	once       = flag.Bool("once", false, "Run a single reconciliation cycle and exit")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadReconcilerConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "settlement-reconciler",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting settlement reconciler")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}

	// Initialize store
	dataStore := store.NewPGStore(db)

	var publisher messaging.Publisher = messaging.NewNopPublisher()
	if cfg.NATS.URL != "" {
		publisher, err = natspub.NewPublisher(ctx, natspub.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		}, adapter.NewNatsJetStream())
		if err != nil {
			logger.FatalCtx(ctx, "Failed to connect to NATS", zap.Error(err), zap.String("url", cfg.NATS.URL))
		}
	}
	defer publisher.Close()

	clipResolver := resolver.New(resolver.Config{
		Concurrency:   cfg.Worker.ResolverConcurrency,
		LookupTimeout: cfg.StoreTimeout,
	}, dataStore)
	recorder := settlement.NewRecorder(settlement.Config{StoreTimeout: cfg.StoreTimeout}, dataStore)

	rec := reconciler.New(reconciler.Config{
		Interval:  cfg.Reconcile.Interval,
		BatchSize: cfg.Reconcile.BatchSize,
		PoolSize:  cfg.Reconcile.PoolSize,
		MinAge:    cfg.Reconcile.MinAge,
	}, dataStore, dataStore, clipResolver, royalty.NewEqualSplit(), recorder, publisher, adapter.NewClock())

	if *once {
		summary, err := rec.RunOnce(ctx)
		if err != nil {
			logger.FatalCtx(ctx, "Reconciliation failed", zap.Error(err))
		}
		logger.InfoCtx(ctx, "Reconciliation finished",
			zap.Int("examined", summary.Examined),
			zap.Int("settled", summary.Settled),
			zap.Int("pending", summary.Pending),
			zap.Int("skipped", summary.Skipped),
		)
		return
	}

	// Start the reconciler in a goroutine
	errChan := make(chan error, 1)
	go func() {
		if err := rec.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	// Wait for interrupt signal or error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
	case err := <-errChan:
		logger.ErrorCtx(ctx, err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := rec.Stop(shutdownCtx); err != nil {
		logger.ErrorCtx(shutdownCtx, err)
	}
	cancel()

	logger.Info("Settlement reconciler stopped")
}
