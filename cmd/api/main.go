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
	"github.com/remixrite/remix-ledger/internal/api/middleware"
	"github.com/remixrite/remix-ledger/internal/api/server"
	"github.com/remixrite/remix-ledger/internal/config"
	"github.com/remixrite/remix-ledger/internal/ledger"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	natspub "github.com/remixrite/remix-ledger/internal/providers/jetstream"
	"github.com/remixrite/remix-ledger/internal/remix"
	"github.com/remixrite/remix-ledger/internal/resolver"
	"github.com/remixrite/remix-ledger/internal/royalty"
	"github.com/remixrite/remix-ledger/internal/settlement"
	"github.com/remixrite/remix-ledger/internal/storage"
	"github.com/remixrite/remix-ledger/internal/store"
	"github.com/remixrite/remix-ledger/internal/tagging"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		Environment:     cfg.Environment,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "remix-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting RemixRite API")

	fee, err := royalty.ParseFee(cfg.Royalty.RemixFee)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid remix fee", zap.Error(err), zap.String("remix_fee", cfg.Royalty.RemixFee))
	}

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	clock := adapter.NewClock()
	httpClient := adapter.NewHTTPClient(cfg.Storage.Timeout)
	canonicalizer := adapter.NewCanonicalizer()

	// Events are optional; without NATS they are dropped
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
		logger.InfoCtx(ctx, "Connected to NATS JetStream", zap.String("stream", cfg.NATS.StreamName))
	} else {
		logger.WarnCtx(ctx, "NATS URL not configured, events will not be published")
	}
	defer publisher.Close()

	// Initialize artifact storage
	var uploader storage.Uploader
	switch cfg.Storage.Provider {
	case "s3":
		uploader, err = storage.NewS3Uploader(ctx, storage.S3Config{
			Region:          cfg.Storage.S3.Region,
			Bucket:          cfg.Storage.S3.Bucket,
			AccessKeyID:     cfg.Storage.S3.AccessKeyID,
			SecretAccessKey: cfg.Storage.S3.SecretAccessKey,
			Endpoint:        cfg.Storage.S3.Endpoint,
			UsePathStyle:    cfg.Storage.S3.UsePathStyle,
			PublicBaseURL:   cfg.Storage.S3.PublicBaseURL,
		})
	default:
		uploader, err = storage.NewPinataUploader(storage.PinataConfig{
			APIURL:    cfg.Storage.Pinata.APIURL,
			APIKey:    cfg.Storage.Pinata.APIKey,
			APISecret: cfg.Storage.Pinata.APISecret,
			Gateway:   cfg.Storage.Pinata.Gateway,
		}, httpClient)
	}
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize storage", zap.Error(err), zap.String("provider", cfg.Storage.Provider))
	}
	logger.InfoCtx(ctx, "Initialized storage", zap.String("provider", cfg.Storage.Provider))

	// Tag and title generation falls back to canned values when the model is unavailable
	var primaryTagger tagging.Generator
	if cfg.Tagging.APIKey != "" {
		primaryTagger = tagging.NewChatGenerator(tagging.ChatConfig{
			BaseURL: cfg.Tagging.BaseURL,
			APIKey:  cfg.Tagging.APIKey,
			Model:   cfg.Tagging.Model,
		}, adapter.NewHTTPClient(cfg.Tagging.Timeout))
	} else {
		logger.WarnCtx(ctx, "Tagging API key not configured, fallback tags and titles will be used")
	}
	tagger := tagging.NewFallbackGenerator(primaryTagger, cfg.Tagging.Timeout)

	// Initialize ledger registrar
	ledgerClient := ledger.NewHTTPClient(ledger.HTTPClientConfig{
		BaseURL: cfg.Ledger.BaseURL,
		APIKey:  cfg.Ledger.APIKey,
		ChainID: cfg.Ledger.ChainID,
	}, adapter.NewHTTPClientWithRetry(cfg.Ledger.Timeout, adapter.NoRetry))
	registrar := ledger.NewRegistrar(ledger.Config{
		Timeout:          cfg.Ledger.Timeout,
		LinkRetries:      cfg.Ledger.LinkRetries,
		NFTContract:      cfg.Ledger.NFTContract,
		RemixNFTContract: cfg.Ledger.RemixNFTContract,
	}, ledgerClient, dataStore, canonicalizer)

	// Initialize remix pipeline
	clipResolver := resolver.New(resolver.Config{
		Concurrency:   cfg.Worker.ResolverConcurrency,
		LookupTimeout: cfg.StoreTimeout,
	}, dataStore)
	recorder := settlement.NewRecorder(settlement.Config{StoreTimeout: cfg.StoreTimeout}, dataStore)

	service := remix.NewService(remix.Config{
		Fee:                   fee,
		RoyaltyRate:           cfg.Royalty.RoyaltyRate,
		EnrichmentConcurrency: cfg.Worker.EnrichmentConcurrency,
		UploadTimeout:         cfg.Storage.Timeout,
		StoreTimeout:          cfg.StoreTimeout,
		MaxFileSize:           cfg.Storage.MaxFileSize,
	}, remix.Deps{
		Content:     dataStore,
		Settlements: dataStore,
		Resolver:    clipResolver,
		Tagger:      tagger,
		Uploader:    uploader,
		Registrar:   registrar,
		Strategy:    royalty.NewEqualSplit(),
		Recorder:    recorder,
		Publisher:   publisher,
		Clock:       clock,
	})
	logger.InfoCtx(ctx, "Initialized remix service",
		zap.String("fee", fee.String()),
		zap.Int("royalty_rate", cfg.Royalty.RoyaltyRate),
	)

	// Create server config
	serverConfig := server.Config{
		Debug:              cfg.Debug,
		Host:               cfg.Server.Host,
		Port:               cfg.Server.Port,
		ReadTimeout:        time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout:       time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:        time.Duration(cfg.Server.IdleTimeout) * time.Second,
		CORSAllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Auth: middleware.AuthConfig{
			JWTPublicKey: cfg.Auth.JWTPublicKey,
			APIKeys:      cfg.Auth.APIKeys,
		},
		WriteRateLimit: middleware.RateLimitConfig{
			RequestsPerSecond: cfg.Server.WriteRateLimit,
			Burst:             cfg.Server.WriteBurst,
		},
	}

	srv := server.New(serverConfig, service)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	logger.Info("API server stopped")
}
