package logger

import (
	"context"
	"time"

	"github.com/TheZeroSlave/zapsentry"
	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log      = zap.NewNop()
	reporter *sentry.Client
)

// Config holds logger configuration
type Config struct {
	Debug bool

	// SentryDSN enables error reporting; SentryClient takes precedence when set
	SentryDSN       string
	SentryClient    *sentry.Client
	Environment     string
	Release         string
	BreadcrumbLevel zapcore.Level
	Tags            map[string]string
}

// Initialize replaces the global logger. Errors are reported to Sentry when a DSN or client is configured.
func Initialize(cfg Config) error {
	base, err := newBase(cfg.Debug)
	if err != nil {
		return err
	}

	client := cfg.SentryClient
	if client == nil && cfg.SentryDSN != "" {
		client, err = sentry.NewClient(sentry.ClientOptions{
			Dsn:         cfg.SentryDSN,
			Debug:       cfg.Debug,
			Environment: cfg.Environment,
			Release:     cfg.Release,
		})
		if err != nil {
			return err
		}
	}
	if client == nil {
		log = base
		return nil
	}

	breadcrumbs := cfg.BreadcrumbLevel
	if breadcrumbs == zapcore.InvalidLevel {
		breadcrumbs = zapcore.InfoLevel
	}

	core, err := zapsentry.NewCore(zapsentry.Configuration{
		Level:             zapcore.ErrorLevel,
		EnableBreadcrumbs: true,
		BreadcrumbLevel:   breadcrumbs,
		Tags:              cfg.Tags,
	}, zapsentry.NewSentryClientFromClient(client))
	if err != nil {
		return err
	}

	reporter = client
	log = zapsentry.AttachCoreToLogger(core, base)
	return nil
}

func newBase(debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		return cfg.Build()
	}
	return zap.NewProductionConfig().Build()
}

// Flush syncs buffered entries and waits up to timeout for Sentry delivery
func Flush(timeout time.Duration) {
	_ = log.Sync()
	if reporter != nil {
		reporter.Flush(timeout)
	}
}

// FromContext returns the global logger with the Sentry scope and pipeline fields found in ctx
func FromContext(ctx context.Context) *zap.Logger {
	if ctx == nil {
		return log
	}

	l := log.With(zapsentry.Context(ctx))
	if info := PipelineInfoFromContext(ctx); info != nil {
		l = l.With(info.Fields()...)
	}
	return l
}

func errorMessage(err error) string {
	if err == nil {
		return "error occurred"
	}
	return err.Error()
}

func Info(msg string, fields ...zap.Field) { log.Info(msg, fields...) }

func Warn(msg string, fields ...zap.Field) { log.Warn(msg, fields...) }

func Error(err error, fields ...zap.Field) { log.Error(errorMessage(err), fields...) }

func InfoCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Info(msg, fields...)
}

func WarnCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Warn(msg, fields...)
}

func DebugCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Debug(msg, fields...)
}

// ErrorCtx logs err as the message so Sentry groups events by error text
func ErrorCtx(ctx context.Context, err error, fields ...zap.Field) {
	FromContext(ctx).Error(errorMessage(err), fields...)
}

// FatalCtx logs and exits the process
func FatalCtx(ctx context.Context, msg string, fields ...zap.Field) {
	FromContext(ctx).Fatal(msg, fields...)
}
