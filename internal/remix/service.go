package remix

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/ledger"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	"github.com/remixrite/remix-ledger/internal/resolver"
	"github.com/remixrite/remix-ledger/internal/royalty"
	"github.com/remixrite/remix-ledger/internal/settlement"
	"github.com/remixrite/remix-ledger/internal/storage"
	"github.com/remixrite/remix-ledger/internal/store"
	"github.com/remixrite/remix-ledger/internal/tagging"
)

// Config holds the service settings
type Config struct {
	// Fee is charged for every remix and split among the parent clips' owners
	Fee decimal.Decimal
	// RoyaltyRate is the percentage attached to the license terms of uploaded clips
	RoyaltyRate int
	// EnrichmentConcurrency bounds the remixes enriched at the same time by a listing
	EnrichmentConcurrency int
	// UploadTimeout bounds each artifact upload
	UploadTimeout time.Duration
	// StoreTimeout bounds each store read
	StoreTimeout time.Duration
	// MaxFileSize is the largest clip accepted for upload, in bytes; zero disables the check
	MaxFileSize int64
}

// Deps are the collaborators of the service
type Deps struct {
	Content     store.ContentStore
	Settlements store.SettlementStore
	Resolver    resolver.Resolver
	Tagger      tagging.Generator
	Uploader    storage.Uploader
	Registrar   ledger.Registrar
	Strategy    royalty.Strategy
	Recorder    settlement.Recorder
	Publisher   messaging.Publisher
	Clock       adapter.Clock
}

// Service creates remixes and serves them back enriched with their parents and distributions
//
//go:generate mockgen -source=service.go -destination=../mocks/remix_service.go -package=mocks -mock_names=Service=MockRemixService
type Service interface {
	// CreateRemix runs the registration pipeline.
	// On a *domain.PartialSettlementError the committed remix is returned together with the error.
	CreateRemix(ctx context.Context, input CreateRemixInput) (*EnrichedRemix, error)

	// ListRemixes lists the remixes of a creator, or all remixes when creatorID is empty, newest first
	ListRemixes(ctx context.Context, creatorID string) ([]EnrichedRemix, error)

	// GetRemix returns one enriched remix
	GetRemix(ctx context.Context, id string) (*EnrichedRemix, error)

	// UploadClip stores a new clip, registers it on the ledger with license terms and persists it
	UploadClip(ctx context.Context, input UploadClipInput) (*domain.Clip, error)

	// GetClip returns one clip
	GetClip(ctx context.Context, id string) (*domain.Clip, error)
}

type service struct {
	cfg  Config
	deps Deps
}

// NewService creates a new remix service
func NewService(cfg Config, deps Deps) Service {
	if cfg.Fee.IsZero() {
		cfg.Fee = decimal.RequireFromString(domain.DEFAULT_REMIX_FEE)
	}
	if cfg.EnrichmentConcurrency <= 0 {
		cfg.EnrichmentConcurrency = resolver.DefaultConcurrency
	}
	if deps.Publisher == nil {
		deps.Publisher = messaging.NewNopPublisher()
	}
	if deps.Clock == nil {
		deps.Clock = adapter.NewClock()
	}
	return &service{cfg: cfg, deps: deps}
}

func (s *service) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

// publish emits an event; delivery failures are logged and never fail the caller
func (s *service) publish(ctx context.Context, eventType messaging.EventType, entityID string, payload any) {
	event := &messaging.Event{
		ID:        ulid.Make().String(),
		Type:      eventType,
		Timestamp: s.deps.Clock.Now(),
		EntityID:  entityID,
		Payload:   payload,
	}

	if err := s.deps.Publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish event",
			zap.String("type", string(eventType)),
			zap.String("entity_id", entityID),
			zap.Error(err))
	}
}

// stage logs the start of a pipeline stage and returns a func that logs its end
func (s *service) stage(ctx context.Context, stage domain.Stage, fields ...zap.Field) func(err error) {
	start := s.deps.Clock.Now()
	base := append([]zap.Field{zap.String("stage", string(stage))}, fields...)
	logger.DebugCtx(ctx, "Stage started", base...)

	return func(err error) {
		done := append(base, zap.Duration("elapsed", s.deps.Clock.Since(start)))
		if err != nil {
			logger.WarnCtx(ctx, "Stage failed", append(done, zap.Error(err))...)
			return
		}
		logger.DebugCtx(ctx, "Stage finished", done...)
	}
}
