package resolver

import (
	"context"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/store"
)

const (
	// DefaultConcurrency is used when no concurrency is configured
	DefaultConcurrency = 8
	// MaxConcurrency caps the lookups in flight for a single call
	MaxConcurrency = 16
)

// Config holds the resolver settings
type Config struct {
	// Concurrency is the number of lookups in flight for a single call, clamped to [1, MaxConcurrency]
	Concurrency int
	// LookupTimeout bounds each store lookup
	LookupTimeout time.Duration
}

// Resolution is the outcome of resolving one clip id; Clip is nil when the id did not resolve
type Resolution struct {
	ID   string
	Clip *domain.Clip
}

// Resolver looks up clips by id
//
//go:generate mockgen -source=resolver.go -destination=../mocks/resolver.go -package=mocks -mock_names=Resolver=MockResolver
type Resolver interface {
	// Resolve looks up every distinct id and reports each as present or absent, in request order.
	// It never fails: lookup errors and unusable records are reported as absent.
	Resolve(ctx context.Context, ids []string) []Resolution
}

type resolver struct {
	cfg   Config
	store store.ContentStore
}

// New creates a new clip resolver
func New(cfg Config, store store.ContentStore) Resolver {
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = DefaultConcurrency
	}
	if cfg.Concurrency > MaxConcurrency {
		cfg.Concurrency = MaxConcurrency
	}
	return &resolver{cfg: cfg, store: store}
}

func (r *resolver) Resolve(ctx context.Context, ids []string) []Resolution {
	ids = domain.DedupeIDs(ids)
	if len(ids) == 0 {
		return []Resolution{}
	}

	pool := pond.NewResultPool[Resolution](min(r.cfg.Concurrency, len(ids)))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, id := range ids {
		id := id
		group.Submit(func() Resolution {
			return Resolution{ID: id, Clip: r.lookup(ctx, id)}
		})
	}

	// tasks never fail so the error is always nil
	results, _ := group.Wait()

	resolved := 0
	for _, res := range results {
		if res.Clip != nil {
			resolved++
		}
	}
	logger.DebugCtx(ctx, "Resolved clips",
		zap.Int("requested", len(ids)),
		zap.Int("resolved", resolved))

	return results
}

// lookup returns the clip for id, or nil when it is missing or unusable
func (r *resolver) lookup(ctx context.Context, id string) *domain.Clip {
	if r.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.LookupTimeout)
		defer cancel()
	}

	clip, err := r.store.FindClip(ctx, id)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to look up clip", zap.String("clip_id", id), zap.Error(err))
		return nil
	}
	if clip == nil {
		logger.DebugCtx(ctx, "Clip not found", zap.String("clip_id", id))
		return nil
	}

	if !domain.IsOwnerAddress(clip.OwnerAddress) {
		logger.WarnCtx(ctx, "Clip has an invalid owner address",
			zap.String("clip_id", id), zap.String("owner_address", clip.OwnerAddress))
		return nil
	}
	if clip.LedgerAssetID == "" {
		logger.WarnCtx(ctx, "Clip is not registered on the ledger", zap.String("clip_id", id))
		return nil
	}

	return clip
}

// Present returns the resolved clips in request order
func Present(results []Resolution) []domain.Clip {
	clips := make([]domain.Clip, 0, len(results))
	for _, res := range results {
		if res.Clip != nil {
			clips = append(clips, *res.Clip)
		}
	}
	return clips
}
