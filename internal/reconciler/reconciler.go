package reconciler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	"github.com/remixrite/remix-ledger/internal/resolver"
	"github.com/remixrite/remix-ledger/internal/royalty"
	"github.com/remixrite/remix-ledger/internal/settlement"
	"github.com/remixrite/remix-ledger/internal/store"
)

const (
	DEFAULT_INTERVAL   = 5 * time.Minute
	DEFAULT_BATCH_SIZE = 100
	DEFAULT_POOL_SIZE  = 4
	// DEFAULT_MIN_AGE keeps the reconciler away from remixes whose creation request may still be writing
	DEFAULT_MIN_AGE = 2 * time.Minute

	// CURSOR_KEY holds the position of the last full batch so skipped remixes cannot pin the scan
	CURSOR_KEY = "reconciler_cursor:unsettled"
)

// Config holds configuration for the reconciler
type Config struct {
	Interval  time.Duration // Time to sleep between cycles
	BatchSize int           // Remixes examined per cycle
	PoolSize  int           // Remixes settled concurrently
	MinAge    time.Duration // Only remixes older than this are examined
}

// Summary counts the outcomes of one cycle
type Summary struct {
	Examined int
	Settled  int
	Pending  int
	Skipped  int
}

// Reconciler resumes remixes whose royalty distributions were only partially recorded
type Reconciler interface {
	// Start runs cycles until the context is canceled or Stop is called
	Start(ctx context.Context) error

	// Stop signals the loop to exit and waits for the in-flight cycle
	Stop(ctx context.Context) error

	// RunOnce runs a single cycle
	RunOnce(ctx context.Context) (Summary, error)

	// Name returns the reconciler's name for logging
	Name() string
}

type reconciler struct {
	cfg         Config
	settlements store.SettlementStore
	kv          store.KeyValueStore
	resolver    resolver.Resolver
	strategy    royalty.Strategy
	recorder    settlement.Recorder
	publisher   messaging.Publisher
	clock       adapter.Clock
	running     atomic.Bool
	stopChan    chan struct{}
	stoppedCh   chan struct{}
}

// New creates a new settlement reconciler
func New(
	cfg Config,
	settlements store.SettlementStore,
	kv store.KeyValueStore,
	res resolver.Resolver,
	strategy royalty.Strategy,
	recorder settlement.Recorder,
	publisher messaging.Publisher,
	clock adapter.Clock,
) Reconciler {
	if cfg.Interval <= 0 {
		cfg.Interval = DEFAULT_INTERVAL
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = DEFAULT_BATCH_SIZE
	}
	if cfg.PoolSize <= 0 {
		cfg.PoolSize = DEFAULT_POOL_SIZE
	}
	if cfg.MinAge <= 0 {
		cfg.MinAge = DEFAULT_MIN_AGE
	}
	if publisher == nil {
		publisher = messaging.NewNopPublisher()
	}

	return &reconciler{
		cfg:         cfg,
		settlements: settlements,
		kv:          kv,
		resolver:    res,
		strategy:    strategy,
		recorder:    recorder,
		publisher:   publisher,
		clock:       clock,
		stopChan:    make(chan struct{}),
		stoppedCh:   make(chan struct{}),
	}
}

func (r *reconciler) Name() string {
	return "settlement-reconciler"
}

func (r *reconciler) Start(ctx context.Context) error {
	if !r.running.CompareAndSwap(false, true) {
		return fmt.Errorf("reconciler already running")
	}
	defer close(r.stoppedCh)

	logger.InfoCtx(ctx, "Starting settlement reconciler",
		zap.Duration("interval", r.cfg.Interval),
		zap.Int("batch_size", r.cfg.BatchSize),
		zap.Int("pool_size", r.cfg.PoolSize),
		zap.Duration("min_age", r.cfg.MinAge),
	)

	for {
		if _, err := r.RunOnce(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err)
		}

		if !r.sleep(ctx, r.cfg.Interval) {
			logger.InfoCtx(ctx, "Settlement reconciler stopping")
			return nil
		}
	}
}

func (r *reconciler) Stop(ctx context.Context) error {
	if !r.running.CompareAndSwap(true, false) {
		return nil
	}

	logger.InfoCtx(ctx, "Stopping settlement reconciler")
	close(r.stopChan)

	select {
	case <-r.stoppedCh:
		logger.InfoCtx(ctx, "Settlement reconciler stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Settlement reconciler stop interrupted by context timeout")
		return ctx.Err()
	}
}

// sleep returns false when interrupted by cancellation or Stop
func (r *reconciler) sleep(ctx context.Context, d time.Duration) bool {
	select {
	case <-r.clock.After(d):
		return true
	case <-ctx.Done():
		return false
	case <-r.stopChan:
		return false
	}
}

type outcome int

const (
	outcomeSettled outcome = iota
	outcomePending
	outcomeSkipped
)

func (r *reconciler) RunOnce(ctx context.Context) (Summary, error) {
	startTime := r.clock.Now()
	olderThan := startTime.Add(-r.cfg.MinAge)

	after := r.loadCursor(ctx)
	remixes, err := r.settlements.ListUnsettledRemixes(ctx, olderThan, after, r.cfg.BatchSize)
	if err != nil {
		return Summary{}, fmt.Errorf("failed to list unsettled remixes: %w", err)
	}

	// A short batch means the scan reached the end; the next cycle starts over
	var next *store.RemixCursor
	if len(remixes) == r.cfg.BatchSize {
		next = store.CursorOf(remixes[len(remixes)-1])
	}

	summary := Summary{Examined: len(remixes)}
	if len(remixes) == 0 {
		if after != nil {
			r.saveCursor(ctx, nil)
		}
		logger.DebugCtx(ctx, "No unsettled remixes")
		return summary, nil
	}

	pool := pond.NewResultPool[outcome](r.cfg.PoolSize, pond.WithContext(ctx))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, remix := range remixes {
		remix := remix
		group.Submit(func() outcome {
			return r.settle(ctx, remix)
		})
	}

	outcomes, err := group.Wait()
	if err != nil {
		return summary, fmt.Errorf("reconciliation cycle interrupted: %w", err)
	}
	r.saveCursor(ctx, next)

	for _, o := range outcomes {
		switch o {
		case outcomeSettled:
			summary.Settled++
		case outcomePending:
			summary.Pending++
		case outcomeSkipped:
			summary.Skipped++
		}
	}

	logger.InfoCtx(ctx, "Reconciliation cycle completed",
		zap.Duration("duration", r.clock.Since(startTime)),
		zap.Int("examined", summary.Examined),
		zap.Int("settled", summary.Settled),
		zap.Int("pending", summary.Pending),
		zap.Int("skipped", summary.Skipped),
	)

	return summary, nil
}

// loadCursor returns where the previous cycle stopped, or nil to start from the oldest remix
func (r *reconciler) loadCursor(ctx context.Context) *store.RemixCursor {
	value, err := r.kv.GetKeyValue(ctx, CURSOR_KEY)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to load reconciler cursor, starting from the oldest remix", zap.Error(err))
		return nil
	}
	if value == "" {
		return nil
	}

	var cursor store.RemixCursor
	if err := json.Unmarshal([]byte(value), &cursor); err != nil {
		logger.WarnCtx(ctx, "Ignoring malformed reconciler cursor", zap.String("cursor", value), zap.Error(err))
		return nil
	}
	return &cursor
}

func (r *reconciler) saveCursor(ctx context.Context, cursor *store.RemixCursor) {
	value := ""
	if cursor != nil {
		data, err := json.Marshal(cursor)
		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to encode reconciler cursor: %w", err))
			return
		}
		value = string(data)
	}

	if err := r.kv.SetKeyValue(context.WithoutCancel(ctx), CURSOR_KEY, value); err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to save reconciler cursor: %w", err))
	}
}

// settle recomputes the shares of a remix and writes the missing distributions.
// A remix whose parents no longer all resolve is skipped since its split would differ from the original.
func (r *reconciler) settle(ctx context.Context, remix domain.Remix) outcome {
	fields := []zap.Field{zap.String("remix_id", remix.ID)}

	parents := resolver.Present(r.resolver.Resolve(ctx, remix.OriginalClipIDs))
	if len(parents) != len(remix.OriginalClipIDs) {
		logger.WarnCtx(ctx, "Parents of unsettled remix no longer resolve, skipping",
			append(fields,
				zap.Int("expected", len(remix.OriginalClipIDs)),
				zap.Int("resolved", len(parents)))...)
		return outcomeSkipped
	}

	shares, err := r.strategy.Split(parents, remix.Fee)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to split royalties of unsettled remix: %w", err), fields...)
		return outcomeSkipped
	}

	distributions, err := r.recorder.Resume(ctx, remix.ID, shares)
	if err != nil {
		var partial *domain.PartialSettlementError
		if errors.As(err, &partial) {
			logger.WarnCtx(ctx, "Settlement still incomplete",
				append(fields, zap.Int("failed", len(partial.Failed)), zap.Error(err))...)
		} else {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to resume settlement: %w", err), fields...)
		}
		return outcomePending
	}

	event := &messaging.Event{
		ID:        remix.ID + ":settled",
		Type:      messaging.EventSettlementResumed,
		Timestamp: r.clock.Now(),
		EntityID:  remix.ID,
		Payload: map[string]any{
			"creator_id":    remix.CreatorID,
			"distributions": len(distributions),
		},
	}
	if err := r.publisher.Publish(context.WithoutCancel(ctx), event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish settlement event", append(fields, zap.Error(err))...)
	}

	logger.InfoCtx(ctx, "Settlement resumed", append(fields, zap.Int("distributions", len(distributions)))...)
	return outcomeSettled
}
