package settlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/royalty"
	"github.com/remixrite/remix-ledger/internal/store"
)

// Config holds the recorder settings
type Config struct {
	// StoreTimeout bounds each store write
	StoreTimeout time.Duration
}

// Recorder persists remixes and their royalty distributions
//
//go:generate mockgen -source=recorder.go -destination=../mocks/settlement.go -package=mocks -mock_names=Recorder=MockSettlementRecorder
type Recorder interface {
	// Commit writes the remix row and then one distribution per share.
	// When some distributions fail the remix row is kept and a *domain.PartialSettlementError is returned
	// together with the remix and the distributions that were written.
	Commit(ctx context.Context, draft domain.RemixDraft, shares []domain.Share) (*domain.Remix, []domain.RoyaltyDistribution, error)

	// Resume writes the distributions of an existing remix that are still missing and returns all of them
	Resume(ctx context.Context, remixID string, shares []domain.Share) ([]domain.RoyaltyDistribution, error)
}

type recorder struct {
	cfg   Config
	store store.SettlementStore
}

// NewRecorder creates a new settlement recorder
func NewRecorder(cfg Config, store store.SettlementStore) Recorder {
	return &recorder{cfg: cfg, store: store}
}

func (r *recorder) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.cfg.StoreTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.cfg.StoreTimeout)
}

func (r *recorder) Commit(ctx context.Context, draft domain.RemixDraft, shares []domain.Share) (*domain.Remix, []domain.RoyaltyDistribution, error) {
	if len(draft.OriginalClipIDs) == 0 {
		return nil, nil, domain.NewValidationError("original_clip_ids", "a remix needs at least one original clip")
	}
	if len(shares) == 0 {
		return nil, nil, domain.NewValidationError("shares", "a remix needs at least one royalty share")
	}
	if total := royalty.Total(shares); !total.Equal(draft.Fee) {
		return nil, nil, domain.NewValidationError("shares", fmt.Sprintf("shares sum to %s but the fee is %s", total, draft.Fee))
	}

	// once the ledger has committed the remix the rows are written regardless of the caller
	ctx = context.WithoutCancel(ctx)

	insertCtx, cancel := r.withTimeout(ctx)
	remix, err := r.store.InsertRemix(insertCtx, draft)
	cancel()
	if err != nil {
		return nil, nil, &domain.PersistenceError{Op: "insert_remix", Err: err}
	}

	logger.InfoCtx(ctx, "Remix recorded",
		zap.String("remix_id", remix.ID),
		zap.String("creator_id", remix.CreatorID),
		zap.String("fee", remix.Fee.String()))

	distributions, err := r.writeShares(ctx, remix.ID, shares)
	return remix, distributions, err
}

func (r *recorder) Resume(ctx context.Context, remixID string, shares []domain.Share) ([]domain.RoyaltyDistribution, error) {
	listCtx, cancel := r.withTimeout(ctx)
	existing, err := r.store.DistributionsFor(listCtx, remixID)
	cancel()
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_distributions", Err: err}
	}

	written := make(map[string]struct{}, len(existing))
	for _, d := range existing {
		written[shareKey(d.ClipID, d.OwnerAddress)] = struct{}{}
	}

	missing := make([]domain.Share, 0, len(shares))
	for _, s := range shares {
		if _, ok := written[shareKey(s.ClipID, s.OwnerAddress)]; !ok {
			missing = append(missing, s)
		}
	}

	if len(missing) == 0 {
		return existing, nil
	}

	logger.InfoCtx(ctx, "Resuming settlement",
		zap.String("remix_id", remixID),
		zap.Int("existing", len(existing)),
		zap.Int("missing", len(missing)))

	added, err := r.writeShares(ctx, remixID, missing)
	return append(existing, added...), err
}

// writeShares writes one distribution per share and collects the failures
func (r *recorder) writeShares(ctx context.Context, remixID string, shares []domain.Share) ([]domain.RoyaltyDistribution, error) {
	distributions := make([]domain.RoyaltyDistribution, 0, len(shares))
	var failed []domain.Share
	var errs []error

	for _, s := range shares {
		writeCtx, cancel := r.withTimeout(ctx)
		d, err := r.store.InsertDistribution(writeCtx, store.CreateDistributionInput{
			RemixID:      remixID,
			ClipID:       s.ClipID,
			OwnerAddress: s.OwnerAddress,
			Amount:       s.Amount,
		})
		cancel()

		if err != nil {
			logger.ErrorCtx(ctx, fmt.Errorf("failed to record royalty distribution: %w", err),
				zap.String("remix_id", remixID),
				zap.String("clip_id", s.ClipID),
				zap.String("owner_address", s.OwnerAddress))
			failed = append(failed, s)
			errs = append(errs, err)
			continue
		}
		distributions = append(distributions, *d)
	}

	if len(failed) > 0 {
		return distributions, &domain.PartialSettlementError{
			RemixID: remixID,
			Failed:  failed,
			Err:     errors.Join(errs...),
		}
	}
	return distributions, nil
}

func shareKey(clipID, owner string) string {
	return clipID + "|" + owner
}
