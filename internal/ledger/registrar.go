package ledger

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/adapter"
	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/store"
)

// Config holds the registrar settings
type Config struct {
	// Timeout bounds every individual ledger call
	Timeout time.Duration
	// LinkRetries is the number of re-submissions of a failed derivative link
	LinkRetries uint64
	// LinkRetryInterval is the initial backoff between link re-submissions
	LinkRetryInterval time.Duration
	// NFTContract mints tokens for original clips
	NFTContract string
	// RemixNFTContract mints tokens for remixes
	RemixNFTContract string
}

// Registration is the outcome of a committed registration
type Registration struct {
	AssetID        string
	TxHash         string
	MetadataURI    string
	LicenseTermsID string
	Stage          domain.RegistrationStage
}

// Registrar drives the ledger registration state machine
//
//go:generate mockgen -source=registrar.go -destination=../mocks/registrar.go -package=mocks -mock_names=Registrar=MockRegistrar
type Registrar interface {
	// RegisterDerivative registers a remix and links it to its parents
	RegisterDerivative(ctx context.Context, parentAssetIDs []string, metadata Metadata) (*Registration, error)
	// RegisterOriginal registers an uploaded clip and attaches license terms
	RegisterOriginal(ctx context.Context, metadata Metadata, terms domain.LicenseTerms) (*Registration, error)
}

type registrar struct {
	cfg    Config
	client Client
	kv     store.KeyValueStore
	canon  adapter.Canonicalizer
}

// NewRegistrar creates a new ledger registrar
func NewRegistrar(cfg Config, client Client, kv store.KeyValueStore, canon adapter.Canonicalizer) Registrar {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.LinkRetryInterval <= 0 {
		cfg.LinkRetryInterval = 500 * time.Millisecond
	}
	return &registrar{cfg: cfg, client: client, kv: kv, canon: canon}
}

// run tracks one pass through the state machine
type run struct {
	op        string
	completed domain.RegistrationStage
	started   bool
	result    Registration
}

func (r *run) fail(ctx context.Context, stage domain.RegistrationStage, err error) error {
	logger.WarnCtx(ctx, "Ledger registration failed",
		zap.String("operation", r.op),
		zap.String("stage", string(stage)),
		zap.String("last_completed", string(r.completed)),
		zap.Error(err))

	return &domain.RegistrationError{Stage: stage, LastCompleted: r.completed, Err: err}
}

// step runs fn as the transition into next.
// The call is detached from caller cancellation and bounded by the configured timeout.
// Once any step has started, a cancelled caller gets ErrUnknownOutcome instead of further calls.
func (r *registrar) step(ctx context.Context, run *run, next domain.RegistrationStage, fn func(context.Context) error) error {
	if err := ctx.Err(); err != nil {
		if run.started {
			return run.fail(ctx, next, fmt.Errorf("%w: %v", domain.ErrUnknownOutcome, err))
		}
		return run.fail(ctx, next, err)
	}
	run.started = true

	callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), r.cfg.Timeout)
	defer cancel()

	if err := fn(callCtx); err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("ledger call timed out after %s: %w", r.cfg.Timeout, err)
		}
		return run.fail(ctx, next, err)
	}

	logger.DebugCtx(ctx, "Ledger registration advanced",
		zap.String("operation", run.op),
		zap.String("from", string(run.completed)),
		zap.String("to", string(next)))
	run.completed = next

	return nil
}

// stageAsset uploads metadata and registers a fresh asset minted from tokenContract
func (r *registrar) stageAsset(ctx context.Context, run *run, tokenContract string, metadata Metadata) error {
	if err := r.step(ctx, run, domain.RegistrationMetadataStaged, func(callCtx context.Context) error {
		uri, err := r.client.UploadMetadata(callCtx, metadata)
		if err != nil {
			return err
		}
		run.result.MetadataURI = uri
		return nil
	}); err != nil {
		return err
	}

	metadataHash, err := MetadataHash(r.canon, metadata)
	if err != nil {
		return run.fail(ctx, domain.RegistrationAssetRegistered, err)
	}

	return r.step(ctx, run, domain.RegistrationAssetRegistered, func(callCtx context.Context) error {
		asset, err := r.client.RegisterAsset(callCtx, AssetRequest{
			TokenContract: tokenContract,
			TokenID:       ulid.Make().String(),
			MetadataURI:   run.result.MetadataURI,
			MetadataHash:  metadataHash,
		})
		if err != nil {
			return err
		}
		run.result.AssetID = asset.AssetID
		run.result.TxHash = asset.TxHash
		return nil
	})
}

// commit finishes a run; a caller that went away during the last step still gets ErrUnknownOutcome
func (r *registrar) commit(ctx context.Context, run *run) (*Registration, error) {
	if err := ctx.Err(); err != nil {
		return nil, run.fail(ctx, domain.RegistrationCommitted, fmt.Errorf("%w: %v", domain.ErrUnknownOutcome, err))
	}

	run.completed = domain.RegistrationCommitted
	run.result.Stage = domain.RegistrationCommitted

	logger.InfoCtx(ctx, "Ledger registration committed",
		zap.String("operation", run.op),
		zap.String("asset_id", run.result.AssetID),
		zap.String("tx_hash", run.result.TxHash))

	result := run.result
	return &result, nil
}

// RegisterDerivative runs Idle → MetadataStaged → AssetRegistered → DerivativeLinked → Committed
func (r *registrar) RegisterDerivative(ctx context.Context, parentAssetIDs []string, metadata Metadata) (*Registration, error) {
	parents := domain.DedupeIDs(parentAssetIDs)
	if len(parents) == 0 {
		return nil, domain.NewValidationError("parent_asset_ids", "at least one parent asset is required")
	}

	run := &run{op: "register_derivative", completed: domain.RegistrationIdle}

	if err := r.stageAsset(ctx, run, r.cfg.RemixNFTContract, metadata); err != nil {
		return nil, err
	}

	fingerprint, err := LinkFingerprint(r.canon, run.result.AssetID, parents)
	if err != nil {
		return nil, run.fail(ctx, domain.RegistrationDerivativeLinked, err)
	}

	if err := r.step(ctx, run, domain.RegistrationDerivativeLinked, func(callCtx context.Context) error {
		txHash, err := r.linkOnce(callCtx, run.result.AssetID, parents, fingerprint)
		if err != nil {
			return err
		}
		run.result.TxHash = txHash
		return nil
	}); err != nil {
		return nil, err
	}

	return r.commit(ctx, run)
}

// linkOnce returns the recorded transaction of a link that already happened, otherwise submits it.
// The submission is retried because the ledger deduplicates on the fingerprint.
func (r *registrar) linkOnce(ctx context.Context, assetID string, parents []string, fingerprint string) (string, error) {
	if txHash, err := r.kv.GetKeyValue(ctx, linkKey(fingerprint)); err != nil {
		logger.WarnCtx(ctx, "Failed to look up link fingerprint, submitting anyway",
			zap.String("fingerprint", fingerprint), zap.Error(err))
	} else if txHash != "" {
		logger.InfoCtx(ctx, "Derivative link already recorded",
			zap.String("fingerprint", fingerprint), zap.String("tx_hash", txHash))
		return txHash, nil
	}

	var txHash string
	operation := func() error {
		var err error
		txHash, err = r.client.LinkDerivative(ctx, LinkRequest{
			ChildAssetID:   assetID,
			ParentAssetIDs: parents,
			IdempotencyKey: fingerprint,
		})
		if err != nil && !retryableLinkError(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = r.cfg.LinkRetryInterval
	b.MaxElapsedTime = 0

	notify := func(err error, wait time.Duration) {
		logger.WarnCtx(ctx, "Derivative link failed, re-submitting",
			zap.String("fingerprint", fingerprint), zap.Duration("wait", wait), zap.Error(err))
	}

	policy := backoff.WithContext(backoff.WithMaxRetries(b, r.cfg.LinkRetries), ctx)
	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		return "", err
	}

	if err := r.kv.SetKeyValue(ctx, linkKey(fingerprint), txHash); err != nil {
		logger.WarnCtx(ctx, "Failed to record link fingerprint",
			zap.String("fingerprint", fingerprint), zap.Error(err))
	}

	return txHash, nil
}

// retryableLinkError reports whether a link failure may be re-submitted
func retryableLinkError(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return false
	}

	var se *adapter.StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= http.StatusInternalServerError ||
			se.StatusCode == http.StatusRequestTimeout ||
			se.StatusCode == http.StatusTooManyRequests
	}
	return true
}

// RegisterOriginal runs Idle → MetadataStaged → AssetRegistered → LicenseAttached → Committed
func (r *registrar) RegisterOriginal(ctx context.Context, metadata Metadata, terms domain.LicenseTerms) (*Registration, error) {
	if !domain.ValidRoyaltyRate(terms.RoyaltyRate) {
		return nil, domain.NewValidationError("royalty_rate", "royalty rate must be between 0 and 100")
	}

	run := &run{op: "register_original", completed: domain.RegistrationIdle}

	if err := r.stageAsset(ctx, run, r.cfg.NFTContract, metadata); err != nil {
		return nil, err
	}

	if err := r.step(ctx, run, domain.RegistrationLicenseAttached, func(callCtx context.Context) error {
		id, err := r.client.AttachLicense(callCtx, run.result.AssetID, terms)
		if err != nil {
			return err
		}
		run.result.LicenseTermsID = id
		return nil
	}); err != nil {
		return nil, err
	}

	return r.commit(ctx, run)
}
