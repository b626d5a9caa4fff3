package remix

import (
	"context"
	"sync"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/resolver"
)

func (s *service) ListRemixes(ctx context.Context, creatorID string) ([]EnrichedRemix, error) {
	ctx = logger.WithPipelineInfo(ctx, pipelineInfo(ctx, creatorID, "list_remixes"))

	listCtx, cancel := s.withTimeout(ctx, s.cfg.StoreTimeout)
	var remixes []domain.Remix
	var err error
	if creatorID == "" {
		remixes, err = s.deps.Content.ListAllRemixes(listCtx)
	} else {
		remixes, err = s.deps.Content.ListRemixesByCreator(listCtx, creatorID)
	}
	cancel()
	if err != nil {
		return nil, &domain.PersistenceError{Op: "list_remixes", Err: err}
	}

	if len(remixes) == 0 {
		return []EnrichedRemix{}, nil
	}

	pool := pond.NewResultPool[EnrichedRemix](min(s.cfg.EnrichmentConcurrency, len(remixes)))
	defer pool.StopAndWait()

	group := pool.NewGroup()
	for _, r := range remixes {
		r := r
		group.Submit(func() EnrichedRemix {
			return s.enrich(ctx, r)
		})
	}

	// enrichment degrades instead of failing so the error is always nil
	enriched, _ := group.Wait()

	logger.DebugCtx(ctx, "Listed remixes", zap.Int("count", len(enriched)))
	return enriched, nil
}

func (s *service) GetRemix(ctx context.Context, id string) (*EnrichedRemix, error) {
	getCtx, cancel := s.withTimeout(ctx, s.cfg.StoreTimeout)
	remix, err := s.deps.Content.GetRemix(getCtx, id)
	cancel()
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get_remix", Err: err}
	}
	if remix == nil {
		return nil, domain.ErrRemixNotFound
	}

	enriched := s.enrich(ctx, *remix)
	return &enriched, nil
}

// enrich resolves the parents and loads the distributions of a remix concurrently.
// Failures degrade to empty lists.
func (s *service) enrich(ctx context.Context, r domain.Remix) EnrichedRemix {
	var parents []domain.Clip
	var distributions []domain.RoyaltyDistribution

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		parents = resolver.Present(s.deps.Resolver.Resolve(ctx, r.OriginalClipIDs))
	}()

	go func() {
		defer wg.Done()
		listCtx, cancel := s.withTimeout(ctx, s.cfg.StoreTimeout)
		defer cancel()

		rows, err := s.deps.Settlements.DistributionsFor(listCtx, r.ID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to load royalty distributions",
				zap.String("remix_id", r.ID), zap.Error(err))
			return
		}
		distributions = rows
	}()

	wg.Wait()

	return newEnrichedRemix(r, parents, distributions)
}
