package remix

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alitto/pond/v2"
	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/ledger"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	"github.com/remixrite/remix-ledger/internal/resolver"
	"github.com/remixrite/remix-ledger/internal/storage"
	"github.com/remixrite/remix-ledger/internal/tagging"
)

// manifest is the stored artifact when no rendered remix is supplied
type manifest struct {
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Creator   string         `json:"creator"`
	Style     string         `json:"style,omitempty"`
	Mood      string         `json:"mood,omitempty"`
	Clips     []manifestClip `json:"clips"`
	CreatedAt time.Time      `json:"createdAt"`
	Platform  string         `json:"platform"`
}

type manifestClip struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	SourceURL string           `json:"sourceUrl"`
	Kind      domain.MediaKind `json:"type"`
	Owner     string           `json:"owner"`
}

// validate normalizes the input; no external call is made before it passes
func (in *CreateRemixInput) validate() ([]byte, error) {
	in.ClipIDs = domain.DedupeIDs(in.ClipIDs)
	if len(in.ClipIDs) == 0 {
		return nil, domain.NewValidationError("clipIds", "At least one clip ID is required")
	}
	if len(in.ClipIDs) > domain.MAX_CLIPS_PER_REMIX {
		return nil, domain.NewValidationError("clipIds", fmt.Sprintf("At most %d clips are allowed per remix", domain.MAX_CLIPS_PER_REMIX))
	}

	in.CreatorID = strings.TrimSpace(in.CreatorID)
	if in.CreatorID == "" {
		return nil, domain.NewValidationError("creatorId", "Creator ID is required")
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Style = strings.TrimSpace(in.Style)
	in.Mood = strings.TrimSpace(in.Mood)

	if in.RemixData == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(in.RemixData)
	if err != nil {
		return nil, &domain.ValidationError{Field: "remixData", Message: "remixData must be base64 encoded", Err: err}
	}
	if len(data) == 0 {
		return nil, domain.NewValidationError("remixData", "remixData is empty")
	}
	return data, nil
}

func (s *service) CreateRemix(ctx context.Context, input CreateRemixInput) (*EnrichedRemix, error) {
	done := s.stage(ctx, domain.StageValidate)
	rendered, err := input.validate()
	done(err)
	if err != nil {
		return nil, err
	}

	ctx = logger.WithPipelineInfo(ctx, pipelineInfo(ctx, input.CreatorID, "create_remix"))

	// Resolve
	done = s.stage(ctx, domain.StageResolve, zap.Int("requested", len(input.ClipIDs)))
	clips := resolver.Present(s.deps.Resolver.Resolve(ctx, input.ClipIDs))
	if len(clips) == 0 {
		err = &domain.ResolutionError{Requested: len(input.ClipIDs)}
	}
	done(err)
	if err != nil {
		return nil, err
	}

	// Tags and title
	done = s.stage(ctx, domain.StageTagging)
	title, tags := s.describe(ctx, input, clips)
	done(nil)

	description := input.Description
	if description == "" {
		description = fmt.Sprintf("Remix created from %d original clips", len(clips))
	}

	clipIDs := make([]string, len(clips))
	parentAssetIDs := make([]string, len(clips))
	for i, c := range clips {
		clipIDs[i] = c.ID
		parentAssetIDs[i] = c.LedgerAssetID
	}
	createdAt := s.deps.Clock.Now()

	// Upload
	done = s.stage(ctx, domain.StageUpload)
	artifact, err := s.buildArtifact(input, title, clips, rendered, createdAt)
	var uploaded *storage.UploadResult
	if err == nil {
		uploadCtx, cancel := s.withTimeout(ctx, s.cfg.UploadTimeout)
		uploaded, err = s.deps.Uploader.Upload(uploadCtx, artifact, storage.UploadOptions{
			KeyValues: map[string]string{
				"type":          "remix",
				"creator":       input.CreatorID,
				"originalClips": strings.Join(clipIDs, ","),
				"platform":      domain.PLATFORM_NAME,
			},
		})
		cancel()
	}
	done(err)
	if err != nil {
		return nil, &domain.ExternalServiceError{Stage: domain.StageUpload, Err: err}
	}

	// Ledger
	done = s.stage(ctx, domain.StageLedger, zap.Int("parents", len(parentAssetIDs)))
	registration, err := s.deps.Registrar.RegisterDerivative(ctx, parentAssetIDs, ledger.Metadata{
		Title:       title,
		Description: description,
		MediaURL:    uploaded.URL,
		Attributes: map[string]any{
			"originalClips": clipIDs,
			"style":         input.Style,
			"mood":          input.Mood,
			"tags":          tags,
			"createdAt":     createdAt.Format(time.RFC3339),
			"platform":      domain.PLATFORM_NAME,
		},
	})
	done(err)
	if err != nil {
		return nil, &domain.ExternalServiceError{Stage: domain.StageLedger, Err: err}
	}

	// Royalty
	done = s.stage(ctx, domain.StageRoyalty)
	shares, err := s.deps.Strategy.Split(clips, s.cfg.Fee)
	done(err)
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("royalty split failed after ledger commit: %w", err),
			zap.String("asset_id", registration.AssetID))
		return nil, &domain.ExternalServiceError{Stage: domain.StageRoyalty, Err: err}
	}

	// Settlement
	done = s.stage(ctx, domain.StageSettlement, zap.String("asset_id", registration.AssetID))
	remix, distributions, err := s.deps.Recorder.Commit(ctx, domain.RemixDraft{
		CreatorID:       input.CreatorID,
		Title:           title,
		OriginalClipIDs: clipIDs,
		OutputURL:       uploaded.URL,
		LedgerAssetID:   registration.AssetID,
		LedgerTxHash:    registration.TxHash,
		Fee:             s.cfg.Fee,
	}, shares)
	done(err)

	var partial *domain.PartialSettlementError
	switch {
	case errors.As(err, &partial):
		s.publish(ctx, messaging.EventSettlementPartial, partial.RemixID, map[string]any{
			"creator_id": input.CreatorID,
			"failed":     partial.Failed,
		})
	case err != nil:
		logger.ErrorCtx(ctx, fmt.Errorf("settlement failed after ledger commit: %w", err),
			zap.String("asset_id", registration.AssetID),
			zap.String("tx_hash", registration.TxHash))
		return nil, err
	}

	enriched := newEnrichedRemix(*remix, clips, distributions)
	enriched.Tags = tags

	if partial != nil {
		return &enriched, err
	}

	s.publish(ctx, messaging.EventRemixCreated, remix.ID, map[string]any{
		"creator_id":        remix.CreatorID,
		"story_protocol_id": remix.LedgerAssetID,
		"original_clip_ids": remix.OriginalClipIDs,
		"fee":               remix.Fee,
	})

	logger.InfoCtx(ctx, "Remix created",
		zap.String("remix_id", remix.ID),
		zap.String("asset_id", remix.LedgerAssetID),
		zap.Int("distributions", len(distributions)))

	return &enriched, nil
}

// describe generates the remix title and tags concurrently.
// A title supplied by the caller is kept as is.
func (s *service) describe(ctx context.Context, input CreateRemixInput, clips []domain.Clip) (string, []string) {
	originalTitles := make([]string, len(clips))
	for i, c := range clips {
		originalTitles[i] = c.Title
	}

	tagTitle := input.Title
	if tagTitle == "" {
		tagTitle = strings.Join(originalTitles, " ")
	}

	title := input.Title
	var tags []string

	pool := pond.NewPool(2)
	group := pool.NewGroup()
	if title == "" {
		group.Submit(func() {
			titles, err := s.deps.Tagger.GenerateTitles(ctx, originalTitles, input.Style, input.Mood)
			if err != nil || len(titles) == 0 {
				logger.WarnCtx(ctx, "Title generation failed, using fallback", zap.Error(err))
				titles = tagging.FallbackTitles(originalTitles, input.Style, input.Mood)
			}
			title = titles[0]
		})
	}
	group.Submit(func() {
		generated, err := s.deps.Tagger.GenerateTags(ctx, tagTitle, input.Description, domain.MediaKindVideo)
		if err != nil || len(generated) == 0 {
			logger.WarnCtx(ctx, "Tag generation failed, using fallback", zap.Error(err))
			generated = tagging.FallbackTags(tagTitle, input.Description, domain.MediaKindVideo)
		}
		tags = generated
	})
	err := group.Wait()
	pool.StopAndWait()
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("remix description failed: %w", err))
		if title == "" {
			title = tagging.FallbackTitles(originalTitles, input.Style, input.Mood)[0]
		}
		if len(tags) == 0 {
			tags = tagging.FallbackTags(tagTitle, input.Description, domain.MediaKindVideo)
		}
	}

	return title, tags
}

// buildArtifact returns the rendered remix when supplied, otherwise a JSON manifest of the parents
func (s *service) buildArtifact(input CreateRemixInput, title string, clips []domain.Clip, rendered []byte, createdAt time.Time) (storage.Artifact, error) {
	if rendered != nil {
		return storage.Artifact{Name: title, Data: rendered}, nil
	}

	m := manifest{
		Type:      "remix",
		Title:     title,
		Creator:   input.CreatorID,
		Style:     input.Style,
		Mood:      input.Mood,
		Clips:     make([]manifestClip, 0, len(clips)),
		CreatedAt: createdAt,
		Platform:  domain.PLATFORM_NAME,
	}
	for _, c := range clips {
		m.Clips = append(m.Clips, manifestClip{
			ID:        c.ID,
			Title:     c.Title,
			SourceURL: c.SourceURL,
			Kind:      c.Metadata.Kind,
			Owner:     c.OwnerAddress,
		})
	}

	data, err := json.Marshal(m)
	if err != nil {
		return storage.Artifact{}, fmt.Errorf("failed to build remix manifest: %w", err)
	}
	return storage.Artifact{Name: title, Data: data, ContentType: "application/json"}, nil
}

// pipelineInfo keeps the request id set by the transport, if any
func pipelineInfo(ctx context.Context, creatorID, operation string) logger.PipelineInfo {
	info := logger.PipelineInfo{CreatorID: creatorID, Operation: operation}
	if existing := logger.PipelineInfoFromContext(ctx); existing != nil {
		info.RequestID = existing.RequestID
	}
	return info
}
