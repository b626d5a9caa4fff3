package remix

import (
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/ledger"
	"github.com/remixrite/remix-ledger/internal/logger"
	"github.com/remixrite/remix-ledger/internal/messaging"
	"github.com/remixrite/remix-ledger/internal/storage"
	"github.com/remixrite/remix-ledger/internal/store"
	"github.com/remixrite/remix-ledger/internal/tagging"
)

func (s *service) UploadClip(ctx context.Context, input UploadClipInput) (*domain.Clip, error) {
	input.Title = strings.TrimSpace(input.Title)
	if input.Title == "" {
		return nil, domain.NewValidationError("title", "Title is required")
	}
	if len(input.Data) == 0 {
		return nil, domain.NewValidationError("file", "File is required")
	}
	if s.cfg.MaxFileSize > 0 && int64(len(input.Data)) > s.cfg.MaxFileSize {
		return nil, domain.NewValidationError("file", fmt.Sprintf("File exceeds the %d byte limit", s.cfg.MaxFileSize))
	}
	if !domain.IsOwnerAddress(input.OwnerAddress) {
		return nil, domain.NewValidationError("ownerAddress", "Owner address must be a 0x-prefixed 40 hex character address")
	}
	kind, ok := storage.DetectMediaKind(input.Data)
	if !ok {
		return nil, domain.NewValidationError("file", "Only audio and video files are supported")
	}

	ctx = logger.WithPipelineInfo(ctx, pipelineInfo(ctx, input.OwnerAddress, "upload_clip"))
	owner := domain.NormalizeOwnerAddress(input.OwnerAddress)

	name := path.Base(input.FileName)
	if name == "." || name == "/" {
		name = input.Title
	}

	// Upload
	done := s.stage(ctx, domain.StageUpload, zap.String("kind", string(kind)))
	uploadCtx, cancel := s.withTimeout(ctx, s.cfg.UploadTimeout)
	uploaded, err := s.deps.Uploader.Upload(uploadCtx, storage.Artifact{Name: name, Data: input.Data}, storage.UploadOptions{
		KeyValues: map[string]string{
			"type":     string(kind),
			"title":    input.Title,
			"owner":    owner,
			"platform": domain.PLATFORM_NAME,
		},
	})
	cancel()
	done(err)
	if err != nil {
		return nil, &domain.ExternalServiceError{Stage: domain.StageUpload, Err: err}
	}

	// Tags
	done = s.stage(ctx, domain.StageTagging)
	tags, err := s.deps.Tagger.GenerateTags(ctx, input.Title, input.Description, kind)
	done(err)
	if err != nil || len(tags) == 0 {
		tags = tagging.FallbackTags(input.Title, input.Description, kind)
	}

	// Ledger
	done = s.stage(ctx, domain.StageLedger)
	registration, err := s.deps.Registrar.RegisterOriginal(ctx, ledger.Metadata{
		Title:       input.Title,
		Description: input.Description,
		MediaURL:    uploaded.URL,
		Attributes: map[string]any{
			"type":      kind,
			"artist":    input.Artist,
			"tags":      tags,
			"owner":     owner,
			"createdAt": s.deps.Clock.Now().Format(time.RFC3339),
			"platform":  domain.PLATFORM_NAME,
		},
	}, domain.DefaultLicenseTerms(s.cfg.RoyaltyRate))
	done(err)
	if err != nil {
		return nil, &domain.ExternalServiceError{Stage: domain.StageLedger, Err: err}
	}

	// Persist
	createCtx, cancel := s.withTimeout(context.WithoutCancel(ctx), s.cfg.StoreTimeout)
	clip, err := s.deps.Content.CreateClip(createCtx, store.CreateClipInput{
		Title:     input.Title,
		SourceURL: uploaded.URL,
		Metadata: domain.ClipMetadata{
			Duration:    input.Duration,
			Kind:        kind,
			Artist:      input.Artist,
			Tags:        tags,
			FileSize:    uploaded.Size,
			ContentHash: uploaded.ContentHash,
		},
		OwnerAddress:  owner,
		LedgerAssetID: registration.AssetID,
	})
	cancel()
	if err != nil {
		logger.ErrorCtx(ctx, fmt.Errorf("failed to persist clip after ledger commit: %w", err),
			zap.String("asset_id", registration.AssetID))
		return nil, &domain.PersistenceError{Op: "create_clip", Err: err}
	}

	s.publish(ctx, messaging.EventClipRegistered, clip.ID, map[string]any{
		"owner_address":     clip.OwnerAddress,
		"story_protocol_id": clip.LedgerAssetID,
		"license_terms_id":  registration.LicenseTermsID,
	})

	logger.InfoCtx(ctx, "Clip registered",
		zap.String("clip_id", clip.ID),
		zap.String("asset_id", clip.LedgerAssetID))

	return clip, nil
}

func (s *service) GetClip(ctx context.Context, id string) (*domain.Clip, error) {
	getCtx, cancel := s.withTimeout(ctx, s.cfg.StoreTimeout)
	defer cancel()

	clip, err := s.deps.Content.FindClip(getCtx, id)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "get_clip", Err: err}
	}
	if clip == nil {
		return nil, domain.ErrClipNotFound
	}
	return clip, nil
}
