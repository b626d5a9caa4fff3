package store

import (
	"encoding/json"
	"fmt"

	"github.com/remixrite/remix-ledger/internal/domain"
	"github.com/remixrite/remix-ledger/internal/store/schema"
)

func clipToDomain(c *schema.Clip) (*domain.Clip, error) {
	var metadata domain.ClipMetadata
	if len(c.Metadata) > 0 {
		if err := json.Unmarshal(c.Metadata, &metadata); err != nil {
			return nil, fmt.Errorf("malformed metadata for clip %s: %w", c.ID, err)
		}
	}

	return &domain.Clip{
		ID:            c.ID,
		Title:         c.Title,
		SourceURL:     c.SourceURL,
		Metadata:      metadata,
		OwnerAddress:  c.OwnerAddress,
		LedgerAssetID: c.LedgerAssetID,
		CreatedAt:     c.CreatedAt,
	}, nil
}

func remixToDomain(r *schema.Remix) domain.Remix {
	return domain.Remix{
		ID:              r.ID,
		CreatorID:       r.CreatorID,
		Title:           r.Title,
		OriginalClipIDs: []string(r.OriginalClipIDs),
		OutputURL:       r.OutputURL,
		LedgerAssetID:   r.LedgerAssetID,
		LedgerTxHash:    r.LedgerTxHash,
		Fee:             r.Fee,
		CreatedAt:       r.CreatedAt,
	}
}

func remixesToDomain(rows []schema.Remix) []domain.Remix {
	remixes := make([]domain.Remix, 0, len(rows))
	for i := range rows {
		remixes = append(remixes, remixToDomain(&rows[i]))
	}
	return remixes
}

func distributionToDomain(d *schema.RoyaltyDistribution) domain.RoyaltyDistribution {
	return domain.RoyaltyDistribution{
		ID:           d.ID,
		RemixID:      d.RemixID,
		ClipID:       d.ClipID,
		OwnerAddress: d.OriginalOwnerAddress,
		Amount:       d.Amount,
		Timestamp:    d.Timestamp,
	}
}
