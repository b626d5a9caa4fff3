package remix

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// CreateRemixInput is a remix creation request
type CreateRemixInput struct {
	ClipIDs     []string
	CreatorID   string
	Title       string
	Description string
	Style       string
	Mood        string
	// RemixData is the base64 encoded rendered remix; a manifest of the clips is stored when empty
	RemixData string
}

// UploadClipInput is a clip upload request
type UploadClipInput struct {
	FileName     string
	Data         []byte
	Title        string
	Description  string
	Artist       string
	Duration     string
	OwnerAddress string
}

// ClipSummary identifies a parent clip of a remix
type ClipSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Owner string `json:"owner"`
}

// EnrichedRemix is a remix together with its resolved parents and royalty distributions
type EnrichedRemix struct {
	ID                   string                       `json:"id"`
	CreatorID            string                       `json:"creator_id"`
	Title                string                       `json:"title"`
	OutputURL            string                       `json:"output_url"`
	LedgerAssetID        string                       `json:"story_protocol_id"`
	LedgerTxHash         string                       `json:"story_protocol_tx_hash"`
	Fee                  decimal.Decimal              `json:"fee"`
	Tags                 []string                     `json:"tags,omitempty"`
	OriginalClips        []ClipSummary                `json:"original_clips"`
	RoyaltyDistributions []domain.RoyaltyDistribution `json:"royalty_distributions"`
	CreatedAt            time.Time                    `json:"created_at"`
}

func summarize(clips []domain.Clip) []ClipSummary {
	out := make([]ClipSummary, 0, len(clips))
	for _, c := range clips {
		out = append(out, ClipSummary{ID: c.ID, Title: c.Title, Owner: c.OwnerAddress})
	}
	return out
}

func newEnrichedRemix(r domain.Remix, parents []domain.Clip, distributions []domain.RoyaltyDistribution) EnrichedRemix {
	if distributions == nil {
		distributions = []domain.RoyaltyDistribution{}
	}
	return EnrichedRemix{
		ID:                   r.ID,
		CreatorID:            r.CreatorID,
		Title:                r.Title,
		OutputURL:            r.OutputURL,
		LedgerAssetID:        r.LedgerAssetID,
		LedgerTxHash:         r.LedgerTxHash,
		Fee:                  r.Fee,
		OriginalClips:        summarize(parents),
		RoyaltyDistributions: distributions,
		CreatedAt:            r.CreatedAt,
	}
}
