package domain

import (
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
)

// MediaKind represents the kind of media a clip carries
type MediaKind string

const (
	MediaKindAudio MediaKind = "audio"
	MediaKindVideo MediaKind = "video"
)

// Valid checks if the media kind is supported
func (k MediaKind) Valid() bool {
	return k == MediaKindAudio || k == MediaKindVideo
}

// ClipMetadata holds the descriptive metadata of a clip
type ClipMetadata struct {
	Duration    string    `json:"duration"`
	Kind        MediaKind `json:"type"`
	Artist      string    `json:"artist,omitempty"`
	Thumbnail   string    `json:"thumbnail,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	FileSize    int64     `json:"fileSize,omitempty"`
	ContentHash string    `json:"ipfsHash,omitempty"`
}

// Clip is a previously uploaded, ledger-registered content item that can be remixed
type Clip struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	SourceURL     string       `json:"source_url"`
	Metadata      ClipMetadata `json:"metadata"`
	OwnerAddress  string       `json:"owner_address"`
	LedgerAssetID string       `json:"story_protocol_id"`
	CreatedAt     time.Time    `json:"created_at"`
}

// Remix is a derivative work composed from one or more clips
type Remix struct {
	ID              string          `json:"id"`
	CreatorID       string          `json:"creator_id"`
	Title           string          `json:"title"`
	OriginalClipIDs []string        `json:"original_clip_ids"`
	OutputURL       string          `json:"output_url"`
	LedgerAssetID   string          `json:"story_protocol_id"`
	LedgerTxHash    string          `json:"story_protocol_tx_hash"`
	Fee             decimal.Decimal `json:"fee"`
	CreatedAt       time.Time       `json:"created_at"`
}

// RemixDraft is the remix record before it is persisted
type RemixDraft struct {
	CreatorID       string
	Title           string
	OriginalClipIDs []string
	OutputURL       string
	LedgerAssetID   string
	LedgerTxHash    string
	Fee             decimal.Decimal
}

// RoyaltyDistribution attributes part of a remix fee to one original clip's owner
type RoyaltyDistribution struct {
	ID           string          `json:"id"`
	RemixID      string          `json:"remix_id"`
	ClipID       string          `json:"clip_id"`
	OwnerAddress string          `json:"original_owner_address"`
	Amount       decimal.Decimal `json:"amount"`
	Timestamp    time.Time       `json:"timestamp"`
}

// Share is a single (recipient, amount) pair produced by a royalty strategy
type Share struct {
	ClipID       string          `json:"clip_id"`
	OwnerAddress string          `json:"owner"`
	Amount       decimal.Decimal `json:"amount"`
}

// LicenseTerms are attached to a clip's ledger asset when the clip is first registered
type LicenseTerms struct {
	Transferable       bool   `json:"transferable"`
	RoyaltyRate        int    `json:"royaltyRate"`
	MintingFee         string `json:"mintingFee"`
	CommercialUse      bool   `json:"commercialUse"`
	DerivativesAllowed bool   `json:"derivativesAllowed"`
	Currency           string `json:"currency"`
}

// DefaultLicenseTerms returns the license terms applied to freshly uploaded clips
func DefaultLicenseTerms(royaltyRate int) LicenseTerms {
	return LicenseTerms{
		Transferable:       true,
		RoyaltyRate:        royaltyRate,
		MintingFee:         "0",
		CommercialUse:      true,
		DerivativesAllowed: true,
		Currency:           ETHEREUM_ZERO_ADDRESS,
	}
}

// ValidRoyaltyRate checks the rate is a percentage
func ValidRoyaltyRate(rate int) bool {
	return rate >= 0 && rate <= 100
}

// IsOwnerAddress checks if a string is a 0x-prefixed 40 hex character address
func IsOwnerAddress(s string) bool {
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// NormalizeOwnerAddress returns the checksummed form of an owner address
func NormalizeOwnerAddress(s string) string {
	return common.HexToAddress(s).Hex()
}

// DedupeIDs trims, drops empty entries and removes duplicates while keeping the first occurrence order
func DedupeIDs(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	result := make([]string, 0, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		result = append(result, id)
	}
	return result
}
