package ledger

import (
	"context"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// Metadata describes an asset registered on the ledger
type Metadata struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	MediaURL    string         `json:"mediaUrl"`
	Attributes  map[string]any `json:"attributes,omitempty"`
}

// AssetRequest registers a new asset minted from tokenContract
type AssetRequest struct {
	TokenContract string `json:"tokenContract"`
	TokenID       string `json:"tokenId"`
	MetadataURI   string `json:"metadataURI"`
	// MetadataHash is the keccak256 of the canonical metadata JSON
	MetadataHash string `json:"metadataHash"`
}

// Asset is a registered ledger asset
type Asset struct {
	AssetID string `json:"ipId"`
	TxHash  string `json:"txHash"`
}

// LinkRequest links a child asset to its parents
type LinkRequest struct {
	ChildAssetID   string   `json:"childIpId"`
	ParentAssetIDs []string `json:"parentIpIds"`
	// IdempotencyKey lets the ledger gateway drop duplicate submissions
	IdempotencyKey string `json:"-"`
}

// Client is the provenance ledger gateway
//
//go:generate mockgen -source=client.go -destination=../mocks/ledger_client.go -package=mocks -mock_names=Client=MockLedgerClient
type Client interface {
	// UploadMetadata stores asset metadata and returns its URI
	UploadMetadata(ctx context.Context, metadata Metadata) (string, error)
	// RegisterAsset registers a new asset
	RegisterAsset(ctx context.Context, req AssetRequest) (*Asset, error)
	// AttachLicense attaches license terms to an asset and returns the license terms id
	AttachLicense(ctx context.Context, assetID string, terms domain.LicenseTerms) (string, error)
	// LinkDerivative records parent to child edges and returns the transaction hash
	LinkDerivative(ctx context.Context, req LinkRequest) (string, error)
}
