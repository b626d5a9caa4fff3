package store

import (
	"github.com/shopspring/decimal"

	"github.com/remixrite/remix-ledger/internal/domain"
)

// CreateClipInput represents the data required to create a clip
type CreateClipInput struct {
	Title         string
	SourceURL     string
	Metadata      domain.ClipMetadata
	OwnerAddress  string
	LedgerAssetID string
}

// CreateDistributionInput represents one royalty distribution row to write
type CreateDistributionInput struct {
	RemixID      string
	ClipID       string
	OwnerAddress string
	Amount       decimal.Decimal
}
